package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadMalformedFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("ascii_width = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path)
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadSanitizesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `ascii_width = 97
ascii_contrast = "ultra"
preferred_location = 42
cookie_header = "sid=abc"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.AsciiWidth != WidthAuto {
		t.Errorf("AsciiWidth = %d, want WidthAuto", cfg.AsciiWidth)
	}
	if cfg.AsciiContrast != ContrastRotate {
		t.Errorf("AsciiContrast = %q, want rotate", cfg.AsciiContrast)
	}
	if cfg.PreferredLocation != 0 {
		t.Errorf("PreferredLocation = %d, want 0", cfg.PreferredLocation)
	}
	// Valid fields survive sanitizing.
	if cfg.CookieHeader != "sid=abc" {
		t.Errorf("CookieHeader = %q", cfg.CookieHeader)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := UserConfig{
		AsciiWidth:        100,
		AsciiContrast:     "high",
		PreferredLocation: 900,
		CookieHeader:      "sid=xyz",
		UseBrowser:        true,
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := Load(path); got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestValidators(t *testing.T) {
	for _, w := range ValidWidths {
		if !IsValidWidth(w) {
			t.Errorf("IsValidWidth(%d) = false", w)
		}
	}
	if IsValidWidth(97) {
		t.Error("IsValidWidth(97) = true")
	}

	for _, c := range ValidContrasts {
		if !IsValidContrast(c) {
			t.Errorf("IsValidContrast(%q) = false", c)
		}
	}
	if IsValidContrast("ultra") {
		t.Error("IsValidContrast(ultra) = true")
	}
}

func TestLocationIDsSorted(t *testing.T) {
	ids := LocationIDs()
	if len(ids) != len(Locations) {
		t.Fatalf("ids = %d entries, want %d", len(ids), len(Locations))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not ascending: %v", ids)
		}
	}
	if ids[len(ids)-1] != 900 {
		t.Errorf("largest id = %d, want 900 (Wien)", ids[len(ids)-1])
	}
}
