// Package config handles user configuration persistence.
// Settings are stored in ~/.config/willhaben/config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// WidthAuto resolves the ASCII width against the terminal column count
// at render time.
const WidthAuto = 0

// UserConfig holds the user-tunable settings.
type UserConfig struct {
	// AsciiWidth is the ASCII rendering width in columns: 80, 100,
	// 120, or WidthAuto.
	AsciiWidth int `toml:"ascii_width"`
	// AsciiContrast is the glyph ramp selection: low, medium, high, or
	// rotate to cycle through all three.
	AsciiContrast string `toml:"ascii_contrast"`
	// PreferredLocation is an optional Bundesland area id narrowing
	// every search. Zero disables the filter.
	PreferredLocation int `toml:"preferred_location,omitempty"`
	// CookieHeader is a pre-obtained willhaben session cookie header.
	// Acquiring it is up to the user; an empty value browses
	// anonymously.
	CookieHeader string `toml:"cookie_header,omitempty"`
	// UseBrowser enables the headless-browser fetch fallback.
	UseBrowser bool `toml:"use_browser,omitempty"`
}

const (
	defaultConfigPath = "~/.config/willhaben/config.toml"

	ContrastRotate = "rotate"
)

// ValidWidths are the accepted ascii_width values; WidthAuto stands
// for "auto".
var ValidWidths = []int{80, 100, 120, WidthAuto}

// ValidContrasts are the accepted ascii_contrast values.
var ValidContrasts = []string{"low", "medium", "high", ContrastRotate}

// Locations maps Austrian Bundesländer area ids to display names.
var Locations = map[int]string{
	1:   "Burgenland",
	2:   "Kärnten",
	3:   "Niederösterreich",
	4:   "Oberösterreich",
	5:   "Salzburg",
	6:   "Steiermark",
	7:   "Tirol",
	8:   "Vorarlberg",
	900: "Wien",
}

// LocationIDs returns the known area ids in ascending order.
func LocationIDs() []int {
	ids := make([]int, 0, len(Locations))
	for id := range Locations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Default returns the configuration used when nothing is on disk.
func Default() UserConfig {
	return UserConfig{
		AsciiWidth:    WidthAuto,
		AsciiContrast: ContrastRotate,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config from path (empty uses the default location).
// Missing or malformed files degrade to defaults; field values outside
// the accepted sets are replaced individually.
func Load(path string) UserConfig {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default()
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Default()
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return sanitize(cfg)
}

// Save writes cfg to path (empty uses the default location), creating
// directories as needed.
func Save(path string, cfg UserConfig) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(sanitize(cfg))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// IsValidWidth reports whether w is an accepted ascii_width value.
func IsValidWidth(w int) bool {
	for _, valid := range ValidWidths {
		if w == valid {
			return true
		}
	}
	return false
}

// IsValidContrast reports whether c is an accepted ascii_contrast
// value.
func IsValidContrast(c string) bool {
	for _, valid := range ValidContrasts {
		if c == valid {
			return true
		}
	}
	return false
}

func sanitize(cfg UserConfig) UserConfig {
	def := Default()
	if !IsValidWidth(cfg.AsciiWidth) {
		cfg.AsciiWidth = def.AsciiWidth
	}
	cfg.AsciiContrast = strings.TrimSpace(cfg.AsciiContrast)
	if !IsValidContrast(cfg.AsciiContrast) {
		cfg.AsciiContrast = def.AsciiContrast
	}
	if cfg.PreferredLocation != 0 {
		if _, ok := Locations[cfg.PreferredLocation]; !ok {
			cfg.PreferredLocation = 0
		}
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
