package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devskale/willhaben-agent/internal/config"
)

func TestCompleteCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/st", "/starred"},
		{"/se", "/search"},
		{"/s", "/search"}, // first registered match wins
		{"/quit", "/quit"},
		{"/bogus", ""},
		{"", "/search"},
	}
	for _, tt := range tests {
		if got := completeCommand(tt.input); got != tt.want {
			t.Errorf("completeCommand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMatchingCommands(t *testing.T) {
	if got := matchingCommands("/"); len(got) != len(commands) {
		t.Errorf("matchingCommands(/) = %d entries, want all %d", len(got), len(commands))
	}
	if got := matchingCommands("/h"); len(got) != 1 || got[0].name != "/history" {
		t.Errorf("matchingCommands(/h) = %+v", got)
	}
	if got := matchingCommands("/zzz"); got != nil {
		t.Errorf("matchingCommands(/zzz) = %+v, want nil", got)
	}
}

func TestSlashOpensPaletteOutsideSearch(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	m.focusSection(SectionProducts)

	m, _ = press(t, m, keyRunes("/"))
	if m.section != SectionCommand {
		t.Fatalf("section = %v, want SectionCommand", m.section)
	}
	if m.commandInput.Value() != "/" {
		t.Errorf("command input = %q, want seeded /", m.commandInput.Value())
	}
}

func TestCommandTabCompletionAndDispatch(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	m.enterCommand("/st")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.commandInput.Value() != "/starred" {
		t.Fatalf("completed to %q, want /starred", m.commandInput.Value())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.section != SectionStarred {
		t.Fatalf("section = %v, want SectionStarred", m.section)
	}
	if m.commandInput.Value() != "" {
		t.Error("command input not cleared after dispatch")
	}
}

func TestCommandEscapeCancels(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	m.enterCommand("/hist")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.section != SectionSearch {
		t.Fatalf("section = %v, want SectionSearch", m.section)
	}
	if m.commandInput.Value() != "" {
		t.Error("cancelled input not discarded")
	}
}

func TestUnknownCommandIsNoop(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	m.enterCommand("/frobnicate")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("unknown command produced a command")
	}
	if m.section != SectionCommand {
		t.Errorf("section = %v, want SectionCommand", m.section)
	}
}

func TestQuitCommandFromSearchBox(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	m.searchInput.SetValue("/quit")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("no command returned")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("slash command in search box did not quit")
	}
	if m.searchInput.Value() != "" {
		t.Error("search input not cleared")
	}
}

func TestNextWidthCycle(t *testing.T) {
	widths := []int{80}
	w := 80
	for i := 0; i < 4; i++ {
		w = nextWidth(w)
		widths = append(widths, w)
	}
	want := []int{80, 100, 120, config.WidthAuto, 80}
	for i := range want {
		if widths[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", widths, want)
		}
	}
}

func TestNextContrastModeCycle(t *testing.T) {
	modes := []string{"low"}
	c := "low"
	for i := 0; i < 4; i++ {
		c = nextContrastMode(c)
		modes = append(modes, c)
	}
	want := []string{"low", "medium", "high", config.ContrastRotate, "low"}
	for i := range want {
		if modes[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", modes, want)
		}
	}
}

func TestNextLocationCyclesThroughAllAndOff(t *testing.T) {
	seen := map[int]bool{}
	current := 0
	for i := 0; i < len(config.Locations)+1; i++ {
		current = nextLocation(current)
		if current != 0 {
			seen[current] = true
		}
	}
	if current != 0 {
		t.Fatalf("cycle did not return to off, ended at %d", current)
	}
	if len(seen) != len(config.Locations) {
		t.Fatalf("visited %d locations, want %d", len(seen), len(config.Locations))
	}
}
