package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devskale/willhaben-agent/internal/ascii"
	"github.com/devskale/willhaben-agent/internal/config"
)

// command is one entry of the slash-command palette.
type command struct {
	name        string
	description string
	action      func(*Model) tea.Cmd
}

// commands is the palette registry. Order matters: Tab completion
// picks the first prefix match.
var commands = []command{
	{
		name:        "/search",
		description: "Jump to search input",
		action: func(m *Model) tea.Cmd {
			m.focusSection(SectionSearch)
			return nil
		},
	},
	{
		name:        "/history",
		description: "View search history",
		action: func(m *Model) tea.Cmd {
			if m.history != nil {
				m.historyItems = m.history.List()
			}
			m.historyIndex = 0
			m.focusSection(SectionHistory)
			return nil
		},
	},
	{
		name:        "/starred",
		description: "View starred items",
		action: func(m *Model) tea.Cmd {
			if m.stars != nil {
				m.starredItems = m.stars.List()
			}
			m.starredIndex = 0
			m.focusSection(SectionStarred)
			return nil
		},
	},
	{
		name:        "/profile",
		description: "View your profile",
		action: func(m *Model) tea.Cmd {
			m.focusSection(SectionProfile)
			if m.profileLoaded {
				return nil
			}
			return m.profileCmd()
		},
	},
	{
		name:        "/width",
		description: "Cycle ASCII width (80/100/120/auto)",
		action: func(m *Model) tea.Cmd {
			m.cfg.AsciiWidth = nextWidth(m.cfg.AsciiWidth)
			m.saveConfig()
			m.rerenderFrame()
			return nil
		},
	},
	{
		name:        "/contrast",
		description: "Cycle ASCII contrast (low/medium/high/rotate)",
		action: func(m *Model) tea.Cmd {
			m.cfg.AsciiContrast = nextContrastMode(m.cfg.AsciiContrast)
			m.saveConfig()
			m.contrast = startContrast(m.cfg.AsciiContrast)
			m.rerenderFrame()
			if m.cfg.AsciiContrast == config.ContrastRotate && m.detailImage != nil {
				return rotateCmd(m.rotateGen)
			}
			return nil
		},
	},
	{
		name:        "/location",
		description: "Cycle preferred Bundesland filter",
		action: func(m *Model) tea.Cmd {
			m.cfg.PreferredLocation = nextLocation(m.cfg.PreferredLocation)
			m.saveConfig()
			return nil
		},
	},
	{
		name:        "/quit",
		description: "Exit the application",
		action: func(m *Model) tea.Cmd {
			return tea.Quit
		},
	},
}

// completeCommand returns the first registered command name that input
// is a prefix of, or "" when nothing matches.
func completeCommand(input string) string {
	for _, c := range commands {
		if strings.HasPrefix(c.name, input) {
			return c.name
		}
	}
	return ""
}

// matchingCommands returns the palette entries input is a prefix of,
// for display under the command line.
func matchingCommands(input string) []command {
	var out []command
	for _, c := range commands {
		if strings.HasPrefix(c.name, input) {
			out = append(out, c)
		}
	}
	return out
}

func (m Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		// Cancel, discarding whatever was typed.
		m.commandInput.SetValue("")
		m.focusSection(SectionSearch)
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		if name := completeCommand(m.commandInput.Value()); name != "" {
			m.commandInput.SetValue(name)
			m.commandInput.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		name := strings.TrimSpace(m.commandInput.Value())
		m.commandInput.SetValue("")
		return m, m.dispatchCommand(name)
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

// dispatchCommand executes the command registered under name. Unknown
// names are a silent no-op.
func (m *Model) dispatchCommand(name string) tea.Cmd {
	for _, c := range commands {
		if c.name == name {
			return c.action(m)
		}
	}
	return nil
}

func (m *Model) saveConfig() {
	if err := config.Save(m.cfgPath, m.cfg); err != nil {
		m.errMsg = err.Error()
	}
}

// rerenderFrame recomputes the ASCII frame after a width or contrast
// change while a detail image is loaded.
func (m *Model) rerenderFrame() {
	if m.detailImage == nil {
		return
	}
	m.frame = ascii.Render(m.detailImage, m.asciiWidth(), ascii.Ramp(m.contrast))
}

func nextWidth(w int) int {
	switch w {
	case 80:
		return 100
	case 100:
		return 120
	case 120:
		return config.WidthAuto
	default:
		return 80
	}
}

func nextContrastMode(c string) string {
	switch c {
	case "low":
		return "medium"
	case "medium":
		return "high"
	case "high":
		return config.ContrastRotate
	default:
		return "low"
	}
}

func nextLocation(current int) int {
	ids := config.LocationIDs()
	if current == 0 {
		return ids[0]
	}
	for i, id := range ids {
		if id == current {
			if i+1 < len(ids) {
				return ids[i+1]
			}
			return 0
		}
	}
	return 0
}
