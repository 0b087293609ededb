package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors and prebuilt styles for the UI.
type Theme struct {
	Logo      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Selected  lipgloss.Style
	Title     lipgloss.Style
	Paylivery lipgloss.Style

	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
}

// DefaultTheme returns the built-in color scheme.
func DefaultTheme() Theme {
	var (
		green   = lipgloss.Color("2")
		cyan    = lipgloss.Color("6")
		yellow  = lipgloss.Color("3")
		red     = lipgloss.Color("1")
		magenta = lipgloss.Color("5")
		gray    = lipgloss.Color("8")
	)

	return Theme{
		Logo:      lipgloss.NewStyle().Foreground(green).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(gray),
		Accent:    lipgloss.NewStyle().Foreground(cyan),
		Success:   lipgloss.NewStyle().Foreground(green).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(yellow),
		Danger:    lipgloss.NewStyle().Foreground(red),
		Selected:  lipgloss.NewStyle().Foreground(green).Bold(true),
		Title:     lipgloss.NewStyle().Bold(true),
		Paylivery: lipgloss.NewStyle().Foreground(magenta),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cyan).
			Padding(0, 1),
		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(green).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(gray).
			Padding(0, 1),
		SelectedCard: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(green).
			Padding(0, 1),
	}
}
