package ui

import (
	"fmt"
	"strings"

	"github.com/devskale/willhaben-agent/internal/config"
)

const listWindow = 10

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(m.theme.Logo.Render("Willhaben"))
	if m.cfg.PreferredLocation != 0 {
		b.WriteString("  ")
		b.WriteString(m.theme.Muted.Render("[" + config.Locations[m.cfg.PreferredLocation] + "]"))
	}
	if m.busy {
		b.WriteString("  ")
		b.WriteString(m.spin.View())
		b.WriteString(m.theme.Accent.Render(" working..."))
	}
	if m.errMsg != "" {
		b.WriteString("  ")
		b.WriteString(m.theme.Danger.Render("Error: " + truncate(m.errMsg, 80)))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	var hint string
	switch m.section {
	case SectionSearch:
		hint = "Enter: Search | ↓: Results | /: Commands | Esc: Clear | Ctrl+C: Exit"
	case SectionCategories:
		hint = "↑↓: Select | Enter: Filter | →: Drill down | ←: Search | Esc: Clear"
	case SectionProducts:
		hint = "↑↓: Select | →/Enter: Open | Space: Star | n/p: Page | ←: Back"
	case SectionDetail:
		hint = "←/Esc: Back | Space: Star/Unstar"
	case SectionCommand:
		hint = "Tab: Complete | Enter: Run | Esc: Cancel"
	case SectionHistory:
		hint = "↑↓: Select | Enter: Search again | Esc: Back"
	case SectionStarred:
		hint = "↑↓: Select | Enter: Details | Space: Unstar | Esc: Back"
	case SectionProfile:
		hint = "←/Esc: Back"
	}
	return m.theme.Muted.Render(hint)
}

// renderSearchLayout draws the main screen: search box, category
// panel, product list, and the command palette when it is active.
func (m Model) renderSearchLayout() string {
	var b strings.Builder

	searchPanel := m.theme.Panel
	if m.section == SectionSearch {
		searchPanel = m.theme.FocusedPanel
	}
	b.WriteString(searchPanel.Render("Search: " + m.searchInput.View()))
	b.WriteString("\n")

	if m.section == SectionCommand {
		b.WriteString(m.renderCommandPalette())
		b.WriteString("\n")
	}

	if m.busy && m.result == nil {
		b.WriteString(m.theme.Accent.Render(fmt.Sprintf("Searching for %q...", m.searchInput.Value())))
		b.WriteString("\n")
	}

	if m.result == nil {
		return b.String()
	}

	if len(m.result.Categories) > 0 {
		b.WriteString(m.renderCategories())
		b.WriteString("\n")
	}
	b.WriteString(m.renderProducts())
	return b.String()
}

func (m Model) renderCommandPalette() string {
	var b strings.Builder
	b.WriteString(m.theme.Warning.Render("COMMAND: "))
	b.WriteString(m.commandInput.View())
	for _, c := range matchingCommands(m.commandInput.Value()) {
		b.WriteString("\n  ")
		b.WriteString(m.theme.Muted.Render(fmt.Sprintf("%-10s %s", c.name, c.description)))
	}
	panel := m.theme.Panel.BorderForeground(m.theme.Warning.GetForeground())
	return panel.Render(b.String())
}

func (m Model) renderCategories() string {
	// Row 0 is the synthetic "All Categories" entry.
	labels := make([]string, 0, m.categoryCount())
	labels = append(labels, "All Categories")
	for _, c := range m.result.Categories {
		labels = append(labels, fmt.Sprintf("%s (%d)", c.Name, c.Count))
	}

	var b strings.Builder
	b.WriteString(m.theme.Accent.Bold(true).Render("Categories (Select to filter):"))
	start, end := windowBounds(m.categoryIndex, len(labels), listWindow)
	for i := start; i < end; i++ {
		b.WriteString("\n")
		if i == m.categoryIndex {
			b.WriteString(m.theme.Selected.Render("> " + labels[i]))
		} else {
			b.WriteString("  " + labels[i])
		}
	}
	if end < len(labels) {
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("...more"))
	}

	panel := m.theme.Panel
	if m.section == SectionCategories {
		panel = m.theme.FocusedPanel
	}
	return panel.Render(b.String())
}

func (m Model) renderProducts() string {
	items := m.result.Items
	if len(items) == 0 {
		return m.theme.Muted.Render("No items found.")
	}

	var b strings.Builder
	header := fmt.Sprintf("Found %d items", m.result.TotalFound)
	if m.categoryName != "" {
		header += " in " + m.categoryName
	}
	header += fmt.Sprintf(" (Page %d):", m.page)
	b.WriteString(m.theme.Title.Render(header))

	focused := m.section == SectionProducts
	start, end := windowBounds(m.productIndex, len(items), listWindow)
	for i := start; i < end; i++ {
		item := items[i]
		selected := focused && i == m.productIndex

		title := item.Title
		if m.starredIDs[item.ID] {
			title = "★ " + title
		}
		top := fmt.Sprintf("%-44s %14s  %s",
			truncate(title, 42), item.PriceText, m.theme.Muted.Render(item.ID))

		var meta strings.Builder
		meta.WriteString(m.theme.Warning.Render(truncate(item.Location, 30)))
		if item.SellerName != "" {
			meta.WriteString("  ")
			meta.WriteString(m.theme.Accent.Render(truncate(item.SellerName, 24)))
		}
		if item.Paylivery {
			meta.WriteString("  ")
			meta.WriteString(m.theme.Paylivery.Render("✓ PayLivery"))
		}
		if item.ImageURL != "" {
			meta.WriteString("  ")
			meta.WriteString(m.theme.Accent.Render("[img]"))
		}

		card := m.theme.Card
		if selected {
			card = m.theme.SelectedCard
		}
		b.WriteString("\n")
		b.WriteString(card.Render(top + "\n" + meta.String()))
	}
	if end < len(items) {
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render(fmt.Sprintf("...and %d more on this page", len(items)-end)))
	}
	return b.String()
}
