package ui

import (
	"fmt"
	"strings"
)

func (m Model) renderHistory() string {
	if len(m.historyItems) == 0 {
		return m.theme.Muted.Render("No search history.")
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Search History (Enter to restore):"))
	start, end := windowBounds(m.historyIndex, len(m.historyItems), listWindow)
	for i := start; i < end; i++ {
		item := m.historyItems[i]
		line := item.Query
		if item.CategoryName != "" {
			line += " [" + item.CategoryName + "]"
		}
		line += m.theme.Muted.Render("  (" + item.CreatedAt.Format("2006-01-02 15:04") + ")")

		b.WriteString("\n")
		if i == m.historyIndex {
			b.WriteString(m.theme.Selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
	}
	if end < len(m.historyItems) {
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("...more"))
	}
	return m.theme.FocusedPanel.Render(b.String())
}

func (m Model) renderStarred() string {
	if len(m.starredItems) == 0 {
		return m.theme.Muted.Render("No starred items yet.")
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Starred Items (%d):", len(m.starredItems))))
	start, end := windowBounds(m.starredIndex, len(m.starredItems), listWindow)
	for i := start; i < end; i++ {
		item := m.starredItems[i]
		top := fmt.Sprintf("★ %-42s %14s  %s",
			truncate(item.Title, 40), item.PriceText, m.theme.Muted.Render(item.ID))

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

		card := m.theme.Card
		if i == m.starredIndex {
			card = m.theme.SelectedCard
		}
		b.WriteString("\n")
		b.WriteString(card.Render(top + "\n" + meta.String()))
	}
	if end < len(m.starredItems) {
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render(fmt.Sprintf("...and %d more", len(m.starredItems)-end)))
	}
	return b.String()
}

func (m Model) renderProfile() string {
	if m.busy && !m.profileLoaded {
		return m.theme.Warning.Render("Loading profile...")
	}
	if m.profile == nil {
		return m.theme.Danger.Render("Not logged in.") + "\n" +
			m.theme.Muted.Render("Set cookie_header in the config file to browse with your account.")
	}

	p := m.profile
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("User Profile"))
	b.WriteString("\n\n")
	b.WriteString("Name:  " + p.Name)
	if p.Email != "" {
		b.WriteString("\nEmail: " + p.Email)
	}
	b.WriteString("\nID:    " + p.ID)
	if p.PostCode != "" {
		b.WriteString("\nLocation: " + p.PostCode)
	}
	if p.MemberSince != "" {
		b.WriteString("\nMember Since: " + p.MemberSince)
	}
	return m.theme.Panel.Render(b.String())
}
