package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/devskale/willhaben-agent/internal/ascii"
	"github.com/devskale/willhaben-agent/internal/config"
)

func (m Model) renderDetail() string {
	if m.detail == nil {
		if m.errMsg != "" {
			return m.theme.Danger.Render("Could not load listing: " + m.errMsg)
		}
		return m.theme.Warning.Render("Loading details...")
	}

	d := m.detail
	var b strings.Builder

	title := d.Title
	if m.starredIDs[d.ID] {
		title = "★ " + title
	}
	b.WriteString(m.theme.Success.Render(title))
	b.WriteString("\n")
	b.WriteString(m.theme.Warning.Render(d.PriceText))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("ID: " + d.ID))
	b.WriteString("\n\n")

	b.WriteString(m.renderFrame())
	b.WriteString("\n")

	desc := d.FullDescription
	if desc == "" {
		desc = d.Description
	}
	if desc != "" {
		b.WriteString("\n")
		b.WriteString(truncate(strings.TrimSpace(desc), 600))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Accent.Render("Location: ") + d.Location)
	b.WriteString("\n")
	b.WriteString(m.theme.Accent.Render("Seller:   ") + d.SellerName)
	if d.Condition != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Accent.Render("Condition: ") + d.Condition)
	}
	if d.Phone != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Accent.Render("Phone:    ") + d.Phone)
	}
	if d.Paylivery {
		b.WriteString("\n")
		b.WriteString(m.theme.Paylivery.Render("✓ PayLivery Available"))
	}

	if len(d.Attributes) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Title.Render("Attributes:"))
		names := make([]string, 0, len(d.Attributes))
		for name := range d.Attributes {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) > 10 {
			names = names[:10]
		}
		for _, name := range names {
			b.WriteString("\n")
			b.WriteString(m.theme.Muted.Render(
				truncate(fmt.Sprintf("- %s: %s", name, strings.Join(d.Attributes[name], ", ")), 70)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.Muted.Render(d.URL))

	return m.theme.Panel.Render(b.String())
}

// renderFrame shows the ASCII rendition of the listing's image, or a
// box placeholder while it is unavailable.
func (m Model) renderFrame() string {
	if m.frame == "" {
		return m.theme.Muted.Render(ascii.Placeholder(32, 6))
	}
	label := string(m.contrast)
	if m.cfg.AsciiContrast == config.ContrastRotate {
		label += " (rotating)"
	}
	return m.frame + "\n" + m.theme.Muted.Render("contrast: "+label)
}
