package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devskale/willhaben-agent/internal/ascii"
	"github.com/devskale/willhaben-agent/internal/config"
	"github.com/devskale/willhaben-agent/internal/wh"
)

// handleKey routes a key press. Global rules run first, then the
// focused section's handler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.section == SectionCommand {
		return m.handleCommandKey(msg)
	}

	if key.Matches(msg, m.keys.Escape) {
		// Detail owns its own Escape: back to where it was opened from.
		if m.section == SectionDetail {
			m.leaveDetail()
			return m, nil
		}
		m.resetSearch()
		return m, nil
	}

	// Typing "/" anywhere outside search jumps straight into the
	// command palette, pre-seeded with the slash.
	if msg.String() == "/" && m.section != SectionSearch {
		m.enterCommand("/")
		return m, textinput.Blink
	}

	switch m.section {
	case SectionSearch:
		return m.handleSearchKey(msg)
	case SectionCategories:
		return m.handleCategoriesKey(msg)
	case SectionProducts:
		return m.handleProductsKey(msg)
	case SectionDetail:
		return m.handleDetailKey(msg)
	case SectionHistory:
		return m.handleHistoryKey(msg)
	case SectionStarred:
		return m.handleStarredKey(msg)
	case SectionProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.searchInput.Value())
		if strings.HasPrefix(value, "/") {
			// Bare slash commands typed into the search box are
			// intercepted by the command dispatcher.
			cmd := m.dispatchCommand(value)
			m.searchInput.SetValue("")
			return m, cmd
		}
		if value == "" {
			return m, nil
		}
		m.query = value
		m.categoryID = ""
		m.categoryName = ""
		m.page = 1
		return m, m.searchCmd(searchModeSubmit, m.query, "", 1)

	case key.Matches(msg, m.keys.Down):
		if m.result == nil {
			return m, nil
		}
		if len(m.result.Categories) > 0 {
			m.focusSection(SectionCategories)
		} else if len(m.result.Items) > 0 {
			m.focusSection(SectionProducts)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleCategoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The list is prefixed with a synthetic "All Categories" row.
	length := m.categoryCount()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.categoryIndex > 0 {
			m.categoryIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.categoryIndex < length-1 {
			m.categoryIndex++
		}
	case key.Matches(msg, m.keys.Left):
		m.focusSection(SectionSearch)
	case key.Matches(msg, m.keys.Confirm):
		return m, m.selectCategory(searchModeEnter)
	case key.Matches(msg, m.keys.Right):
		return m, m.selectCategory(searchModeDrill)
	}
	return m, nil
}

// selectCategory issues a page-1 filtered search for the selected
// category row. Index 0 is the synthetic "all" entry, which clears the
// filter.
func (m *Model) selectCategory(mode searchMode) tea.Cmd {
	if m.result == nil {
		return nil
	}
	if m.categoryIndex == 0 {
		m.categoryID = ""
		m.categoryName = ""
	} else {
		idx := m.categoryIndex - 1
		if idx >= len(m.result.Categories) {
			return nil
		}
		m.categoryID = m.result.Categories[idx].ID
		m.categoryName = m.result.Categories[idx].Name
	}
	m.page = 1
	return m.searchCmd(mode, m.query, m.categoryID, 1)
}

func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.items()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.productIndex > 0 {
			m.productIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.productIndex < len(items)-1 {
			m.productIndex++
		}
	case key.Matches(msg, m.keys.Left):
		if m.result != nil && len(m.result.Categories) > 0 {
			m.focusSection(SectionCategories)
		} else {
			m.focusSection(SectionSearch)
		}
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Confirm):
		if m.productIndex < len(items) {
			return m, m.openDetail(items[m.productIndex].ID, SectionProducts)
		}
	case key.Matches(msg, m.keys.ToggleStar):
		if m.productIndex < len(items) {
			m.toggleStar(items[m.productIndex])
		}
	case key.Matches(msg, m.keys.NextPage):
		return m, m.searchCmdForPage(m.page + 1)
	case key.Matches(msg, m.keys.PrevPage):
		// Page is clamped at 1; there is nothing before it.
		if m.page > 1 {
			return m, m.searchCmdForPage(m.page - 1)
		}
	}
	return m, nil
}

func (m *Model) searchCmdForPage(page int) tea.Cmd {
	if m.query == "" && m.categoryID == "" {
		return nil
	}
	m.page = page
	return m.searchCmd(searchModePage, m.query, m.categoryID, page)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.leaveDetail()
	case key.Matches(msg, m.keys.ToggleStar):
		if m.detail != nil {
			m.toggleStar(m.detail.Listing)
		}
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.historyIndex > 0 {
			m.historyIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.historyIndex < len(m.historyItems)-1 {
			m.historyIndex++
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.historyIndex < len(m.historyItems) {
			item := m.historyItems[m.historyIndex]
			m.query = item.Query
			m.categoryID = item.CategoryID
			m.categoryName = item.CategoryName
			m.page = 1
			m.searchInput.SetValue(item.Query)
			return m, m.searchCmd(searchModeHistory, m.query, m.categoryID, 1)
		}
	}
	return m, nil
}

func (m Model) handleStarredKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.starredIndex > 0 {
			m.starredIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.starredIndex < len(m.starredItems)-1 {
			m.starredIndex++
		}
	case key.Matches(msg, m.keys.ToggleStar):
		m.unstarSelected()
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Right):
		if m.starredIndex < len(m.starredItems) {
			return m, m.openDetail(m.starredItems[m.starredIndex].ID, SectionStarred)
		}
	}
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Left) {
		m.focusSection(SectionSearch)
	}
	return m, nil
}

// Completion handlers

func (m Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	// A later request is already outstanding; this response is stale.
	if msg.token != m.searchToken {
		return m, nil
	}
	m.busy = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return m, nil
	}

	result := msg.result
	m.result = &result
	m.categoryIndex = 0
	m.productIndex = 0

	if m.history != nil {
		_ = m.history.Add(m.query, m.categoryID, m.categoryName)
	}

	switch msg.mode {
	case searchModeSubmit, searchModeEnter, searchModeHistory, searchModePage:
		m.focusSection(SectionProducts)
	case searchModeDrill:
		// Right drills down; it only commits to the product list once
		// the category tree bottoms out.
		if len(result.Categories) == 0 {
			m.focusSection(SectionProducts)
		} else {
			m.focusSection(SectionCategories)
		}
	}
	return m, nil
}

func (m Model) handleDetailDone(msg detailDoneMsg) (tea.Model, tea.Cmd) {
	if msg.token != m.detailToken {
		return m, nil
	}
	m.busy = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return m, nil
	}

	detail := msg.detail
	m.detail = &detail
	m.contrast = startContrast(m.cfg.AsciiContrast)

	imageURL := detail.ImageURL
	if len(detail.Images) > 0 {
		imageURL = detail.Images[0]
	}
	if imageURL == "" {
		return m, nil
	}
	return m, m.imageCmd(imageURL)
}

func (m Model) handleImageDone(msg imageDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.rotateGen || m.section != SectionDetail {
		return m, nil
	}
	if msg.err != nil {
		// Placeholder is rendered in place of a frame; not fatal.
		m.frame = ""
		m.detailImage = nil
		return m, nil
	}
	m.detailImage = msg.img
	m.frame = ascii.Render(msg.img, m.asciiWidth(), ascii.Ramp(m.contrast))
	if m.cfg.AsciiContrast == config.ContrastRotate {
		return m, rotateCmd(m.rotateGen)
	}
	return m, nil
}

func (m Model) handleRotateTick(msg rotateTickMsg) (tea.Model, tea.Cmd) {
	// Stale ticks from an abandoned image or section are dropped.
	if msg.gen != m.rotateGen || m.section != SectionDetail || m.detailImage == nil {
		return m, nil
	}
	if m.cfg.AsciiContrast != config.ContrastRotate {
		return m, nil
	}
	m.contrast = ascii.NextContrast(m.contrast)
	m.frame = ascii.Render(m.detailImage, m.asciiWidth(), ascii.Ramp(m.contrast))
	return m, rotateCmd(m.rotateGen)
}

// Transitions and shared mutations

// focusSection hands keyboard focus to a section, managing the text
// inputs' focus state.
func (m *Model) focusSection(section Section) {
	m.section = section
	if section == SectionSearch {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
	if section == SectionCommand {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}
}

func (m *Model) enterCommand(seed string) {
	m.commandInput.SetValue(seed)
	m.commandInput.CursorEnd()
	m.focusSection(SectionCommand)
}

// openDetail transitions to the detail section, remembering where to
// return, and kicks off the fetch.
func (m *Model) openDetail(adID string, from Section) tea.Cmd {
	m.returnSection = from
	m.detail = nil
	m.stopRotation()
	m.focusSection(SectionDetail)
	return m.detailCmd(adID)
}

// leaveDetail returns to the section the detail was opened from and
// releases the loaded detail plus any pending work: advancing the
// detail token orphans an in-flight fetch so a late response cannot
// repopulate the abandoned view.
func (m *Model) leaveDetail() {
	m.detail = nil
	m.detailToken++
	m.busy = false
	m.stopRotation()
	m.focusSection(m.returnSection)
}

// stopRotation orphans any in-flight image fetch and pending rotation
// tick by advancing the generation counter.
func (m *Model) stopRotation() {
	m.rotateGen++
	m.frame = ""
	m.detailImage = nil
}

// resetSearch clears the active search wholesale and returns focus to
// the search box.
func (m *Model) resetSearch() {
	m.result = nil
	m.query = ""
	m.categoryID = ""
	m.categoryName = ""
	m.page = 1
	m.categoryIndex = 0
	m.productIndex = 0
	m.errMsg = ""
	m.detail = nil
	m.stopRotation()
	m.searchInput.SetValue("")
	m.focusSection(SectionSearch)
}

func (m *Model) toggleStar(item wh.Listing) {
	if m.stars == nil {
		return
	}
	starred, err := m.stars.Toggle(item)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if starred {
		m.starredIDs[item.ID] = true
	} else {
		delete(m.starredIDs, item.ID)
	}
}

// unstarSelected removes the selected starred item from both the
// in-memory list and the store, re-clamping the cursor when the list
// shrinks past it.
func (m *Model) unstarSelected() {
	if m.starredIndex >= len(m.starredItems) {
		return
	}
	item := m.starredItems[m.starredIndex]
	if m.stars != nil {
		if _, err := m.stars.Toggle(item.Listing); err != nil {
			m.errMsg = err.Error()
			return
		}
	}
	delete(m.starredIDs, item.ID)
	m.starredItems = append(m.starredItems[:m.starredIndex], m.starredItems[m.starredIndex+1:]...)
	if m.starredIndex > len(m.starredItems)-1 {
		m.starredIndex = max(0, len(m.starredItems)-1)
	}
}

// Selection helpers

func (m Model) items() []wh.Listing {
	if m.result == nil {
		return nil
	}
	return m.result.Items
}

func (m Model) categoryCount() int {
	if m.result == nil || len(m.result.Categories) == 0 {
		return 0
	}
	return len(m.result.Categories) + 1
}

// asciiWidth resolves the configured rendering width, falling back to
// the live terminal width for "auto".
func (m Model) asciiWidth() int {
	if m.cfg.AsciiWidth != config.WidthAuto {
		return m.cfg.AsciiWidth
	}
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	if w > 120 {
		w = 120
	}
	return w
}
