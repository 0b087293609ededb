// Package ui provides the Bubble Tea TUI for the willhaben client.
package ui

import (
	"context"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devskale/willhaben-agent/internal/ascii"
	"github.com/devskale/willhaben-agent/internal/config"
	"github.com/devskale/willhaben-agent/internal/store"
	"github.com/devskale/willhaben-agent/internal/wh"
)

// Section identifies the UI region that owns keyboard focus. Exactly
// one section is focused at a time.
type Section int

const (
	SectionSearch Section = iota
	SectionCategories
	SectionProducts
	SectionDetail
	SectionCommand
	SectionHistory
	SectionStarred
	SectionProfile
)

// rotateInterval is the cadence of the contrast-rotation effect.
const rotateInterval = 1200 * time.Millisecond

// Backend performs the network-bound collaborator calls. *wh.Client
// implements it; tests substitute a stub.
type Backend interface {
	Search(ctx context.Context, query, categoryID string, page, locationID int) (wh.SearchResult, error)
	FetchDetail(ctx context.Context, adID string) (wh.ListingDetail, error)
	FetchProfile(ctx context.Context) (*wh.Profile, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Backend    Backend
	Stars      *store.Stars
	History    *store.History
	Config     config.UserConfig
	ConfigPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx     context.Context
	backend Backend
	stars   *store.Stars
	history *store.History
	cfg     config.UserConfig
	cfgPath string

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	// Navigation state
	section       Section
	returnSection Section // where leaving detail goes back to

	// Inputs
	searchInput  textinput.Model
	commandInput textinput.Model
	spin         spinner.Model

	// Active search
	result       *wh.SearchResult
	query        string
	categoryID   string
	categoryName string
	page         int

	// Per-section selection cursors
	categoryIndex int
	productIndex  int
	historyIndex  int
	starredIndex  int

	historyItems []store.HistoryItem
	starredItems []store.StarredItem
	starredIDs   map[string]bool

	// Detail state
	detail      *wh.ListingDetail
	detailImage image.Image
	frame       string
	contrast    ascii.Contrast
	rotateGen   int // bumping this orphans pending image fetches and ticks

	profile       *wh.Profile
	profileLoaded bool

	// In-flight request tracking; last response with a current token wins.
	busy        bool
	errMsg      string
	searchToken int
	detailToken int
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	search := textinput.New()
	search.Placeholder = "Type keyword and press Enter..."
	search.Prompt = ""
	search.Focus()

	command := textinput.New()
	command.Prompt = ""

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:          ctx,
		backend:      opts.Backend,
		stars:        opts.Stars,
		history:      opts.History,
		cfg:          opts.Config,
		cfgPath:      opts.ConfigPath,
		theme:        DefaultTheme(),
		keys:         DefaultKeyMap(),
		section:      SectionSearch,
		searchInput:  search,
		commandInput: command,
		spin:         spin,
		page:         1,
		contrast:     startContrast(opts.Config.AsciiContrast),
		starredIDs:   starIDs(opts.Stars),
	}
}

func starIDs(stars *store.Stars) map[string]bool {
	if stars == nil {
		return map[string]bool{}
	}
	return stars.IDs()
}

func startContrast(mode string) ascii.Contrast {
	if mode == config.ContrastRotate {
		return ascii.ContrastLow
	}
	return ascii.Contrast(mode)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textinput.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case searchDoneMsg:
		return m.handleSearchDone(msg)

	case detailDoneMsg:
		return m.handleDetailDone(msg)

	case imageDoneMsg:
		return m.handleImageDone(msg)

	case rotateTickMsg:
		return m.handleRotateTick(msg)

	case profileDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.profileLoaded = true
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.section {
	case SectionDetail:
		return m.renderDetail()
	case SectionHistory:
		return m.renderHistory()
	case SectionStarred:
		return m.renderStarred()
	case SectionProfile:
		return m.renderProfile()
	default:
		// search, categories, products and command share the main
		// search layout; command renders the palette beneath it.
		return m.renderSearchLayout()
	}
}

// searchMode records why a search was issued, deciding where focus
// lands when the response arrives.
type searchMode int

const (
	searchModeSubmit  searchMode = iota // search box submit: focus products
	searchModeEnter                     // category Enter: always focus products
	searchModeDrill                     // category Right: focus products only on leaf
	searchModePage                      // pagination: stay on products
	searchModeHistory                   // history replay: focus products
)

// Messages

type searchDoneMsg struct {
	token  int
	mode   searchMode
	result wh.SearchResult
	err    error
}

type detailDoneMsg struct {
	token  int
	detail wh.ListingDetail
	err    error
}

type imageDoneMsg struct {
	gen int
	img image.Image
	err error
}

type rotateTickMsg struct {
	gen int
}

type profileDoneMsg struct {
	profile *wh.Profile
	err     error
}

// Commands

func (m *Model) searchCmd(mode searchMode, query, categoryID string, page int) tea.Cmd {
	m.searchToken++
	token := m.searchToken
	m.busy = true
	m.errMsg = ""
	ctx := m.ctx
	backend := m.backend
	location := m.cfg.PreferredLocation
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		result, err := backend.Search(ctx, query, categoryID, page, location)
		return searchDoneMsg{token: token, mode: mode, result: result, err: err}
	})
}

func (m *Model) detailCmd(adID string) tea.Cmd {
	m.detailToken++
	token := m.detailToken
	m.busy = true
	m.errMsg = ""
	ctx := m.ctx
	backend := m.backend
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		detail, err := backend.FetchDetail(ctx, adID)
		return detailDoneMsg{token: token, detail: detail, err: err}
	})
}

func (m *Model) imageCmd(url string) tea.Cmd {
	gen := m.rotateGen
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		data, err := backend.FetchImage(ctx, url)
		if err != nil {
			return imageDoneMsg{gen: gen, err: err}
		}
		img, err := ascii.Decode(data)
		return imageDoneMsg{gen: gen, img: img, err: err}
	}
}

func (m *Model) profileCmd() tea.Cmd {
	m.busy = true
	m.errMsg = ""
	ctx := m.ctx
	backend := m.backend
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		profile, err := backend.FetchProfile(ctx)
		return profileDoneMsg{profile: profile, err: err}
	})
}

func rotateCmd(gen int) tea.Cmd {
	return tea.Tick(rotateInterval, func(time.Time) tea.Msg {
		return rotateTickMsg{gen: gen}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
