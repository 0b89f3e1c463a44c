package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"streamdex/internal/catalog"
	"streamdex/internal/engine"
	"streamdex/internal/tui/components"
	"streamdex/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading ApplicationState = iota
	StateBrowsing
	StateLoadFailed
)

// Focus identifies which panel receives keystrokes
type Focus int

const (
	FocusGrid Focus = iota
	FocusSidebar
)

// Layout constants
const (
	SidebarWidth = 30
	HeaderHeight = 2
	FooterHeight = 1

	// Approximate viewport units per terminal cell, used to feed the
	// engine's width-based column derivation.
	defaultCellPx = 8
)

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	focus Focus

	engine *engine.Engine
	loader *catalog.Loader

	keys      KeyMap
	grid      components.Grid
	sidebar   components.Sidebar
	search    components.SearchBar
	sortModal components.SortModal
	spin      spinner.Model

	width  int
	height int
	cellPx int

	showDetail bool
	detail     catalog.MovieRecord

	loadErr error
	logger  *slog.Logger
}

// NewModel creates the top-level TUI model
func NewModel(eng *engine.Engine, loader *catalog.Loader, cellPx int, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if cellPx <= 0 {
		cellPx = defaultCellPx
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	m := Model{
		State:     StateLoading,
		engine:    eng,
		loader:    loader,
		keys:      DefaultKeyMap(),
		grid:      components.NewGrid(),
		sidebar:   components.NewSidebar(eng.Query()),
		search:    components.NewSearchBar(),
		sortModal: components.NewSortModal(),
		spin:      sp,
		cellPx:    cellPx,
		logger:    logger,
	}
	// Restored preferences include the search text; the bar must show it.
	m.search.SetValue(eng.Query().SearchQuery)
	return m
}

// Init starts the spinner and the initial catalog load
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		LoadCatalogCmd(m.loader, m.engine.NextLoadGeneration()),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.Resize(msg.Width * m.cellPx)
		m.layout()
		m.refreshGrid(false)
		return m, nil

	case CatalogLoadedMsg:
		if !m.engine.ApplyCatalog(msg.Records, msg.Generation) {
			return m, nil
		}
		m.State = StateBrowsing
		m.loadErr = nil
		m.sidebar.SetOptions(m.engine.Index().Services(), m.engine.Index().Genres())
		m.sidebar.SyncQuery(m.engine.Query())
		m.refreshGrid(false)
		return m, nil

	case CatalogLoadFailedMsg:
		m.State = StateLoadFailed
		m.loadErr = msg.Err
		m.logger.Error("catalog load failed", "error", msg.Err)
		return m, nil

	case spinner.TickMsg:
		if m.State != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == "ctrl+c" {
		return m, tea.Quit
	}

	// Modal captures everything while visible.
	if m.sortModal.IsVisible() {
		if handled, selection := m.sortModal.HandleKey(keyStr); handled {
			if selection != nil {
				m.engine.SetSort(*selection)
				m.refreshGrid(true)
			}
			return m, nil
		}
	}

	if m.showDetail {
		switch keyStr {
		case "esc", "enter", "q":
			m.showDetail = false
		}
		return m, nil
	}

	// Quit only once no overlay claims the key; "q" closes an open
	// detail pane instead of the application.
	if key.Matches(msg, m.keys.Quit) && !m.search.IsActive() {
		return m, tea.Quit
	}

	if m.State == StateLoadFailed {
		if key.Matches(msg, m.keys.Retry) {
			m.State = StateLoading
			return m, tea.Batch(
				m.spin.Tick,
				LoadCatalogCmd(m.loader, m.engine.NextLoadGeneration()),
			)
		}
		return m, nil
	}

	if m.State != StateBrowsing {
		return m, nil
	}

	// While the search bar is active it owns the keyboard; every edit
	// re-runs the query.
	if m.search.IsActive() {
		switch keyStr {
		case "esc", "enter":
			m.search.Deactivate()
			return m, nil
		}
		cmd := m.search.Update(msg)
		m.engine.SetSearch(m.search.Value())
		m.refreshGrid(false)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.focus = FocusGrid
		m.syncFocus()
		return m, m.search.Activate()
	case key.Matches(msg, m.keys.Sort):
		m.sortModal.Show(m.engine.Query().Sort)
		return m, nil
	case key.Matches(msg, m.keys.Filters):
		if m.focus == FocusSidebar {
			m.focus = FocusGrid
		} else {
			m.focus = FocusSidebar
		}
		m.syncFocus()
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		m.engine.NextPage()
		m.refreshGrid(false)
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		m.engine.PrevPage()
		m.refreshGrid(true)
		return m, nil
	case key.Matches(msg, m.keys.FirstPage):
		m.engine.GoToPage(1)
		m.refreshGrid(false)
		return m, nil
	case key.Matches(msg, m.keys.LastPage):
		m.engine.GoToPage(m.engine.TotalPages())
		m.refreshGrid(false)
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		if m.focus == FocusSidebar {
			m.focus = FocusGrid
			m.syncFocus()
		} else if m.engine.Query().SearchQuery != "" {
			m.search.Clear()
			m.engine.SetSearch("")
			m.refreshGrid(false)
		}
		return m, nil
	}

	if m.focus == FocusSidebar {
		if handled, ev := m.sidebar.HandleKey(keyStr); handled {
			if ev != nil {
				m.applySidebarEvent(*ev)
			}
			return m, nil
		}
		return m, nil
	}

	if handled, ev := m.grid.HandleKey(keyStr); handled {
		switch ev {
		case components.GridNextPage:
			m.engine.NextPage()
			m.refreshGrid(false)
		case components.GridPrevPage:
			m.engine.PrevPage()
			m.refreshGrid(true)
		case components.GridSelect:
			if rec, ok := m.grid.Selected(); ok {
				m.detail = rec
				m.showDetail = true
			}
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) applySidebarEvent(ev components.SidebarEvent) {
	switch {
	case ev.ToggleService != "":
		m.engine.ToggleService(ev.ToggleService)
	case ev.ToggleGenre != "":
		m.engine.ToggleGenre(ev.ToggleGenre)
	case ev.YearRange != nil:
		m.engine.SetYearRange(ev.YearRange.Low, ev.YearRange.High)
	case ev.RatingRange != nil:
		m.engine.SetRatingRange(ev.RatingRange.Low, ev.RatingRange.High)
	case ev.ClearAll:
		m.engine.ClearFilters()
		m.search.Clear()
	}
	m.sidebar.SyncQuery(m.engine.Query())
	m.refreshGrid(false)
}

// layout distributes the window between the panels
func (m *Model) layout() {
	contentHeight := m.height - HeaderHeight - FooterHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.sidebar.SetSize(SidebarWidth, contentHeight)
	gridWidth := m.width - SidebarWidth
	if gridWidth < 20 {
		gridWidth = 20
	}
	m.grid.SetSize(gridWidth, contentHeight)
	m.syncFocus()
}

// refreshGrid pushes the engine's current page into the grid component.
func (m *Model) refreshGrid(keepCursor bool) {
	m.grid.SetPage(
		m.engine.PageItems(),
		m.engine.Columns(),
		m.engine.CurrentPage(),
		m.engine.TotalPages(),
		len(m.engine.View()),
		keepCursor,
	)
}

func (m *Model) syncFocus() {
	m.sidebar.SetFocused(m.focus == FocusSidebar)
	m.grid.SetFocused(m.focus == FocusGrid)
}
