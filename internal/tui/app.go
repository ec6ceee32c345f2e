package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bm-popup/internal/browser"
	"github.com/nikbrunner/bm-popup/internal/config"
	"github.com/nikbrunner/bm-popup/internal/logging"
	"github.com/nikbrunner/bm-popup/internal/logging/events"
	"github.com/nikbrunner/bm-popup/internal/messaging"
	"github.com/nikbrunner/bm-popup/internal/popup"
	"github.com/nikbrunner/bm-popup/internal/prefs"
	"github.com/nikbrunner/bm-popup/internal/tui/layout"
)

// Deps are the collaborators the popup talks to.
type Deps struct {
	Prefs     prefs.Store
	Router    messaging.Sender
	Host      browser.Host
	Config    config.Config
	Clipboard func(string) error
	Now       func() time.Time
}

// App is the root bubbletea model. It decides the view once on open and
// then delegates everything to that view.
type App struct {
	deps         Deps
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	view    popup.View
	decided bool
	failure string

	setup  SetupView
	save   SaveView
	search SearchView

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Deps   Deps
	Keys   *KeyMap // optional, uses default if nil
	Styles *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	deps := params.Deps
	if deps.Config == (config.Config{}) {
		deps.Config = config.DefaultConfig()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return App{
		deps:         deps,
		keys:         keys,
		styles:       styles,
		layoutConfig: layout.DefaultConfig(),
		width:        80,
		height:       24,
	}
}

// CurrentView returns the decided view and whether the decision has been made.
func (a App) CurrentView() (popup.View, bool) {
	return a.view, a.decided
}

// Failure returns the message shown when the popup could not start.
func (a App) Failure() string {
	return a.failure
}

// Save returns the save view state.
func (a App) Save() SaveView {
	return a.save
}

// Search returns the search view state.
func (a App) Search() SearchView {
	return a.search
}

// Setup returns the setup view state.
func (a App) Setup() SetupView {
	return a.setup
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return decideViewCmd(a.deps)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}

	case viewDecidedMsg:
		return a.handleViewDecided(msg)

	case panicMsg:
		events.View.Panic(msg.value)
		a.failure = popup.GenericFailure
		return a, nil
	}

	if !a.decided || a.failure != "" {
		return a, nil
	}

	var cmd tea.Cmd
	switch a.view {
	case popup.ViewSetup:
		a.setup, cmd = a.setup.Update(msg)
	case popup.ViewSave:
		a.save, cmd = a.save.Update(msg)
	case popup.ViewSearch:
		a.search, cmd = a.search.Update(msg)
	}
	return a, cmd
}

// handleViewDecided builds the chosen view. Later decisions are ignored:
// the view never changes within a session.
func (a App) handleViewDecided(msg viewDecidedMsg) (tea.Model, tea.Cmd) {
	if a.decided {
		return a, nil
	}
	a.decided = true

	if msg.err != nil {
		events.View.TabQueryFailed(msg.err)
		a.failure = popup.GenericFailure
		return a, nil
	}

	a.view = msg.view
	events.View.Decided(msg.view.String(), msg.tab.URL)
	logging.Info("popup.view", map[string]interface{}{"view": msg.view.String()})

	switch msg.view {
	case popup.ViewSetup:
		a.setup = newSetupView(a.deps, a.keys, a.styles)
		return a, a.setup.Init()
	case popup.ViewSave:
		a.save = newSaveView(a.deps, a.keys, a.styles, a.layoutConfig, msg.tab)
		return a, a.save.Init()
	default:
		a.search = newSearchView(a.deps, a.keys, a.styles, a.layoutConfig)
		return a, a.search.Init()
	}
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
