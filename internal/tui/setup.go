package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bm-popup/internal/popup"
)

// SetupView asks the user to configure an API token.
type SetupView struct {
	deps   Deps
	keys   KeyMap
	styles Styles

	status popup.Status
}

func newSetupView(deps Deps, keys KeyMap, styles Styles) SetupView {
	return SetupView{deps: deps, keys: keys, styles: styles}
}

// Status returns the current status line.
func (s SetupView) Status() popup.Status {
	return s.status
}

// Init implements the view lifecycle; setup needs no data.
func (s SetupView) Init() tea.Cmd {
	return nil
}

// Update handles messages for the setup view.
func (s SetupView) Update(msg tea.Msg) (SetupView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, s.keys.Select) {
			return s, openTabCmd(s.deps, s.deps.Config.SettingsURL())
		}

	case tabOpenedMsg:
		if msg.err != nil {
			s.status = popup.Status{
				Kind:    popup.StatusError,
				Message: "Could not open settings: " + msg.err.Error(),
			}
			return s, nil
		}
		s.status = popup.Status{Kind: popup.StatusInfo, Message: "Settings opened in your browser"}
	}
	return s, nil
}

// View renders the setup view at the given width.
func (s SetupView) View(width int) string {
	lines := []string{
		s.styles.Title.Render("Connect your account"),
		"",
		"Add an API token to start saving pages.",
		"",
		s.styles.ButtonActive.Render(" Open settings "),
		"",
		s.styles.URL.Render("or run: bm-popup token set <token>"),
	}
	if line := renderStatus(s.styles, s.status); line != "" {
		lines = append(lines, "", line)
	}
	lines = append(lines, "", renderHints(s.styles, setupHints()))
	return joinLines(lines)
}
