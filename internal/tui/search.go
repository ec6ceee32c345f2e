package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bm-popup/internal/logging/events"
	"github.com/nikbrunner/bm-popup/internal/model"
	"github.com/nikbrunner/bm-popup/internal/popup"
	"github.com/nikbrunner/bm-popup/internal/tui/layout"
)

// SearchView searches saved bookmarks as the user types.
type SearchView struct {
	deps         Deps
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	input   textinput.Model
	session *popup.SearchSession

	// debounceID is bumped on every edit; only the matching tick dispatches.
	debounceID int

	// cursor indexes the rows: items first, then the load-more row.
	cursor int

	status popup.Status
}

func newSearchView(deps Deps, keys KeyMap, styles Styles, cfg layout.LayoutConfig) SearchView {
	input := textinput.New()
	input.Placeholder = "Search bookmarks"
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Prompt = "/ "
	input.Focus()

	return SearchView{
		deps:         deps,
		keys:         keys,
		styles:       styles,
		layoutConfig: cfg,
		input:        input,
		session:      popup.NewSearchSession(),
	}
}

// Init lists the most recent bookmarks with an empty query.
func (s SearchView) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, s.dispatch("", false))
}

// Session exposes the search state.
func (s SearchView) Session() *popup.SearchSession {
	return s.session
}

// Query returns the search input value.
func (s SearchView) Query() string {
	return s.input.Value()
}

// Cursor returns the selected row.
func (s SearchView) Cursor() int {
	return s.cursor
}

// Status returns the current status line.
func (s SearchView) Status() popup.Status {
	return s.status
}

func (s SearchView) rowCount() int {
	n := len(s.session.Items)
	if s.session.ShowLoadMore() {
		n++
	}
	return n
}

func (s SearchView) onLoadMoreRow() bool {
	return s.session.ShowLoadMore() && s.cursor == len(s.session.Items)
}

func (s SearchView) selectedItem() (model.ResultItem, bool) {
	if s.cursor < 0 || s.cursor >= len(s.session.Items) {
		return model.ResultItem{}, false
	}
	return s.session.Items[s.cursor], true
}

func (s SearchView) dispatch(query string, appendMode bool) tea.Cmd {
	d := s.session.Begin(query, appendMode)
	events.Search.Dispatch(d.Generation, d.Query, d.Offset, d.Append)
	return searchCmd(s.deps, d, s.deps.Config.PageSize)
}

// Update handles messages for the search view.
func (s SearchView) Update(msg tea.Msg) (SearchView, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDebounceMsg:
		if msg.debounceID != s.debounceID {
			return s, nil
		}
		return s, s.dispatch(s.input.Value(), false)

	case searchResultMsg:
		return s.handleResult(msg), nil

	case tabOpenedMsg:
		if msg.err != nil {
			s.status = popup.Status{Kind: popup.StatusError, Message: "Could not open " + msg.url}
		}
		return s, nil

	case copiedMsg:
		events.Search.Copy(msg.url, msg.err)
		if msg.err != nil {
			s.status = popup.Status{Kind: popup.StatusError, Message: "Could not copy URL"}
		} else {
			s.status = popup.Status{Kind: popup.StatusSuccess, Message: "Copied URL"}
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s SearchView) handleKey(msg tea.KeyMsg) (SearchView, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil

	case key.Matches(msg, s.keys.Down):
		if s.cursor < s.rowCount()-1 {
			s.cursor++
		}
		return s, nil

	case key.Matches(msg, s.keys.Select):
		if s.onLoadMoreRow() {
			if !s.session.CanLoadMore() {
				return s, nil
			}
			return s, s.dispatch("", true)
		}
		if item, ok := s.selectedItem(); ok {
			events.Search.Open(item.URL)
			return s, openTabCmd(s.deps, item.URL)
		}
		return s, nil

	case key.Matches(msg, s.keys.YankURL):
		if item, ok := s.selectedItem(); ok {
			return s, copyCmd(s.deps, item.URL)
		}
		return s, nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() == before {
		return s, cmd
	}

	s.debounceID++
	s.status = popup.Status{}
	events.Search.Debounce(s.debounceID, s.input.Value())
	return s, tea.Batch(cmd, searchDebounceCmd(s.debounceID, s.deps.Config.Debounce()))
}

func (s SearchView) handleResult(msg searchResultMsg) SearchView {
	d := msg.dispatch
	if !s.session.IsLive(d.Generation) {
		events.Search.Stale(d.Generation, s.session.Generation())
	}

	switch {
	case msg.err != nil:
		events.Search.Failed(d.Generation, 0, msg.err)
		s.fail(d, popup.ConnectivityMessage)

	case !msg.resp.Success:
		events.Search.Failed(d.Generation, msg.resp.Status, nil)
		s.fail(d, popup.SearchErrorMessage(msg.resp.Status))

	default:
		if s.session.Accept(d, msg.resp.Data.Items, msg.resp.Data.HasMore) {
			events.Search.Results(d.Generation, len(msg.resp.Data.Items), msg.resp.Data.HasMore)
			s.status = popup.Status{}
			if !d.Append {
				s.cursor = 0
			}
		}
	}

	if s.cursor >= s.rowCount() {
		s.cursor = s.rowCount() - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	return s
}

func (s *SearchView) fail(d popup.Dispatch, message string) {
	if !s.session.Fail(d, message) {
		return
	}
	if d.Append {
		s.status = popup.Status{Kind: popup.StatusError, Message: message}
		return
	}
	s.cursor = 0
}

// View renders the search view at the given size.
func (s SearchView) View(width, height int) string {
	lines := []string{
		s.styles.Title.Render("Search bookmarks"),
		s.input.View(),
		"",
	}

	switch {
	case s.session.Err != "":
		lines = append(lines, s.styles.Error.Render(s.session.Err))
	case s.session.EmptyMessage() != "":
		lines = append(lines, s.styles.Empty.Render(s.session.EmptyMessage()))
	case len(s.session.Items) == 0 && s.session.Loading():
		lines = append(lines, s.styles.Empty.Render("Searching..."))
	default:
		lines = append(lines, s.renderResults(width, height)...)
	}

	if line := renderStatus(s.styles, s.status); line != "" {
		lines = append(lines, "", line)
	}
	lines = append(lines, "", renderHints(s.styles, searchHints(len(s.session.Items) > 0)))
	return joinLines(lines)
}

func (s SearchView) renderResults(width, height int) []string {
	maxVisible := layout.CalculateVisibleResults(height, s.layoutConfig.Popup)
	start, end := layout.CalculateVisibleListItems(maxVisible, s.cursor, s.rowCount())

	now := s.deps.Now()
	var lines []string
	for i := start; i < end; i++ {
		if i == len(s.session.Items) {
			lines = append(lines, s.renderLoadMore(i == s.cursor))
			continue
		}
		lines = append(lines, s.renderItem(s.session.Items[i], i == s.cursor, width, now)...)
	}
	return lines
}

func (s SearchView) renderItem(item model.ResultItem, selected bool, width int, now time.Time) []string {
	date := popup.FormatDate(item.CreatedAt, now)

	// Leave room for the item padding and the date column
	titleWidth := width - 1 - len(date) - 1
	title, _ := layout.TruncateText(item.DisplayTitle(), titleWidth, s.layoutConfig.Text)
	gap := titleWidth - layout.VisibleLength(title)
	if gap < 0 {
		gap = 0
	}

	style := s.styles.Item
	if selected {
		style = s.styles.ItemSelected
	}
	first := style.Render(title + strings.Repeat(" ", gap+1) + date)

	detail := item.URL
	if len(item.Tags) > 0 {
		detail += "  #" + strings.Join(item.Tags, " #")
	}
	detail, _ = layout.TruncateText(detail, width-1, s.layoutConfig.Text)
	second := s.styles.Item.Inherit(s.styles.Tag).Render(detail)

	return []string{first, second}
}

func (s SearchView) renderLoadMore(selected bool) string {
	label := "Load more"
	style := s.styles.Button
	if s.session.Loading() {
		label = "Loading..."
		style = s.styles.ButtonDisabled
	} else if selected {
		style = s.styles.ButtonActive
	}
	return style.Render("[ " + label + " ]")
}
