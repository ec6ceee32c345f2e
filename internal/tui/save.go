package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bm-popup/internal/logging"
	"github.com/nikbrunner/bm-popup/internal/logging/events"
	"github.com/nikbrunner/bm-popup/internal/model"
	"github.com/nikbrunner/bm-popup/internal/popup"
	"github.com/nikbrunner/bm-popup/internal/tui/layout"
)

// saveFocus is the focused element of the save form.
type saveFocus int

const (
	focusTitle saveFocus = iota
	focusDescription
	focusTags
	focusChips
	focusSubmit
	saveFocusCount
)

// SaveView is the save form for the active page.
type SaveView struct {
	deps         Deps
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	tab      model.Tab
	snapshot model.PageSnapshot

	title       textinput.Model
	description textinput.Model
	tagInput    textinput.Model
	spinner     spinner.Model

	focus      saveFocus
	chipCursor int

	vocab     []string
	selection *popup.TagSelection

	// The form is shown once all three initial loads have settled.
	snapshotDone bool
	tagsDone     bool
	prefsDone    bool

	saving bool
	status popup.Status
}

func newSaveView(deps Deps, keys KeyMap, styles Styles, cfg layout.LayoutConfig, tab model.Tab) SaveView {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = cfg.Input.TitleCharLimit
	title.Prompt = ""

	description := textinput.New()
	description.Placeholder = "Description"
	description.CharLimit = cfg.Input.DescriptionCharLimit
	description.Prompt = ""

	tagInput := textinput.New()
	tagInput.Placeholder = "Filter or add a tag"
	tagInput.CharLimit = cfg.Input.TagCharLimit
	tagInput.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Info

	return SaveView{
		deps:         deps,
		keys:         keys,
		styles:       styles,
		layoutConfig: cfg,
		tab:          tab,
		snapshot:     model.FallbackSnapshot(tab),
		title:        title,
		description:  description,
		tagInput:     tagInput,
		spinner:      sp,
		vocab:        []string{},
		selection:    popup.NewTagSelection(nil, nil),
	}
}

// Init starts the three independent loads and the spinner.
func (s SaveView) Init() tea.Cmd {
	return tea.Batch(
		s.spinner.Tick,
		loadSnapshotCmd(s.deps, s.tab),
		loadTagsCmd(s.deps),
		loadPrefsCmd(s.deps),
	)
}

// Ready reports whether every initial load has settled.
func (s SaveView) Ready() bool {
	return s.snapshotDone && s.tagsDone && s.prefsDone
}

// Saving reports whether a create request is in flight.
func (s SaveView) Saving() bool {
	return s.saving
}

// Status returns the current status line.
func (s SaveView) Status() popup.Status {
	return s.status
}

// Title returns the title field value.
func (s SaveView) Title() string {
	return s.title.Value()
}

// Description returns the description field value.
func (s SaveView) Description() string {
	return s.description.Value()
}

// TagInput returns the tag input value.
func (s SaveView) TagInput() string {
	return s.tagInput.Value()
}

// SelectedTags returns the selected tags in selection order.
func (s SaveView) SelectedTags() []string {
	return s.selection.Selected()
}

// VisibleTags returns the chips currently offered.
func (s SaveView) VisibleTags() popup.TagList {
	return s.selection.Visible(s.vocab, s.deps.Config.VisibleTags)
}

// Update handles messages for the save view.
func (s SaveView) Update(msg tea.Msg) (SaveView, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.Ready() && !s.saving {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case snapshotLoadedMsg:
		if s.snapshotDone {
			return s, nil
		}
		s.snapshotDone = true
		s.snapshot = msg.snapshot
		s.title.SetValue(model.Truncate(msg.snapshot.Title, model.MaxTitleLength))
		s.description.SetValue(model.Truncate(msg.snapshot.Description, model.MaxDescriptionLength))
		cmd := s.maybeReady()
		return s, cmd

	case tagsLoadedMsg:
		if s.tagsDone {
			return s, nil
		}
		s.tagsDone = true
		s.vocab = msg.tags
		cmd := s.maybeReady()
		return s, cmd

	case prefsLoadedMsg:
		if s.prefsDone {
			return s, nil
		}
		s.prefsDone = true
		s.selection = popup.NewTagSelection(msg.defaultTags, msg.lastUsedTags)
		cmd := s.maybeReady()
		return s, cmd

	case saveResultMsg:
		return s.handleSaveResult(msg)

	case lastUsedSavedMsg:
		if msg.err != nil {
			logging.Warn("save.last_used", msg.err, nil)
		}
		return s, nil

	case tabOpenedMsg:
		if msg.err != nil {
			logging.Warn("save.open_link", msg.err, map[string]interface{}{"url": msg.url})
		}
		return s, nil

	case tea.KeyMsg:
		if !s.Ready() {
			return s, nil
		}
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SaveView) maybeReady() tea.Cmd {
	if !s.Ready() {
		return nil
	}
	events.Save.Ready(len(s.vocab), len(s.selection.Selected()))
	s.setFocus(focusTitle)
	return textinput.Blink
}

func (s SaveView) handleKey(msg tea.KeyMsg) (SaveView, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Submit):
		return s.submit()

	case key.Matches(msg, s.keys.OpenLink):
		if s.status.Link != "" {
			return s, openTabCmd(s.deps, s.status.Link)
		}
		return s, nil

	case key.Matches(msg, s.keys.Next):
		s.setFocus((s.focus + 1) % saveFocusCount)
		return s, nil

	case key.Matches(msg, s.keys.Prev):
		s.setFocus((s.focus + saveFocusCount - 1) % saveFocusCount)
		return s, nil
	}

	switch s.focus {
	case focusTitle, focusDescription:
		if key.Matches(msg, s.keys.Select) {
			s.setFocus(s.focus + 1)
			return s, nil
		}
		var cmd tea.Cmd
		if s.focus == focusTitle {
			s.title, cmd = s.title.Update(msg)
		} else {
			s.description, cmd = s.description.Update(msg)
		}
		return s, cmd

	case focusTags:
		if key.Matches(msg, s.keys.Select) {
			if tag := s.selection.Commit(s.tagInput.Value()); tag != "" {
				events.Save.Commit(tag)
			}
			s.tagInput.SetValue("")
			s.chipCursor = 0
			return s, nil
		}
		var cmd tea.Cmd
		s.tagInput, cmd = s.tagInput.Update(msg)
		if s.selection.Filter != s.tagInput.Value() {
			s.selection.Filter = s.tagInput.Value()
			s.chipCursor = 0
		}
		return s, cmd

	case focusChips:
		return s.handleChipKey(msg)

	case focusSubmit:
		if key.Matches(msg, s.keys.Select) {
			return s.submit()
		}
	}

	return s, nil
}

func (s SaveView) handleChipKey(msg tea.KeyMsg) (SaveView, tea.Cmd) {
	visible := s.VisibleTags()
	count := len(visible.Tags)
	if visible.ShowAll {
		count++
	}

	switch {
	case key.Matches(msg, s.keys.Left):
		if s.chipCursor > 0 {
			s.chipCursor--
		}

	case key.Matches(msg, s.keys.Right):
		if s.chipCursor < count-1 {
			s.chipCursor++
		}

	case key.Matches(msg, s.keys.Toggle), key.Matches(msg, s.keys.Select):
		if s.chipCursor >= count {
			return s, nil
		}
		if s.chipCursor == len(visible.Tags) {
			s.selection.Expand()
			events.Save.Expand(len(s.vocab))
			return s, nil
		}
		tag := visible.Tags[s.chipCursor]
		events.Save.Toggle(tag, s.selection.Toggle(tag))
		s.tagInput.SetValue("")
		s.clampChipCursor()
	}
	return s, nil
}

// clampChipCursor keeps the cursor on an existing chip after the list changed.
func (s *SaveView) clampChipCursor() {
	visible := s.VisibleTags()
	count := len(visible.Tags)
	if visible.ShowAll {
		count++
	}
	if s.chipCursor >= count {
		s.chipCursor = count - 1
	}
	if s.chipCursor < 0 {
		s.chipCursor = 0
	}
}

func (s *SaveView) setFocus(f saveFocus) {
	s.focus = f
	s.title.Blur()
	s.description.Blur()
	s.tagInput.Blur()
	switch f {
	case focusTitle:
		s.title.Focus()
	case focusDescription:
		s.description.Focus()
	case focusTags:
		s.tagInput.Focus()
	case focusChips:
		s.clampChipCursor()
	}
}

// Draft builds the bookmark that a submit would send.
func (s SaveView) Draft() model.BookmarkDraft {
	draft := model.NewDraft(model.NewDraftParams{
		Snapshot: s.snapshot,
		Tags:     s.selection.Selected(),
	})
	draft.Title = strings.TrimSpace(s.title.Value())
	draft.Description = strings.TrimSpace(s.description.Value())
	return draft.Clamp()
}

func (s SaveView) submit() (SaveView, tea.Cmd) {
	// A saved bookmark is final for this popup.
	if s.saving || !s.Ready() || s.status.Kind == popup.StatusSuccess {
		return s, nil
	}
	s.saving = true
	draft := s.Draft()
	events.Save.Submit(draft.URL, draft.Tags)
	return s, tea.Batch(saveCmd(s.deps, draft), s.spinner.Tick)
}

func (s SaveView) handleSaveResult(msg saveResultMsg) (SaveView, tea.Cmd) {
	s.saving = false

	if msg.err != nil {
		events.Save.TransportError(msg.err)
		s.status = popup.ConnectivityStatus()
		return s, nil
	}

	if !msg.resp.Success {
		s.status = popup.DescribeSaveError(msg.resp, s.links())
		events.Save.Failure(msg.resp.Status, s.status.Message)
		return s, nil
	}

	events.Save.Success(s.snapshot.URL)
	s.status = popup.Status{Kind: popup.StatusSuccess, Message: popup.SavedMessage}
	return s, persistLastUsedCmd(s.deps, msg.tags)
}

func (s SaveView) links() popup.Links {
	cfg := s.deps.Config
	return popup.Links{
		Settings: cfg.SettingsURL(),
		Billing:  cfg.BillingURL(),
		Terms:    cfg.TermsURL(),
		Bookmark: cfg.BookmarkURL,
	}
}

// View renders the save form at the given width.
func (s SaveView) View(width int) string {
	url, _ := layout.TruncateText(s.snapshot.URL, width, s.layoutConfig.Text)
	header := []string{
		s.styles.Title.Render("Save page"),
		s.styles.URL.Render(url),
		"",
	}

	if !s.Ready() {
		return joinLines(append(header,
			s.spinner.View()+" Loading page details...",
			"",
			renderHints(s.styles, HintSet{System: []Hint{{Key: "Esc", Desc: "close"}}}),
		))
	}

	lines := header
	lines = append(lines,
		s.renderLabel("Title", focusTitle),
		s.title.View(),
		s.renderLabel("Description", focusDescription),
		s.description.View(),
		s.renderLabel("Tags", focusTags),
		s.tagInput.View(),
	)
	lines = append(lines, s.renderChips(width)...)

	if selected := s.selection.Selected(); len(selected) > 0 {
		lines = append(lines, s.styles.Tag.Render("Selected: "+strings.Join(selected, ", ")))
	}

	lines = append(lines, "", s.renderButton())
	if line := renderStatus(s.styles, s.status); line != "" {
		lines = append(lines, line)
	}
	lines = append(lines, "", renderHints(s.styles, saveHints(s.focus, s.status.Link != "")))
	return joinLines(lines)
}

func (s SaveView) renderLabel(label string, f saveFocus) string {
	if s.focus == f {
		return s.styles.LabelActive.Render(label)
	}
	return s.styles.Label.Render(label)
}

func (s SaveView) renderChips(width int) []string {
	visible := s.VisibleTags()
	if len(visible.Tags) == 0 && !visible.ShowAll {
		if len(s.vocab) == 0 {
			return []string{s.styles.Empty.Render("No tags yet")}
		}
		return []string{s.styles.Empty.Render("No matching tags, Enter adds it")}
	}

	highlights := popup.MatchHighlights(s.selection.Filter, visible.Tags)
	chips := make([]string, 0, len(visible.Tags)+1)
	for i, tag := range visible.Tags {
		chips = append(chips, s.renderChip(tag, highlights[tag], i))
	}
	if visible.ShowAll {
		label := "+ show all"
		if s.focus == focusChips && s.chipCursor == len(visible.Tags) {
			label = s.styles.ChipCursor.Render(label)
		} else {
			label = s.styles.Label.Render(label)
		}
		chips = append(chips, label)
	}
	return layout.WrapChips(chips, width, " ")
}

func (s SaveView) renderChip(tag string, matched []int, index int) string {
	base := s.styles.Chip
	mark := "○ "
	if s.selection.IsSelected(tag) {
		base = s.styles.ChipSelected
		mark = "● "
	}
	if s.focus == focusChips && s.chipCursor == index {
		base = base.Inherit(s.styles.ChipCursor)
	}

	isMatch := make(map[int]bool, len(matched))
	for _, idx := range matched {
		isMatch[idx] = true
	}

	var b strings.Builder
	b.WriteString(base.Render(mark))
	for i, r := range tag {
		style := base
		if isMatch[i] {
			style = style.Inherit(s.styles.ChipMatch)
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

func (s SaveView) renderButton() string {
	switch {
	case s.saving:
		return s.styles.ButtonDisabled.Render("[ Saving... ]") + " " + s.spinner.View()
	case s.status.Kind == popup.StatusSuccess:
		return s.styles.ButtonDisabled.Render("[ Saved ]")
	case s.focus == focusSubmit:
		return s.styles.ButtonActive.Render("[ Save ]")
	default:
		return s.styles.Button.Render("[ Save ]")
	}
}
