package tui

import (
	"github.com/nikbrunner/bm-popup/internal/messaging"
	"github.com/nikbrunner/bm-popup/internal/model"
	"github.com/nikbrunner/bm-popup/internal/popup"
)

// viewDecidedMsg carries the one-time view decision made on open.
type viewDecidedMsg struct {
	view popup.View
	tab  model.Tab
	err  error
}

// panicMsg reports a recovered panic from an async command.
type panicMsg struct {
	value any
}

type snapshotLoadedMsg struct {
	snapshot model.PageSnapshot
}

type tagsLoadedMsg struct {
	tags []string
}

type prefsLoadedMsg struct {
	defaultTags  []string
	lastUsedTags []string
}

type saveResultMsg struct {
	resp messaging.Response
	err  error
	tags []string
}

type lastUsedSavedMsg struct {
	err error
}

// searchDebounceMsg fires after the quiet period; only the latest id dispatches.
type searchDebounceMsg struct {
	debounceID int
}

type searchResultMsg struct {
	dispatch popup.Dispatch
	resp     messaging.Response
	err      error
}

type tabOpenedMsg struct {
	url string
	err error
}

type copiedMsg struct {
	url string
	err error
}
