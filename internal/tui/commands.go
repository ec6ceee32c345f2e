package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bm-popup/internal/browser"
	"github.com/nikbrunner/bm-popup/internal/logging/events"
	"github.com/nikbrunner/bm-popup/internal/messaging"
	"github.com/nikbrunner/bm-popup/internal/model"
	"github.com/nikbrunner/bm-popup/internal/popup"
	"github.com/nikbrunner/bm-popup/internal/prefs"
)

// errPanic wraps a recovered panic value so it can flow as an error.
var errPanic = errors.New("recovered panic")

// safeCmdWithPanic wraps an async operation with panic recovery.
// The errMsg function converts a panic value into the appropriate message type.
func safeCmdWithPanic(fn func() tea.Msg, errMsg func(any) tea.Msg) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = errMsg(r)
			}
		}()
		return fn()
	}
}

func panicError(r any) error {
	return fmt.Errorf("%w: %v", errPanic, r)
}

func (d Deps) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.Config.RequestTimeout())
}

// decideViewCmd reads the token and the active tab, then picks the view.
func decideViewCmd(d Deps) tea.Cmd {
	return safeCmdWithPanic(
		func() tea.Msg {
			token, err := prefs.Token(d.Prefs)
			if err != nil {
				return viewDecidedMsg{err: err}
			}
			if token == "" {
				return viewDecidedMsg{view: popup.ViewSetup}
			}

			ctx, cancel := d.requestContext()
			defer cancel()

			tab, err := d.Host.ActiveTab(ctx)
			if err != nil && !errors.Is(err, browser.ErrNoTab) {
				return viewDecidedMsg{err: err}
			}
			return viewDecidedMsg{view: popup.DecideView(token, tab), tab: tab}
		},
		func(r any) tea.Msg { return panicMsg{value: r} },
	)
}

// loadSnapshotCmd extracts page metadata, falling back to tab metadata on any failure.
func loadSnapshotCmd(d Deps, tab model.Tab) tea.Cmd {
	fallback := func(err error) tea.Msg {
		events.Save.SnapshotFallback(tab.URL, err)
		return snapshotLoadedMsg{snapshot: model.FallbackSnapshot(tab)}
	}
	return safeCmdWithPanic(
		func() tea.Msg {
			ctx, cancel := d.requestContext()
			defer cancel()

			snapshot, err := d.Host.Snapshot(ctx, tab)
			if err != nil {
				return fallback(err)
			}
			if snapshot.URL == "" {
				snapshot.URL = tab.URL
			}
			if snapshot.Title == "" {
				snapshot.Title = tab.Title
			}
			return snapshotLoadedMsg{snapshot: snapshot}
		},
		func(r any) tea.Msg { return fallback(panicError(r)) },
	)
}

// loadTagsCmd fetches the vocabulary. Any failure yields an empty one.
func loadTagsCmd(d Deps) tea.Cmd {
	empty := func(err error) tea.Msg {
		events.Save.TagsFailed(err)
		return tagsLoadedMsg{tags: []string{}}
	}
	return safeCmdWithPanic(
		func() tea.Msg {
			ctx, cancel := d.requestContext()
			defer cancel()

			resp, err := d.Router.Send(ctx, messaging.TagsRequest())
			if err != nil {
				return empty(err)
			}
			if !resp.Success {
				return empty(fmt.Errorf("tags request failed with status %d", resp.Status))
			}
			return tagsLoadedMsg{tags: model.TagNames(resp.Data.Tags)}
		},
		func(r any) tea.Msg { return empty(panicError(r)) },
	)
}

// loadPrefsCmd reads the stored default and last-used tag lists.
func loadPrefsCmd(d Deps) tea.Cmd {
	return safeCmdWithPanic(
		func() tea.Msg {
			defaults, err := prefs.Tags(d.Prefs, prefs.KeyDefaultTags)
			if err != nil {
				events.Save.PrefsFailed(err)
				defaults = []string{}
			}
			lastUsed, err := prefs.Tags(d.Prefs, prefs.KeyLastUsedTags)
			if err != nil {
				events.Save.PrefsFailed(err)
				lastUsed = []string{}
			}
			return prefsLoadedMsg{defaultTags: defaults, lastUsedTags: lastUsed}
		},
		func(r any) tea.Msg {
			events.Save.PrefsFailed(panicError(r))
			return prefsLoadedMsg{defaultTags: []string{}, lastUsedTags: []string{}}
		},
	)
}

func saveCmd(d Deps, draft model.BookmarkDraft) tea.Cmd {
	return safeCmdWithPanic(
		func() tea.Msg {
			ctx, cancel := d.requestContext()
			defer cancel()

			resp, err := d.Router.Send(ctx, messaging.CreateRequest(draft))
			return saveResultMsg{resp: resp, err: err, tags: draft.Tags}
		},
		func(r any) tea.Msg { return saveResultMsg{err: panicError(r), tags: draft.Tags} },
	)
}

func persistLastUsedCmd(d Deps, tags []string) tea.Cmd {
	return safeCmdWithPanic(
		func() tea.Msg {
			return lastUsedSavedMsg{err: prefs.SetTags(d.Prefs, prefs.KeyLastUsedTags, tags)}
		},
		func(r any) tea.Msg { return lastUsedSavedMsg{err: panicError(r)} },
	)
}

func searchCmd(d Deps, dispatch popup.Dispatch, limit int) tea.Cmd {
	return safeCmdWithPanic(
		func() tea.Msg {
			ctx, cancel := d.requestContext()
			defer cancel()

			req := messaging.SearchRequest(dispatch.Query, dispatch.Offset, limit)
			resp, err := d.Router.Send(ctx, req)
			return searchResultMsg{dispatch: dispatch, resp: resp, err: err}
		},
		func(r any) tea.Msg { return searchResultMsg{dispatch: dispatch, err: panicError(r)} },
	)
}

func searchDebounceCmd(id int, wait time.Duration) tea.Cmd {
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return searchDebounceMsg{debounceID: id}
	})
}

func openTabCmd(d Deps, url string) tea.Cmd {
	return safeCmdWithPanic(
		func() tea.Msg {
			events.View.OpenTab(url)
			ctx, cancel := d.requestContext()
			defer cancel()
			return tabOpenedMsg{url: url, err: d.Host.OpenTab(ctx, url)}
		},
		func(r any) tea.Msg { return tabOpenedMsg{url: url, err: panicError(r)} },
	)
}

func copyCmd(d Deps, url string) tea.Cmd {
	return safeCmdWithPanic(
		func() tea.Msg {
			return copiedMsg{url: url, err: d.Clipboard(url)}
		},
		func(r any) tea.Msg { return copiedMsg{url: url, err: panicError(r)} },
	)
}
