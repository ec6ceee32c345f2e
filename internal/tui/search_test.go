package tui

import (
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bm-popup/internal/messaging"
	"github.com/nikbrunner/bm-popup/internal/model"
	"github.com/nikbrunner/bm-popup/internal/popup"
	"github.com/nikbrunner/bm-popup/internal/prefs"
	"gotest.tools/v3/assert"
)

func newTestSearch(router *fakeRouter, host *fakeHost) SearchView {
	deps := testDeps(router, host, prefs.NewMemoryStore(nil))
	return newSearchView(deps, DefaultKeyMap(), DefaultStyles(), testLayout())
}

func items(titles ...string) []model.ResultItem {
	out := make([]model.ResultItem, len(titles))
	for i, title := range titles {
		out[i] = model.ResultItem{
			ID:        title,
			URL:       "https://example.com/" + title,
			Title:     title,
			CreatedAt: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func okResult(d popup.Dispatch, hasMore bool, list []model.ResultItem) searchResultMsg {
	return searchResultMsg{dispatch: d, resp: messaging.Response{
		Success: true,
		Data:    messaging.Data{Items: list, HasMore: hasMore},
	}}
}

func typeKeys(s SearchView, text string) SearchView {
	for _, r := range text {
		s, _ = s.Update(keyRunes(string(r)))
	}
	return s
}

func TestSearch_InitDispatchesEmptyQuery(t *testing.T) {
	s := newTestSearch(&fakeRouter{}, &fakeHost{})

	cmd := s.Init()
	assert.Assert(t, cmd != nil)
	assert.Equal(t, s.Session().Generation(), uint64(1))
	assert.Assert(t, s.Session().Loading())
	assert.Equal(t, s.Session().Query, "")
}

func TestSearch_DebounceDispatchesOnlyLatestQuery(t *testing.T) {
	router := &fakeRouter{}
	s := newTestSearch(router, &fakeHost{})

	s = typeKeys(s, "go!")
	assert.Equal(t, s.Query(), "go!")
	assert.Equal(t, s.Session().Generation(), uint64(0))

	// Ticks from superseded keystrokes are dropped
	for id := 1; id <= 2; id++ {
		var cmd tea.Cmd
		s, cmd = s.Update(searchDebounceMsg{debounceID: id})
		assert.Assert(t, cmd == nil)
	}
	assert.Equal(t, s.Session().Generation(), uint64(0))

	s, cmd := s.Update(searchDebounceMsg{debounceID: 3})
	assert.Assert(t, cmd != nil)
	assert.Equal(t, s.Session().Generation(), uint64(1))

	msg := cmd().(searchResultMsg)
	assert.Equal(t, msg.dispatch.Query, "go!")
	assert.Equal(t, len(router.requests), 1)

	req := router.last()
	assert.Equal(t, req.Type, messaging.SearchBookmarks)
	assert.Equal(t, req.Query, "go!")
	assert.Equal(t, req.Offset, 0)
	assert.Equal(t, req.Limit, 20)
}

func TestSearch_NavigationKeysDoNotDebounce(t *testing.T) {
	s := newTestSearch(&fakeRouter{}, &fakeHost{})

	s, cmd := s.Update(keyType(tea.KeyDown))
	assert.Assert(t, cmd == nil)
	assert.Equal(t, s.debounceID, 0)
}

func TestSearch_StaleResponseDropped(t *testing.T) {
	s := newTestSearch(&fakeRouter{}, &fakeHost{})

	first := s.Session().Begin("g", false)
	second := s.Session().Begin("go", false)

	s, _ = s.Update(okResult(second, false, items("go-result")))
	s, _ = s.Update(okResult(first, false, items("g-result-1", "g-result-2")))

	assert.Equal(t, len(s.Session().Items), 1)
	assert.Equal(t, s.Session().Items[0].Title, "go-result")
	assert.Assert(t, !s.Session().Loading())
}

func TestSearch_LoadMoreAppends(t *testing.T) {
	router := &fakeRouter{}
	s := newTestSearch(router, &fakeHost{})

	d := s.Session().Begin("", false)
	s, _ = s.Update(okResult(d, true, items("a", "b")))
	assert.Assert(t, s.Session().ShowLoadMore())

	// Move onto the load-more row
	s, _ = s.Update(keyType(tea.KeyDown))
	s, _ = s.Update(keyType(tea.KeyDown))
	assert.Equal(t, s.Cursor(), 2)

	s, cmd := s.Update(keyType(tea.KeyEnter))
	assert.Assert(t, cmd != nil)
	assert.Assert(t, strings.Contains(s.View(60, 30), "Loading..."))

	// A second press while loading does nothing
	_, again := s.Update(keyType(tea.KeyEnter))
	assert.Assert(t, again == nil)

	msg := cmd().(searchResultMsg)
	assert.Assert(t, msg.dispatch.Append)
	assert.Equal(t, router.last().Offset, 2)

	s, _ = s.Update(okResult(msg.dispatch, false, items("c")))
	assert.Equal(t, len(s.Session().Items), 3)
	assert.Equal(t, s.Session().Offset, 3)
	assert.Assert(t, !s.Session().ShowLoadMore())
	assert.Equal(t, s.Cursor(), 2)
}

func TestSearch_LoadMoreRetryClearsError(t *testing.T) {
	router := &fakeRouter{}
	s := newTestSearch(router, &fakeHost{})

	d := s.Session().Begin("", false)
	s, _ = s.Update(okResult(d, true, items("a", "b")))
	s, _ = s.Update(keyType(tea.KeyDown))
	s, _ = s.Update(keyType(tea.KeyDown))

	s, cmd := s.Update(keyType(tea.KeyEnter))
	assert.Assert(t, cmd != nil)
	failed := cmd().(searchResultMsg)
	s, _ = s.Update(searchResultMsg{dispatch: failed.dispatch, err: errOffline})

	assert.Equal(t, s.Status().Message, popup.ConnectivityMessage)
	assert.Equal(t, len(s.Session().Items), 2)
	assert.Assert(t, s.Session().ShowLoadMore())

	s, cmd = s.Update(keyType(tea.KeyEnter))
	assert.Assert(t, cmd != nil)
	retry := cmd().(searchResultMsg)
	assert.Equal(t, router.last().Offset, 2)

	s, _ = s.Update(okResult(retry.dispatch, false, items("c")))
	assert.Equal(t, s.Status(), popup.Status{})
	assert.Equal(t, len(s.Session().Items), 3)
	assert.Assert(t, !strings.Contains(s.View(60, 30), popup.ConnectivityMessage))
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name string
		msg  func(d popup.Dispatch) searchResultMsg
		want string
	}{
		{
			name: "unauthorized",
			msg: func(d popup.Dispatch) searchResultMsg {
				return searchResultMsg{dispatch: d, resp: messaging.Response{Status: http.StatusUnauthorized}}
			},
			want: popup.InvalidTokenMessage,
		},
		{
			name: "server error",
			msg: func(d popup.Dispatch) searchResultMsg {
				return searchResultMsg{dispatch: d, resp: messaging.Response{Status: http.StatusInternalServerError}}
			},
			want: popup.ConnectivityMessage,
		},
		{
			name: "transport",
			msg: func(d popup.Dispatch) searchResultMsg {
				return searchResultMsg{dispatch: d, err: errOffline}
			},
			want: popup.ConnectivityMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSearch(&fakeRouter{}, &fakeHost{})
			d := s.Session().Begin("go", false)
			s, _ = s.Update(tt.msg(d))

			assert.Equal(t, s.Session().Err, tt.want)
			assert.Equal(t, len(s.Session().Items), 0)
			assert.Assert(t, strings.Contains(s.View(60, 30), tt.want))
		})
	}
}

func TestSearch_EmptyMessages(t *testing.T) {
	s := newTestSearch(&fakeRouter{}, &fakeHost{})

	d := s.Session().Begin("", false)
	s, _ = s.Update(okResult(d, false, nil))
	assert.Assert(t, strings.Contains(s.View(60, 30), popup.NoBookmarksMessage))

	d = s.Session().Begin("zzz", false)
	s, _ = s.Update(okResult(d, false, nil))
	assert.Assert(t, strings.Contains(s.View(60, 30), popup.NoResultsMessage))
}

func TestSearch_OpenAndCopySelected(t *testing.T) {
	host := &fakeHost{}
	s := newTestSearch(&fakeRouter{}, host)
	var copied string
	s.deps.Clipboard = func(text string) error {
		copied = text
		return nil
	}

	d := s.Session().Begin("", false)
	s, _ = s.Update(okResult(d, false, items("a", "b")))
	s, _ = s.Update(keyType(tea.KeyDown))

	_, cmd := s.Update(keyType(tea.KeyEnter))
	assert.Assert(t, cmd != nil)
	opened := cmd().(tabOpenedMsg)
	assert.NilError(t, opened.err)
	assert.DeepEqual(t, host.opened, []string{"https://example.com/b"})

	_, cmd = s.Update(keyType(tea.KeyCtrlY))
	assert.Assert(t, cmd != nil)
	msg := cmd()
	assert.Equal(t, copied, "https://example.com/b")

	s, _ = s.Update(msg)
	assert.Equal(t, s.Status().Message, "Copied URL")
}

func TestSearch_RendersDates(t *testing.T) {
	s := newTestSearch(&fakeRouter{}, &fakeHost{})

	d := s.Session().Begin("", false)
	list := items("this-year")
	old := items("last-year")[0]
	old.CreatedAt = time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC)
	list = append(list, old)
	s, _ = s.Update(okResult(d, false, list))

	out := s.View(60, 30)
	assert.Assert(t, strings.Contains(out, "Mar 14"))
	assert.Assert(t, strings.Contains(out, "Nov 2, 2023"))
}
