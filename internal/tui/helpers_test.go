package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bm-popup/internal/config"
	"github.com/nikbrunner/bm-popup/internal/messaging"
	"github.com/nikbrunner/bm-popup/internal/model"
	"github.com/nikbrunner/bm-popup/internal/prefs"
	"github.com/nikbrunner/bm-popup/internal/tui/layout"
)

type fakeRouter struct {
	mu       sync.Mutex
	requests []messaging.Request
	respond  func(req messaging.Request) (messaging.Response, error)
}

func (r *fakeRouter) Send(ctx context.Context, req messaging.Request) (messaging.Response, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	if r.respond == nil {
		return messaging.Response{Success: true}, nil
	}
	return r.respond(req)
}

func (r *fakeRouter) last() messaging.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return messaging.Request{}
	}
	return r.requests[len(r.requests)-1]
}

type fakeHost struct {
	tab         model.Tab
	snapshot    model.PageSnapshot
	snapshotErr error
	opened      []string
}

func (h *fakeHost) ActiveTab(ctx context.Context) (model.Tab, error) {
	return h.tab, nil
}

func (h *fakeHost) Snapshot(ctx context.Context, tab model.Tab) (model.PageSnapshot, error) {
	return h.snapshot, h.snapshotErr
}

func (h *fakeHost) OpenTab(ctx context.Context, url string) error {
	h.opened = append(h.opened, url)
	return nil
}

var errOffline = errors.New("dial tcp: connection refused")

func testDeps(router *fakeRouter, host *fakeHost, store prefs.Store) Deps {
	cfg := config.DefaultConfig()
	cfg.WebURL = "https://app.example.com"
	return Deps{
		Prefs:     store,
		Router:    router,
		Host:      host,
		Config:    cfg,
		Clipboard: func(string) error { return nil },
		Now:       func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func testLayout() layout.LayoutConfig {
	return layout.DefaultConfig()
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}
