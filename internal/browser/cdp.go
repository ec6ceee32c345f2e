package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/nikbrunner/bm-popup/internal/model"
)

const targetTypePage = "page"

// snapshotJS collects what the page exposes without any extraction heuristics.
const snapshotJS = `(() => {
  const meta = document.querySelector('meta[name="description"]') ||
    document.querySelector('meta[property="og:description"]');
  return {
    title: document.title || "",
    description: meta ? (meta.getAttribute("content") || "") : "",
    content: document.body ? document.body.innerText : ""
  };
})()`

// CDP is a Host backed by a running Chrome with remote debugging enabled.
type CDP struct {
	endpoint   string
	httpClient *http.Client
	allocCtx   context.Context
	cancel     context.CancelFunc

	mu   sync.Mutex
	tabs map[string]tabSession
}

// tabSession is an attached tab context and the func that detaches it.
type tabSession struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// devtoolsTarget is one entry of the /json/list discovery endpoint.
type devtoolsTarget struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NewCDP connects to the DevTools endpoint (e.g. http://127.0.0.1:9222).
func NewCDP(ctx context.Context, endpoint string) *CDP {
	endpoint = strings.TrimRight(endpoint, "/")
	allocCtx, cancel := chromedp.NewRemoteAllocator(ctx, endpoint)
	return &CDP{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		allocCtx:   allocCtx,
		cancel:     cancel,
		tabs:       make(map[string]tabSession),
	}
}

// Close detaches from every tab and drops the DevTools connection.
// The browser and its tabs keep running.
func (c *CDP) Close() {
	c.mu.Lock()
	for id, tab := range c.tabs {
		detach(tab.ctx)
		tab.cancel()
		delete(c.tabs, id)
	}
	c.mu.Unlock()
	c.cancel()
}

// detach ends the CDP session on an attached tab. chromedp closes the target
// when a context with a live Target is cancelled, so the Target is cleared
// first; the tab belongs to the user.
func detach(tabCtx context.Context) {
	cc := chromedp.FromContext(tabCtx)
	if cc == nil || cc.Target == nil {
		return
	}
	if cc.Browser != nil && cc.Target.SessionID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = target.DetachFromTarget().WithSessionID(cc.Target.SessionID).Do(cdp.WithExecutor(ctx, cc.Browser))
	}
	cc.Target = nil
}

// ActiveTab returns the most recently focused page. Chrome lists pages in
// focus order on the discovery endpoint.
func (c *CDP) ActiveTab(ctx context.Context) (model.Tab, error) {
	targets, err := c.listTargets(ctx)
	if err != nil {
		return model.Tab{}, err
	}
	for _, t := range targets {
		if t.Type == targetTypePage {
			return model.Tab{ID: t.ID, URL: t.URL, Title: t.Title}, nil
		}
	}
	return model.Tab{}, ErrNoTab
}

func (c *CDP) listTargets(ctx context.Context) ([]devtoolsTarget, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/json/list", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list targets: status %d", resp.StatusCode)
	}

	var targets []devtoolsTarget
	if err := json.NewDecoder(resp.Body).Decode(&targets); err != nil {
		return nil, fmt.Errorf("decode targets: %w", err)
	}
	return targets, nil
}

// tabContext attaches to an existing tab without creating a new one.
// Attached contexts live until Close.
func (c *CDP) tabContext(tabID string) context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tab, ok := c.tabs[tabID]; ok {
		return tab.ctx
	}
	ctx, cancel := chromedp.NewContext(c.allocCtx, chromedp.WithTargetID(target.ID(tabID)))
	c.tabs[tabID] = tabSession{ctx: ctx, cancel: cancel}
	return ctx
}

func (c *CDP) Snapshot(ctx context.Context, tab model.Tab) (model.PageSnapshot, error) {
	if tab.ID == "" {
		return model.PageSnapshot{}, ErrNoTab
	}

	var res struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
	}

	tCtx := c.tabContext(tab.ID)
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(tCtx, chromedp.Evaluate(snapshotJS, &res))
	}()

	select {
	case <-ctx.Done():
		return model.PageSnapshot{}, ctx.Err()
	case err := <-done:
		if err != nil {
			return model.PageSnapshot{}, fmt.Errorf("evaluate snapshot: %w", err)
		}
	}

	return model.PageSnapshot{
		URL:         tab.URL,
		Title:       firstNonEmpty(res.Title, tab.Title),
		Description: strings.TrimSpace(res.Description),
		Content:     model.Truncate(strings.TrimSpace(res.Content), model.MaxContentLength),
	}, nil
}

// OpenTab creates a new target and brings it to the front.
func (c *CDP) OpenTab(ctx context.Context, url string) error {
	active, err := c.ActiveTab(ctx)
	if err != nil {
		return err
	}

	return chromedp.Run(c.tabContext(active.ID),
		chromedp.ActionFunc(func(ctx context.Context) error {
			browserCtx := cdp.WithExecutor(ctx, chromedp.FromContext(ctx).Browser)
			id, err := target.CreateTarget(url).Do(browserCtx)
			if err != nil {
				return fmt.Errorf("create target: %w", err)
			}
			return target.ActivateTarget(id).Do(browserCtx)
		}),
	)
}
