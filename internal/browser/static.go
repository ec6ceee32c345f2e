package browser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/nikbrunner/bm-popup/internal/model"
)

const maxPageBytes = 5 << 20

// Static is a Host for a tab given on the command line. Snapshots are fetched
// over HTTP and new tabs go to the system browser.
type Static struct {
	Tab        model.Tab
	HTTPClient *http.Client
	Opener     func(url string) error
}

// NewStatic creates a Static host whose active tab is rawURL.
func NewStatic(rawURL, title string, timeout time.Duration) *Static {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Static{
		Tab:        model.Tab{ID: "static", URL: strings.TrimSpace(rawURL), Title: title},
		HTTPClient: &http.Client{Timeout: timeout},
		Opener:     SystemOpener,
	}
}

func (s *Static) ActiveTab(ctx context.Context) (model.Tab, error) {
	return s.Tab, nil
}

// Snapshot downloads the page once and reads head metadata plus readable text.
func (s *Static) Snapshot(ctx context.Context, tab model.Tab) (model.PageSnapshot, error) {
	pageURL, err := url.Parse(tab.URL)
	if err != nil {
		return model.PageSnapshot{}, fmt.Errorf("parse url: %w", err)
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return model.PageSnapshot{}, fmt.Errorf("cannot fetch %s pages", pageURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tab.URL, nil)
	if err != nil {
		return model.PageSnapshot{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return model.PageSnapshot{}, fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.PageSnapshot{}, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return model.PageSnapshot{}, fmt.Errorf("read page: %w", err)
	}

	meta, err := ParseMeta(bytes.NewReader(body))
	if err != nil {
		return model.PageSnapshot{}, fmt.Errorf("parse page: %w", err)
	}

	snap := model.PageSnapshot{
		URL:         tab.URL,
		Title:       firstNonEmpty(meta.Title, tab.Title),
		Description: meta.Description,
	}

	// Readable text is best-effort; metadata alone is still a snapshot
	if article, err := readability.FromReader(bytes.NewReader(body), pageURL); err == nil {
		snap.Content = strings.TrimSpace(article.TextContent)
		if snap.Title == "" {
			snap.Title = article.Title
		}
		if snap.Description == "" {
			snap.Description = strings.TrimSpace(article.Excerpt)
		}
	}

	snap.Content = model.Truncate(snap.Content, model.MaxContentLength)
	return snap, nil
}

func (s *Static) OpenTab(ctx context.Context, url string) error {
	if s.Opener == nil {
		return SystemOpener(url)
	}
	return s.Opener(url)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
