package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/bm-popup/internal/model"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrUnreachable means no HTTP response was received.
	ErrUnreachable = errors.New("bookmark service unreachable")
	// ErrDecode means a 2xx response carried a body we could not parse.
	ErrDecode = errors.New("invalid response from bookmark service")
)

// Client talks to the remote bookmark service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient creates a new API client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		httpClient: httpClient,
	}
}

// Tags fetches the user's tag vocabulary.
func (c *Client) Tags(ctx context.Context) ([]model.Tag, error) {
	var resp tagsResponse
	if err := c.do(ctx, http.MethodGet, "/tags", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Tags == nil {
		resp.Tags = []model.Tag{}
	}
	return resp.Tags, nil
}

// CreateBookmark saves a draft. Non-2xx answers come back as *Error.
func (c *Client) CreateBookmark(ctx context.Context, draft model.BookmarkDraft) error {
	return c.do(ctx, http.MethodPost, "/bookmarks", draft.Clamp(), nil)
}

// Search returns one page of saved items matching query.
func (c *Client) Search(ctx context.Context, query string, offset, limit int) (*SearchPage, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	var page SearchPage
	if err := c.do(ctx, http.MethodGet, "/bookmarks/search?"+params.Encode(), nil, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []model.ResultItem{}
	}
	return &page, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", model.NewRequestID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Status:     resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
		// Error bodies are best-effort; plain text or HTML is ignored
		_ = json.Unmarshal(respBody, &apiErr.Body)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
