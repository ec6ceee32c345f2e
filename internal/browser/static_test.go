package browser_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/bm-popup/internal/browser"
	"github.com/nikbrunner/bm-popup/internal/model"
	"gotest.tools/v3/assert"
)

const articleHTML = `<!DOCTYPE html>
<html><head>
  <title>Understanding Channels</title>
  <meta name="description" content="A tour of Go channels.">
</head>
<body>
  <nav>Home | Blog</nav>
  <article>
    <h1>Understanding Channels</h1>
    <p>Channels are typed conduits through which you can send and receive values with the channel operator.
    By default, sends and receives block until the other side is ready. This allows goroutines to synchronize
    without explicit locks or condition variables.</p>
    <p>Buffered channels accept a limited number of values without a corresponding receiver for those values.
    Sends to a buffered channel block only when the buffer is full. Receives block when the buffer is empty.</p>
    <p>A sender can close a channel to indicate that no more values will be sent. Receivers can test whether a
    channel has been closed by assigning a second parameter to the receive expression. The loop for range
    receives values from the channel repeatedly until it is closed, which makes producer and consumer code short.</p>
    <p>The select statement lets a goroutine wait on multiple communication operations. A select blocks until one
    of its cases can run, then it executes that case. It chooses one at random if multiple are ready.</p>
  </article>
</body></html>`

func TestStatic_ActiveTab(t *testing.T) {
	host := browser.NewStatic(" https://go.dev/blog ", "Blog", time.Second)

	tab, err := host.ActiveTab(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, tab.URL, "https://go.dev/blog")
	assert.Equal(t, tab.Title, "Blog")
}

func TestStatic_Snapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	host := browser.NewStatic(srv.URL, "", time.Second)
	tab, _ := host.ActiveTab(context.Background())

	snap, err := host.Snapshot(context.Background(), tab)
	assert.NilError(t, err)
	assert.Equal(t, snap.URL, srv.URL)
	assert.Equal(t, snap.Title, "Understanding Channels")
	assert.Equal(t, snap.Description, "A tour of Go channels.")
	assert.Assert(t, strings.Contains(snap.Content, "typed conduits"), "content: %q", snap.Content)
}

func TestStatic_SnapshotHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	host := browser.NewStatic(srv.URL, "", time.Second)
	_, err := host.Snapshot(context.Background(), model.Tab{URL: srv.URL})
	assert.ErrorContains(t, err, "status 403")
}

func TestStatic_SnapshotRejectsNonHTTP(t *testing.T) {
	host := browser.NewStatic("chrome://settings", "", time.Second)
	_, err := host.Snapshot(context.Background(), model.Tab{URL: "chrome://settings"})
	assert.ErrorContains(t, err, "cannot fetch chrome pages")
}

func TestStatic_OpenTabUsesOpener(t *testing.T) {
	var opened string
	host := browser.NewStatic("https://example.com", "", time.Second)
	host.Opener = func(url string) error {
		opened = url
		return nil
	}

	assert.NilError(t, host.OpenTab(context.Background(), "https://go.dev"))
	assert.Equal(t, opened, "https://go.dev")
}
