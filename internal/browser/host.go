package browser

import (
	"context"
	"errors"
	"os/exec"
	"runtime"

	"github.com/nikbrunner/bm-popup/internal/model"
)

// ErrNoTab means the browser reported no page the popup could attach to.
var ErrNoTab = errors.New("no active tab")

// Host is the browser surface the popup needs.
type Host interface {
	// ActiveTab returns the focused tab. Its URL may be empty.
	ActiveTab(ctx context.Context) (model.Tab, error)
	// Snapshot extracts url, title, description and content from tab.
	Snapshot(ctx context.Context, tab model.Tab) (model.PageSnapshot, error)
	// OpenTab opens url in a new foreground tab.
	OpenTab(ctx context.Context, url string) error
}

// SystemOpener opens a URL in the default browser.
func SystemOpener(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return errors.New("unsupported platform: " + runtime.GOOS)
	}
	return cmd.Start()
}
