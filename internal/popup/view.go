package popup

import (
	"strings"

	"github.com/nikbrunner/bm-popup/internal/model"
)

// View is the single screen the popup shows for its whole lifetime.
type View int

const (
	ViewSetup View = iota
	ViewSave
	ViewSearch
)

func (v View) String() string {
	switch v {
	case ViewSetup:
		return "setup"
	case ViewSave:
		return "save"
	case ViewSearch:
		return "search"
	default:
		return "unknown"
	}
}

// restrictedSchemes are browser-internal pages that cannot be saved.
var restrictedSchemes = []string{
	"chrome:",
	"chrome-extension:",
	"chrome-search:",
	"chrome-untrusted:",
	"edge:",
	"brave:",
	"opera:",
	"vivaldi:",
	"about:",
	"moz-extension:",
	"safari-web-extension:",
	"devtools:",
	"view-source:",
	"data:",
	"blob:",
	"file:",
}

// IsRestricted reports whether url uses a browser-internal scheme.
func IsRestricted(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	for _, scheme := range restrictedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// DecideView picks the view for one popup open.
//
// No token means Setup. Otherwise a tab with a savable URL means Save, and
// anything else (no URL, restricted page) means Search.
func DecideView(token string, tab model.Tab) View {
	if strings.TrimSpace(token) == "" {
		return ViewSetup
	}
	if strings.TrimSpace(tab.URL) == "" || IsRestricted(tab.URL) {
		return ViewSearch
	}
	return ViewSave
}
