package tui

import (
	"strings"

	"github.com/nikbrunner/bm-popup/internal/popup"
	"github.com/nikbrunner/bm-popup/internal/tui/layout"
)

// renderView renders the popup frame around the decided view.
func (a App) renderView() string {
	width := layout.CalculatePopupWidth(a.width, a.layoutConfig.Popup)
	// Border (2) + padding (2)
	inner := width - 4
	if inner < 1 {
		inner = 1
	}

	var body string
	switch {
	case a.failure != "":
		body = a.styles.Error.Render("✗ " + a.failure)
	case !a.decided:
		body = a.styles.Empty.Render("Loading...")
	case a.view == popup.ViewSetup:
		body = a.setup.View(inner)
	case a.view == popup.ViewSave:
		body = a.save.View(inner)
	default:
		body = a.search.View(inner, a.height)
	}

	return a.styles.App.Width(width - 2).Render(body)
}

// renderStatus renders a status line with its optional link.
func renderStatus(styles Styles, status popup.Status) string {
	var line string
	switch status.Kind {
	case popup.StatusNone:
		return ""
	case popup.StatusError:
		line = styles.Error.Render("✗ " + status.Message)
	case popup.StatusSuccess:
		line = styles.Success.Render("✓ " + status.Message)
	default:
		line = styles.Info.Render(status.Message)
	}

	if status.Link != "" && status.LinkLabel != "" {
		line += " " + styles.Link.Render(status.LinkLabel) + styles.HintDesc.Render(" (ctrl+o)")
	}
	return line
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
