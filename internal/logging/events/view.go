package events

import "github.com/nikbrunner/bm-popup/internal/logging"

type ViewTracer struct{}

var View = ViewTracer{}

func (ViewTracer) Open(session string) {
	logging.Info("popup.open", map[string]interface{}{"session": session})
}

func (ViewTracer) Decided(view, url string) {
	logging.Info("view.decided", map[string]interface{}{"view": view, "url": url})
}

func (ViewTracer) TabQueryFailed(err error) {
	logging.Warn("view.tab-query", err, nil)
}

func (ViewTracer) OpenTab(url string) {
	logging.Trace("view.open-tab", map[string]interface{}{"url": url})
}

func (ViewTracer) Panic(recovered interface{}) {
	logging.Warn("view.panic", nil, map[string]interface{}{"recovered": recovered})
}
