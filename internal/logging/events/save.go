package events

import "github.com/nikbrunner/bm-popup/internal/logging"

type SaveTracer struct{}

var Save = SaveTracer{}

func (SaveTracer) SnapshotFallback(url string, err error) {
	logging.Warn("save.snapshot.fallback", err, map[string]interface{}{"url": url})
}

func (SaveTracer) TagsFailed(err error) {
	logging.Warn("save.tags.failed", err, nil)
}

func (SaveTracer) PrefsFailed(err error) {
	logging.Warn("save.prefs.failed", err, nil)
}

func (SaveTracer) Ready(vocab, selected int) {
	logging.Trace("save.ready", map[string]interface{}{"vocab": vocab, "selected": selected})
}

func (SaveTracer) Toggle(tag string, selected bool) {
	logging.Trace("save.tag.toggle", map[string]interface{}{"tag": tag, "selected": selected})
}

func (SaveTracer) Commit(tag string) {
	logging.Trace("save.tag.commit", map[string]interface{}{"tag": tag})
}

func (SaveTracer) Expand(total int) {
	logging.Trace("save.tags.expand", map[string]interface{}{"total": total})
}

func (SaveTracer) Submit(url string, tags []string) {
	logging.Info("save.submit", map[string]interface{}{"url": url, "tags": tags})
}

func (SaveTracer) Success(url string) {
	logging.Info("save.success", map[string]interface{}{"url": url})
}

func (SaveTracer) Failure(status int, message string) {
	logging.Info("save.failure", map[string]interface{}{"status": status, "message": message})
}

func (SaveTracer) TransportError(err error) {
	logging.Warn("save.transport", err, nil)
}
