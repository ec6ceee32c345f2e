package events

import "github.com/nikbrunner/bm-popup/internal/logging"

type SearchTracer struct{}

var Search = SearchTracer{}

func (SearchTracer) Debounce(id int, query string) {
	logging.Trace("search.debounce", map[string]interface{}{"id": id, "query": query})
}

func (SearchTracer) Dispatch(gen uint64, query string, offset int, appendMode bool) {
	logging.Trace("search.dispatch", map[string]interface{}{
		"gen":    gen,
		"query":  query,
		"offset": offset,
		"append": appendMode,
	})
}

func (SearchTracer) Stale(gen, live uint64) {
	logging.Trace("search.stale", map[string]interface{}{"gen": gen, "live": live})
}

func (SearchTracer) Results(gen uint64, count int, hasMore bool) {
	logging.Trace("search.results", map[string]interface{}{"gen": gen, "count": count, "has_more": hasMore})
}

func (SearchTracer) Failed(gen uint64, status int, err error) {
	logging.Warn("search.failed", err, map[string]interface{}{"gen": gen, "status": status})
}

func (SearchTracer) Open(url string) {
	logging.Trace("search.open", map[string]interface{}{"url": url})
}

func (SearchTracer) Copy(url string, err error) {
	if err != nil {
		logging.Warn("search.copy", err, map[string]interface{}{"url": url})
		return
	}
	logging.Trace("search.copy", map[string]interface{}{"url": url})
}
