package popup

import (
	"github.com/nikbrunner/bm-popup/internal/model"
)

// Empty-state messages.
const (
	NoResultsMessage   = "No results"
	NoBookmarksMessage = "No bookmarks yet"
)

// Dispatch describes one search request to issue.
type Dispatch struct {
	Generation uint64
	Query      string
	Offset     int
	Append     bool
}

// SearchSession tracks the search list across overlapping requests.
//
// Every dispatch mints a new generation. Responses carrying any other
// generation are dropped, so only the most recent request can change Items.
type SearchSession struct {
	Query   string
	Offset  int
	Items   []model.ResultItem
	HasMore bool
	Err     string

	generation  uint64
	outstanding int
	settled     bool
}

// NewSearchSession creates an idle session.
func NewSearchSession() *SearchSession {
	return &SearchSession{Items: []model.ResultItem{}}
}

// Generation returns the live generation.
func (s *SearchSession) Generation() uint64 {
	return s.generation
}

// Begin mints a generation for a new request. A fresh query starts at offset
// 0; an append continues from the current offset of the current query.
func (s *SearchSession) Begin(query string, appendMode bool) Dispatch {
	s.generation++
	s.outstanding++

	d := Dispatch{Generation: s.generation, Append: appendMode}
	if appendMode {
		d.Query = s.Query
		d.Offset = s.Offset
	} else {
		s.Query = query
		d.Query = query
		d.Offset = 0
	}
	return d
}

// IsLive reports whether gen is the most recent dispatch.
func (s *SearchSession) IsLive(gen uint64) bool {
	return gen == s.generation
}

// Accept applies a successful response. Stale responses are dropped and
// reported as false.
func (s *SearchSession) Accept(d Dispatch, items []model.ResultItem, hasMore bool) bool {
	s.settle()
	if !s.IsLive(d.Generation) {
		return false
	}

	s.Err = ""
	s.HasMore = hasMore
	s.settled = true
	if d.Append {
		s.Items = append(s.Items, items...)
		s.Offset += len(items)
		return true
	}

	s.Items = make([]model.ResultItem, len(items))
	copy(s.Items, items)
	s.Offset = len(items)
	return true
}

// Fail applies a failed response. A fresh search replaces the list with
// message. A failed append keeps items so "load more" can be retried from
// the same offset. Stale failures are dropped and reported as false.
func (s *SearchSession) Fail(d Dispatch, message string) bool {
	s.settle()
	if !s.IsLive(d.Generation) {
		return false
	}

	s.settled = true
	if d.Append {
		return true
	}
	s.Items = []model.ResultItem{}
	s.Offset = 0
	s.HasMore = false
	s.Err = message
	return true
}

func (s *SearchSession) settle() {
	if s.outstanding > 0 {
		s.outstanding--
	}
}

// Loading reports whether any request is outstanding.
func (s *SearchSession) Loading() bool {
	return s.outstanding > 0
}

// CanLoadMore reports whether the "load more" affordance is active.
func (s *SearchSession) CanLoadMore() bool {
	return s.HasMore && s.Err == "" && !s.Loading()
}

// ShowLoadMore reports whether the affordance is visible at all.
func (s *SearchSession) ShowLoadMore() bool {
	return s.HasMore && s.Err == ""
}

// EmptyMessage returns the empty-state text once the list settled empty
// with nothing in flight, otherwise "".
func (s *SearchSession) EmptyMessage() string {
	if !s.settled || s.Loading() || s.Err != "" || len(s.Items) > 0 {
		return ""
	}
	if s.Query != "" {
		return NoResultsMessage
	}
	return NoBookmarksMessage
}
