package messaging

import (
	"github.com/nikbrunner/bm-popup/internal/api"
	"github.com/nikbrunner/bm-popup/internal/model"
)

// Kind names a message understood by the router.
type Kind string

const (
	GetTags         Kind = "GET_TAGS"
	CreateBookmark  Kind = "CREATE_BOOKMARK"
	SearchBookmarks Kind = "SEARCH_BOOKMARKS"
)

// Request is the envelope sent from a view to the router.
type Request struct {
	Type     Kind                 `json:"type"`
	Bookmark *model.BookmarkDraft `json:"bookmark,omitempty"`
	Query    string               `json:"query,omitempty"`
	Offset   int                  `json:"offset,omitempty"`
	Limit    int                  `json:"limit,omitempty"`
}

// Response is the router's reply. Success=false carries the service status
// and error body; a transport failure is reported as an error from Send instead.
type Response struct {
	Success    bool           `json:"success"`
	Status     int            `json:"status,omitempty"`
	Body       *api.ErrorBody `json:"body,omitempty"`
	RetryAfter *int           `json:"retryAfter,omitempty"`
	Data       Data           `json:"data"`
}

// Data is the payload of a successful response.
type Data struct {
	Tags    []model.Tag        `json:"tags,omitempty"`
	Items   []model.ResultItem `json:"items,omitempty"`
	HasMore bool               `json:"has_more,omitempty"`
}

// TagsRequest builds a GET_TAGS envelope.
func TagsRequest() Request {
	return Request{Type: GetTags}
}

// CreateRequest builds a CREATE_BOOKMARK envelope.
func CreateRequest(draft model.BookmarkDraft) Request {
	return Request{Type: CreateBookmark, Bookmark: &draft}
}

// SearchRequest builds a SEARCH_BOOKMARKS envelope.
func SearchRequest(query string, offset, limit int) Request {
	return Request{Type: SearchBookmarks, Query: query, Offset: offset, Limit: limit}
}
