package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nikbrunner/bm-popup/internal/model"
)

// ErrorBody is the JSON body the service returns with non-2xx responses.
type ErrorBody struct {
	Detail             string     `json:"detail,omitempty"`
	Error              string     `json:"error,omitempty"`
	ErrorCode          string     `json:"error_code,omitempty"`
	ExistingBookmarkID FlexibleID `json:"existing_bookmark_id,omitempty"`
}

// FlexibleID accepts both numeric and string ids.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("existing_bookmark_id: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// Error is a structured application error: the service answered, but not with 2xx.
type Error struct {
	Status     int
	Body       ErrorBody
	RetryAfter *int
}

func (e *Error) Error() string {
	msg := e.Body.Detail
	if msg == "" {
		msg = e.Body.Error
	}
	if msg == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, msg)
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items   []model.ResultItem `json:"items"`
	HasMore bool               `json:"has_more"`
}

// tagsResponse is the GET /tags response body.
type tagsResponse struct {
	Tags []model.Tag `json:"tags"`
}

// parseRetryAfter reads the Retry-After header as whole seconds.
// HTTP-date values and garbage yield nil.
func parseRetryAfter(v string) *int {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
