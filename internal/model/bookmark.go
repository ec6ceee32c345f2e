package model

import (
	"time"
	"unicode/utf8"
)

// Field limits applied when a draft is built.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
	MaxContentLength     = 100000
)

// BookmarkDraft is the bookmark assembled by the save view and sent to the
// remote service. It lives for one popup session only.
type BookmarkDraft struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
}

// NewDraftParams holds parameters for creating a new BookmarkDraft.
type NewDraftParams struct {
	Snapshot PageSnapshot
	Tags     []string
}

// NewDraft creates a BookmarkDraft from a page snapshot, enforcing field limits.
func NewDraft(params NewDraftParams) BookmarkDraft {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	return BookmarkDraft{
		URL:         params.Snapshot.URL,
		Title:       Truncate(params.Snapshot.Title, MaxTitleLength),
		Description: Truncate(params.Snapshot.Description, MaxDescriptionLength),
		Content:     Truncate(params.Snapshot.Content, MaxContentLength),
		Tags:        tags,
	}
}

// Clamp re-applies the field limits, e.g. after the user edited the title.
func (d BookmarkDraft) Clamp() BookmarkDraft {
	d.Title = Truncate(d.Title, MaxTitleLength)
	d.Description = Truncate(d.Description, MaxDescriptionLength)
	d.Content = Truncate(d.Content, MaxContentLength)
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return d
}

// ResultItem is one saved bookmark returned by a search.
type ResultItem struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags"`
}

// DisplayTitle returns the title, or the URL for untitled items.
func (r ResultItem) DisplayTitle() string {
	if r.Title == "" {
		return r.URL
	}
	return r.Title
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
