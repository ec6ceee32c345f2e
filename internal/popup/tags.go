package popup

import (
	"strings"

	"github.com/nikbrunner/bm-popup/internal/model"
)

// DefaultVisibleTags is how many chips show before "show all".
const DefaultVisibleTags = 8

// TagList is the chip list to render.
type TagList struct {
	Tags    []string
	ShowAll bool // offer the "show all" affordance
}

// VisibleTags computes which vocabulary tags are rendered as chips.
//
// The vocabulary is filtered by case-insensitive substring. A filtered or
// expanded list shows every match. A collapsed unfiltered list shows the
// first n, followed by any selected tags that fell outside that slice so a
// selection is never hidden.
func VisibleTags(vocab, selected []string, filterText string, expanded bool, n int) TagList {
	if n <= 0 {
		n = DefaultVisibleTags
	}

	filter := strings.ToLower(filterText)
	visible := make([]string, 0, len(vocab))
	for _, tag := range vocab {
		if filter == "" || strings.Contains(strings.ToLower(tag), filter) {
			visible = append(visible, tag)
		}
	}

	if filter != "" || expanded || len(visible) <= n {
		return TagList{Tags: visible}
	}

	tags := make([]string, n, len(visible))
	copy(tags, visible[:n])
	for _, tag := range visible[n:] {
		if model.ContainsTag(selected, tag) {
			tags = append(tags, tag)
		}
	}
	return TagList{Tags: tags, ShowAll: true}
}

// TagSelection is the save form's tag state.
type TagSelection struct {
	selected []string
	Filter   string
	Expanded bool
}

// NewTagSelection preselects defaults then last-used tags, in order of first
// appearance.
func NewTagSelection(defaultTags, lastUsedTags []string) *TagSelection {
	return &TagSelection{selected: model.UnionTags(defaultTags, lastUsedTags)}
}

// Selected returns the selected tags in selection order.
func (s *TagSelection) Selected() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *TagSelection) IsSelected(tag string) bool {
	return model.ContainsTag(s.selected, tag)
}

// Toggle flips tag's membership and clears the filter. It reports whether
// the tag is selected afterwards.
func (s *TagSelection) Toggle(tag string) bool {
	s.Filter = ""
	for i, t := range s.selected {
		if t == tag {
			s.selected = append(s.selected[:i:i], s.selected[i+1:]...)
			return false
		}
	}
	s.selected = append(s.selected, tag)
	return true
}

// Commit adds free-text input as a tag, trimmed and lower-cased, even when it
// is not in the vocabulary. The filter is cleared either way. It returns the
// tag added, or "" for blank input.
func (s *TagSelection) Commit(input string) string {
	s.Filter = ""
	tag := strings.ToLower(strings.TrimSpace(input))
	if tag == "" {
		return ""
	}
	if !model.ContainsTag(s.selected, tag) {
		s.selected = append(s.selected, tag)
	}
	return tag
}

// Expand shows the whole vocabulary for the rest of the session.
func (s *TagSelection) Expand() {
	s.Expanded = true
}

// Visible applies VisibleTags to the current state.
func (s *TagSelection) Visible(vocab []string, n int) TagList {
	return VisibleTags(vocab, s.selected, s.Filter, s.Expanded, n)
}
