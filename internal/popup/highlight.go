package popup

import (
	"github.com/sahilm/fuzzy"
)

// tagNames implements fuzzy.Source for a slice of tag names.
type tagNames []string

func (t tagNames) String(i int) string {
	return t[i]
}

func (t tagNames) Len() int {
	return len(t)
}

// MatchHighlights maps each tag matching filter to the byte indexes to
// emphasise. Tags with no match are absent; an empty filter yields nil.
func MatchHighlights(filter string, tags []string) map[string][]int {
	if filter == "" || len(tags) == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(filter, tagNames(tags))
	highlights := make(map[string][]int, len(matches))
	for _, m := range matches {
		highlights[tags[m.Index]] = m.MatchedIndexes
	}
	return highlights
}
