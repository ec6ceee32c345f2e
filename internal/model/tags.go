package model

import "strings"

// Tag is an entry of the global tag vocabulary.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

// TagNames returns the names of tags in order, skipping blanks.
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t.Name) == "" {
			continue
		}
		names = append(names, t.Name)
	}
	return names
}

// UnionTags merges tag lists in order of first appearance, dropping duplicates
// and blank entries.
func UnionTags(lists ...[]string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, list := range lists {
		for _, tag := range list {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			result = append(result, tag)
		}
	}
	return result
}

// ContainsTag reports whether tags contains tag.
func ContainsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
