// Package input holds helpers for text typed into the TUI.
package input

import "strings"

// FilterItem is one entry a filter can match against.
type FilterItem struct {
	Label string
	// Keywords are matched as well as Label, e.g. a course code.
	Keywords []string
}

// Matches reports whether every word of query appears in the item,
// case-insensitively. An empty query matches everything.
func Matches(query string, item FilterItem) bool {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return true
	}

	hay := strings.ToLower(item.Label)
	for _, k := range item.Keywords {
		hay += " " + strings.ToLower(k)
	}
	for _, w := range words {
		if !strings.Contains(hay, w) {
			return false
		}
	}
	return true
}

// FilterIndexes returns the positions of the items that match query.
func FilterIndexes(query string, items []FilterItem) []int {
	out := make([]int, 0, len(items))
	for i, it := range items {
		if Matches(query, it) {
			out = append(out, i)
		}
	}
	return out
}
