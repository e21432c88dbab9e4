package browser

import (
	"strings"

	"github.com/eringen/guidebook/guide"
)

// Search returns the guides whose lowercase text contains query, in catalog
// order. An empty query matches nothing so a cleared search box hides all
// suggestions.
func Search(guides []guide.Guide, query string) []guide.Guide {
	if query == "" {
		return []guide.Guide{}
	}
	query = strings.ToLower(query)
	matched := make([]guide.Guide, 0, len(guides))
	for _, g := range guides {
		if strings.Contains(g.LowercaseText, query) {
			matched = append(matched, g)
		}
	}
	return matched
}
