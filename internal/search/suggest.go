package search

import (
	"strings"

	"github.com/halvard/skald/internal/models"
)

// SuggestionLimit caps the number of autocomplete candidates returned.
const SuggestionLimit = 5

// Suggest mines title words and tags for autocomplete candidates: distinct
// strings containing the partial query (case-insensitive) that are not the
// query itself. Candidates keep first-discovery order, walking each article's
// title words before its tags.
func Suggest(articles []models.Article, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(candidate string) bool {
		key := strings.ToLower(candidate)
		if key == q || !strings.Contains(key, q) {
			return false
		}
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		out = append(out, candidate)
		return len(out) >= SuggestionLimit
	}

	for _, a := range articles {
		for _, word := range strings.Fields(strings.ToLower(a.Title)) {
			if add(word) {
				return out
			}
		}
		for _, tag := range a.Tags {
			if add(tag) {
				return out
			}
		}
	}
	return out
}
