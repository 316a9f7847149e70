// Package search implements the weighted multi-field relevance scan over the
// in-memory article collection. There is no index: every query walks the
// full corpus, which is fine at personal-blog scale.
package search

import (
	"sort"
	"strings"

	"github.com/halvard/skald/internal/models"
)

// Per-field weights. A field contributes to matchedFields whenever its raw
// similarity is above zero, independent of its weight.
const (
	weightTitle    = 3.0
	weightTags     = 2.5
	weightCategory = 2.0
	weightExcerpt  = 1.5
	weightContent  = 1.0
	weightAuthor   = 1.0
)

// Similarity scores how well text matches query, in [0, 1], case-insensitive.
// Tiers are exclusive, first match wins:
//
//	1.0  exact match
//	0.8  query contained as a substring
//	<=0.6  token overlap: fraction of query tokens with a bidirectional
//	       substring match against any text token, scaled by 0.6
func Similarity(text, query string) float64 {
	if text == "" || query == "" {
		return 0
	}
	t := strings.ToLower(text)
	q := strings.ToLower(query)

	if t == q {
		return 1
	}
	if strings.Contains(t, q) {
		return 0.8
	}

	queryWords := strings.Fields(q)
	textWords := strings.Fields(t)
	if len(queryWords) == 0 {
		return 0
	}
	matched := 0
	for _, qw := range queryWords {
		for _, tw := range textWords {
			if strings.Contains(tw, qw) || strings.Contains(qw, tw) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(queryWords)) * 0.6
}

// Search scores every article against query and returns hits sorted by score
// descending. Articles with a total score of zero are excluded entirely.
// An empty or whitespace-only query returns no results without scanning.
func Search(articles []models.Article, query string) []models.SearchResult {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}

	var results []models.SearchResult
	for i := range articles {
		a := articles[i]
		var total float64
		var matched []string
		highlights := make(map[string]string)

		if s := Similarity(a.Title, q); s > 0 {
			total += s * weightTitle
			matched = append(matched, "title")
			highlights["title"] = Highlight(a.Title, q)
		}
		if s := Similarity(strings.Join(a.Tags, " "), q); s > 0 {
			total += s * weightTags
			matched = append(matched, "tags")
		}
		if s := Similarity(a.Category, q); s > 0 {
			total += s * weightCategory
			matched = append(matched, "category")
		}
		if a.Excerpt != "" {
			if s := Similarity(a.Excerpt, q); s > 0 {
				total += s * weightExcerpt
				matched = append(matched, "excerpt")
				highlights["excerpt"] = Highlight(a.Excerpt, q)
			}
		}
		if s := Similarity(a.Content, q); s > 0 {
			total += s * weightContent
			matched = append(matched, "content")
			highlights["content"] = Highlight(Snippet(a.Content, q, snippetLength), q)
		}
		if a.Author != "" {
			if s := Similarity(a.Author, q); s > 0 {
				total += s * weightAuthor
				matched = append(matched, "author")
			}
		}

		if total > 0 {
			if len(highlights) == 0 {
				highlights = nil
			}
			results = append(results, models.SearchResult{
				Article:       a,
				Score:         total,
				MatchedFields: matched,
				Highlights:    highlights,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Filter narrows a search scope before scoring.
type Filter struct {
	// Category keeps only articles with this category (case-insensitive
	// exact match). Empty means no category filter.
	Category string
	// Tags keeps articles carrying at least one of these tags
	// (case-insensitive). Empty means no tag filter.
	Tags []string
}

// Apply returns the articles passing the filter, preserving order.
func (f Filter) Apply(articles []models.Article) []models.Article {
	if f.Category == "" && len(f.Tags) == 0 {
		return articles
	}
	var out []models.Article
	for _, a := range articles {
		if f.Category != "" && !strings.EqualFold(a.Category, f.Category) {
			continue
		}
		if len(f.Tags) > 0 && !hasAnyTag(a.Tags, f.Tags) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
