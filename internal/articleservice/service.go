// Package articleservice coordinates corpus and search operations for the
// transport layers (HTTP API and MCP).
package articleservice

import (
	"context"

	"github.com/halvard/skald/internal/corpus"
	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/search"
)

// listContentLimit caps the content carried by list responses; full text is
// available from the single-article endpoint.
const listContentLimit = 1000

// Service answers article queries over the repository snapshot.
type Service struct {
	repo *corpus.Repository
}

// NewService creates a new article service.
func NewService(repo *corpus.Repository) *Service {
	return &Service{repo: repo}
}

// ListArticles returns articles sorted by date descending with content
// trimmed for transport. limit <= 0 means no limit; offset past the end
// yields an empty list.
func (s *Service) ListArticles(_ context.Context, limit, offset int) ([]models.Article, int, error) {
	articles, err := s.repo.Articles()
	if err != nil {
		return nil, 0, err
	}
	total := len(articles)

	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	page := articles[offset:]
	if limit > 0 && limit < len(page) {
		page = page[:limit]
	}

	out := make([]models.Article, len(page))
	for i, a := range page {
		a.Content = trimContent(a.Content)
		out[i] = a
	}
	return out, total, nil
}

// GetArticle returns the full article for slug or apperr.ErrNotFound.
func (s *Service) GetArticle(_ context.Context, slug string) (*models.Article, error) {
	return s.repo.ArticleBySlug(slug)
}

// ListByCategory returns articles in the category (case-insensitive),
// date-descending, with trimmed content.
func (s *Service) ListByCategory(_ context.Context, category string) ([]models.Article, error) {
	articles, err := s.repo.ArticlesByCategory(category)
	if err != nil {
		return nil, err
	}
	out := make([]models.Article, len(articles))
	for i, a := range articles {
		a.Content = trimContent(a.Content)
		out[i] = a
	}
	return out, nil
}

// Categories returns category counts sorted by count descending.
func (s *Service) Categories(_ context.Context) ([]models.CategoryCount, error) {
	return s.repo.Categories()
}

// Tags returns tag counts sorted by count descending.
func (s *Service) Tags(_ context.Context) ([]models.TagCount, error) {
	return s.repo.Tags()
}

// Search runs the weighted relevance scan. The filter narrows the scope
// before scoring; limit truncates the sorted result list. The returned total
// counts all hits before truncation.
func (s *Service) Search(_ context.Context, query string, limit int, filter search.Filter) ([]models.SearchResult, int, error) {
	articles, err := s.repo.Articles()
	if err != nil {
		return nil, 0, err
	}
	results := search.Search(filter.Apply(articles), query)
	total := len(results)
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	return results, total, nil
}

// Suggest returns up to five autocomplete candidates for a partial query.
func (s *Service) Suggest(_ context.Context, query string) ([]string, error) {
	articles, err := s.repo.Articles()
	if err != nil {
		return nil, err
	}
	suggestions := search.Suggest(articles, query)
	if suggestions == nil {
		suggestions = []string{}
	}
	return suggestions, nil
}

// trimContent truncates content to the list transport limit, measured in
// runes so multi-byte text is never cut mid-character.
func trimContent(content string) string {
	runes := []rune(content)
	if len(runes) <= listContentLimit {
		return content
	}
	return string(runes[:listContentLimit])
}
