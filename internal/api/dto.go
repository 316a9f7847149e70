package api

import "github.com/halvard/skald/internal/models"

// ArticleListResponse wraps paginated article listings. Content in list
// items is trimmed; fetch a single article for the full body.
type ArticleListResponse struct {
	Articles []models.Article `json:"articles" validate:"required"`
	Total    int              `json:"total" example:"42" validate:"required"`
}

// ArticleDetail is a single-article response. HTML is populated only when
// the client asks for a rendered body with ?render=html.
type ArticleDetail struct {
	models.Article
	HTML string `json:"html,omitempty"`
}

// CategoryArticlesResponse wraps a category listing.
type CategoryArticlesResponse struct {
	Category string           `json:"category" example:"tech" validate:"required"`
	Articles []models.Article `json:"articles" validate:"required"`
	Total    int              `json:"total" example:"3" validate:"required"`
}

// CategoriesResponse wraps category counts.
type CategoriesResponse struct {
	Categories []models.CategoryCount `json:"categories" validate:"required"`
}

// TagsResponse wraps tag counts.
type TagsResponse struct {
	Tags []models.TagCount `json:"tags" validate:"required"`
}

// SearchResponse wraps scored search hits. Total counts all hits before
// limit truncation.
type SearchResponse struct {
	Query   string                `json:"query" example:"zen" validate:"required"`
	Results []models.SearchResult `json:"results" validate:"required"`
	Total   int                   `json:"total" example:"1" validate:"required"`
}

// SuggestResponse wraps autocomplete candidates.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions" validate:"required"`
}
