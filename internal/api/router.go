package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/skald/internal/articleservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// defaultSearchLimit applies when a search request carries no limit.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *articleservice.Service, authEnabled bool, token string, defaultSearchLimit int, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, defaultSearchLimit)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Article corpus, read-only.
	r.Get("/articles", h.ListArticles)
	r.Get("/articles/*", h.GetArticle)

	// Category and tag indexes.
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{category}", h.ListByCategory)
	r.Get("/tags", h.ListTags)

	// Search and autocomplete.
	r.Get("/search", h.Search)
	r.Get("/suggest", h.Suggest)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
