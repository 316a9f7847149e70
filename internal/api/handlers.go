package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/articleservice"
	"github.com/halvard/skald/internal/checksum"
	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/render"
	"github.com/halvard/skald/internal/search"
)

// Handler holds API route handlers.
type Handler struct {
	svc *articleservice.Service
	// defaultSearchLimit caps search results when the request carries no
	// limit parameter. Zero means unlimited.
	defaultSearchLimit int
}

// NewHandler creates a new Handler.
func NewHandler(svc *articleservice.Service, defaultSearchLimit int) *Handler {
	return &Handler{svc: svc, defaultSearchLimit: defaultSearchLimit}
}

// ListArticles handles GET /api/articles.
//
//	@Summary		List articles, newest first, with trimmed content
//	@Tags			articles
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	ArticleListResponse
//	@Router			/articles [get]
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	articles, total, err := h.svc.ListArticles(r.Context(), limit, offset)
	if err != nil {
		slog.Error("list articles failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"articles": articles,
		"total":    total,
	})
}

// GetArticle handles GET /api/articles/*.
//
//	@Summary		Get a single article by slug
//	@Tags			articles
//	@Produce		json
//	@Param			slug	path		string	true	"Article slug"
//	@Param			render	query		string	false	"Set to html for a rendered body"
//	@Success		200		{object}	ArticleDetail
//	@Failure		404		{object}	errResponse
//	@Router			/articles/{slug} [get]
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := articleSlug(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	article, err := h.svc.GetArticle(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get article failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	etag := `"` + checksum.SumString(article.Content) + `"`
	if match := r.Header.Get("If-None-Match"); match != "" && strings.Trim(match, `"`) == strings.Trim(etag, `"`) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)

	resp := ArticleDetail{Article: *article}
	if r.URL.Query().Get("render") == "html" {
		html, renderErr := render.Article(article)
		if renderErr != nil {
			slog.Error("render article failed", slog.String("slug", slug), slog.String("error", renderErr.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
		resp.HTML = html
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListCategories handles GET /api/categories.
//
//	@Summary		List categories with article counts
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	CategoriesResponse
//	@Router			/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		slog.Error("list categories failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
	})
}

// ListByCategory handles GET /api/categories/{category}.
//
//	@Summary		List articles in a category (case-insensitive)
//	@Tags			categories
//	@Produce		json
//	@Param			category	path		string	true	"Category name"
//	@Success		200			{object}	CategoryArticlesResponse
//	@Router			/categories/{category} [get]
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("category is required"))
		return
	}
	articles, err := h.svc.ListByCategory(r.Context(), category)
	if err != nil {
		slog.Error("list by category failed", slog.String("category", category), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"articles": articles,
		"total":    len(articles),
	})
}

// ListTags handles GET /api/tags.
//
//	@Summary		List tags with occurrence counts
//	@Tags			tags
//	@Produce		json
//	@Success		200	{object}	TagsResponse
//	@Router			/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Tags(r.Context())
	if err != nil {
		slog.Error("list tags failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tags": tags,
	})
}

// Search handles GET /api/search.
//
//	@Summary		Weighted relevance search across articles
//	@Tags			search
//	@Produce		json
//	@Param			q			query		string	true	"Search query"
//	@Param			limit		query		int		false	"Max results"
//	@Param			category	query		string	false	"Pre-filter by category"
//	@Param			tags		query		string	false	"Pre-filter by tags (comma-separated, any match)"
//	@Success		200			{object}	SearchResponse
//	@Failure		400			{object}	errResponse
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = h.defaultSearchLimit
	}
	filter := search.Filter{
		Category: r.URL.Query().Get("category"),
		Tags:     splitTags(r.URL.Query().Get("tags")),
	}

	results, total, err := h.svc.Search(r.Context(), q, limit, filter)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   q,
		"results": results,
		"total":   total,
	})
}

// Suggest handles GET /api/suggest.
//
//	@Summary		Autocomplete suggestions from titles and tags
//	@Tags			search
//	@Produce		json
//	@Param			q	query		string	false	"Partial query"
//	@Success		200	{object}	SuggestResponse
//	@Router			/suggest [get]
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	suggestions, err := h.svc.Suggest(r.Context(), q)
	if err != nil {
		slog.Error("suggest failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": suggestions,
	})
}

// articleSlug extracts the slug from the URL (everything after
// /api/articles/). Slugs of nested files contain slashes, so the route uses
// a wildcard; encoded slashes from API clients are unescaped.
func articleSlug(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
