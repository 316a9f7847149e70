// Package corpus loads and normalizes the article library and answers
// collection queries over it.
package corpus

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/parser"
	"github.com/halvard/skald/internal/render"
	"github.com/halvard/skald/internal/storage"
)

// dateLayouts are tried in order when sorting articles by date.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Repository loads articles from storage and serves collection queries.
//
// With caching disabled every call re-reads and re-parses the full library
// (always fresh, acceptable for tens of articles). With caching enabled the
// parsed snapshot is kept until Invalidate is called; the library watcher
// invalidates on every file change, so reads stay consistent.
type Repository struct {
	store  storage.Provider
	logger *slog.Logger
	cache  bool

	mu     sync.RWMutex
	loaded []models.Article // nil when no valid snapshot exists
}

// NewRepository creates a Repository. cache enables the in-memory snapshot.
func NewRepository(store storage.Provider, logger *slog.Logger, cache bool) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger, cache: cache}
}

// Invalidate drops the cached snapshot so the next read reloads from disk.
func (r *Repository) Invalidate() {
	r.mu.Lock()
	r.loaded = nil
	r.mu.Unlock()
}

// Articles returns every article sorted by date descending. Articles with
// equal or unparseable dates keep their load order (library path order).
func (r *Repository) Articles() ([]models.Article, error) {
	if r.cache {
		r.mu.RLock()
		cached := r.loaded
		r.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
	}

	articles, err := r.load()
	if err != nil {
		return nil, err
	}

	if r.cache {
		r.mu.Lock()
		r.loaded = articles
		r.mu.Unlock()
	}
	return articles, nil
}

// ArticleBySlug returns the article with the given slug or apperr.ErrNotFound.
func (r *Repository) ArticleBySlug(slug string) (*models.Article, error) {
	articles, err := r.Articles()
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].Slug == slug {
			return &articles[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

// ArticlesByCategory returns articles whose category equals the given one,
// compared case-insensitively, preserving date-descending order.
func (r *Repository) ArticlesByCategory(category string) ([]models.Article, error) {
	articles, err := r.Articles()
	if err != nil {
		return nil, err
	}
	var out []models.Article
	for _, a := range articles {
		if strings.EqualFold(a.Category, category) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Categories returns distinct categories with article counts, sorted by
// count descending. Ties keep first-seen order.
func (r *Repository) Categories() ([]models.CategoryCount, error) {
	articles, err := r.Articles()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	var order []string
	for _, a := range articles {
		if counts[a.Category] == 0 {
			order = append(order, a.Category)
		}
		counts[a.Category]++
	}
	out := make([]models.CategoryCount, 0, len(order))
	for _, name := range order {
		out = append(out, models.CategoryCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// Tags returns distinct tags with counts over the flattened tag multiset of
// all articles, sorted by count descending. Ties keep first-seen order.
func (r *Repository) Tags() ([]models.TagCount, error) {
	articles, err := r.Articles()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	var order []string
	for _, a := range articles {
		for _, tag := range a.Tags {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	out := make([]models.TagCount, 0, len(order))
	for _, name := range order {
		out = append(out, models.TagCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// load reads and normalizes every article file. A single unreadable file is
// logged and skipped; it never aborts the load. Duplicate slugs (e.g. foo.md
// next to foo.html) are resolved deterministically: the listing is sorted by
// path and the first file wins, later duplicates are skipped with a warning.
func (r *Repository) load() ([]models.Article, error) {
	files, err := r.store.List("")
	if err != nil {
		return nil, fmt.Errorf("corpus: list library: %w", err)
	}

	seen := make(map[string]string, len(files)) // slug -> winning path
	articles := make([]models.Article, 0, len(files))
	for _, f := range files {
		data, err := r.store.Read(f.Path)
		if err != nil {
			r.logger.Warn("corpus: read failed, skipping",
				slog.String("path", f.Path),
				slog.String("error", err.Error()))
			continue
		}
		a := r.normalize(f.Path, data)
		if prev, dup := seen[a.Slug]; dup {
			r.logger.Warn("corpus: duplicate slug, skipping",
				slog.String("path", f.Path),
				slog.String("slug", a.Slug),
				slog.String("kept", prev))
			continue
		}
		seen[a.Slug] = f.Path
		articles = append(articles, a)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return parseDate(articles[i].Date).After(parseDate(articles[j].Date))
	})
	return articles, nil
}

// normalize builds an Article from one source file, applying defaults for
// absent or unparseable metadata: title falls back to the slug, date to
// today, category to the uncategorized sentinel.
func (r *Repository) normalize(path string, data []byte) models.Article {
	slug := slugFromPath(path)

	var res *parser.Result
	format := models.FormatMarkdown
	if strings.HasSuffix(path, ".md") {
		res = parser.ParseMarkdown(data)
	} else {
		format = models.FormatHTML
		var err error
		res, err = parser.ParseHTML(data)
		if err != nil {
			r.logger.Warn("corpus: metadata parse failed, using defaults",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		res.Body = render.SanitizeHTML(res.Body)
	}

	meta := res.Meta
	if meta.Title == "" {
		meta.Title = slug
	}
	if meta.Date == "" {
		meta.Date = time.Now().Format("2006-01-02")
	}
	if meta.Category == "" {
		meta.Category = models.CategoryUncategorized
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}

	return models.Article{
		ArticleMeta: models.ArticleMeta{
			Title:    meta.Title,
			Date:     meta.Date,
			Category: meta.Category,
			Tags:     meta.Tags,
			Excerpt:  meta.Excerpt,
			ReadTime: meta.ReadTime,
			Image:    meta.Image,
			Author:   meta.Author,
		},
		Slug:    slug,
		Content: res.Body,
		Format:  format,
	}
}

// slugFromPath strips the article extension from the relative path. Nested
// files keep their directory prefix ("guides/go.md" -> "guides/go") so slugs
// stay unique across subdirectories.
func slugFromPath(path string) string {
	path = strings.TrimSuffix(path, ".md")
	path = strings.TrimSuffix(path, ".html")
	return path
}

// parseDate parses an ISO-like date. Unparseable dates return the zero time
// so they sort as oldest.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
