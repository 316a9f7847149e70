package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halvard/skald/internal/articleservice"
	"github.com/halvard/skald/internal/corpus"
	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/testutil"
)

func newTestServer(t *testing.T) (string, *httptest.Server) {
	t.Helper()
	dir, store := testutil.TestLibrary(t)
	repo := corpus.NewRepository(store, slog.Default(), false)
	svc := articleservice.NewService(repo)
	router := NewRouter(svc, false, "", 0, nil)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return dir, srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func seedLibrary(t *testing.T, dir string) {
	t.Helper()
	testutil.WriteFile(t, dir, "zen.md",
		"---\ntitle: 禅意编程\ndate: \"2024-03-01\"\ncategory: tech\ntags:\n  - 编程\n  - zen\n---\n编程是一种修行。\n")
	testutil.WriteFile(t, dir, "go-basics.md",
		"---\ntitle: Go Basics\ndate: \"2024-01-15\"\ncategory: tech\ntags:\n  - golang\nexcerpt: Getting started with Go\n---\nGo is a compiled language.\n")
	testutil.WriteFile(t, dir, "essay.html",
		`<!-- META: {"title": "An Essay", "date": "2022-07-01", "category": "essays"} --><p>Essay body.</p>`)
}

func TestListArticles(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Articles []models.Article `json:"articles"`
		Total    int              `json:"total"`
	}
	if code := getJSON(t, srv.URL+"/articles", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body.Total != 3 {
		t.Errorf("total = %d", body.Total)
	}
	if len(body.Articles) != 3 {
		t.Fatalf("got %d articles", len(body.Articles))
	}
	// Newest first.
	if body.Articles[0].Slug != "zen" || body.Articles[2].Slug != "essay" {
		t.Errorf("order: %s .. %s", body.Articles[0].Slug, body.Articles[2].Slug)
	}
}

func TestListArticles_Pagination(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Articles []models.Article `json:"articles"`
		Total    int              `json:"total"`
	}
	getJSON(t, srv.URL+"/articles?limit=1&offset=1", &body)
	if body.Total != 3 {
		t.Errorf("total = %d, want full corpus size", body.Total)
	}
	if len(body.Articles) != 1 || body.Articles[0].Slug != "go-basics" {
		t.Errorf("page = %+v", body.Articles)
	}
}

func TestGetArticle(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body models.Article
	if code := getJSON(t, srv.URL+"/articles/go-basics", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body.Title != "Go Basics" {
		t.Errorf("title = %q", body.Title)
	}
	if !strings.Contains(body.Content, "compiled language") {
		t.Errorf("content = %q", body.Content)
	}
}

func TestGetArticle_NotFound(t *testing.T) {
	_, srv := newTestServer(t)
	if code := getJSON(t, srv.URL+"/articles/missing", nil); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestGetArticle_ETag(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	resp, err := http.Get(srv.URL + "/articles/go-basics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag header")
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/articles/go-basics", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Errorf("status = %d, want 304", resp2.StatusCode)
	}
}

func TestGetArticle_RenderHTML(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		models.Article
		HTML string `json:"html"`
	}
	getJSON(t, srv.URL+"/articles/go-basics?render=html", &body)
	if !strings.Contains(body.HTML, "<p>") {
		t.Errorf("html = %q", body.HTML)
	}
}

func TestListCategories(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Categories []models.CategoryCount `json:"categories"`
	}
	getJSON(t, srv.URL+"/categories", &body)
	if len(body.Categories) != 2 {
		t.Fatalf("got %d categories", len(body.Categories))
	}
	if body.Categories[0].Name != "tech" || body.Categories[0].Count != 2 {
		t.Errorf("categories[0] = %+v", body.Categories[0])
	}
}

func TestListByCategory(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Category string           `json:"category"`
		Articles []models.Article `json:"articles"`
		Total    int              `json:"total"`
	}
	getJSON(t, srv.URL+"/categories/TECH", &body)
	if body.Total != 2 {
		t.Errorf("total = %d", body.Total)
	}
}

func TestListByCategory_UnknownIsEmpty(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Articles []models.Article `json:"articles"`
		Total    int              `json:"total"`
	}
	getJSON(t, srv.URL+"/categories/nope", &body)
	if body.Total != 0 || body.Articles == nil {
		t.Errorf("body = %+v, want empty non-null list", body)
	}
}

func TestListTags(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Tags []models.TagCount `json:"tags"`
	}
	getJSON(t, srv.URL+"/tags", &body)
	if len(body.Tags) != 3 {
		t.Errorf("got %d tags: %+v", len(body.Tags), body.Tags)
	}
}

func TestSearch(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Query   string                `json:"query"`
		Results []models.SearchResult `json:"results"`
		Total   int                   `json:"total"`
	}
	if code := getJSON(t, srv.URL+"/search?q=%E7%BC%96%E7%A8%8B", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body.Query != "编程" {
		t.Errorf("query = %q", body.Query)
	}
	if body.Total != 1 || len(body.Results) != 1 {
		t.Fatalf("total = %d, results = %d", body.Total, len(body.Results))
	}
	r := body.Results[0]
	if r.Article.Slug != "zen" {
		t.Errorf("slug = %q", r.Article.Slug)
	}
	if r.Highlights["title"] != "禅意<mark>编程</mark>" {
		t.Errorf("highlight = %q", r.Highlights["title"])
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	_, srv := newTestServer(t)
	var body struct {
		Error string `json:"error"`
	}
	if code := getJSON(t, srv.URL+"/search", &body); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
	if body.Error == "" {
		t.Error("expected error message")
	}
}

func TestSearch_NoHitsReturnsEmptyList(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Results []models.SearchResult `json:"results"`
		Total   int                   `json:"total"`
	}
	getJSON(t, srv.URL+"/search?q=quantum", &body)
	if body.Total != 0 || body.Results == nil {
		t.Errorf("body = %+v, want empty non-null results", body)
	}
}

func TestSearch_CategoryFilter(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Total int `json:"total"`
	}
	// "essay" matches the essays article title; filtering by tech excludes it.
	getJSON(t, srv.URL+"/search?q=essay&category=tech", &body)
	if body.Total != 0 {
		t.Errorf("total = %d, want 0 after category filter", body.Total)
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	dir, store := testutil.TestLibrary(t)
	seedLibrary(t, dir)
	repo := corpus.NewRepository(store, slog.Default(), false)
	svc := articleservice.NewService(repo)
	srv := httptest.NewServer(NewRouter(svc, false, "", 1, nil))
	t.Cleanup(srv.Close)

	var body struct {
		Results []models.SearchResult `json:"results"`
		Total   int                   `json:"total"`
	}
	// Both tech articles match by category; the configured default caps the page.
	getJSON(t, srv.URL+"/search?q=tech", &body)
	if body.Total != 2 {
		t.Errorf("total = %d, want 2", body.Total)
	}
	if len(body.Results) != 1 {
		t.Errorf("results = %d, want default limit of 1", len(body.Results))
	}
}

func TestSuggest(t *testing.T) {
	dir, srv := newTestServer(t)
	seedLibrary(t, dir)

	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	getJSON(t, srv.URL+"/suggest?q=gol", &body)
	if len(body.Suggestions) != 1 || body.Suggestions[0] != "golang" {
		t.Errorf("suggestions = %v", body.Suggestions)
	}
}

func TestAuthMiddleware(t *testing.T) {
	dir, store := testutil.TestLibrary(t)
	_ = dir
	repo := corpus.NewRepository(store, slog.Default(), false)
	svc := articleservice.NewService(repo)
	srv := httptest.NewServer(NewRouter(svc, true, "secret", 0, nil))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/articles")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/articles", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", resp2.StatusCode)
	}
}
