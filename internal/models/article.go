// Package models defines the domain types for Skald.
package models

// Format identifies the source format of an article body and therefore the
// render path downstream consumers must use.
type Format string

const (
	// FormatMarkdown means Content holds raw Markdown text.
	FormatMarkdown Format = "markdown"
	// FormatHTML means Content holds sanitized HTML.
	FormatHTML Format = "html"
)

// CategoryUncategorized is the sentinel category assigned when a source file
// carries no category metadata.
const CategoryUncategorized = "uncategorized"

// ArticleMeta holds the metadata parsed from an article source file.
type ArticleMeta struct {
	Title    string   `json:"title" yaml:"title"`
	Date     string   `json:"date" yaml:"date"`
	Category string   `json:"category" yaml:"category"`
	Tags     []string `json:"tags" yaml:"tags"`
	Excerpt  string   `json:"excerpt,omitempty" yaml:"excerpt"`
	ReadTime string   `json:"readTime,omitempty" yaml:"readTime"`
	Image    string   `json:"image,omitempty" yaml:"image"`
	Author   string   `json:"author,omitempty" yaml:"author"`
}

// Article is a fully normalized article from the library.
//
// Slug is derived from the source file path with the extension removed and is
// unique across the corpus. Content is the raw Markdown body or, for HTML
// articles, the sanitized HTML body with the metadata comment stripped.
type Article struct {
	ArticleMeta
	Slug    string `json:"slug"`
	Content string `json:"content"`
	Format  Format `json:"format"`
}

// IsMarkdown reports whether the article body is Markdown.
func (a *Article) IsMarkdown() bool { return a.Format == FormatMarkdown }

// CategoryCount is a category name with the number of articles in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TagCount is a tag name with the number of articles carrying it.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SearchResult is one scored hit produced by the search engine.
//
// MatchedFields lists, in field order, every field whose raw similarity was
// above zero. Highlights carries marked-up variants of the title, excerpt,
// and a content snippet when those fields matched.
type SearchResult struct {
	Article       Article           `json:"article"`
	Score         float64           `json:"score"`
	MatchedFields []string          `json:"matchedFields"`
	Highlights    map[string]string `json:"highlights,omitempty"`
}
