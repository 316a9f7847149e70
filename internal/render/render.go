// Package render turns article bodies into display-ready HTML.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	renderhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/halvard/skald/internal/models"
)

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			renderhtml.WithUnsafe(),
		),
	)
	htmlSanitizer = bluemonday.UGCPolicy()
)

// Markdown renders Markdown source to HTML and sanitizes the result.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render: markdown: %w", err)
	}
	return string(htmlSanitizer.SanitizeBytes(buf.Bytes())), nil
}

// SanitizeHTML strips unsafe markup from an HTML article body. Applied at
// normalize time so Article.Content always carries sanitized HTML.
func SanitizeHTML(src string) string {
	return htmlSanitizer.Sanitize(src)
}

// Article returns the display HTML for an article, dispatching on its format.
func Article(a *models.Article) (string, error) {
	switch a.Format {
	case models.FormatMarkdown:
		return Markdown(a.Content)
	case models.FormatHTML:
		// Sanitized during normalization.
		return a.Content, nil
	default:
		return "", fmt.Errorf("render: unknown format %q", a.Format)
	}
}
