package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// snippetLength is the total snippet window for content highlights.
	snippetLength = 200
	// snippetLeadIn is how many characters of left context precede the
	// first query occurrence in a snippet.
	snippetLeadIn = 50
)

// Highlight wraps every case-insensitive occurrence of query in text with a
// <mark> tag. The query is escaped first, so regex metacharacters in user
// input are matched literally.
func Highlight(text, query string) string {
	if text == "" || query == "" {
		return text
	}
	re, err := regexp.Compile(`(?i)(` + regexp.QuoteMeta(query) + `)`)
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, "<mark>$1</mark>")
}

// Snippet extracts a bounded window of content around the first occurrence
// of query. Windows are measured in runes so multi-byte text is never cut
// mid-character. When the query is absent as a literal substring (a weak
// token-overlap match) the snippet is simply the leading maxLen runes.
func Snippet(content, query string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = snippetLength
	}
	runes := []rune(content)
	if content == "" || query == "" {
		return truncateRunes(runes, maxLen)
	}

	idx := runeIndexFold(content, query)
	if idx < 0 {
		return truncateRunes(runes, maxLen)
	}

	start := idx - snippetLeadIn
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > len(runes) {
		end = len(runes)
	}

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(runes) {
		snippet += "..."
	}
	return snippet
}

func truncateRunes(runes []rune, maxLen int) string {
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen])
}

// runeIndexFold returns the rune offset of the first case-insensitive
// occurrence of query in content, or -1.
func runeIndexFold(content, query string) int {
	lc := strings.ToLower(content)
	lq := strings.ToLower(query)
	byteIdx := strings.Index(lc, lq)
	if byteIdx < 0 {
		return -1
	}
	return utf8.RuneCountInString(lc[:byteIdx])
}
