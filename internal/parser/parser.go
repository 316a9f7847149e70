// Package parser extracts article metadata and bodies from the two source
// formats: Markdown with YAML front matter, and HTML with an embedded
// <!-- META: {JSON} --> comment.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta holds the raw metadata fields an article source file may declare.
// Absent fields stay zero; the corpus loader applies defaults.
type Meta struct {
	Title    string   `yaml:"title" json:"title"`
	Date     string   `yaml:"date" json:"date"`
	Category string   `yaml:"category" json:"category"`
	Tags     []string `yaml:"tags" json:"tags"`
	Excerpt  string   `yaml:"excerpt" json:"excerpt"`
	ReadTime string   `yaml:"readTime" json:"readTime"`
	Image    string   `yaml:"image" json:"image"`
	Author   string   `yaml:"author" json:"author"`
}

// Result holds the output of parsing one article source file.
type Result struct {
	Meta Meta
	Body string
}

// The META marker accepts an optional colon: <!-- META: {...} --> and
// <!-- META {...} --> are both valid.
var metaOpenRe = regexp.MustCompile(`<!--\s*META:?\s*`)

const commentClose = "-->"

// ParseMarkdown separates YAML front matter (between leading --- delimiters)
// from the Markdown body. Missing or invalid front matter is not an error:
// the whole file becomes the body and Meta stays zero.
func ParseMarkdown(data []byte) *Result {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return &Result{Body: string(data)}
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter, treat everything as body.
		return &Result{Body: string(data)}
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var meta Meta
	if err := yaml.Unmarshal(yamlBlock, &meta); err != nil {
		return &Result{Body: string(data)}
	}
	return &Result{Meta: meta, Body: body}
}

// ParseHTML extracts the metadata comment from an HTML article.
//
// A syntactically complete comment is stripped from the body even when its
// JSON payload is malformed; in that case Meta stays zero and an error is
// returned so the caller can log the degradation. When no complete comment
// exists the whole file (trimmed) becomes the body.
func ParseHTML(data []byte) (*Result, error) {
	s := string(data)

	loc := metaOpenRe.FindStringIndex(s)
	if loc == nil {
		return &Result{Body: strings.TrimSpace(s)}, nil
	}
	end := strings.Index(s[loc[1]:], commentClose)
	if end < 0 {
		// Opening marker but no closing -->; leave the body untouched.
		return &Result{Body: strings.TrimSpace(s)}, nil
	}

	payload := strings.TrimSpace(s[loc[1] : loc[1]+end])
	body := strings.TrimSpace(s[:loc[0]] + s[loc[1]+end+len(commentClose):])

	var meta Meta
	if err := json.Unmarshal([]byte(payload), &meta); err != nil {
		return &Result{Body: body}, fmt.Errorf("parser: metadata JSON: %w", err)
	}
	return &Result{Meta: meta, Body: body}, nil
}
