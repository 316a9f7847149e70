package mcpserver

// ArticleFormatContract describes the two article source formats the
// library accepts, for LLM consumers browsing the corpus.
const ArticleFormatContract = `# Skald Article Format Contract

Articles live as flat files in the library directory. Two formats are
accepted, distinguished by file extension. The slug is the file path with
the extension removed and must be unique across the library.

## Markdown (.md)

` + "```" + `markdown
---
title: Human-readable title         # falls back to the slug when absent
date: 2024-01-10                    # ISO date; falls back to the load date
category: tech                      # falls back to "uncategorized"
tags:                               # optional YAML list
  - zen
  - philosophy
excerpt: One-paragraph summary.     # optional
readTime: 5 min                     # optional, free-form label
image: cover.jpg                    # optional, served from /images/
author: Halvard                     # optional
---

Body text in standard Markdown.
` + "```" + `

## HTML (.html)

A single metadata comment anywhere in the document, with the same keys as
the Markdown front matter encoded as JSON. The colon after META is optional.

` + "```" + `html
<!-- META: {"title": "A title", "date": "2024-01-10", "category": "tech",
            "tags": ["zen"], "author": "Halvard"} -->
<article>
  <p>Body in HTML. Unsafe markup is stripped on load.</p>
</article>
` + "```" + `

## Rules

1. Missing metadata never rejects a file: absent fields fall back to
   defaults (title from slug, date from load time, category
   "uncategorized").
2. A malformed front matter block or META JSON payload degrades to those
   same defaults; the file still loads.
3. Two files producing the same slug (foo.md next to foo.html) conflict:
   the first in path order wins, the other is skipped.
4. Encoding is UTF-8. Titles, tags, and bodies may use any language.
`
