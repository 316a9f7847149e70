// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes read-only Skald tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halvard/skald/internal/articleservice"
	"github.com/halvard/skald/internal/search"
)

// Server wraps the MCP server with Skald tools. The article library is
// read-only, so every tool is a query.
type Server struct {
	mcp *server.MCPServer
	svc *articleservice.Service
}

// New creates a new MCP server with all Skald tools registered.
func New(svc *articleservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Skald",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_articles",
		mcp.WithDescription("Weighted relevance search across article titles, tags, categories, excerpts, content, and authors."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchArticles)

	s.mcp.AddTool(mcp.NewTool("read_article",
		mcp.WithDescription("Read the full content and metadata of an article by slug."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Article slug (file path stem, e.g. guides/zen)")),
	), s.readArticle)

	s.mcp.AddTool(mcp.NewTool("list_articles",
		mcp.WithDescription("List all articles, newest first, with trimmed content."),
		mcp.WithString("category", mcp.Description("Optional category filter (case-insensitive)")),
	), s.listArticles)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List categories with article counts."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List tags with occurrence counts."),
	), s.listTags)

	// Resource: article source format contract.
	s.mcp.AddResource(
		mcp.NewResource("skald://article-format", "Article Format Contract",
			mcp.WithResourceDescription("The two article source formats Skald understands."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readArticleFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, _, err := s.svc.Search(ctx, query, 20, search.Filter{})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	article, err := s.svc.GetArticle(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	out, _ := json.MarshalIndent(article, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := ""
	if c, err := req.RequireString("category"); err == nil {
		category = c
	}

	var slugs []string
	if category != "" {
		articles, err := s.svc.ListByCategory(ctx, category)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		for _, a := range articles {
			slugs = append(slugs, a.Slug)
		}
	} else {
		articles, _, err := s.svc.ListArticles(ctx, 0, 0)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		for _, a := range articles {
			slugs = append(slugs, a.Slug)
		}
	}
	return mcp.NewToolResultText(strings.Join(slugs, "\n")), nil
}

func (s *Server) listCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := s.svc.Categories(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(categories, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.svc.Tags(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(tags, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readArticleFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "skald://article-format",
			MIMEType: "text/markdown",
			Text:     ArticleFormatContract,
		},
	}, nil
}
