package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/livingtree/grove/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchTool handles the grove_search MCP tool. It is only registered
// when the catalog opened successfully.
type SearchTool struct {
	store *catalog.Store
}

// NewSearchTool creates a SearchTool over a catalog store.
func NewSearchTool(store *catalog.Store) *SearchTool {
	return &SearchTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("grove_search",
		mcp.WithDescription(
			"Full-text search across the workspace corpus: slash commands, "+
				"subagent definitions, and PRP documents. An empty query returns "+
				"recently indexed documents. The index is rebuilt on serve start; "+
				"run `grove index` to refresh it manually.",
		),
		mcp.WithString("query",
			mcp.Description("Search terms (matched against names, titles, descriptions, and content)"),
		),
		mcp.WithString("kind",
			mcp.Description("Filter by document kind: command, agent, or prp"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default 10, capped at 20)"),
		),
	)
}

// Handle processes the grove_search tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	kind := req.GetString("kind", "")
	limit := req.GetInt("limit", 10)

	if kind != "" && kind != catalog.KindCommand && kind != catalog.KindAgent && kind != catalog.KindPRP {
		return mcp.NewToolResultError(fmt.Sprintf("invalid kind %q: must be command, agent, or prp", kind)), nil
	}

	results, err := t.store.Search(query, kind, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No matches."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Search Results (%d)\n\n", len(results))
	for _, r := range results {
		title := r.Title
		if title == "" {
			title = r.Name
		}
		fmt.Fprintf(&b, "- [%s] **%s** (%s)", r.Kind, title, r.Path)
		if r.Description != "" {
			fmt.Fprintf(&b, " - %s", r.Description)
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
