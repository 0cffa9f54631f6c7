package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/livingtree/grove/internal/audit"
	"github.com/livingtree/grove/internal/inventory"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// AuditTool handles the grove_audit MCP tool.
type AuditTool struct {
	settings workspace.Store
}

// NewAuditTool creates an AuditTool with its dependencies.
func NewAuditTool(settings workspace.Store) *AuditTool {
	return &AuditTool{settings: settings}
}

// Definition returns the MCP tool definition for registration.
func (t *AuditTool) Definition() mcp.Tool {
	return mcp.NewTool("grove_audit",
		mcp.WithDescription(
			"Cross-check the workspace's documentation against its actual contents. "+
				"Finds count claims in READMEs (\"24 commands\", \"15 agents\") that no "+
				"longer match the files on disk, claims whose arithmetic is wrong, and "+
				"documents that contradict each other. Findings are reported, never "+
				"auto-fixed: present them to the user and let them decide which side is right.",
		),
	)
}

// Handle processes the grove_audit tool call.
func (t *AuditTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := findWorkspaceRoot()
	if err != nil {
		return nil, fmt.Errorf("finding workspace root: %w", err)
	}

	settings, err := t.settings.Load(root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	counts, err := inventory.Count(root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	docs := audit.DefaultDocs(root, settings.DocGlobs)
	findings := audit.Run(counts, docs)

	var b strings.Builder
	fmt.Fprintf(&b, "# Documentation Audit\n\n")
	fmt.Fprintf(&b, "Actual counts: %d commands, %d agents, %d PRPs.\n\n",
		counts.Commands, counts.Agents, counts.PRPs)

	if len(findings) == 0 {
		b.WriteString("No inconsistencies found; every documented count matches the workspace.\n")
		return mcp.NewToolResultText(b.String()), nil
	}

	fmt.Fprintf(&b, "## Findings (%d)\n\n", len(findings))
	for _, f := range findings {
		location := ""
		if f.File != "" {
			location = fmt.Sprintf(" (%s:%d)", f.File, f.Line)
		}
		fmt.Fprintf(&b, "- **%s**: %s%s\n", f.Severity, f.Message, location)
	}
	b.WriteString("\nThese are documentation defects. Do not silently edit the numbers; " +
		"surface them to the user, who knows which total was intended.\n")

	return mcp.NewToolResultText(b.String()), nil
}
