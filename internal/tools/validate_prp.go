package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/livingtree/grove/internal/prp"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// ValidatePRPTool handles the grove_validate_prp MCP tool.
type ValidatePRPTool struct {
	settings workspace.Store
}

// NewValidatePRPTool creates a ValidatePRPTool with its dependencies.
func NewValidatePRPTool(settings workspace.Store) *ValidatePRPTool {
	return &ValidatePRPTool{settings: settings}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidatePRPTool) Definition() mcp.Tool {
	return mcp.NewTool("grove_validate_prp",
		mcp.WithDescription(
			"Validate a PRP (Product Requirement Prompt) document before executing it. "+
				"Checks the six required sections (Goal, Why, What, All Needed Context, "+
				"Implementation Blueprint, Validation Loop) and scores the document for "+
				"project-specific grounding: package manager usage, container setup, and "+
				"runnable validation commands. Run this before implementing any PRP; "+
				"an incomplete PRP is the fastest route to hallucinated code.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PRP file, relative to the workspace root (e.g. PRPs/auto-draft-settings.md)"),
		),
		mcp.WithNumber("min_score",
			mcp.Description("Override the validity threshold (default from workspace settings, normally 8)"),
		),
	)
}

// Handle processes the grove_validate_prp tool call.
func (t *ValidatePRPTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	root, err := findWorkspaceRoot()
	if err != nil {
		return nil, fmt.Errorf("finding workspace root: %w", err)
	}

	minScore := req.GetInt("min_score", loadMinScore(t.settings, root))

	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(root, path)
	}

	report := prp.ValidateFile(resolved, minScore)
	report.Path = path

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}

	summary := "PRP is valid"
	switch {
	case report.Error != "":
		summary = "PRP could not be read: " + report.Error
	case len(report.MissingSections) > 0:
		summary = fmt.Sprintf("PRP is incomplete: %d required section(s) missing", len(report.MissingSections))
	case !report.Valid:
		summary = fmt.Sprintf("PRP scores %d, below the threshold of %d; add concrete build/test/container context", report.Score, minScore)
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n```json\n%s\n```", summary, data)), nil
}
