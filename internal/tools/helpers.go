// Package tools implements the MCP tool handlers grove exposes to the
// hosting assistant.
//
// Each tool is a struct that receives its dependencies at construction
// and returns a handler compatible with mcp-go's CallToolRequest
// signature. One file per tool.
package tools

import (
	"github.com/livingtree/grove/internal/workspace"
)

// findWorkspaceRoot resolves the workspace the server operates on.
// MCP servers are launched with the project as working directory, so
// walking up from cwd mirrors how the assistant itself resolves
// .claude/ configuration.
func findWorkspaceRoot() (string, error) {
	return workspace.FindFromWd()
}

// loadMinScore reads the PRP threshold from workspace settings, falling
// back to the default when settings are missing or unreadable.
func loadMinScore(store workspace.Store, root string) int {
	settings, err := store.Load(root)
	if err != nil {
		return workspace.DefaultMinScore
	}
	return settings.EffectiveMinScore()
}
