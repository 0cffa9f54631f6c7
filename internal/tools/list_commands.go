package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/livingtree/grove/internal/command"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListCommandsTool handles the grove_list_commands MCP tool.
type ListCommandsTool struct {
	registry *command.Registry
}

// NewListCommandsTool creates a ListCommandsTool over a registry.
func NewListCommandsTool(registry *command.Registry) *ListCommandsTool {
	return &ListCommandsTool{registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *ListCommandsTool) Definition() mcp.Tool {
	return mcp.NewTool("grove_list_commands",
		mcp.WithDescription(
			"List the workspace's slash commands with their descriptions and "+
				"argument hints. Use this to discover what canned workflows exist "+
				"before writing an ad-hoc plan.",
		),
		mcp.WithString("namespace",
			mcp.Description("Only list commands in this namespace (e.g. \"development\")"),
		),
	)
}

// Handle processes the grove_list_commands tool call.
func (t *ListCommandsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	namespace := req.GetString("namespace", "")

	commands := t.registry.List()
	var b strings.Builder
	b.WriteString("# Slash Commands\n\n")

	n := 0
	for _, cmd := range commands {
		if namespace != "" && cmd.Namespace != namespace {
			continue
		}
		n++
		fmt.Fprintf(&b, "- `%s`", cmd.Invocation())
		if cmd.Meta.ArgumentHint != "" {
			fmt.Fprintf(&b, " `%s`", cmd.Meta.ArgumentHint)
		}
		if cmd.Meta.Description != "" {
			fmt.Fprintf(&b, " - %s", cmd.Meta.Description)
		}
		b.WriteString("\n")
	}

	if n == 0 {
		if namespace != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No commands in namespace %q.", namespace)), nil
		}
		return mcp.NewToolResultText("No slash commands found under .claude/commands/."), nil
	}

	fmt.Fprintf(&b, "\n%d command(s).\n", n)

	if errs := t.registry.Errors(); len(errs) > 0 {
		fmt.Fprintf(&b, "\n## Load errors (%d)\n\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(&b, "- %s\n", e.Error())
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
