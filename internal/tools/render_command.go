package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/livingtree/grove/internal/command"
	"github.com/mark3labs/mcp-go/mcp"
)

// RenderCommandTool handles the grove_render_command MCP tool.
type RenderCommandTool struct {
	registry *command.Registry
}

// NewRenderCommandTool creates a RenderCommandTool over a registry.
func NewRenderCommandTool(registry *command.Registry) *RenderCommandTool {
	return &RenderCommandTool{registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *RenderCommandTool) Definition() mcp.Tool {
	return mcp.NewTool("grove_render_command",
		mcp.WithDescription(
			"Render a slash command's instruction body with arguments substituted "+
				"($ARGUMENTS and $1..$9). Returns the exact instructions the command "+
				"would inject, plus any tool restrictions from its frontmatter.",
		),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("Invocation name, with or without the leading slash (e.g. \"/development:create-pr\")"),
		),
		mcp.WithString("arguments",
			mcp.Description("Argument string to substitute into the command body"),
		),
	)
}

// Handle processes the grove_render_command tool call.
func (t *RenderCommandTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("command", "")
	if name == "" {
		return mcp.NewToolResultError("command is required"), nil
	}
	arguments := req.GetString("arguments", "")

	cmd, ok := t.registry.Lookup(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown command %q; run grove_list_commands to see what exists", name)), nil
	}

	body := command.Expand(cmd.Body, arguments)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cmd.Invocation())
	if len(cmd.Meta.AllowedTools) > 0 {
		fmt.Fprintf(&b, "Allowed tools: %s\n\n", strings.Join(cmd.Meta.AllowedTools, ", "))
	}
	if cmd.Meta.Model != "" {
		fmt.Fprintf(&b, "Model: %s\n\n", cmd.Meta.Model)
	}
	b.WriteString(body)

	return mcp.NewToolResultText(b.String()), nil
}
