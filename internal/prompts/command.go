// Package prompts bridges slash-command files to MCP prompts. Every
// command discovered in the workspace is registered as a prompt named
// after its invocation key, so hosts that speak MCP get the same canned
// workflows that .claude/commands/ provides natively.
package prompts

import (
	"context"
	"fmt"

	"github.com/livingtree/grove/internal/command"
	"github.com/mark3labs/mcp-go/mcp"
)

// CommandPrompt serves one slash command as an MCP prompt.
type CommandPrompt struct {
	registry *command.Registry
	key      string
}

// NewCommandPrompt creates a prompt handler for the command with the
// given registry key. The command is looked up per request so watch-mode
// edits take effect without re-registration.
func NewCommandPrompt(registry *command.Registry, key string) *CommandPrompt {
	return &CommandPrompt{registry: registry, key: key}
}

// Definition returns the MCP prompt definition for registration.
// Prompt names cannot contain "/", so the invocation key is used as-is
// (e.g. "development:create-pr").
func (p *CommandPrompt) Definition() mcp.Prompt {
	cmd, ok := p.registry.Lookup(p.key)
	if !ok {
		return mcp.NewPrompt(p.key)
	}

	description := cmd.Meta.Description
	if description == "" {
		description = fmt.Sprintf("Run the %s slash command", cmd.Invocation())
	}

	argDescription := "Arguments substituted for $ARGUMENTS in the command body"
	if cmd.Meta.ArgumentHint != "" {
		argDescription = fmt.Sprintf("Arguments, e.g. %s", cmd.Meta.ArgumentHint)
	}

	return mcp.NewPrompt(p.key,
		mcp.WithPromptDescription(description),
		mcp.WithArgument("arguments",
			mcp.ArgumentDescription(argDescription),
		),
	)
}

// Handle renders the command body with the supplied arguments.
func (p *CommandPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	cmd, ok := p.registry.Lookup(p.key)
	if !ok {
		return nil, fmt.Errorf("command %q no longer exists", p.key)
	}

	arguments := ""
	if args := req.Params.Arguments; args != nil {
		arguments = args["arguments"]
	}

	body := command.Expand(cmd.Body, arguments)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Slash command %s", cmd.Invocation()),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(body),
			},
		},
	}, nil
}
