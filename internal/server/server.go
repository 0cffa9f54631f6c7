// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here; only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/livingtree/grove/internal/catalog"
	"github.com/livingtree/grove/internal/command"
	"github.com/livingtree/grove/internal/prompts"
	"github.com/livingtree/grove/internal/resources"
	"github.com/livingtree/grove/internal/tools"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned registry is shared with the caller so watch mode can be
// attached from the command layer. The cleanup function closes the
// catalog's database connection and must be called on shutdown
// (typically via defer). It is always non-nil and safe to call even if
// catalog init failed.
func New() (*server.MCPServer, *command.Registry, func(), error) {
	// --- Create shared dependencies ---

	root, err := workspace.FindFromWd()
	if err != nil {
		return nil, nil, noop, fmt.Errorf("locating workspace: %w", err)
	}

	settings := workspace.NewFileStore()

	registry := command.NewRegistry(workspace.CommandsPath(root))
	if err := registry.Reload(); err != nil {
		return nil, nil, noop, fmt.Errorf("loading commands: %w", err)
	}
	for _, e := range registry.Errors() {
		log.Printf("WARNING: %v", e)
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"grove",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register workspace tools ---

	listTool := tools.NewListCommandsTool(registry)
	s.AddTool(listTool.Definition(), listTool.Handle)

	renderTool := tools.NewRenderCommandTool(registry)
	s.AddTool(renderTool.Definition(), renderTool.Handle)

	validateTool := tools.NewValidatePRPTool(settings)
	s.AddTool(validateTool.Definition(), validateTool.Handle)

	auditTool := tools.NewAuditTool(settings)
	s.AddTool(auditTool.Definition(), auditTool.Handle)

	// --- Register the search catalog ---
	//
	// The catalog is an independent subsystem: if SQLite fails to open,
	// the command/agent/PRP tools continue working. We log a warning and
	// skip grove_search registration.

	cleanup := noop
	store, catErr := catalog.New(catalog.DefaultConfig())
	if catErr != nil {
		log.Printf("WARNING: search catalog disabled: %v", catErr)
	} else {
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Printf("WARNING: catalog close: %v", err)
			}
		}

		docs, err := catalog.Collect(root)
		if err != nil {
			log.Printf("WARNING: catalog collect: %v", err)
		} else if _, err := store.Reindex(docs); err != nil {
			log.Printf("WARNING: catalog reindex: %v", err)
		}

		searchTool := tools.NewSearchTool(store)
		s.AddTool(searchTool.Definition(), searchTool.Handle)
	}

	// --- Register prompts ---
	//
	// Every slash command doubles as an MCP prompt, so hosts without
	// native .claude/commands/ support still get the canned workflows.

	for _, cmd := range registry.List() {
		p := prompts.NewCommandPrompt(registry, cmd.Key())
		s.AddPrompt(p.Definition(), p.Handle)
	}

	// --- Register resources ---

	resourceHandler := resources.NewHandler(settings, registry)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, registry, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the catalog
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use grove effectively.
func serverInstructions() string {
	return `You have access to grove, a workspace server for AI-assisted projects.

The workspace convention:
- Slash commands live in .claude/commands/<namespace>/<command>.md and are
  invoked as /namespace:command [arguments]. Each file has YAML frontmatter
  (description, allowed-tools, argument-hint) and a markdown body where
  $ARGUMENTS is replaced with the invocation arguments.
- Subagent definitions live in .claude/agents/<name>.md with name,
  description, model, and tools frontmatter above a system prompt.
- PRPs (Product Requirement Prompts) live in PRPs/. A PRP is a planning
  document with six required sections (Goal, Why, What, All Needed Context,
  Implementation Blueprint, Validation Loop) and executable validation
  gates. A PRP scoring below the workspace minimum is not ready to execute.

How to use the tools:
- grove_list_commands: discover canned workflows before planning ad hoc.
- grove_render_command: see exactly what a slash command would instruct,
  with arguments substituted.
- grove_validate_prp: check a PRP before executing it. If it is invalid,
  report the missing sections; do NOT silently edit the PRP to pass.
- grove_audit: cross-check documented counts (e.g. "24 commands") against
  the actual files. Audit findings are reported, never auto-fixed: a count
  mismatch can mean missing files, not just a stale README.
- grove_search: full-text search across commands, agents, and PRPs.

The grove://workspace/status resource reports the workspace root, artifact
counts, and settings as JSON.

Every slash command is also exposed as an MCP prompt named
namespace:command, taking a single "arguments" argument.`
}
