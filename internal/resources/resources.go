// Package resources implements MCP resource handlers for the workspace.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (grove://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/livingtree/grove/internal/command"
	"github.com/livingtree/grove/internal/inventory"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages grove resource endpoints.
type Handler struct {
	settings workspace.Store
	registry *command.Registry
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(settings workspace.Store, registry *command.Registry) *Handler {
	return &Handler{settings: settings, registry: registry}
}

// status is the JSON shape served by the workspace status resource.
type status struct {
	Root       string   `json:"root"`
	Project    string   `json:"project,omitempty"`
	MinScore   int      `json:"min_score"`
	Commands   int      `json:"commands"`
	Agents     int      `json:"agents"`
	PRPs       int      `json:"prps"`
	Namespaces []string `json:"namespaces,omitempty"`
	LoadErrors []string `json:"load_errors,omitempty"`
}

// StatusResource returns the MCP resource definition for workspace status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"grove://workspace/status",
		"Workspace Status",
		mcp.WithResourceDescription("Current workspace root, artifact counts, namespaces, and settings"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the current workspace status as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	root, err := workspace.FindFromWd()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	settings, err := h.settings.Load(root)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	counts, err := inventory.Count(root)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	st := status{
		Root:       root,
		Project:    settings.Project,
		MinScore:   settings.EffectiveMinScore(),
		Commands:   counts.Commands,
		Agents:     counts.Agents,
		PRPs:       counts.PRPs,
		Namespaces: h.registry.Namespaces(),
	}
	for _, e := range h.registry.Errors() {
		st.LoadErrors = append(st.LoadErrors, e.Error())
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
