package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/livingtree/grove/internal/agent"
	"github.com/livingtree/grove/internal/command"
	"github.com/livingtree/grove/internal/prp"
	"github.com/livingtree/grove/internal/workspace"
)

// Collect gathers every indexable document from a workspace: loaded
// slash commands, subagent definitions, and PRP files. Files that fail
// to load are simply absent from the index; lint is the place that
// reports them.
func Collect(root string) ([]Document, error) {
	var docs []Document

	registry := command.NewRegistry(workspace.CommandsPath(root))
	if err := registry.Reload(); err != nil {
		return nil, err
	}
	for _, cmd := range registry.List() {
		docs = append(docs, Document{
			Kind:        KindCommand,
			Name:        cmd.Invocation(),
			Path:        cmd.Path,
			Title:       firstHeading(cmd.Body),
			Description: cmd.Meta.Description,
			Content:     cmd.Body,
		})
	}

	agents, _, err := agent.LoadDir(workspace.AgentsPath(root))
	if err != nil {
		return nil, err
	}
	for _, a := range agents {
		docs = append(docs, Document{
			Kind:        KindAgent,
			Name:        a.Name,
			Path:        a.Path,
			Title:       firstHeading(a.SystemPrompt),
			Description: a.Description,
			Content:     a.SystemPrompt,
		})
	}

	reports, err := prp.ValidateDir(workspace.PRPsPath(root), workspace.DefaultMinScore)
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		data, err := os.ReadFile(r.Path)
		if err != nil {
			continue
		}
		content := string(data)
		docs = append(docs, Document{
			Kind:        KindPRP,
			Name:        strings.TrimSuffix(filepath.Base(r.Path), ".md"),
			Path:        r.Path,
			Title:       firstHeading(content),
			Description: string(r.Status),
			Content:     content,
		})
	}

	return docs, nil
}

// firstHeading returns the first "# " heading of a markdown document,
// or empty when there is none.
func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
