// Package agent loads subagent definition files: markdown documents
// under .claude/agents/ whose YAML frontmatter configures a delegated
// assistant persona (model choice, tool permissions) and whose body is
// the persona's system prompt.
package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/livingtree/grove/internal/command"
)

// Agent is a loaded subagent definition.
type Agent struct {
	// Name is the agent identifier from frontmatter. It must match the
	// filename stem so /agents references resolve predictably.
	Name        string
	Description string
	// Model is a model alias: sonnet, opus, haiku, or inherit.
	Model string
	// Tools lists the tools the subagent may use. Empty means inherit
	// the full tool set.
	Tools []string
	// Color is an optional UI accent for the hosting assistant.
	Color string
	// SystemPrompt is the markdown body.
	SystemPrompt string
	// Path is the source file, for diagnostics.
	Path string
	// Issues holds validation problems found while loading.
	Issues []string
}

// knownModels are the accepted model aliases. "inherit" means use the
// parent conversation's model.
var knownModels = map[string]bool{
	"sonnet":  true,
	"opus":    true,
	"haiku":   true,
	"inherit": true,
}

// frontmatter mirrors the agent file schema.
type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Model       string `yaml:"model"`
	Tools       any    `yaml:"tools"`
	Color       string `yaml:"color"`
}

// LoadFile parses and validates a single agent definition file.
// Validation problems are recorded on the returned Agent rather than
// failing the load; lint reports them, serve skips unusable agents.
func LoadFile(path string) (*Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent file: %w", err)
	}

	meta, body, err := parseFrontmatter(string(data))
	if err != nil {
		return nil, err
	}

	a := &Agent{
		Name:         meta.Name,
		Description:  meta.Description,
		Model:        meta.Model,
		Tools:        normalizeTools(meta.Tools),
		Color:        meta.Color,
		SystemPrompt: body,
		Path:         path,
	}

	stem := strings.TrimSuffix(filepath.Base(path), ".md")
	switch {
	case a.Name == "":
		a.Issues = append(a.Issues, "missing required frontmatter key: name")
	case a.Name != stem:
		a.Issues = append(a.Issues, fmt.Sprintf("name %q does not match filename %q", a.Name, stem))
	}
	if a.Description == "" {
		a.Issues = append(a.Issues, "missing description: the orchestrator cannot decide when to delegate")
	}
	if a.Model != "" && !knownModels[a.Model] {
		a.Issues = append(a.Issues, fmt.Sprintf("unknown model alias %q: must be one of sonnet, opus, haiku, inherit", a.Model))
	}
	if strings.TrimSpace(a.SystemPrompt) == "" {
		a.Issues = append(a.Issues, "empty system prompt")
	}

	return a, nil
}

// LoadDir loads every agent definition under dir, sorted by name.
// A missing directory is an empty result. Unparseable files are returned
// as load errors alongside the agents that did load.
func LoadDir(dir string) ([]*Agent, []command.LoadError, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading agents directory: %w", err)
	}

	var agents []*Agent
	var errs []command.LoadError
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		a, err := LoadFile(path)
		if err != nil {
			errs = append(errs, command.LoadError{Path: path, Err: err})
			continue
		}
		agents = append(agents, a)
	}

	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })
	return agents, errs, nil
}
