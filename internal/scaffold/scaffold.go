// Package scaffold renders skeleton files for new workspace artifacts:
// slash commands, subagent definitions, and PRP documents. Templates are
// embedded so the binary is self-contained; a freshly scaffolded PRP
// carries every required section and validates as structurally complete.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Kind identifies a scaffold template.
type Kind string

const (
	Command Kind = "command"
	Agent   Kind = "agent"
	PRP     Kind = "prp"
)

// templateFiles maps kinds to embedded template files.
var templateFiles = map[Kind]string{
	Command: "templates/command.md.tmpl",
	Agent:   "templates/agent.md.tmpl",
	PRP:     "templates/prp.md.tmpl",
}

// CommandData feeds the slash-command template.
type CommandData struct {
	Namespace    string
	Name         string
	Description  string
	ArgumentHint string
}

// AgentData feeds the subagent template.
type AgentData struct {
	Name        string
	Description string
	Model       string
}

// PRPData feeds the PRP template.
type PRPData struct {
	Title string
}

// Renderer renders scaffold templates. Abstracted so tools depend on the
// interface, not the embedded implementation.
type Renderer interface {
	Render(kind Kind, data any) (string, error)
}

// templateRenderer implements Renderer over the embedded FS.
type templateRenderer struct {
	templates *template.Template
}

// NewRenderer parses all embedded templates once.
func NewRenderer() (Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing scaffold templates: %w", err)
	}
	return &templateRenderer{templates: t}, nil
}

// Render executes the template for kind with the given data.
func (r *templateRenderer) Render(kind Kind, data any) (string, error) {
	file, ok := templateFiles[kind]
	if !ok {
		return "", fmt.Errorf("unknown scaffold kind %q", kind)
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, baseName(file), data); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", kind, err)
	}
	return buf.String(), nil
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
