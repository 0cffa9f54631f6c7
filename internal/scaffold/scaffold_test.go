package scaffold

import (
	"strings"
	"testing"

	"github.com/livingtree/grove/internal/command"
	"github.com/livingtree/grove/internal/prp"
)

func newTestRenderer(t *testing.T) Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

// --- Render: command ---

func TestRender_Command(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(Command, CommandData{
		Namespace:    "development",
		Name:         "create-pr",
		Description:  "Open a pull request",
		ArgumentHint: "[branch]",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	fm, body, warnings, err := command.Parse(out)
	if err != nil {
		t.Fatalf("scaffolded command does not parse: %v", err)
	}
	if fm.Description != "Open a pull request" {
		t.Errorf("Description = %q", fm.Description)
	}
	if fm.ArgumentHint != "[branch]" {
		t.Errorf("ArgumentHint = %q", fm.ArgumentHint)
	}
	if !strings.Contains(body, "$ARGUMENTS") {
		t.Error("scaffolded command body has no $ARGUMENTS placeholder")
	}
	if !strings.Contains(body, "/development:create-pr") {
		t.Errorf("body = %q, want invocation heading", body)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestRender_CommandDefaults(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(Command, CommandData{Name: "review"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "# /review") {
		t.Errorf("out = %q, want top-level invocation heading", out)
	}
}

// --- Render: agent ---

func TestRender_Agent(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(Agent, AgentData{Name: "code-reviewer", Description: "Reviews diffs", Model: "opus"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "name: code-reviewer") {
		t.Errorf("out missing name: %q", out)
	}
	if !strings.Contains(out, "model: opus") {
		t.Errorf("out missing model: %q", out)
	}
}

// --- Render: prp ---

func TestRender_PRPIsStructurallyComplete(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(PRP, PRPData{Title: "User authentication"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	report := prp.Validate(out, 8)
	if len(report.MissingSections) != 0 {
		t.Errorf("scaffolded PRP missing sections: %v", report.MissingSections)
	}
	if !report.Valid {
		t.Errorf("scaffolded PRP invalid, score %d: %+v", report.Score, report)
	}
	if !strings.Contains(out, "# PRP: User authentication") {
		t.Errorf("out = %q, want title heading", out)
	}
}

// --- Render: errors ---

func TestRender_UnknownKind(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Render(Kind("sketch"), nil); err == nil {
		t.Fatal("Render() = nil error for unknown kind")
	}
}
