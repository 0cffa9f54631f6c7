package prompts

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/livingtree/grove/internal/command"
	"github.com/mark3labs/mcp-go/mcp"
)

func registryWith(t *testing.T, files map[string]string) *command.Registry {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	r := command.NewRegistry(dir)
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return r
}

// --- Definition ---

func TestDefinition_UsesFrontmatter(t *testing.T) {
	r := registryWith(t, map[string]string{
		"git/commit.md": "---\ndescription: Commit staged changes\nargument-hint: \"[message]\"\n---\nCommit: $ARGUMENTS\n",
	})

	p := NewCommandPrompt(r, "git:commit")
	def := p.Definition()

	if def.Name != "git:commit" {
		t.Errorf("Name = %q", def.Name)
	}
	if def.Description != "Commit staged changes" {
		t.Errorf("Description = %q", def.Description)
	}
	if len(def.Arguments) != 1 || def.Arguments[0].Name != "arguments" {
		t.Fatalf("Arguments = %+v, want one \"arguments\" argument", def.Arguments)
	}
	if !strings.Contains(def.Arguments[0].Description, "[message]") {
		t.Errorf("argument Description = %q, want hint included", def.Arguments[0].Description)
	}
}

func TestDefinition_FallbackDescription(t *testing.T) {
	r := registryWith(t, map[string]string{
		"review.md": "Review the diff.\n",
	})

	def := NewCommandPrompt(r, "review").Definition()
	if !strings.Contains(def.Description, "/review") {
		t.Errorf("Description = %q, want invocation mentioned", def.Description)
	}
}

// --- Handle ---

func TestHandle_ExpandsArguments(t *testing.T) {
	r := registryWith(t, map[string]string{
		"git/commit.md": "Commit with message: $ARGUMENTS\n",
	})

	p := NewCommandPrompt(r, "git:commit")
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"arguments": "fix flaky test"}

	result, err := p.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("Messages = %d, want 1", len(result.Messages))
	}
	tc, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("Content = %T, want TextContent", result.Messages[0].Content)
	}
	if !strings.Contains(tc.Text, "Commit with message: fix flaky test") {
		t.Errorf("Text = %q", tc.Text)
	}
}

func TestHandle_VanishedCommand(t *testing.T) {
	r := registryWith(t, nil)
	p := NewCommandPrompt(r, "gone")

	if _, err := p.Handle(context.Background(), mcp.GetPromptRequest{}); err == nil {
		t.Fatal("Handle() = nil error for vanished command")
	}
}
