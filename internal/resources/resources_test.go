package resources

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/livingtree/grove/internal/command"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// setupTestWorkspace creates a temp workspace with the given files and
// changes cwd to it. Returns the root and a cleanup function.
func setupTestWorkspace(t *testing.T, files map[string]string) (string, func()) {
	t.Helper()
	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, workspace.ClaudeDir), 0o755); err != nil {
		t.Fatalf("setup: mkdir .claude: %v", err)
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup: mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup: write %s: %v", rel, err)
		}
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("setup: getwd: %v", err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatalf("setup: chdir: %v", err)
	}

	return root, func() { _ = os.Chdir(origDir) }
}

func readRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func contentsText(t *testing.T, contents []mcp.ResourceContents) string {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents = %T, want TextResourceContents", contents[0])
	}
	return tc.Text
}

// --- HandleStatus ---

func TestHandleStatus(t *testing.T) {
	root, cleanup := setupTestWorkspace(t, map[string]string{
		".claude/grove.json":              `{"project": "demo", "min_score": 9}`,
		".claude/commands/review.md":      "Review.\n",
		".claude/commands/git/commit.md":  "Commit.\n",
		".claude/agents/code-reviewer.md": "---\nname: code-reviewer\ndescription: x\n---\nprompt\n",
		"PRPs/user-auth.md":               "## Goal\n",
	})
	defer cleanup()

	registry := command.NewRegistry(workspace.CommandsPath(root))
	if err := registry.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	h := NewHandler(workspace.NewFileStore(), registry)
	contents, err := h.HandleStatus(context.Background(), readRequest("grove://workspace/status"))
	if err != nil {
		t.Fatalf("HandleStatus() error = %v", err)
	}

	var st status
	if err := json.Unmarshal([]byte(contentsText(t, contents)), &st); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}

	if st.Project != "demo" {
		t.Errorf("Project = %q", st.Project)
	}
	if st.MinScore != 9 {
		t.Errorf("MinScore = %d, want 9", st.MinScore)
	}
	if st.Commands != 2 || st.Agents != 1 || st.PRPs != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", st.Commands, st.Agents, st.PRPs)
	}
	if len(st.Namespaces) != 2 {
		t.Errorf("Namespaces = %v, want root and git", st.Namespaces)
	}
	if len(st.LoadErrors) != 0 {
		t.Errorf("LoadErrors = %v, want none", st.LoadErrors)
	}
}

func TestHandleStatus_ReportsLoadErrors(t *testing.T) {
	root, cleanup := setupTestWorkspace(t, map[string]string{
		".claude/commands/broken.md": "---\nno closing delimiter\n",
	})
	defer cleanup()

	registry := command.NewRegistry(workspace.CommandsPath(root))
	_ = registry.Reload()

	h := NewHandler(workspace.NewFileStore(), registry)
	contents, err := h.HandleStatus(context.Background(), readRequest("grove://workspace/status"))
	if err != nil {
		t.Fatalf("HandleStatus() error = %v", err)
	}

	var st status
	if err := json.Unmarshal([]byte(contentsText(t, contents)), &st); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if len(st.LoadErrors) != 1 {
		t.Errorf("LoadErrors = %v, want the broken file reported", st.LoadErrors)
	}
}

func TestHandleStatus_CorruptSettings(t *testing.T) {
	root, cleanup := setupTestWorkspace(t, map[string]string{
		".claude/grove.json": "{not json",
	})
	defer cleanup()

	registry := command.NewRegistry(workspace.CommandsPath(root))
	_ = registry.Reload()

	h := NewHandler(workspace.NewFileStore(), registry)
	contents, err := h.HandleStatus(context.Background(), readRequest("grove://workspace/status"))
	if err != nil {
		t.Fatalf("HandleStatus() error = %v", err)
	}

	text := contentsText(t, contents)
	if !strings.HasPrefix(text, "Error:") {
		t.Errorf("text = %q, want error resource", text)
	}
}
