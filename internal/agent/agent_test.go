package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeAgent(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const reviewerAgent = `---
name: code-reviewer
description: Reviews diffs for correctness and style
model: sonnet
tools: Read, Grep, Bash
color: green
---

You are a meticulous code reviewer.
`

// --- LoadFile ---

func TestLoadFile_Complete(t *testing.T) {
	path := writeAgent(t, t.TempDir(), "code-reviewer.md", reviewerAgent)

	a, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if a.Name != "code-reviewer" {
		t.Errorf("Name = %q", a.Name)
	}
	if a.Model != "sonnet" {
		t.Errorf("Model = %q", a.Model)
	}
	if len(a.Tools) != 3 || a.Tools[0] != "Read" {
		t.Errorf("Tools = %v", a.Tools)
	}
	if !strings.Contains(a.SystemPrompt, "meticulous code reviewer") {
		t.Errorf("SystemPrompt = %q", a.SystemPrompt)
	}
	if len(a.Issues) != 0 {
		t.Errorf("Issues = %v, want none", a.Issues)
	}
}

func TestLoadFile_ToolsAsList(t *testing.T) {
	content := `---
name: helper
description: does things
tools:
  - Read
  - Write
---
prompt
`
	path := writeAgent(t, t.TempDir(), "helper.md", content)
	a, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(a.Tools) != 2 || a.Tools[1] != "Write" {
		t.Errorf("Tools = %v", a.Tools)
	}
}

func TestLoadFile_Issues(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     string
	}{
		{
			"name mismatch",
			"reviewer.md",
			"---\nname: code-reviewer\ndescription: x\n---\nprompt\n",
			"does not match filename",
		},
		{
			"missing name",
			"anon.md",
			"---\ndescription: x\n---\nprompt\n",
			"missing required frontmatter key: name",
		},
		{
			"missing description",
			"quiet.md",
			"---\nname: quiet\n---\nprompt\n",
			"missing description",
		},
		{
			"unknown model",
			"fancy.md",
			"---\nname: fancy\ndescription: x\nmodel: gpt-4\n---\nprompt\n",
			"unknown model alias",
		},
		{
			"empty prompt",
			"mute.md",
			"---\nname: mute\ndescription: x\n---\n",
			"empty system prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeAgent(t, t.TempDir(), tt.filename, tt.content)
			a, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			found := false
			for _, issue := range a.Issues {
				if strings.Contains(issue, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("Issues = %v, want one containing %q", a.Issues, tt.want)
			}
		})
	}
}

func TestLoadFile_InheritModelAccepted(t *testing.T) {
	content := "---\nname: flexible\ndescription: x\nmodel: inherit\n---\nprompt\n"
	path := writeAgent(t, t.TempDir(), "flexible.md", content)
	a, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(a.Issues) != 0 {
		t.Errorf("Issues = %v, want none", a.Issues)
	}
}

func TestLoadFile_NoFrontmatterFails(t *testing.T) {
	path := writeAgent(t, t.TempDir(), "bare.md", "just a prompt, no config\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile() = nil error for file without frontmatter")
	}
}

// --- LoadDir ---

func TestLoadDir_SortedWithErrors(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "zeta.md", "---\nname: zeta\ndescription: z\n---\nprompt\n")
	writeAgent(t, dir, "alpha.md", "---\nname: alpha\ndescription: a\n---\nprompt\n")
	writeAgent(t, dir, "broken.md", "no frontmatter\n")
	writeAgent(t, dir, "notes.txt", "ignored")

	agents, errs, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(agents) != 2 || agents[0].Name != "alpha" || agents[1].Name != "zeta" {
		t.Errorf("agents = %v, want [alpha zeta]", agents)
	}
	if len(errs) != 1 || !strings.Contains(errs[0].Path, "broken.md") {
		t.Errorf("errs = %v, want broken.md", errs)
	}
}

func TestLoadDir_Missing(t *testing.T) {
	agents, errs, err := LoadDir(filepath.Join(t.TempDir(), "agents"))
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(agents) != 0 || len(errs) != 0 {
		t.Errorf("agents = %v errs = %v, want empty", agents, errs)
	}
}
