package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func findingsBySeverity(findings []Finding, severity string) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Severity == severity {
			out = append(out, f)
		}
	}
	return out
}

// --- Run ---

func TestRun_MatchingClaimsAreQuiet(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "README.md",
		"This workspace ships 24 commands, 15 agents, and 3 PRPs.\n")

	findings := Run(Counts{Commands: 24, Agents: 15, PRPs: 3}, []string{doc})
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none", findings)
	}
}

func TestRun_CountMismatch(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "README.md", "We now have 24 commands.\n")

	findings := Run(Counts{Commands: 22}, []string{doc})
	errors := findingsBySeverity(findings, "error")
	if len(errors) != 1 {
		t.Fatalf("errors = %+v, want one", findings)
	}
	if !strings.Contains(errors[0].Message, "24") || !strings.Contains(errors[0].Message, "22") {
		t.Errorf("Message = %q, want claimed and actual counts mentioned", errors[0].Message)
	}
	if errors[0].Line != 1 {
		t.Errorf("Line = %d, want 1", errors[0].Line)
	}
}

func TestRun_QualifiedClaims(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "README.md",
		"There are 9 new slash commands and 15 custom subagents.\n")

	findings := Run(Counts{Commands: 9, Agents: 15}, []string{doc})
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none (qualifiers tolerated, subagents = agents)", findings)
	}
}

func TestRun_AdditiveArithmeticError(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "CHANGELOG.md", "Added 12 new + 3 existing = 16 commands.\n")

	findings := Run(Counts{Commands: 16}, []string{doc})
	errors := findingsBySeverity(findings, "error")
	if len(errors) != 1 {
		t.Fatalf("errors = %+v, want the arithmetic defect only", findings)
	}
	if !strings.Contains(errors[0].Message, "does not add up") {
		t.Errorf("Message = %q", errors[0].Message)
	}
}

func TestRun_AdditiveTotalNotDoubleCounted(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "README.md", "Now 12 new + 3 existing = 15 commands.\n")

	findings := Run(Counts{Commands: 15}, []string{doc})
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none (correct additive claim)", findings)
	}
}

func TestRun_CrossDocumentConflict(t *testing.T) {
	dir := t.TempDir()
	readme := writeDoc(t, dir, "README.md", "We ship 24 commands.\n")
	guide := writeDoc(t, dir, "GUIDE.md", "All 23 commands are documented here.\n")

	findings := Run(Counts{Commands: 24}, []string{readme, guide})

	warnings := findingsBySeverity(findings, "warning")
	if len(warnings) != 1 {
		t.Fatalf("warnings = %+v, want one conflict warning", findings)
	}
	if !strings.Contains(warnings[0].Message, "23") || !strings.Contains(warnings[0].Message, "24") {
		t.Errorf("Message = %q, want both totals mentioned", warnings[0].Message)
	}

	// The stale doc also mismatches reality.
	errors := findingsBySeverity(findings, "error")
	if len(errors) != 1 {
		t.Errorf("errors = %+v, want one mismatch error", errors)
	}
}

func TestRun_UnreadableDocSkipped(t *testing.T) {
	findings := Run(Counts{Commands: 1}, []string{filepath.Join(t.TempDir(), "missing.md")})
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none", findings)
	}
}

// --- DefaultDocs ---

func TestDefaultDocs(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "README.md", "root doc\n")
	if err := os.MkdirAll(filepath.Join(root, ".claude"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, filepath.Join(root, ".claude"), "settings.md", "claude doc\n")
	if err := os.MkdirAll(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, filepath.Join(root, "docs"), "extra.md", "extra doc\n")

	docs := DefaultDocs(root, nil)
	if len(docs) != 2 {
		t.Fatalf("DefaultDocs() = %v, want root and .claude docs only", docs)
	}

	docs = DefaultDocs(root, []string{"docs/*.md"})
	if len(docs) != 3 {
		t.Errorf("DefaultDocs(extra glob) = %v, want docs/extra.md included", docs)
	}
}

// --- Counts ---

func TestCountsGet(t *testing.T) {
	c := Counts{Commands: 1, Agents: 2, PRPs: 3}
	if c.Get(KindCommands) != 1 || c.Get(KindAgents) != 2 || c.Get(KindPRPs) != 3 {
		t.Errorf("Get() mismatch: %+v", c)
	}
}
