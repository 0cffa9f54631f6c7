// Package inventory counts the actual artifacts of a workspace. The
// audit compares these numbers against documented claims, and the status
// resource reports them.
package inventory

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/livingtree/grove/internal/audit"
	"github.com/livingtree/grove/internal/prp"
	"github.com/livingtree/grove/internal/workspace"
)

// Count tallies command files, agent files, and PRP documents. Counting
// is purely file-based: a command file that fails to parse still counts,
// because that is what README totals refer to.
func Count(root string) (audit.Counts, error) {
	counts := audit.Counts{}

	commands, err := countMarkdown(workspace.CommandsPath(root), true, nil)
	if err != nil {
		return counts, err
	}
	counts.Commands = commands

	agents, err := countMarkdown(workspace.AgentsPath(root), false, nil)
	if err != nil {
		return counts, err
	}
	counts.Agents = agents

	// PRPs use the same skip rules as validation: ai_docs/ and commands/
	// hold reference material, README.md is navigation.
	reports, err := prp.ValidateDir(workspace.PRPsPath(root), workspace.DefaultMinScore)
	if err != nil {
		return counts, err
	}
	counts.PRPs = len(reports)

	return counts, nil
}

// countMarkdown counts *.md files under dir. A missing directory counts
// as zero.
func countMarkdown(dir string, recursive bool, skipDirs map[string]bool) (int, error) {
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return 0, nil
			}
			return 0, err
		}
		n := 0
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
				n++
			}
		}
		return n, nil
	}

	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			n++
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}
