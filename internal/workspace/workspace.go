// Package workspace locates and describes a grove workspace: a project
// directory carrying a .claude/ tree of slash commands and subagent
// definitions, plus a PRPs/ tree of planning documents.
//
// The workspace root is found by walking up from the working directory
// until a .claude/ directory appears. Settings live in .claude/grove.json
// behind a Store interface so tools depend on the abstraction.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ClaudeDir is the per-project assistant configuration directory.
	ClaudeDir = ".claude"
	// CommandsDir is the slash-command directory under ClaudeDir.
	CommandsDir = "commands"
	// AgentsDir is the subagent directory under ClaudeDir.
	AgentsDir = "agents"
	// PRPsDir is the planning-document directory at the workspace root.
	PRPsDir = "PRPs"
	// SettingsFile is the grove settings filename under ClaudeDir.
	SettingsFile = "grove.json"
)

// Find walks up from dir looking for a .claude/ directory. If none is
// found before the filesystem root, dir itself is returned; the caller
// decides whether a bare directory is acceptable.
func Find(dir string) string {
	current := dir
	for {
		candidate := filepath.Join(current, ClaudeDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}

// FindFromWd is Find starting at the current working directory.
func FindFromWd() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return Find(dir), nil
}

// ClaudePath returns the absolute path to the .claude/ directory.
func ClaudePath(root string) string {
	return filepath.Join(root, ClaudeDir)
}

// CommandsPath returns the absolute path to .claude/commands/.
func CommandsPath(root string) string {
	return filepath.Join(root, ClaudeDir, CommandsDir)
}

// AgentsPath returns the absolute path to .claude/agents/.
func AgentsPath(root string) string {
	return filepath.Join(root, ClaudeDir, AgentsDir)
}

// PRPsPath returns the absolute path to PRPs/.
func PRPsPath(root string) string {
	return filepath.Join(root, PRPsDir)
}

// SettingsPath returns the absolute path to .claude/grove.json.
func SettingsPath(root string) string {
	return filepath.Join(root, ClaudeDir, SettingsFile)
}
