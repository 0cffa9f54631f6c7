package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultMinScore is the PRP quality threshold a document must reach to
// be considered valid. Matches the scoring model: base 5, +2 package
// manager, +2 container setup, +1 validation commands.
const DefaultMinScore = 8

// Settings holds per-workspace grove configuration, persisted as
// .claude/grove.json.
type Settings struct {
	// Project is a display name for audit and status output.
	Project string `json:"project,omitempty"`
	// MinScore is the PRP validity threshold. Zero means DefaultMinScore.
	MinScore int `json:"min_score,omitempty"`
	// DocGlobs lists extra markdown documents (relative to the root)
	// the audit scans for count claims, beyond the built-in set.
	DocGlobs []string `json:"doc_globs,omitempty"`
	// UpdatedAt is the last save time, RFC3339.
	UpdatedAt string `json:"updated_at,omitempty"`
}

// EffectiveMinScore returns MinScore with the default applied.
func (s *Settings) EffectiveMinScore() int {
	if s.MinScore <= 0 {
		return DefaultMinScore
	}
	return s.MinScore
}

// Store defines settings persistence. Abstracted for testability.
type Store interface {
	Load(root string) (*Settings, error)
	Save(root string, s *Settings) error
}

// FileStore implements Store using .claude/grove.json.
type FileStore struct{}

// NewFileStore creates a filesystem-backed settings store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Load reads settings from the workspace. A missing file yields default
// settings, not an error; most workspaces never customize grove.
func (fs *FileStore) Load(root string) (*Settings, error) {
	data, err := os.ReadFile(SettingsPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", SettingsFile, err)
	}
	return &s, nil
}

// Save writes settings to .claude/grove.json, creating .claude/ if needed.
func (fs *FileStore) Save(root string, s *Settings) error {
	s.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	path := SettingsPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", ClaudeDir, err)
	}
	return os.WriteFile(path, data, 0o644)
}
