package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

// --- FileStore ---

func TestFileStore_LoadMissingReturnsDefaults(t *testing.T) {
	store := NewFileStore()
	s, err := store.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.EffectiveMinScore() != DefaultMinScore {
		t.Errorf("EffectiveMinScore() = %d, want %d", s.EffectiveMinScore(), DefaultMinScore)
	}
	if s.Project != "" || len(s.DocGlobs) != 0 {
		t.Errorf("defaults not empty: %+v", s)
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore()

	saved := &Settings{
		Project:  "demo",
		MinScore: 9,
		DocGlobs: []string{"docs/*.md"},
	}
	if err := store.Save(root, saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.UpdatedAt == "" {
		t.Error("Save() did not stamp UpdatedAt")
	}

	loaded, err := store.Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Project != "demo" || loaded.MinScore != 9 {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.DocGlobs) != 1 || loaded.DocGlobs[0] != "docs/*.md" {
		t.Errorf("DocGlobs = %v", loaded.DocGlobs)
	}
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ClaudeDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(SettingsPath(root), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore().Load(root); err == nil {
		t.Fatal("Load() = nil error for corrupt settings")
	}
}

// --- EffectiveMinScore ---

func TestEffectiveMinScore(t *testing.T) {
	tests := []struct {
		minScore int
		want     int
	}{
		{0, DefaultMinScore},
		{-1, DefaultMinScore},
		{5, 5},
		{10, 10},
	}
	for _, tt := range tests {
		s := &Settings{MinScore: tt.minScore}
		if got := s.EffectiveMinScore(); got != tt.want {
			t.Errorf("EffectiveMinScore(%d) = %d, want %d", tt.minScore, got, tt.want)
		}
	}
}
