// Package catalog maintains a SQLite full-text index of the workspace
// corpus: slash commands, subagent definitions, and PRP documents. FTS5
// makes "which command deals with migrations?" a single query instead of
// a grep across three directory trees.
//
// The index is derived data; deleting the database loses nothing that
// a reindex cannot rebuild from the markdown files.
package catalog

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Kind values for indexed documents.
const (
	KindCommand = "command"
	KindAgent   = "agent"
	KindPRP     = "prp"
)

// Document is one indexable workspace artifact.
type Document struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
	IndexedAt   string `json:"indexed_at"`
}

// SearchResult embeds a Document with its FTS5 rank.
type SearchResult struct {
	Document
	Rank float64 `json:"rank"`
}

// Stats holds per-kind document totals.
type Stats struct {
	Commands int `json:"commands"`
	Agents   int `json:"agents"`
	PRPs     int `json:"prps"`
	Total    int `json:"total"`
}

// ReindexResult summarizes one reindex pass.
type ReindexResult struct {
	Indexed   int `json:"indexed"`
	Unchanged int `json:"unchanged"`
	Pruned    int `json:"pruned"`
}

// Config holds catalog store configuration.
type Config struct {
	DataDir          string
	MaxSearchResults int
}

// DefaultConfig returns the default catalog configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:          filepath.Join(home, ".grove"),
		MaxSearchResults: 20,
	}
}

// Store is the catalog index backed by SQLite + FTS5.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New opens (or creates) the catalog database, applies pragmas, and
// runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("catalog: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "catalog.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("catalog: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("catalog: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			kind            TEXT NOT NULL,
			name            TEXT NOT NULL,
			path            TEXT NOT NULL UNIQUE,
			title           TEXT,
			description     TEXT,
			content         TEXT NOT NULL,
			normalized_hash TEXT NOT NULL,
			indexed_at      TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_docs_kind    ON documents(kind);
		CREATE INDEX IF NOT EXISTS idx_docs_name    ON documents(kind, name);
		CREATE INDEX IF NOT EXISTS idx_docs_indexed ON documents(indexed_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			name,
			title,
			description,
			content,
			kind,
			content='documents',
			content_rowid='id'
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS triggers (idempotent).
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='docs_fts_insert'",
	).Scan(&name)

	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER docs_fts_insert AFTER INSERT ON documents BEGIN
				INSERT INTO documents_fts(rowid, name, title, description, content, kind)
				VALUES (new.id, new.name, new.title, new.description, new.content, new.kind);
			END;

			CREATE TRIGGER docs_fts_delete AFTER DELETE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, name, title, description, content, kind)
				VALUES ('delete', old.id, old.name, old.title, old.description, old.content, old.kind);
			END;

			CREATE TRIGGER docs_fts_update AFTER UPDATE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, name, title, description, content, kind)
				VALUES ('delete', old.id, old.name, old.title, old.description, old.content, old.kind);
				INSERT INTO documents_fts(rowid, name, title, description, content, kind)
				VALUES (new.id, new.name, new.title, new.description, new.content, new.kind);
			END;
		`
		if _, err := s.db.Exec(triggers); err != nil {
			return err
		}
	} else if err != nil && err != sql.ErrNoRows {
		return err
	}

	return nil
}

// Reindex upserts the given documents and prunes index rows whose files
// are no longer part of the corpus. Documents whose content hash is
// unchanged are left alone so repeated reindexes are cheap.
func (s *Store) Reindex(docs []Document) (*ReindexResult, error) {
	result := &ReindexResult{}

	keep := make(map[string]bool, len(docs))
	for _, doc := range docs {
		keep[doc.Path] = true

		hash := hashContent(doc.Content)

		var existingID int64
		var existingHash string
		err := s.db.QueryRow(
			`SELECT id, normalized_hash FROM documents WHERE path = ?`, doc.Path,
		).Scan(&existingID, &existingHash)

		switch {
		case err == sql.ErrNoRows:
			if _, err := s.db.Exec(
				`INSERT INTO documents (kind, name, path, title, description, content, normalized_hash)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				doc.Kind, doc.Name, doc.Path, doc.Title, doc.Description, doc.Content, hash,
			); err != nil {
				return result, fmt.Errorf("catalog: insert %s: %w", doc.Path, err)
			}
			result.Indexed++

		case err != nil:
			return result, fmt.Errorf("catalog: lookup %s: %w", doc.Path, err)

		case existingHash == hash:
			result.Unchanged++

		default:
			if _, err := s.db.Exec(
				`UPDATE documents
				 SET kind = ?, name = ?, title = ?, description = ?, content = ?,
				     normalized_hash = ?, indexed_at = datetime('now')
				 WHERE id = ?`,
				doc.Kind, doc.Name, doc.Title, doc.Description, doc.Content, hash, existingID,
			); err != nil {
				return result, fmt.Errorf("catalog: update %s: %w", doc.Path, err)
			}
			result.Indexed++
		}
	}

	// Prune vanished files.
	rows, err := s.db.Query(`SELECT id, path FROM documents`)
	if err != nil {
		return result, fmt.Errorf("catalog: listing for prune: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stale []int64
	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			return result, err
		}
		if !keep[path] {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		return result, err
	}

	for _, id := range stale {
		if _, err := s.db.Exec(`DELETE FROM documents WHERE id = ?`, id); err != nil {
			return result, fmt.Errorf("catalog: prune: %w", err)
		}
		result.Pruned++
	}

	return result, nil
}

// Search performs full-text search with an optional kind filter. An
// empty query falls back to the most recently indexed documents.
func (s *Store) Search(query, kind string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > s.cfg.MaxSearchResults {
		limit = s.cfg.MaxSearchResults
	}

	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return s.searchRecent(kind, limit)
	}

	sqlStr := `
		SELECT d.id, d.kind, d.name, d.path, COALESCE(d.title, ''), COALESCE(d.description, ''),
		       d.content, d.indexed_at, fts.rank
		FROM documents_fts fts
		JOIN documents d ON d.id = fts.rowid
		WHERE documents_fts MATCH ?
	`
	args := []any{ftsQuery}

	if kind != "" {
		sqlStr += " AND d.kind = ?"
		args = append(args, kind)
	}

	sqlStr += " ORDER BY fts.rank LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanResults(rows)
}

// searchRecent returns recently indexed documents without FTS, used as
// fallback when the query is empty or whitespace-only.
func (s *Store) searchRecent(kind string, limit int) ([]SearchResult, error) {
	sqlStr := `
		SELECT id, kind, name, path, COALESCE(title, ''), COALESCE(description, ''),
		       content, indexed_at, 0 AS rank
		FROM documents
	`
	var args []any

	if kind != "" {
		sqlStr += " WHERE kind = ?"
		args = append(args, kind)
	}

	sqlStr += " ORDER BY indexed_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: search recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]SearchResult, error) {
	var results []SearchResult
	for rows.Next() {
		var sr SearchResult
		if err := rows.Scan(
			&sr.ID, &sr.Kind, &sr.Name, &sr.Path, &sr.Title, &sr.Description,
			&sr.Content, &sr.IndexedAt, &sr.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, sr)
	}
	return results, rows.Err()
}

// Stats returns per-kind document totals.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM documents GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("catalog: stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		switch kind {
		case KindCommand:
			stats.Commands = n
		case KindAgent:
			stats.Agents = n
		case KindPRP:
			stats.PRPs = n
		}
		stats.Total += n
	}
	return stats, rows.Err()
}

// sanitizeFTS quotes each search term so user input cannot inject FTS5
// query syntax (NEAR, column filters, unbalanced quotes).
func sanitizeFTS(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		if f == "" {
			continue
		}
		quoted = append(quoted, `"`+f+`"`)
	}
	return strings.Join(quoted, " ")
}

func hashContent(content string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(content)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
