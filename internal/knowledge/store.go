// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge loads FAQ entries from YAML knowledge files and keeps
// them in a SQLite store that the matcher can be built from.
//
// Store layout under the configured directory:
//
//	entries/  YAML knowledge files, one source per file
//	index/    faq.db and export.yaml / export.json
package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/faq-engine/pkg/types"
)

const (
	entriesDir = "entries"
	indexDir   = "index"
	dbFile     = "faq.db"
)

// Store manages the knowledge base SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the database at dir/index/faq.db and creates
// the schema if it does not exist.
func NewStore(cfg types.KnowledgeBaseConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "knowledge"
	}
	dbDir := filepath.Join(dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EntriesDir returns the directory Ingest reads knowledge files from.
func (s *Store) EntriesDir() string {
	return filepath.Join(s.dir, entriesDir)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			source TEXT NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			tags TEXT,
			PRIMARY KEY (source, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_id ON entries(id)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an ingest run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Removed int
	Failed  int
}

// Total returns the number of knowledge files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Changed reports whether the run altered stored entries.
func (s IngestSummary) Changed() bool {
	return s.Indexed > 0 || s.Updated > 0 || s.Removed > 0
}

// Ingest reads every *.yaml file in dir/entries/ and stores its entries
// under the file name as source. Files whose modification time is unchanged
// are skipped; sources whose file disappeared are removed. A file that fails
// to parse is reported and counted but does not stop the run. When anything
// changed, export.yaml is rewritten.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	dir := s.EntriesDir()
	files, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading entries directory %s: %w", dir, err)
	}

	var summary IngestSummary
	seen := make(map[string]bool)

	for _, f := range files {
		if f.IsDir() || !isKnowledgeFile(f.Name()) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		source := f.Name()
		seen[source] = true

		info, err := f.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", source, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE source = ?`, source,
		).Scan(&storedModTime)
		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", source)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		entries, err := LoadFile(filepath.Join(dir, source))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", source, err)
			summary.Failed++
			continue
		}

		if err := s.replaceSource(ctx, source, entries, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", source, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d entries)\n", source, len(entries))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d entries)\n", source, len(entries))
			summary.Indexed++
		}
	}

	removed, err := s.removeMissing(ctx, seen, w)
	if err != nil {
		return summary, err
	}
	summary.Removed = removed

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, removed: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Removed, summary.Failed)

	if summary.Changed() {
		if err := s.ExportYAML(ctx); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func isKnowledgeFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// replaceSource swaps all entries of source for entries in one transaction.
func (s *Store) replaceSource(ctx context.Context, source string, entries []types.Entry, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE source = ?`, source); err != nil {
		return fmt.Errorf("deleting old entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (source, position, id, question, answer, tags)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		tagsJSON, _ := json.Marshal(e.Tags)
		if _, err := stmt.ExecContext(ctx, source, i, e.ID, e.Question, e.Answer, string(tagsJSON)); err != nil {
			return fmt.Errorf("inserting entry %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (source, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(source) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		source, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// removeMissing deletes sources that were indexed before but have no file now.
func (s *Store) removeMissing(ctx context.Context, seen map[string]bool, w io.Writer) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source FROM indexing_status ORDER BY source`)
	if err != nil {
		return 0, fmt.Errorf("listing indexed sources: %w", err)
	}
	var stale []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning source: %w", err)
		}
		if !seen[source] {
			stale = append(stale, source)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, source := range stale {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return 0, fmt.Errorf("beginning transaction: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE source = ?`, source); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("removing entries of %s: %w", source, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM indexing_status WHERE source = ?`, source); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("removing status of %s: %w", source, err)
		}
		if err := tx.Commit(); err != nil {
			return 0, err
		}
		fmt.Fprintf(w, "removed %s\n", source)
	}
	return len(stale), nil
}
