// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/faq-engine/pkg/types"
)

// StoredEntry is an Entry with its store provenance.
type StoredEntry struct {
	types.Entry `yaml:",inline"`
	Source      string `json:"source" yaml:"source"`
	Position    int    `json:"position" yaml:"position"`
}

// Entries returns all stored entries ordered by source, then position
// within the source. The order is stable across runs, which keeps indexes
// built from the store deterministic.
func (s *Store) Entries(ctx context.Context) ([]types.Entry, error) {
	stored, err := s.Stored(ctx, "")
	if err != nil {
		return nil, err
	}
	entries := make([]types.Entry, len(stored))
	for i, se := range stored {
		entries[i] = se.Entry
	}
	return entries, nil
}

// Stored returns stored entries with provenance, optionally limited to one
// source, in the same order as Entries.
func (s *Store) Stored(ctx context.Context, source string) ([]StoredEntry, error) {
	query := `SELECT source, position, id, question, answer, tags FROM entries`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY source, position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var out []StoredEntry
	for rows.Next() {
		var (
			se       StoredEntry
			tagsJSON sql.NullString
		)
		if err := rows.Scan(&se.Source, &se.Position, &se.ID, &se.Question, &se.Answer, &tagsJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if tagsJSON.Valid {
			json.Unmarshal([]byte(tagsJSON.String), &se.Tags)
		}
		out = append(out, se)
	}
	return out, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}
