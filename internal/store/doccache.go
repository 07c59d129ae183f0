package store

import (
	"context"
	"fmt"
)

// LoadDocCache returns every cached rendering, keyed by content hash.
// Returns an empty map (not nil) for a fresh database.
func (s *Store) LoadDocCache(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, text FROM doc_cache`)
	if err != nil {
		return nil, fmt.Errorf("query doc cache: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var key, text string
		if err := rows.Scan(&key, &text); err != nil {
			return nil, fmt.Errorf("scan doc cache: %w", err)
		}
		entries[key] = text
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doc cache: %w", err)
	}
	return entries, nil
}

// SaveDocCache inserts entries in a single transaction. Existing keys are
// left alone: a key is a content hash, so its text can never change.
func (s *Store) SaveDocCache(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save doc cache: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO doc_cache (key, text) VALUES (?, ?)
		ON CONFLICT(key) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("save doc cache: %w", err)
	}
	defer stmt.Close()

	for key, text := range entries {
		if _, err := stmt.ExecContext(ctx, key, text); err != nil {
			return fmt.Errorf("save doc cache entry %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save doc cache: %w", err)
	}
	return nil
}
