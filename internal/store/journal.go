package store

import (
	"context"
	"fmt"
)

// Run is one generation run as recorded in the journal.
type Run struct {
	ID               string
	Fingerprint      string
	GeneratorVersion string
	Targets          string // comma-separated target names
	FilesWritten     int
	FilesUnchanged   int
	Lines            int
}

// OutputRecord is one file produced by a run.
type OutputRecord struct {
	Path    string
	SHA256  string
	Lines   int
	Changed bool
}

// RecordRun writes a run and its outputs atomically.
func (s *Store) RecordRun(ctx context.Context, run Run, outputs []OutputRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, fingerprint, generator_version, targets, files_written, files_unchanged, lines)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Fingerprint,
		run.GeneratorVersion,
		run.Targets,
		run.FilesWritten,
		run.FilesUnchanged,
		run.Lines,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}

	for _, o := range outputs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO outputs (run_id, path, sha256, lines, changed)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, o.Path, o.SHA256, o.Lines, o.Changed)
		if err != nil {
			return fmt.Errorf("record output %s: %w", o.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Runs returns recorded runs, newest first. UUIDv7 ids sort by creation
// time, so ordering by id needs no timestamp column.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fingerprint, generator_version, targets, files_written, files_unchanged, lines
		FROM runs
		ORDER BY id COLLATE BINARY DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Fingerprint, &r.GeneratorVersion, &r.Targets,
			&r.FilesWritten, &r.FilesUnchanged, &r.Lines); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunOutputs returns the files recorded for a run, ordered by path.
func (s *Store) RunOutputs(ctx context.Context, runID string) ([]OutputRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, sha256, lines, changed
		FROM outputs
		WHERE run_id = ?
		ORDER BY path COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outputs: %w", err)
	}
	defer rows.Close()

	outputs := []OutputRecord{}
	for rows.Next() {
		var o OutputRecord
		if err := rows.Scan(&o.Path, &o.SHA256, &o.Lines, &o.Changed); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		outputs = append(outputs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outputs: %w", err)
	}
	return outputs, nil
}
