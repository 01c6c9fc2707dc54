// Package history records one row per run so past classifications can be
// compared. Tasks themselves are never stored; they are recomputed from the
// task files every run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rnwolfe/dated/internal/calendar"
	"github.com/rnwolfe/dated/internal/todo"
)

// Skip is a record the loader could not use.
type Skip struct {
	File   string
	Reason string
}

// Run is one classification run.
type Run struct {
	ID         string
	StartedAt  time.Time
	Today      time.Time
	Summary    todo.Summary
	Files      int
	OutputPath string
	Skips      []Skip
	// SkipCount is filled by List; Skips is only loaded by Get.
	SkipCount int
}

// NewRun starts a run with a fresh ID.
func NewRun(now time.Time) Run {
	return Run{
		ID:        uuid.NewString(),
		StartedAt: now.UTC(),
		Today:     calendar.Today(now),
	}
}

// Store handles run persistence.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves r and its skips in one transaction.
func (s *Store) Record(ctx context.Context, r Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, today, overdue, due_today, rest_of_week, dated, later, inactive, files, skipped, output_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.Format(time.RFC3339), r.Today.Format(calendar.DateLayout),
		r.Summary.Overdue, r.Summary.Today, r.Summary.RestOfWeek, r.Summary.Dated, r.Summary.Later, r.Summary.Inactive,
		r.Files, len(r.Skips), r.OutputPath,
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.ID, err)
	}

	for _, sk := range r.Skips {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_skips (run_id, file, reason) VALUES (?, ?, ?)`,
			r.ID, sk.File, sk.Reason,
		); err != nil {
			return fmt.Errorf("recording skip for %s: %w", sk.File, err)
		}
	}
	return tx.Commit()
}

// List returns the latest limit runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, today, overdue, due_today, rest_of_week, dated, later, inactive, files, skipped, output_path
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns one run with its skips. id may be a unique prefix.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, today, overdue, due_today, rest_of_week, dated, later, inactive, files, skipped, output_path
		 FROM runs WHERE id LIKE ? || '%' LIMIT 2`, id)
	if err != nil {
		return nil, fmt.Errorf("fetching run: %w", err)
	}
	var found []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		found = append(found, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("run %q not found", id)
	case 2:
		return nil, fmt.Errorf("run id %q is ambiguous", id)
	}

	r := found[0]
	skipRows, err := s.db.QueryContext(ctx, `SELECT file, reason FROM run_skips WHERE run_id = ? ORDER BY id`, r.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching skips: %w", err)
	}
	defer skipRows.Close()
	for skipRows.Next() {
		var sk Skip
		if err := skipRows.Scan(&sk.File, &sk.Reason); err != nil {
			return nil, err
		}
		r.Skips = append(r.Skips, sk)
	}
	return &r, skipRows.Err()
}

// Prune deletes all but the newest keep runs and returns how many went.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r                  Run
		startedStr, dayStr string
	)
	err := sc.Scan(&r.ID, &startedStr, &dayStr,
		&r.Summary.Overdue, &r.Summary.Today, &r.Summary.RestOfWeek, &r.Summary.Dated, &r.Summary.Later, &r.Summary.Inactive,
		&r.Files, &r.SkipCount, &r.OutputPath)
	if err != nil {
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	if r.StartedAt, err = time.Parse(time.RFC3339, startedStr); err != nil {
		return Run{}, fmt.Errorf("parsing started_at %q: %w", startedStr, err)
	}
	if r.Today, err = calendar.Parse(dayStr); err != nil {
		return Run{}, err
	}
	return r, nil
}
