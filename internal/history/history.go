// Package history persists run summaries to SQLite so successive runs
// can be compared and listed from the CLI.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/quickspec/internal/runner"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for run summaries.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Run is one persisted run record.
type Run struct {
	ID           string        `json:"id"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Passed       int           `json:"passed"`
	Failed       int           `json:"failed"`
	Pending      int           `json:"pending"`
	Errored      int           `json:"errored"`
	HookFailures int           `json:"hook_failures"`
}

// Open creates or opens a history database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// against an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun inserts one run summary.
func (s *Store) RecordRun(ctx context.Context, sum runner.Summary, startedAt time.Time, duration time.Duration) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, duration_ms, passed, failed, pending, errored, hook_failures)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.RunID,
		startedAt.UTC().Format(time.RFC3339Nano),
		duration.Milliseconds(),
		sum.Passed,
		sum.Failed,
		sum.Pending,
		sum.Errored,
		sum.HookFailures,
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", sum.RunID, err)
	}
	return nil
}

// ListRuns returns up to limit runs, most recent first. A non-positive
// limit means no cap.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, started_at, duration_ms, passed, failed, pending, errored, hook_failures
		FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&r.ID, &startedAt, &durationMS, &r.Passed, &r.Failed, &r.Pending, &r.Errored, &r.HookFailures); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at for run %s: %w", r.ID, err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
