package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/qpshotgun/pkg/model"

	_ "modernc.org/sqlite"
)

// timeLayout pads the fraction to a fixed width so the TEXT column sorts
// chronologically; RFC3339Nano drops trailing zeros and breaks ORDER BY.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns
// a Store. Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// RecordRun inserts one command execution record.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *model.CommandRun) error {
	s.logger.Debug("sql", "op", "insert", "table", "runs", "id", run.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, job_id, tool, command, exit_code, stderr, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.JobID, run.Tool, run.Command, run.ExitCode, run.Stderr,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
	)
	return err
}

// ListRunsByJob returns a job's command records in execution order.
func (s *SQLiteStore) ListRunsByJob(ctx context.Context, jobID string) ([]*model.CommandRun, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs", "job_id", jobID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_id, tool, command, exit_code, stderr, started_at, finished_at
		 FROM runs WHERE job_id = ? ORDER BY started_at, id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*model.CommandRun
	for rows.Next() {
		var run model.CommandRun
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &run.JobID, &run.Tool, &run.Command,
			&run.ExitCode, &run.Stderr, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		run.StartedAt, _ = time.Parse(timeLayout, startedAt)
		run.FinishedAt, _ = time.Parse(timeLayout, finishedAt)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
