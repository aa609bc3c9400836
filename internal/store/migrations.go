package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all plugin tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		job_id      TEXT NOT NULL,
		tool        TEXT NOT NULL,
		command     TEXT NOT NULL,
		exit_code   INTEGER NOT NULL,
		stderr      TEXT NOT NULL DEFAULT '',
		started_at  TEXT NOT NULL,
		finished_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_job_id ON runs(job_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
