// Package store persists the plugin's run history: every external command
// executed for a job, its exit code, and its captured stderr.
package store

import (
	"context"

	"github.com/me/qpshotgun/pkg/model"
)

// Store defines the run-history persistence layer.
type Store interface {
	// RecordRun inserts one command execution record.
	RecordRun(ctx context.Context, run *model.CommandRun) error

	// ListRunsByJob returns a job's command records in execution order.
	ListRunsByJob(ctx context.Context, jobID string) ([]*model.CommandRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
