package model

import "time"

// CommandRun is one external tool invocation as recorded in the local
// run-history store. It exists for operators: when a job fails days later
// the exact command, exit code, and captured stderr are still on disk.
type CommandRun struct {
	ID         string
	JobID      string
	Tool       string
	Command    string
	ExitCode   int
	Stderr     string
	StartedAt  time.Time
	FinishedAt time.Time
}
