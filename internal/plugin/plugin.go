// Package plugin drives a job end to end: collect metadata from the
// job-control server, generate one command per sample, execute the
// commands in order, run the tool's post-processing hooks, and report the
// outcome.
package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/me/qpshotgun/pkg/model"
)

// JobClient is the slice of the job-control API the orchestrator needs.
type JobClient interface {
	Artifact(ctx context.Context, id string) (*model.ArtifactInfo, error)
	PrepTemplate(ctx context.Context, id string) (*model.PrepInfo, error)
	UpdateJobStep(ctx context.Context, jobID, msg string) error
}

// SampleLookup loads a sample-mapping file into run prefix → sample name.
type SampleLookup func(path string) (map[string]string, error)

// Runner executes one shell command to completion, returning its captured
// output streams and exit code. err is reserved for failures to run the
// command at all (a non-zero exit is not an err).
type Runner interface {
	Run(ctx context.Context, command string) (stdout, stderr string, exitCode int, err error)
}

// RunRecorder persists per-command execution records. Implementations must
// tolerate being called once per command in a tight sequential loop.
type RunRecorder interface {
	RecordRun(ctx context.Context, run *model.CommandRun) error
}

// Merger consolidates per-sample outputs into combined tables after all
// commands succeed. Tools without a merge step leave Tool.Merger nil.
type Merger interface {
	Merge(ctx context.Context, outDir string) ([]model.ArtifactOutput, error)
}

// Renormalizer post-processes merged tables. Tools without a
// re-normalization step leave Tool.Renormalizer nil.
type Renormalizer interface {
	Renormalize(ctx context.Context, outDir string) ([]model.ArtifactOutput, error)
}

// CommandsFunc generates the ordered list of shell commands for one job:
// one command per sample (or per read pair).
type CommandsFunc func(forward, reverse []string, samples map[string]string, outDir string, params model.Parameters) ([]string, error)

// Tool describes one supported analysis tool.
type Tool struct {
	// Name is the command name as registered on the job-control server.
	Name string
	// Commands builds the tool's command lines.
	Commands CommandsFunc
	// Merger and Renormalizer are optional post-processing hooks.
	Merger       Merger
	Renormalizer Renormalizer
}

// Orchestrator sequences the five job steps. Execution is strictly
// sequential: one external process at a time, fully awaited.
type Orchestrator struct {
	client JobClient
	lookup SampleLookup
	runner Runner
	store  RunRecorder // optional
	logger *slog.Logger
}

// NewOrchestrator wires an orchestrator. store may be nil to disable run
// recording.
func NewOrchestrator(client JobClient, lookup SampleLookup, runner Runner, store RunRecorder, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		client: client,
		lookup: lookup,
		runner: runner,
		store:  store,
		logger: logger.With("component", "orchestrator"),
	}
}

// Execute runs one job for the given tool.
//
// Error contract: collaborator failures (job-control API, mapping file)
// and command-generation validation errors propagate as a non-nil error —
// they are configuration/data problems that must stop the job before any
// external process runs. Failures of the external commands themselves are
// converted into a JobResult with Success=false and a diagnostic message
// embedding the captured output; err is nil in that case.
func (o *Orchestrator) Execute(ctx context.Context, tool Tool, jobID string, params model.Parameters, outDir string) (model.JobResult, error) {
	o.step(ctx, jobID, "Step 1 of 5: Collecting information")

	artifactID, ok := params.Get("input")
	if !ok {
		return model.JobResult{}, fmt.Errorf("job %s: no input parameter", jobID)
	}
	// The artifact id is job metadata, not a tool flag.
	params = params.Without("input")

	artifact, err := o.client.Artifact(ctx, artifactID)
	if err != nil {
		return model.JobResult{}, err
	}
	if len(artifact.PrepInformation) == 0 {
		return model.JobResult{}, fmt.Errorf("artifact %s: no prep information", artifactID)
	}
	prep, err := o.client.PrepTemplate(ctx, artifact.PrepInformation[0].String())
	if err != nil {
		return model.JobResult{}, err
	}

	o.step(ctx, jobID, fmt.Sprintf("Step 2 of 5: Generating %s commands", tool.Name))

	samples, err := o.lookup(prep.QiimeMap)
	if err != nil {
		return model.JobResult{}, err
	}
	forward := artifact.Files[model.FileRoleForward]
	reverse := artifact.Files[model.FileRoleReverse]
	commands, err := tool.Commands(forward, reverse, samples, outDir, params)
	if err != nil {
		return model.JobResult{}, err
	}

	total := len(commands)
	for i, command := range commands {
		o.step(ctx, jobID, fmt.Sprintf("Step 3 of 5: Executing %s, job %d/%d", tool.Name, i+1, total))
		o.logger.Info("executing command", "job_id", jobID, "tool", tool.Name, "index", i+1, "total", total)

		started := time.Now()
		stdout, stderr, exitCode, runErr := o.runner.Run(ctx, command)
		o.record(ctx, jobID, tool.Name, command, exitCode, stderr, started)

		if runErr != nil {
			o.logger.Error("command could not be run", "job_id", jobID, "error", runErr)
			return model.JobResult{
				Success: false,
				Message: fmt.Sprintf("Error running %s:\n%s", tool.Name, runErr),
			}, nil
		}
		if exitCode != 0 {
			o.logger.Error("command failed", "job_id", jobID, "exit_code", exitCode)
			return model.JobResult{
				Success: false,
				Message: fmt.Sprintf("Error running %s:\nStd out: %s\nStd err: %s", tool.Name, stdout, stderr),
			}, nil
		}
	}

	artifacts := []model.ArtifactOutput{}

	o.step(ctx, jobID, "Step 4 of 5: Merging resulting tables")
	if tool.Merger != nil {
		merged, err := tool.Merger.Merge(ctx, outDir)
		if err != nil {
			return model.JobResult{
				Success: false,
				Message: fmt.Sprintf("Error merging %s tables: %s", tool.Name, err),
			}, nil
		}
		artifacts = append(artifacts, merged...)
	}

	o.step(ctx, jobID, "Step 5 of 5: Re-normalizing tables")
	if tool.Renormalizer != nil {
		renormed, err := tool.Renormalizer.Renormalize(ctx, outDir)
		if err != nil {
			return model.JobResult{
				Success: false,
				Message: fmt.Sprintf("Error re-normalizing %s tables: %s", tool.Name, err),
			}, nil
		}
		artifacts = append(artifacts, renormed...)
	}

	return model.JobResult{Success: true, Artifacts: artifacts, Message: ""}, nil
}

// step reports progress to the job-control server. Progress is best
// effort: a failed update is logged and the job keeps going.
func (o *Orchestrator) step(ctx context.Context, jobID, msg string) {
	if err := o.client.UpdateJobStep(ctx, jobID, msg); err != nil {
		o.logger.Warn("progress update failed", "job_id", jobID, "step", msg, "error", err)
	}
}

// record persists one command execution when a store is configured.
func (o *Orchestrator) record(ctx context.Context, jobID, tool, command string, exitCode int, stderr string, started time.Time) {
	if o.store == nil {
		return
	}
	run := &model.CommandRun{
		ID:         uuid.New().String(),
		JobID:      jobID,
		Tool:       tool,
		Command:    command,
		ExitCode:   exitCode,
		Stderr:     stderr,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if err := o.store.RecordRun(ctx, run); err != nil {
		o.logger.Warn("run record failed", "job_id", jobID, "error", err)
	}
}
