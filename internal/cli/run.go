package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/me/qpshotgun/internal/humann2"
	"github.com/me/qpshotgun/internal/logging"
	"github.com/me/qpshotgun/internal/mapping"
	"github.com/me/qpshotgun/internal/plugin"
	"github.com/me/qpshotgun/internal/shogun"
	"github.com/me/qpshotgun/internal/store"
	"github.com/me/qpshotgun/pkg/model"
)

// jobLogName is the per-job log file created inside the output directory.
const jobLogName = "qp-shotgun.log"

// tools maps job command names to their descriptors.
func tools() map[string]plugin.Tool {
	return map[string]plugin.Tool{
		humann2.Name: humann2.Tool(),
		shogun.Name:  shogun.Tool(),
	}
}

func toolNames() []string {
	var names []string
	for name := range tools() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newRunCmd() *cobra.Command {
	var jobID string
	var outDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one job to completion",
		Long: "Fetch a job from the job-control server, execute its tool on every sample, " +
			"and report the result back.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir %s: %w", outDir, err)
			}
			// The job log stays with the job's outputs so failures can be
			// reviewed without access to the plugin's terminal.
			jobLogger, logFile, err := logging.NewJobLogger(
				logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, filepath.Join(outDir, jobLogName))
			if err != nil {
				return err
			}
			defer logFile.Close()

			info, err := client.JobInfo(ctx, jobID)
			if err != nil {
				return fmt.Errorf("fetch job: %w", err)
			}
			tool, ok := tools()[info.Command]
			if !ok {
				return fmt.Errorf("job %s: unsupported command %q (supported: %v)",
					jobID, info.Command, toolNames())
			}
			jobLogger.Info("starting job", "job_id", jobID, "tool", tool.Name)

			var recorder plugin.RunRecorder
			if cfg.StorePath != "" {
				st, err := store.NewSQLiteStore(cfg.StorePath, jobLogger)
				if err != nil {
					return fmt.Errorf("open run history: %w", err)
				}
				defer st.Close()
				if err := st.Migrate(ctx); err != nil {
					return fmt.Errorf("migrate run history: %w", err)
				}
				recorder = st
			}

			orch := plugin.NewOrchestrator(client, mapping.SampleNamesByRunPrefix,
				plugin.ShellRunner{}, recorder, jobLogger)

			result, err := orch.Execute(ctx, tool, jobID, info.Parameters, outDir)
			if err != nil {
				// Validation and collaborator errors terminate the job
				// abnormally; still tell the server before exiting.
				failure := model.JobResult{Success: false, Message: err.Error()}
				if cerr := client.CompleteJob(ctx, jobID, failure); cerr != nil {
					jobLogger.Error("completion report failed", "job_id", jobID, "error", cerr)
				}
				return err
			}

			if err := client.CompleteJob(ctx, jobID, result); err != nil {
				return fmt.Errorf("report completion: %w", err)
			}

			if !result.Success {
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return fmt.Errorf("job %s failed", jobID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Job %s completed: %d artifact(s)\n", jobID, len(result.Artifacts))
			return nil
		},
	}

	cmd.Flags().StringVar(&jobID, "job-id", "", "Job identifier (required)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Job output directory (required)")
	cmd.MarkFlagRequired("job-id")
	cmd.MarkFlagRequired("out-dir")

	return cmd
}
