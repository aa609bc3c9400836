package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/qpshotgun/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var jobID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the recorded command history of a job",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.StorePath == "" {
				return fmt.Errorf("no run-history store configured (set store_path)")
			}

			st, err := store.NewSQLiteStore(cfg.StorePath, logger)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer st.Close()
			if err := st.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate run history: %w", err)
			}

			runs, err := st.ListRunsByJob(cmd.Context(), jobID)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no recorded runs for job %s\n", jobID)
				return nil
			}

			for i, run := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] exit=%d duration=%s\n   %s\n",
					i+1, run.Tool, run.ExitCode,
					run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond), run.Command)
				if run.ExitCode != 0 && run.Stderr != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "   stderr: %s\n", run.Stderr)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jobID, "job-id", "", "Job identifier (required)")
	cmd.MarkFlagRequired("job-id")

	return cmd
}
