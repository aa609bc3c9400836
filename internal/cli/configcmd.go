package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/qpshotgun/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the plugin configuration",
	}

	var out string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file to edit by hand",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DefaultPluginConfig().Write(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	initCmd.Flags().StringVar(&out, "out", "plugin.yaml", "Output path")

	cmd.AddCommand(initCmd)
	return cmd
}
