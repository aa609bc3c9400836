package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/me/qpshotgun/internal/humann2"
	"github.com/me/qpshotgun/internal/shogun"
	"github.com/me/qpshotgun/pkg/model"
)

func newDefaultsCmd() *cobra.Command {
	var toolName string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print a tool's default parameter set as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			var params model.Parameters
			switch toolName {
			case humann2.Name:
				params = humann2.DefaultParameters(cfg.Humann2.NucleotideDB, cfg.Humann2.ProteinDB)
			case shogun.Name:
				params = shogun.DefaultParameters(cfg.Shogun.DBRoot)
			default:
				return fmt.Errorf("unsupported tool %q (supported: %v)", toolName, toolNames())
			}

			data, err := yaml.Marshal(params)
			if err != nil {
				return fmt.Errorf("marshal defaults: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&toolName, "tool", "", "Tool name (required)")
	cmd.MarkFlagRequired("tool")

	return cmd
}
