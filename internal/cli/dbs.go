package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/qpshotgun/internal/shogun"
)

func newDBsCmd() *cobra.Command {
	var dbRoot string

	cmd := &cobra.Command{
		Use:   "dbs",
		Short: "List available SHOGUN reference databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := dbRoot
			if root == "" {
				root = cfg.Shogun.DBRoot
			}
			if root == "" {
				return fmt.Errorf("no database root configured (set shogun.db_root or --db-root)")
			}

			dbs, err := shogun.ListDatabases(root)
			if err != nil {
				return err
			}
			for _, db := range dbs {
				fmt.Fprintln(cmd.OutOrStdout(), db)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbRoot, "db-root", "", "Database root directory (default: config shogun.db_root)")

	return cmd
}
