// Package cli implements the qp-shotgun command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/qpshotgun/internal/config"
	"github.com/me/qpshotgun/internal/logging"
	"github.com/me/qpshotgun/internal/qiita"
)

var (
	flagConfig    string
	flagServer    string
	flagToken     string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    config.PluginConfig
	logger *slog.Logger
	client *qiita.Client
)

// defaultServer returns the default server URL, checking the QP_SERVER env
// var first.
func defaultServer() string {
	if s := os.Getenv("QP_SERVER"); s != "" {
		return s
	}
	return ""
}

// NewRootCmd creates the root cobra command for the qp-shotgun CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qp-shotgun",
		Short: "qp-shotgun — shotgun metagenomics plugin",
		Long:  "qp-shotgun runs HUMAnN2 and SHOGUN analysis jobs on behalf of a job-control server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.DefaultPluginConfig()
			if flagConfig != "" {
				loaded, err := config.Load(flagConfig)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			// Flags win over the config file.
			if flagServer != "" {
				cfg.ServerURL = flagServer
			}
			if flagToken != "" {
				cfg.Token = flagToken
			}
			if flagLogLevel != "" {
				cfg.LogLevel = flagLogLevel
			}
			if flagLogFormat != "" {
				cfg.LogFormat = flagLogFormat
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}

			logger = logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
			client = qiita.NewClient(cfg.ServerURL, cfg.Token, nil, logger)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Plugin config file (YAML)")
	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "Job-control server URL (or QP_SERVER env)")
	root.PersistentFlags().StringVar(&flagToken, "token", "", "Job-control API token")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newDBsCmd(),
		newDefaultsCmd(),
		newHistoryCmd(),
		newConfigCmd(),
	)

	return root
}
