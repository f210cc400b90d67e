package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"schedsim/internal/logging"
	"schedsim/internal/sched"
)

var (
	flagConfig    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	cfg    sched.Config
)

// defaultConfigPath returns the config file location, checking SCHEDSIM_CONFIG first.
func defaultConfigPath() string {
	if p := os.Getenv("SCHEDSIM_CONFIG"); p != "" {
		return p
	}
	return "schedsim.yml"
}

// NewRootCmd creates the root cobra command for the schedsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedsim",
		Short: "schedsim: CPU scheduling policy simulator",
		Long:  "schedsim computes execution timelines for task sets under FIFO, SJF, STCF, RR and MLFQ.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = sched.Load(flagConfig)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
				cfg.LogLevel = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") || cfg.LogFormat == "" {
				cfg.LogFormat = flagLogFormat
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr())
			logger.Debug("config loaded", "path", flagConfig, "config", cfg)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", defaultConfigPath(), "Config file (or SCHEDSIM_CONFIG env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newGenCmd(),
		newServeCmd(),
		newReplayCmd(),
	)

	return root
}
