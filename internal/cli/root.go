package cli

import (
	"log/slog"

	"github.com/me/seasonsim/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the seasonsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seasonsim",
		Short: "Calendar-driven season simulation",
		Long:  "seasonsim schedules season events, simulates them day by day, and aggregates results into season standings.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(flagLogLevel, flagLogFormat)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newStandingsCmd(),
		newCheckpointsCmd(),
	)

	return root
}
