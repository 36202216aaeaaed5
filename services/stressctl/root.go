package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blakelange123/vibelux-stressindex/internal/logging"
)

type cliState struct {
	logLevel string
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "stressctl",
		Short: "Score plant stress snapshots from the command line",
		Long: `stressctl evaluates photobiology stress snapshots stored as YAML or JSON,
prints the per-stage reference tables and summarizes stress history.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(state.logLevel, "console")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			state.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = state.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&state.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newEvaluateCmd(state), newStagesCmd(), newTrendCmd())
	return root
}
