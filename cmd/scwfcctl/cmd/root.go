package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hborlik/scwfc/logx"
)

var (
	verbose bool
	log     logx.Logger
)

var rootCmd = &cobra.Command{
	Use:   "scwfcctl",
	Short: "Inspect and drive the spatial-constraint + wave-function-collapse solver",
	Long: `scwfcctl loads an object database (spec.md §6's JSON format),
validates it, and drives a headless sc_propagate + wfc_solve run against
an in-memory scene, printing a connectivity summary of the result.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logx.LevelInfo
		if verbose {
			level = logx.LevelDebug
		}
		log = logx.NewDefault(level, os.Stdout)
		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
}

// getLogger returns the logger configured by PersistentPreRunE, falling
// back to a no-op logger for subcommands invoked outside Execute (e.g.
// directly in tests).
func getLogger() logx.Logger {
	if log == nil {
		return logx.Null()
	}
	return log
}
