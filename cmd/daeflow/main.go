// Command daeflow solves demonstration equation cases with the
// Newton-Raphson driver, either one case in-process or a batch of case
// files as isolated child processes.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "daeflow",
	Short:         "DAE solver core with discrete-flag evaluation",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: level})))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("daeflow failed", "err", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.AddCommand(runCmd, solveCmd)
}
