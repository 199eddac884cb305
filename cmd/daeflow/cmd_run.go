package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/daeflow/batch"
	"github.com/katalvlaran/daeflow/config"
)

var runCmd = &cobra.Command{
	Use:   "run <run.yaml>",
	Short: "Run a batch of case files as isolated child processes",
	Long: `Run expands the case patterns of a run configuration and solves each
matched case file in its own child process. At most ncpu processes run at
once; each group is joined before the next one launches.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := config.Load(args[0])
		if err != nil {
			return err
		}
		cases, err := batch.Expand(run.Cases)
		if err != nil {
			return err
		}

		self, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolve own executable: %w", err)
		}
		slog.Info("batch starting",
			"cases", len(cases), "ncpu", run.NCPU, "backend", run.Backend)

		r := &batch.Runner{
			Command: self,
			Args: func(cf string) []string {
				return []string{
					"solve", cf,
					"--tol", strconv.FormatFloat(run.Tol, 'g', -1, 64),
					"--max-iter", strconv.Itoa(run.MaxIter),
					"--backend", run.Backend,
				}
			},
			NCPU:   run.NCPU,
			Logger: slog.Default(),
		}
		return r.Run(cmd.Context(), cases)
	},
}
