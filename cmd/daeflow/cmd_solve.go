package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/daeflow/config"
	"github.com/katalvlaran/daeflow/newton"
)

// caseFile is one case description: which demo system to solve.
type caseFile struct {
	System string `yaml:"system"`
}

var solveFlags struct {
	tol     float64
	maxIter int
	backend string
}

var solveCmd = &cobra.Command{
	Use:   "solve <case.yaml>",
	Short: "Solve a single case file in-process",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return solveCase(args[0])
	},
}

func init() {
	solveCmd.Flags().Float64Var(&solveFlags.tol, "tol", newton.DefaultTol,
		"convergence tolerance on the mismatch")
	solveCmd.Flags().IntVar(&solveFlags.maxIter, "max-iter", newton.DefaultMaxIter,
		"maximum Newton iterations")
	solveCmd.Flags().StringVar(&solveFlags.backend, "backend", config.BackendSparseLU,
		"linear solver backend (sparse-lu or dense-lu)")
}

func solveCase(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cf caseFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	sys, err := buildDemo(cf.System)
	if err != nil {
		return err
	}
	if err := sys.InitFromModels(); err != nil {
		return err
	}

	run := config.Run{
		Tol: solveFlags.tol, MaxIter: solveFlags.maxIter,
		NCPU: 1, Backend: solveFlags.backend,
	}
	solver, err := run.Solver()
	if err != nil {
		return err
	}

	drv, err := newton.New(sys, newton.Config{
		Tol:     run.Tol,
		MaxIter: run.MaxIter,
		Solver:  solver,
	})
	if err != nil {
		return err
	}

	res, err := drv.Solve()
	if err != nil {
		return err
	}
	slog.Info("solve finished",
		"case", path, "system", cf.System, "status", res.Status,
		"iterations", res.Iterations, "mismatch", res.Mismatch())

	printSolution(sys, res)
	if res.Status != newton.Converged {
		return fmt.Errorf("case %s: %s", path, res.Status)
	}
	return nil
}

// printSolution writes the solved vectors and discrete flags to stdout.
func printSolution(sys solvedSystem, res newton.Result) {
	d := sys.DAE()
	for i, v := range d.X {
		fmt.Printf("%s = %.6g\n", d.RowName(i), v)
	}
	for i, v := range d.Y {
		fmt.Printf("%s = %.6g\n", d.RowName(d.N()+i), v)
	}

	flags := sys.ExportFlags()
	names := make([]string, 0, len(flags))
	for n := range flags {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("%s = %v\n", n, flags[n])
	}
	fmt.Printf("status = %s after %d iterations\n", res.Status, res.Iterations)
}

// solvedSystem is the slice of the system surface printSolution needs.
type solvedSystem interface {
	newton.System
	ExportFlags() map[string][]float64
}
