package newton

import (
	"log/slog"

	"github.com/katalvlaran/daeflow/linsolve"
)

// Default iteration parameters. They suit well-scaled systems; stiff or
// badly initialized cases usually need a larger iteration cap rather than
// a looser tolerance.
const (
	// DefaultTol is the convergence tolerance on the maximum absolute
	// residual.
	DefaultTol = 1e-6

	// DefaultMaxIter caps the number of Newton iterations per solve.
	DefaultMaxIter = 20

	// DivergenceFactor aborts the solve once the mismatch exceeds this
	// multiple of the first iteration's mismatch.
	DivergenceFactor = 1e4
)

// Config collects the tunable knobs of a Newton solve.
type Config struct {
	// Tol is the convergence tolerance on the mismatch.
	Tol float64

	// MaxIter is the iteration cap.
	MaxIter int

	// Solver is the linear backend factorizing the stacked Jacobian.
	Solver linsolve.Solver

	// Logger receives per-iteration progress and diagnostics.
	Logger *slog.Logger
}

// DefaultConfig returns the stock configuration: DefaultTol, DefaultMaxIter,
// the sparse LU backend and the process-default logger.
func DefaultConfig() Config {
	return Config{
		Tol:     DefaultTol,
		MaxIter: DefaultMaxIter,
		Solver:  linsolve.LU{},
		Logger:  slog.Default(),
	}
}

// normalize fills zero-valued fields with their defaults.
func (c Config) normalize() Config {
	if c.Tol <= 0 {
		c.Tol = DefaultTol
	}
	if c.MaxIter <= 0 {
		c.MaxIter = DefaultMaxIter
	}
	if c.Solver == nil {
		c.Solver = linsolve.LU{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
