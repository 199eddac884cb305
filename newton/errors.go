package newton

import "errors"

var (
	// ErrNilSystem is returned by New when the system handle is nil.
	ErrNilSystem = errors.New("newton: system must not be nil")

	// ErrLinearSolve wraps a failure of the inner sparse linear solve.
	// Inspect with errors.Is; the cause (for example linsolve.ErrSingular)
	// is preserved in the chain.
	ErrLinearSolve = errors.New("newton: linear solve failed")
)
