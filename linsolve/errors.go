package linsolve

import "errors"

var (
	// ErrSingular is returned when factorization meets a zero pivot
	// column: the system has no unique solution.
	ErrSingular = errors.New("linsolve: matrix is singular")

	// ErrNumerical is returned when the solve produced NaN or Inf —
	// the system is numerically unsolvable at this iterate.
	ErrNumerical = errors.New("linsolve: non-finite solution")

	// ErrDimension is returned when the right-hand side length does not
	// match the matrix dimension.
	ErrDimension = errors.New("linsolve: dimension mismatch")
)
