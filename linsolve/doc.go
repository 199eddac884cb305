// Package linsolve provides the direct linear solve backends behind the
// Newton-Raphson driver: given the assembled sparse block matrix A and a
// dense right-hand side b, a backend returns the dense solution of Ax = b.
//
// Backends are swappable behind the Solver interface:
//
//   - LU — the default: direct sparse factorization with row partial
//     pivoting over a compressed row structure.
//   - Dense — gonum mat.LU behind the same surface, for small systems and
//     for cross-checking the sparse path.
//
// A singular or numerically unsolvable system surfaces as ErrSingular /
// ErrNumerical — never a silent approximation. The driver treats both as
// fatal for the current solve and does not retry with a perturbed matrix.
package linsolve
