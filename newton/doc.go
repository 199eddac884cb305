// Package newton implements the Newton-Raphson driver orchestrating one
// nonlinear solve: the per-iteration lifecycle over the system hooks, the
// sparse assembly and linear solve of the increment, and the convergence,
// divergence and stall diagnostics.
//
// Each iteration runs the fixed sequence:
//
//	1. clear residual accumulators
//	2. update discrete flags (CheckVar)
//	3. evaluate differential residuals
//	4. evaluate algebraic residuals
//	5. anti-windup pass (CheckEq/SetEq with forced-value overrides)
//	6. collect residuals into the global vectors
//	7. evaluate Jacobian blocks and assemble the stacked sparse matrix
//	8. solve A·Δ = −[F;G], apply Δ to the state and algebraic vectors
//	9. push solved values back to the owning variables
//
// The mismatch — the maximum absolute residual — drives the exit tests:
// below tolerance is Converged; past the iteration cap is MaxIterExceeded;
// growth beyond 10⁴× the first iteration's mismatch aborts immediately as
// Diverged. A non-converged solve whose last two mismatches differ by less
// than the tolerance is stalled: the driver logs the name of the equation
// carrying the largest residual to aid diagnosis.
//
// The driver owns the global value/residual vectors exclusively for the
// duration of a solve; there is no mid-solve cancellation.
package newton
