// Package core provides the addressed-variable layer and the global DAE
// storage that every other daeflow package builds on.
//
// # Addressed variables
//
// A Var represents one named unknown of the network — one scalar per element
// of the owning model. Each element maps to a unique, stable slot ("address")
// in the shared global solution vector. A Var is created unaddressed at
// model-definition time; SetAddress binds its slots exactly once at system
// finalization, after which its value and residual arrays are valid and
// zero-initialized. Using a Var before addressing, or addressing it twice,
// is a usage error and fails loudly (ErrNotAddressed / ErrAddressSet).
//
// An ExtVar does not own addresses of its own: it aliases a source Var's
// addresses through an index mapping resolved by LinkExternal. Its value and
// residual arrays are locally allocated; local residuals are summed — never
// copied — into the global residual vector at the shared addresses, so
// multiple referencing models accumulate correctly.
//
// # DAE storage
//
// DAE owns the split global vectors: X (state values) with residuals F, and
// Y (algebraic values) with residuals G, plus the four sparse Jacobian blocks
// Fx, Fy, Gx and Gy kept as coordinate triplets. Addresses are handed out by
// AddrState/AddrAlgeb and frozen by Finalize. Assemble stacks the four blocks
// into the single (n+m)×(n+m) Newton matrix
//
//	| Fx  Fy |
//	| Gx  Gy |
//
// with algebraic rows and columns offset by the state count.
//
// Invariants:
//   - addresses are unique and stable once assigned;
//   - len(A) == len(V) == len(E) for every addressed Var;
//   - duplicate triplet entries sum on assembly.
package core
