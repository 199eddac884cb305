// Package system ties the layers together: models declare variables,
// parameters, services and discrete instances; the System owns the global
// DAE storage, performs one-time address binding and external linking at
// Setup, and exposes the per-iteration lifecycle hooks the Newton driver
// invokes in fixed order:
//
//	EClear → LUpdate → FUpdate → GUpdate → LCheckEq → FGToDAE → JUpdate
//	→ (solve) → VarsToModels
//
// A Model contributes residuals only through its own variables' local E
// accumulators; FGToDAE sums them into the global vectors by address, so
// several models feeding the same external address compose additively.
//
// The System also serves as the simulation clock for time-aware discrete
// instances (delays, derivatives): Now returns the current simulation
// time, advanced by the caller between solves.
package system
