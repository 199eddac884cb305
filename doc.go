// Package daeflow solves differential-algebraic equation (DAE) systems that
// describe dynamic physical networks whose components switch behavior under
// threshold conditions — saturation, rate limits, dead bands and delays.
//
// 🚀 What is daeflow?
//
//	A single-process, in-memory solver core that brings together:
//		• Addressed variables: every scalar unknown maps to a stable slot in one
//		  shared global vector, with per-owner value/residual storage
//		• Services: derived quantities — constants, external references,
//		  segment reduce/repeat aggregates over ragged groupings
//		• Discrete flags: hysteretic limiters, dead bands, selectors, switchers
//		  and delay buffers that gate which equation terms are active
//		• Newton-Raphson driver: sparse Jacobian assembly, direct sparse (or
//		  dense) linear solve, convergence/divergence diagnostics
//		• Batch runner: fully isolated per-case processes with join barriers
//
// Under the hood, everything is organized under flat subpackages:
//
//	core/     — addressed variables, external aliases & global DAE storage
//	service/  — const, external, segment-reduce/repeat and random services
//	discrete/ — the flag layer: comparators, limiters, dead bands, delays
//	system/   — models, equation/Jacobian callbacks & the iteration lifecycle
//	linsolve/ — swappable sparse/dense direct linear solve backends
//	newton/   — the Newton-Raphson iteration driver
//	batch/    — process-per-case batch execution with bounded parallelism
//	config/   — YAML run configuration
//
// The per-iteration data flow is fixed: flags read variable values, equation
// callbacks produce residuals and Jacobian blocks conditioned on the flags,
// the linear backend returns the Newton increment, and the driver applies it
// back onto the variable layer before the next pass.
//
// daeflow is model-agnostic: the physics of a concrete network enters only
// through parameter data and equation/Jacobian callbacks registered on models.
package daeflow
