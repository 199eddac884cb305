// Package discrete implements the stateful flag layer: boolean/real flag
// arrays (limiters, comparators, dead bands, delays) that gate which
// equation terms are active in a DAE network, and that may — in one tightly
// scoped place — mutate the governed variable's state directly (anti-windup).
//
// # Evaluation contract
//
// Every flag instance follows the same three-phase contract per Newton
// iteration, invoked by the system in a fixed order:
//
//	CheckVar() — before equations are evaluated; reads variable values and
//	             updates this instance's own flags only.
//	CheckEq()  — after equation residuals are evaluated; may inspect
//	             residuals (anti-windup) and update flags.
//	SetEq()    — after CheckEq; the only place where another owner's
//	             equation state may be overwritten. Returns the list of
//	             (address, forced-value) pairs for the driver to apply.
//
// A disabled instance produces its documented pass-through default and does
// no further work.
//
// # Flag export
//
// Each instance exposes a fixed, ordered collection of named flag fields
// resolved at construction time (no string-built attribute lookup). The
// public name of a flag is "<instance-name>_<flag-name>", e.g. db_zi or
// IC_s0, for consumption by equation callbacks elsewhere in the system.
//
// # Composition over inheritance
//
// The limiter variants (plain, ranked-bypass, anti-windup, dead-band) share
// one threshold-evaluation helper and differ only in policy; there is no
// type hierarchy beyond small struct embedding for the delay family.
package discrete
