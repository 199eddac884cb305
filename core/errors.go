// Package core: sentinel error set.
// All lifecycle misuse surfaces through these sentinels and is matched with
// errors.Is. Panics are reserved for programmer errors in private helpers.

package core

import "errors"

var (
	// ErrNotAddressed is returned when a Var is used before SetAddress,
	// or when an ExtVar is linked against an unaddressed source.
	ErrNotAddressed = errors.New("core: variable not addressed")

	// ErrAddressSet is returned when SetAddress is called a second time.
	// Addresses are bound exactly once at system finalization.
	ErrAddressSet = errors.New("core: address already set")

	// ErrLinked is returned when LinkExternal is called a second time.
	ErrLinked = errors.New("core: external variable already linked")

	// ErrIndexRange is returned when an external index mapping points
	// outside the source variable's element range.
	ErrIndexRange = errors.New("core: external index out of range")

	// ErrFinalized is returned when new addresses are requested after
	// Finalize froze the global vectors.
	ErrFinalized = errors.New("core: address space already finalized")
)
