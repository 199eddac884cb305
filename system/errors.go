package system

import "errors"

var (
	// ErrDupModel is returned when a model name is registered twice.
	ErrDupModel = errors.New("system: duplicate model name")

	// ErrDupSymbol is returned when a variable or parameter name collides
	// within one model.
	ErrDupSymbol = errors.New("system: duplicate symbol name in model")

	// ErrUnknownModel is returned when an external reference names a model
	// that was never registered.
	ErrUnknownModel = errors.New("system: unknown model")

	// ErrUnknownSymbol is returned when a lookup names a variable or
	// parameter the model does not declare.
	ErrUnknownSymbol = errors.New("system: unknown symbol")

	// ErrBadAttr is returned for attribute names other than "v" or "e".
	ErrBadAttr = errors.New("system: unknown attribute")

	// ErrParamLength is returned when a parameter array length disagrees
	// with the model's element count.
	ErrParamLength = errors.New("system: parameter length disagrees with element count")

	// ErrSetupDone is returned when Setup or a registration runs after the
	// system was already set up.
	ErrSetupDone = errors.New("system: already set up")

	// ErrNotSetup is returned when a lifecycle hook or lookup runs before
	// Setup.
	ErrNotSetup = errors.New("system: not set up")
)
