package core

// VProvider supplies per-element values for consumers that do not care
// whether the source is a solved variable, a parameter array or a derived
// service. Discrete flags and equation callbacks read their inputs through
// this surface.
type VProvider interface {
	// Values returns the current per-element values. Callers must treat
	// the returned slice as read-only.
	Values() []float64
}

// Values returns the variable's current iterate values.
func (v *Var) Values() []float64 { return v.V }

// Slice adapts a plain parameter array to the VProvider surface.
type Slice []float64

// Values returns the underlying array.
func (s Slice) Values() []float64 { return s }
