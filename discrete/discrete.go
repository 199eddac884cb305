package discrete

import "fmt"

// Flag is one named, exported flag array of a discrete instance. The
// fixed ordered collection of Flags per instance is resolved once at
// construction; values are 0/1 (or real for delay outputs).
type Flag struct {
	// Name is the field name within the instance, e.g. "zi" or "s0".
	Name string
	// V holds the per-element flag values.
	V []float64

	def float64
}

// ForcedValue is one (global address, forced value) pair produced by
// SetEq for the outer driver to apply onto the solution vector.
type ForcedValue struct {
	Addr  int
	Value float64
}

// Discrete is the common contract of every flag instance.
type Discrete interface {
	// Name returns the instance name used as the export prefix.
	Name() string
	// Flags returns the fixed ordered collection of exported flags.
	Flags() []*Flag
	// Resize sizes every flag array to n elements, broadcasting each
	// flag's default value. Called once at system setup.
	Resize(n int)

	// CheckVar updates flags from variable values, before equations.
	CheckVar()
	// CheckEq updates flags after equation residuals are evaluated.
	CheckEq()
	// SetEq may overwrite the governed variable's residuals/values and
	// returns the forced (address, value) pairs for the driver.
	SetEq() []ForcedValue
}

// base carries the instance name and flag collection; variants embed it and
// override the phases they participate in.
type base struct {
	name  string
	flags []*Flag
}

func (b *base) Name() string   { return b.name }
func (b *base) Flags() []*Flag { return b.flags }

func (b *base) CheckVar()            {}
func (b *base) CheckEq()             {}
func (b *base) SetEq() []ForcedValue { return nil }

// Resize broadcasts each flag's default over n elements.
func (b *base) Resize(n int) {
	for _, f := range b.flags {
		f.V = make([]float64, n)
		for i := range f.V {
			f.V[i] = f.def
		}
	}
}

// addFlag registers one named flag with its disabled/default value and
// returns its storage slot.
func (b *base) addFlag(name string, def float64) *Flag {
	f := &Flag{Name: name, def: def}
	b.flags = append(b.flags, f)
	return f
}

// ExportName returns the public name of flag f on instance d,
// "<instance>_<flag>".
func ExportName(d Discrete, f *Flag) string {
	return fmt.Sprintf("%s_%s", d.Name(), f.Name)
}

// b2f converts a condition to a 0/1 flag value.
func b2f(cond bool) float64 {
	if cond {
		return 1
	}
	return 0
}
