package discrete

import (
	"fmt"

	"github.com/katalvlaran/daeflow/core"
)

// Switcher generates option-selection flags from an input parameter: one
// flag per allowed option, set to 1 where the input equals that option.
// Flags are 0-indexed after the option list order.
//
// Unlike Selector, which classifies at run time from variable values,
// Switcher classifies a parameter once against a fixed option list; it is
// usually cached and force-evaluated at system setup.
type Switcher struct {
	base

	u       core.VProvider
	options []float64
	s       []*Flag

	// Owner and Param identify the switched parameter in OptionError.
	Owner string
	Param string

	cache bool
	valid bool
}

// NewSwitcher builds the option-match switcher. owner and param name the
// offending location if an input value falls outside the option list.
func NewSwitcher(name, owner, param string, u core.VProvider, optionList []float64, opts ...Option) *Switcher {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	sw := &Switcher{
		base:    base{name: name},
		u:       u,
		options: optionList,
		s:       make([]*Flag, len(optionList)),
		Owner:   owner,
		Param:   param,
		cache:   o.cache,
	}
	for i := range optionList {
		sw.s[i] = sw.addFlag(fmt.Sprintf("s%d", i), 0)
	}
	return sw
}

// S returns the flag values of option i.
func (sw *Switcher) S(i int) []float64 { return sw.s[i].V }

// Invalidate marks a cached result stale; the next evaluation recomputes.
func (sw *Switcher) Invalidate() { sw.valid = false }

// CheckVar evaluates the switcher flags, honoring the cache. Any input
// value outside the option list surfaces as an *OptionError.
//
// The Discrete surface has no error return in the CheckVar phase, so the
// lifecycle calls Eval at setup where the configuration error belongs;
// CheckVar on an unvalidated switcher panics on bad data rather than
// silently proceeding.
func (sw *Switcher) CheckVar() {
	if err := sw.Eval(); err != nil {
		panic(err)
	}
}

// Eval is CheckVar with the configuration error surfaced. The system runs
// it once at setup (forcing evaluation even for cached instances).
func (sw *Switcher) Eval() error {
	if sw.cache && sw.valid {
		return nil
	}
	u := sw.u.Values()
	for _, v := range u {
		if !sw.allowed(v) {
			return &OptionError{Owner: sw.Owner, Param: sw.Param, Value: v, Options: sw.options}
		}
	}
	for i, opt := range sw.options {
		for j, v := range u {
			sw.s[i].V[j] = b2f(v == opt)
		}
	}
	sw.valid = true
	return nil
}

func (sw *Switcher) allowed(v float64) bool {
	for _, opt := range sw.options {
		if v == opt {
			return true
		}
	}
	return false
}
