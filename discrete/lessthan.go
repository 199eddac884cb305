package discrete

import "github.com/katalvlaran/daeflow/core"

// LessThan is a threshold comparator. It exports two flags: z1, set where
// the condition u < bound (or u <= bound with WithEqual) holds, and z0, its
// element-wise negation.
//
// With WithCache, the first evaluation is kept and further CheckVar calls
// are no-ops until Invalidate; the cache transition is explicit — valid
// after an evaluation, stale after Invalidate.
//
// Disabled default: z0/z1 keep their constructor defaults (WithDefaults).
type LessThan struct {
	base

	u, bound core.VProvider

	enable bool
	equal  bool
	cache  bool
	valid  bool

	z0, z1 *Flag
}

// NewLessThan builds the comparator. The flag defaults (used when disabled)
// are z0=0, z1=1 unless overridden with WithDefaults.
func NewLessThan(name string, u, bound core.VProvider, opts ...Option) *LessThan {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	lt := &LessThan{
		base:   base{name: name},
		u:      u,
		bound:  bound,
		enable: o.enable,
		equal:  o.equal,
		cache:  o.cache,
	}
	lt.z0 = lt.addFlag("z0", o.z0)
	lt.z1 = lt.addFlag("z1", o.z1)
	return lt
}

// Z0 returns the negation flag values.
func (lt *LessThan) Z0() []float64 { return lt.z0.V }

// Z1 returns the condition flag values.
func (lt *LessThan) Z1() []float64 { return lt.z1.V }

// Invalidate marks a cached result stale; the next CheckVar re-evaluates.
func (lt *LessThan) Invalidate() { lt.valid = false }

// CheckVar evaluates the comparison flags, honoring the cache.
func (lt *LessThan) CheckVar() {
	if !lt.enable {
		return
	}
	if lt.cache && lt.valid {
		return
	}
	u, b := lt.u.Values(), lt.bound.Values()
	for i := range lt.z1.V {
		if lt.equal {
			lt.z1.V[i] = b2f(u[i] <= b[i])
		} else {
			lt.z1.V[i] = b2f(u[i] < b[i])
		}
		lt.z0.V[i] = 1 - lt.z1.V[i]
	}
	lt.valid = true
}
