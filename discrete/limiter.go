package discrete

import (
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/daeflow/core"
)

// Limiter compares a variable against lower/upper bounds. Exported flags:
// zi (within limits), zl (at or below lower) and zu (at or above upper).
// Upper-only/lower-only configurations omit the unused side: its flag is
// held at 0 and not exported.
//
// Disabled default: zu = zl = 0, zi = 1 (pass-through).
//
// Note that zi + zl + zu need not always sum to 1 across variants; each
// variant documents its own identity.
type Limiter struct {
	base

	u, lower, upper core.VProvider

	enable    bool
	lowerOnly bool
	upperOnly bool

	zu, zl, zi *Flag
}

// NewLimiter builds a plain (hard) limiter.
func NewLimiter(name string, u, lower, upper core.VProvider, opts ...Option) *Limiter {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return newLimiter(name, u, lower, upper, o)
}

func newLimiter(name string, u, lower, upper core.VProvider, o options) *Limiter {
	l := &Limiter{
		base:      base{name: name},
		u:         u,
		lower:     lower,
		upper:     upper,
		enable:    o.enable,
		lowerOnly: o.lowerOnly,
		upperOnly: o.upperOnly,
	}
	// zi first, then the sides actually in use: construction-time fixed order.
	l.zi = l.addFlag("zi", 1)
	l.zl = &Flag{Name: "zl"}
	l.zu = &Flag{Name: "zu"}
	if !l.upperOnly {
		l.flags = append(l.flags, l.zl)
	}
	if !l.lowerOnly {
		l.flags = append(l.flags, l.zu)
	}
	return l
}

// Zi returns the within-limits flag values.
func (l *Limiter) Zi() []float64 { return l.zi.V }

// Zl returns the below-lower flag values.
func (l *Limiter) Zl() []float64 { return l.zl.V }

// Zu returns the above-upper flag values.
func (l *Limiter) Zu() []float64 { return l.zu.V }

// Resize sizes the exported flags and the held-at-zero omitted side.
func (l *Limiter) Resize(n int) {
	l.base.Resize(n)
	if l.upperOnly {
		l.zl.V = make([]float64, n)
	}
	if l.lowerOnly {
		l.zu.V = make([]float64, n)
	}
}

// evalThresholds is the shared limiter math: zu = (u >= upper) unless
// lowerOnly, zl = (u <= lower) unless upperOnly, zi = !(zu || zl).
// All limiter-family variants parameterize this one helper.
func (l *Limiter) evalThresholds() {
	u := l.u.Values()
	var lo, up []float64
	if !l.upperOnly {
		lo = l.lower.Values()
	}
	if !l.lowerOnly {
		up = l.upper.Values()
	}
	for i := range l.zi.V {
		if up != nil {
			l.zu.V[i] = b2f(u[i] >= up[i])
		}
		if lo != nil {
			l.zl.V[i] = b2f(u[i] <= lo[i])
		}
		l.zi.V[i] = b2f(l.zu.V[i] == 0 && l.zl.V[i] == 0)
	}
}

// CheckVar evaluates the limiter flags.
func (l *Limiter) CheckVar() {
	if !l.enable {
		return
	}
	l.evalThresholds()
}

// SortedLimiter extends Limiter with a ranked bypass: the NSelect elements
// most extreme below the lower bound, and the NSelect most extreme above the
// upper bound, bypass clamping even while violating — their zi is forced to
// 1 and zl/zu to 0. Ranking is a stable ascending sort of the distance from
// the bound, ties broken by element index.
type SortedLimiter struct {
	Limiter

	nSelect int
}

// NewSortedLimiter builds the ranked variant; set the bypass count with
// WithNSelect.
func NewSortedLimiter(name string, u, lower, upper core.VProvider, opts ...Option) *SortedLimiter {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &SortedLimiter{Limiter: *newLimiter(name, u, lower, upper, o), nSelect: o.nSelect}
}

// CheckVar evaluates the plain limiter flags, then applies the ranked bypass.
func (s *SortedLimiter) CheckVar() {
	if !s.enable {
		return
	}
	s.evalThresholds()
	if s.nSelect <= 0 {
		return
	}

	u := s.u.Values()
	lo := s.lower.Values()
	up := s.upper.Values()
	n := len(u)

	// Rank by distance from each bound; stable sort keeps index order on ties.
	asc := make([]int, n)
	desc := make([]int, n)
	for i := range asc {
		asc[i], desc[i] = i, i
	}
	slices.SortStableFunc(asc, func(a, b int) int {
		da, db := u[a]-lo[a], u[b]-lo[b]
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	slices.SortStableFunc(desc, func(a, b int) int {
		da, db := up[a]-u[a], up[b]-u[b]
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})

	k := s.nSelect
	if k > n {
		k = n
	}
	for _, idx := range asc[:k] {
		s.zi.V[idx], s.zl.V[idx], s.zu.V[idx] = 1, 0, 0
	}
	for _, idx := range desc[:k] {
		s.zi.V[idx], s.zl.V[idx], s.zu.V[idx] = 1, 0, 0
	}
}
