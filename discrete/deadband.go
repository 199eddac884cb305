package discrete

import "github.com/katalvlaran/daeflow/core"

// DeadBand is a dead band with directional return memory. Input changes
// within the band incur no output change; the band additionally remembers
// which side the input most recently departed from.
//
// Exported flags:
//
//	zl, zi, zu — current zone from strict comparisons: below lower,
//	             inside, above upper.
//	zur        — returned-from-upper memory: set when the previous
//	             evaluation was above and the input is now inside; held
//	             while the zone is unchanged; cleared on any zone change.
//	zlr        — symmetric returned-from-lower memory.
//
// Together this is a five-state machine per element: Above, Below,
// Inside-from-Above, Inside-from-Below and Inside-neutral, transitioning on
// zone crossings, with the two Inside-from sub-states persisting until the
// zone changes again.
//
// Disabled default: all five flags stay 0.
type DeadBand struct {
	base

	u, center, lower, upper core.VProvider

	enable bool

	zu, zl, zi *Flag
	zur, zlr   *Flag
}

// NewDeadBand builds the dead band. center is the neutral output value
// consumed by equation callbacks; it takes no part in flag evaluation.
func NewDeadBand(name string, u, center, lower, upper core.VProvider, opts ...Option) *DeadBand {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	db := &DeadBand{
		base:   base{name: name},
		u:      u,
		center: center,
		lower:  lower,
		upper:  upper,
		enable: o.enable,
	}
	db.zl = db.addFlag("zl", 0)
	db.zi = db.addFlag("zi", 0)
	db.zu = db.addFlag("zu", 0)
	db.zur = db.addFlag("zur", 0)
	db.zlr = db.addFlag("zlr", 0)
	return db
}

// Zi returns the inside-band flag values.
func (db *DeadBand) Zi() []float64 { return db.zi.V }

// Zl returns the below-lower flag values.
func (db *DeadBand) Zl() []float64 { return db.zl.V }

// Zu returns the above-upper flag values.
func (db *DeadBand) Zu() []float64 { return db.zu.V }

// Zur returns the returned-from-upper memory flag values.
func (db *DeadBand) Zur() []float64 { return db.zur.V }

// Zlr returns the returned-from-lower memory flag values.
func (db *DeadBand) Zlr() []float64 { return db.zlr.V }

// Center returns the neutral output values for equation callbacks.
func (db *DeadBand) Center() []float64 { return db.center.Values() }

// CheckVar computes the current zone from strict comparisons, updates the
// two return-memory flags against the previous zone, then stores the zone.
func (db *DeadBand) CheckVar() {
	if !db.enable {
		return
	}
	u := db.u.Values()
	lo := db.lower.Values()
	up := db.upper.Values()
	for i := range db.zi.V {
		zu := b2f(u[i] > up[i])
		zl := b2f(u[i] < lo[i])
		zi := b2f(zu == 0 && zl == 0)

		switch {
		case db.zu.V[i] == 1 && zi == 1:
			// crossed back in from above
			db.zur.V[i] = 1
		case zi == db.zi.V[i]:
			// zone unchanged: hold
		default:
			db.zur.V[i] = 0
		}
		switch {
		case db.zl.V[i] == 1 && zi == 1:
			db.zlr.V[i] = 1
		case zi == db.zi.V[i]:
		default:
			db.zlr.V[i] = 0
		}

		db.zu.V[i], db.zl.V[i], db.zi.V[i] = zu, zl, zi
	}
}
