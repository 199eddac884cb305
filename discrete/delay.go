package discrete

import (
	"math"

	"github.com/katalvlaran/daeflow/core"
)

// Clock supplies the current simulation time to the delay family. The
// system implements it; tests drive it manually.
type Clock interface {
	Now() float64
}

// sample is one buffered snapshot: a timestamp and the per-element values.
type sample struct {
	t float64
	v []float64
}

// Delay memorizes past input values and outputs the oldest retained sample.
//
// Step mode keeps a fixed ring of K+1 samples that shifts left and appends
// on every strictly increasing time step, so the output at step k is the
// input of step k−K.
//
// Time mode appends timestamped samples; once the buffered span exceeds the
// configured delay, a sample exactly `delay` seconds behind now is
// synthesized by linear interpolation and everything older is pruned,
// bounding memory growth.
//
// Rewind: when the new time is not greater than the last stored time (the
// outer solver rejected a step, so time moved backward or stayed put), the
// buffer overwrites its last sample in place instead of appending, and
// Rewound reports true for dependent variants to consume.
//
// The single exported flag is "v", the delayed output.
type Delay struct {
	base

	u     core.VProvider
	clock Clock

	stepMode bool
	steps    int     // step mode: ring width K+1
	delay    float64 // time mode: window seconds

	samples []sample
	out     *Flag

	started bool
	initial bool
	rewound bool
}

// NewStepDelay builds a step-count delay of k steps.
func NewStepDelay(name string, u core.VProvider, clock Clock, k int) *Delay {
	d := &Delay{
		base:     base{name: name},
		u:        u,
		clock:    clock,
		stepMode: true,
		steps:    k + 1,
	}
	d.out = d.addFlag("v", 0)
	return d
}

// NewTimeDelay builds a time-window delay of `delay` seconds.
func NewTimeDelay(name string, u core.VProvider, clock Clock, delay float64) *Delay {
	d := &Delay{
		base:  base{name: name},
		u:     u,
		clock: clock,
		delay: delay,
	}
	d.out = d.addFlag("v", 0)
	return d
}

// V returns the delayed output values.
func (d *Delay) V() []float64 { return d.out.V }

// Rewound reports whether the last evaluation overwrote the newest sample
// in place instead of advancing.
func (d *Delay) Rewound() bool { return d.rewound }

// Resize sizes the output flag and allocates the sample storage.
func (d *Delay) Resize(n int) {
	d.base.Resize(n)
	cols := 1
	if d.stepMode {
		cols = d.steps
	}
	d.samples = make([]sample, cols)
	for i := range d.samples {
		d.samples[i].v = make([]float64, n)
	}
}

// CheckVar advances the buffer by one evaluation and refreshes the output.
func (d *Delay) CheckVar() {
	t := d.clock.Now()
	u := d.u.Values()
	d.rewound = false
	d.initial = false

	last := len(d.samples) - 1
	switch {
	case !d.started || t == 0:
		// initial step: saturate the whole buffer with the current input
		for i := range d.samples {
			d.samples[i].t = t
			copy(d.samples[i].v, u)
		}
		d.started = true
		d.initial = true

	case t <= d.samples[last].t:
		// rejected step: time moved backward or stayed equal
		d.rewound = true
		d.samples[last].t = t
		copy(d.samples[last].v, u)

	default:
		if d.stepMode {
			// shift left, recycle the oldest slot as the newest
			head := d.samples[0]
			copy(d.samples, d.samples[1:])
			head.t = t
			copy(head.v, u)
			d.samples[last] = head
		} else {
			v := make([]float64, len(u))
			copy(v, u)
			d.samples = append(d.samples, sample{t: t, v: v})
			d.prune(t)
		}
	}

	copy(d.out.V, d.samples[0].v)
}

// prune synthesizes a sample exactly `delay` seconds behind now and drops
// everything older, keeping the window span bounded.
func (d *Delay) prune(now float64) {
	if now-d.samples[0].t <= d.delay {
		return
	}
	tI := now - d.delay

	// last index with t < tI; the interpolation bracket is [idx, idx+1]
	idx := 0
	for idx+1 < len(d.samples) && d.samples[idx+1].t < tI {
		idx++
	}

	s0, s1 := d.samples[idx], d.samples[idx+1]
	w := 0.0
	if s1.t != s0.t {
		w = (tI - s0.t) / (s1.t - s0.t)
	}
	for j := range s0.v {
		s0.v[j] += w * (s1.v[j] - s0.v[j])
	}
	s0.t = tI
	d.samples[idx] = s0
	d.samples = d.samples[idx:]
}

// Average outputs the windowed mean of its input: the trapezoidal integral
// of the buffered samples over the retained span, divided by the span. At
// the initial step the output equals the current input.
type Average struct {
	Delay
}

// NewAverage builds a time-window average over `window` seconds.
func NewAverage(name string, u core.VProvider, clock Clock, window float64) *Average {
	return &Average{Delay: *NewTimeDelay(name, u, clock, window)}
}

// CheckVar advances the buffer, then integrates it trapezoidally.
func (a *Average) CheckVar() {
	a.Delay.CheckVar()

	nS := len(a.samples)
	span := a.samples[nS-1].t - a.samples[0].t
	if a.initial || span == 0 {
		copy(a.out.V, a.samples[nS-1].v)
		return
	}
	for j := range a.out.V {
		acc := 0.0
		for k := 1; k < nS; k++ {
			acc += 0.5 * (a.samples[k].v[j] + a.samples[k-1].v[j]) *
				(a.samples[k].t - a.samples[k-1].t)
		}
		a.out.V[j] = acc / span
	}
}

// Derivative outputs a one-step finite difference of its input over the two
// most recent samples. The output is zeroed at the initial step and
// immediately after any rewind, and magnitudes below DerivativeEps are
// flushed to zero — both suppress numerical chattering.
type Derivative struct {
	Delay
}

// NewDerivative builds the numerical differentiator (a one-step delay).
func NewDerivative(name string, u core.VProvider, clock Clock) *Derivative {
	return &Derivative{Delay: *NewStepDelay(name, u, clock, 1)}
}

// CheckVar advances the buffer, then differences the newest two samples.
func (d *Derivative) CheckVar() {
	d.Delay.CheckVar()

	if d.initial || d.rewound {
		for j := range d.out.V {
			d.out.V[j] = 0
		}
		return
	}
	s0, s1 := d.samples[0], d.samples[1]
	dt := s1.t - s0.t
	for j := range d.out.V {
		if dt == 0 {
			d.out.V[j] = 0
			continue
		}
		v := (s1.v[j] - s0.v[j]) / dt
		if math.Abs(v) < DerivativeEps {
			v = 0
		}
		d.out.V[j] = v
	}
}
