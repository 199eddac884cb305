package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/daeflow/core"
)

// ErrLengthMismatch reports a provider whose length disagrees with its
// Grouping. Read paths have no error return, so it surfaces via panic,
// wrapped for errors.Is in a recover.
var ErrLengthMismatch = errors.New("service: provider length disagrees with grouping")

// Getter retrieves a named attribute's values for given external indices
// from another owning entity. system.Model satisfies it.
type Getter interface {
	Get(src string, idx []int, attr string) ([]float64, error)
}

// Const is a service computed exactly once, after parameters are known and
// before variable initialization. Evaluate runs the supplied func and stores
// its result; later reads return the stored values.
type Const struct {
	Name string

	fn   func() []float64
	v    []float64
	done bool
}

// NewConst declares a once-computed service backed by fn.
func NewConst(name string, fn func() []float64) *Const {
	return &Const{Name: name, fn: fn}
}

// Evaluate computes and stores the value. Idempotent: later calls are no-ops.
func (c *Const) Evaluate() {
	if c.done {
		return
	}
	c.v = c.fn()
	c.done = true
}

// Values returns the stored values, evaluating on first read if the setup
// phase did not run Evaluate explicitly.
func (c *Const) Values() []float64 {
	c.Evaluate()
	return c.v
}

// ExtService holds constants pulled once from an external owner by index.
type ExtService struct {
	Name string
	// Src is the attribute name in the source owner.
	Src string
	// Indexer holds the external element indices to pull.
	Indexer []int

	v      []float64
	linked bool
}

// NewExtService declares an unlinked external service.
func NewExtService(name, src string, indexer []int) *ExtService {
	return &ExtService{Name: name, Src: src, Indexer: indexer}
}

// Link pulls the values from owner once. A second call is a no-op.
func (s *ExtService) Link(owner Getter) error {
	if s.linked {
		return nil
	}
	v, err := owner.Get(s.Src, s.Indexer, "v")
	if err != nil {
		return fmt.Errorf("service %q: %w", s.Name, err)
	}
	s.v = v
	s.linked = true
	return nil
}

// Values returns the pulled values; nil before Link.
func (s *ExtService) Values() []float64 { return s.v }

// ReduceFunc folds one contiguous group of values into a scalar.
type ReduceFunc func([]float64) float64

// Sum is a ReduceFunc adding up the group.
func Sum(v []float64) float64 {
	t := 0.0
	for _, x := range v {
		t += x
	}
	return t
}

// Max is a ReduceFunc returning the group maximum, 0 for an empty group.
func Max(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Reduce applies a reduction function per contiguous group of a Grouping.
// Input u is the flat per-member array (length Grouping.Len()); the output
// holds one scalar per group. The result is cached lazily on the first read;
// the owner must call Invalidate when any contributing input changes.
type Reduce struct {
	Name string

	u     core.VProvider
	g     *Grouping
	fn    ReduceFunc
	v     []float64
	valid bool
}

// NewReduce declares a segment-reduce service over g.
func NewReduce(name string, u core.VProvider, g *Grouping, fn ReduceFunc) *Reduce {
	return &Reduce{Name: name, u: u, g: g, fn: fn}
}

// Grouping exposes the partition so a Repeat partner can share it.
func (r *Reduce) Grouping() *Grouping { return r.g }

// Invalidate flips the cache from valid to stale; the next read recomputes.
func (r *Reduce) Invalidate() { r.valid = false }

// Values returns one reduced scalar per group.
func (r *Reduce) Values() []float64 {
	if r.valid {
		return r.v
	}
	u := r.u.Values()
	if len(u) != r.g.Len() {
		panic(fmt.Errorf("%w: service %q input length %d, arena %d",
			ErrLengthMismatch, r.Name, len(u), r.g.Len()))
	}
	if r.v == nil {
		r.v = make([]float64, r.g.Groups())
	}
	for i := 0; i < r.g.Groups(); i++ {
		r.v[i] = r.fn(u[r.g.offset(i):r.g.offset(i+1)])
	}
	r.valid = true
	return r.v
}

// Repeat broadcasts per-group values back across each group's members.
// Input u holds one value per group (typically a Reduce partner sharing the
// same Grouping); the output is the flat per-member array.
type Repeat struct {
	Name string

	u     core.VProvider
	g     *Grouping
	v     []float64
	valid bool
}

// NewRepeat declares a segment-repeat service over g.
func NewRepeat(name string, u core.VProvider, g *Grouping) *Repeat {
	return &Repeat{Name: name, u: u, g: g}
}

// Invalidate flips the cache from valid to stale; the next read recomputes.
func (r *Repeat) Invalidate() { r.valid = false }

// Values returns the per-member broadcast of the per-group input.
func (r *Repeat) Values() []float64 {
	if r.valid {
		return r.v
	}
	u := r.u.Values()
	if len(u) != r.g.Groups() {
		panic(fmt.Errorf("%w: service %q input length %d, group count %d",
			ErrLengthMismatch, r.Name, len(u), r.g.Groups()))
	}
	if r.v == nil {
		r.v = make([]float64, r.g.Len())
	}
	for i := 0; i < r.g.Groups(); i++ {
		for j := r.g.offset(i); j < r.g.offset(i+1); j++ {
			r.v[j] = u[i]
		}
	}
	r.valid = true
	return r.v
}

// Random is a service recomputed on every read. Do not use it where the
// value needs to be stable within a simulation step.
type Random struct {
	Name string

	n  int
	fn func() float64
}

// NewRandom declares an n-element random service; a nil fn defaults to
// rand.Float64.
func NewRandom(name string, n int, fn func() float64) *Random {
	if fn == nil {
		fn = rand.Float64
	}
	return &Random{Name: name, n: n, fn: fn}
}

// Values draws n fresh samples; never cached.
func (r *Random) Values() []float64 {
	v := make([]float64, r.n)
	for i := range v {
		v[i] = r.fn()
	}
	return v
}
