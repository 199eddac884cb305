package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/daeflow/core"
	"github.com/katalvlaran/daeflow/service"
)

// TestGrouping verifies the arena layout: O(1) group extents, empty groups
// allowed, member order preserved.
func TestGrouping(t *testing.T) {
	g := service.NewGrouping([][]int{{0, 2, 3}, {}, {1}})
	require.Equal(t, 3, g.Groups())
	require.Equal(t, 4, g.Len())
	require.Equal(t, []int{0, 2, 3}, g.Group(0))
	require.Empty(t, g.Group(1))
	require.Equal(t, []int{1}, g.Group(2))
	require.Equal(t, 0, g.GroupLen(1))
}

// TestConstEvaluatesOnce verifies the compute-once contract.
func TestConstEvaluatesOnce(t *testing.T) {
	calls := 0
	c := service.NewConst("p0", func() []float64 {
		calls++
		return []float64{1, 2}
	})
	c.Evaluate()
	require.Equal(t, []float64{1, 2}, c.Values())
	require.Equal(t, []float64{1, 2}, c.Values())
	require.Equal(t, 1, calls)
}

type fakeOwner struct{ v []float64 }

func (f fakeOwner) Get(src string, idx []int, attr string) ([]float64, error) {
	if src != "Vn" {
		return nil, errors.New("unknown src")
	}
	out := make([]float64, len(idx))
	for i, u := range idx {
		out[i] = f.v[u]
	}
	return out, nil
}

// TestExtService verifies the pull-once semantics and error wrapping.
func TestExtService(t *testing.T) {
	owner := fakeOwner{v: []float64{110, 220, 345}}

	s := service.NewExtService("Vn0", "Vn", []int{2, 0})
	require.NoError(t, s.Link(owner))
	require.Equal(t, []float64{345, 110}, s.Values())
	// second link is a no-op
	require.NoError(t, s.Link(fakeOwner{}))
	require.Equal(t, []float64{345, 110}, s.Values())

	bad := service.NewExtService("x", "nope", nil)
	require.Error(t, bad.Link(owner))
}

// TestReduceRepeat verifies the segment-reduce/segment-repeat pair over a
// shared grouping, the lazy cache and explicit invalidation.
func TestReduceRepeat(t *testing.T) {
	// Two areas: members {0,1,2} and {3}; flat input per member.
	g := service.NewGrouping([][]int{{0, 1, 2}, {3}})
	in := core.Slice{110, 345, 500, 220}

	red := service.NewReduce("Vn_sum", in, g, service.Sum)
	require.Equal(t, []float64{955, 220}, red.Values())

	rep := service.NewRepeat("Vn_sum_rep", red, red.Grouping())
	require.Equal(t, []float64{955, 955, 955, 220}, rep.Values())

	// cached: mutating the input is not observed until invalidated
	in[3] = 1000
	require.Equal(t, []float64{955, 220}, red.Values())
	red.Invalidate()
	require.Equal(t, []float64{955, 1000}, red.Values())

	rep.Invalidate()
	require.Equal(t, []float64{955, 955, 955, 1000}, rep.Values())
}

// TestReduceEmptyGroup verifies reductions over empty groups do not blow up.
func TestReduceEmptyGroup(t *testing.T) {
	g := service.NewGrouping([][]int{{}, {0, 1}})
	red := service.NewReduce("m", core.Slice{3, 5}, g, service.Max)
	require.Equal(t, []float64{0, 5}, red.Values())
}

// TestRepeatLengthMismatch pins the loud failure when a Repeat is paired
// with a grouping its input does not match.
func TestRepeatLengthMismatch(t *testing.T) {
	g := service.NewGrouping([][]int{{0}, {1}})
	rep := service.NewRepeat("bad", core.Slice{1, 2, 3}, g)
	require.Panics(t, func() { rep.Values() })
}

// TestRandomNeverCached verifies every read draws fresh samples.
func TestRandomNeverCached(t *testing.T) {
	seq := 0.0
	r := service.NewRandom("noise", 2, func() float64 {
		seq++
		return seq
	})
	require.Equal(t, []float64{1, 2}, r.Values())
	require.Equal(t, []float64{3, 4}, r.Values())
}
