package discrete

import (
	"fmt"

	"github.com/katalvlaran/daeflow/core"
)

// SelectFunc folds the candidate values of one element (one value per
// input) into the selected result, e.g. the maximum.
type SelectFunc func([]float64) float64

// MaxOf is the usual SelectFunc: element-wise maximum across inputs.
func MaxOf(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Selector exports one flag per input provider, set to 1 where that input's
// value equals the reduced result of all inputs for the element. Flags are
// 0-indexed: s0 corresponds to the first input.
//
// Known limitation (kept intentionally): when two or more inputs tie for
// the reduced value, more than one flag is 1 for that element.
type Selector struct {
	base

	inputs []core.VProvider
	fn     SelectFunc
	s      []*Flag

	scratch []float64
}

// NewSelector builds the reduction-based selector over the given inputs.
func NewSelector(name string, fn SelectFunc, inputs ...core.VProvider) *Selector {
	sel := &Selector{
		base:    base{name: name},
		inputs:  inputs,
		fn:      fn,
		s:       make([]*Flag, len(inputs)),
		scratch: make([]float64, len(inputs)),
	}
	for i := range inputs {
		sel.s[i] = sel.addFlag(fmt.Sprintf("s%d", i), 0)
	}
	return sel
}

// S returns the flag values of input i.
func (sel *Selector) S(i int) []float64 { return sel.s[i].V }

// CheckVar sets s_i to 1 where the reduced result equals input i's value.
func (sel *Selector) CheckVar() {
	if len(sel.s) == 0 {
		return
	}
	for j := range sel.s[0].V {
		for i, in := range sel.inputs {
			sel.scratch[i] = in.Values()[j]
		}
		out := sel.fn(sel.scratch)
		for i := range sel.inputs {
			sel.s[i].V[j] = b2f(sel.scratch[i] == out)
		}
	}
}
