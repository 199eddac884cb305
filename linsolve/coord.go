package linsolve

import (
	"sort"

	"github.com/katalvlaran/daeflow/core"
)

// Coord is an n×n sparse matrix in row-compressed form, built from
// coordinate entries. Duplicate entries at the same position sum, honoring
// the assembly contract of the Jacobian triplet stores.
type Coord struct {
	n    int
	rows []spRow
}

// spRow is one sparse row: column indices in ascending order with their
// values side by side.
type spRow struct {
	idx []int
	val []float64
}

// NewCoord returns an empty n×n matrix.
func NewCoord(n int) *Coord {
	return &Coord{n: n, rows: make([]spRow, n)}
}

// N reports the matrix dimension.
func (c *Coord) N() int { return c.n }

// Append adds v at (i, j), summing with any existing entry.
func (c *Coord) Append(i, j int, v float64) {
	r := &c.rows[i]
	p := sort.SearchInts(r.idx, j)
	if p < len(r.idx) && r.idx[p] == j {
		r.val[p] += v
		return
	}
	r.idx = append(r.idx, 0)
	r.val = append(r.val, 0)
	copy(r.idx[p+1:], r.idx[p:])
	copy(r.val[p+1:], r.val[p:])
	r.idx[p] = j
	r.val[p] = v
}

// At returns the value at (i, j), zero when absent.
func (c *Coord) At(i, j int) float64 {
	r := &c.rows[i]
	p := sort.SearchInts(r.idx, j)
	if p < len(r.idx) && r.idx[p] == j {
		return r.val[p]
	}
	return 0
}

// NNZ reports the stored entry count after duplicate summation.
func (c *Coord) NNZ() int {
	t := 0
	for i := range c.rows {
		t += len(c.rows[i].idx)
	}
	return t
}

// FromTriplet builds the matrix from an assembled coordinate store.
func FromTriplet(n int, t *core.Triplet) *Coord {
	c := NewCoord(n)
	for i := 0; i < t.Len(); i++ {
		r, col, v := t.At(i)
		c.Append(r, col, v)
	}
	return c
}

// clone deep-copies the structure so factorization never mutates the
// caller's matrix.
func (c *Coord) clone() *Coord {
	out := NewCoord(c.n)
	for i := range c.rows {
		r := &c.rows[i]
		out.rows[i] = spRow{
			idx: append([]int(nil), r.idx...),
			val: append([]float64(nil), r.val...),
		}
	}
	return out
}
