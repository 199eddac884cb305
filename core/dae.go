package core

import (
	"fmt"
	"math"
)

// Triplet is a coordinate-format sparse accumulator for one Jacobian block.
// Entries are appended in arbitrary order; duplicates at the same (row, col)
// sum on assembly. Reset keeps the backing arrays to avoid re-allocation
// across iterations.
type Triplet struct {
	rows []int
	cols []int
	vals []float64
}

// Append records one partial derivative d(residual row)/d(variable col).
func (t *Triplet) Append(row, col int, val float64) {
	t.rows = append(t.rows, row)
	t.cols = append(t.cols, col)
	t.vals = append(t.vals, val)
}

// Reset drops all entries but keeps capacity.
func (t *Triplet) Reset() {
	t.rows = t.rows[:0]
	t.cols = t.cols[:0]
	t.vals = t.vals[:0]
}

// Len reports the number of stored entries (duplicates included).
func (t *Triplet) Len() int { return len(t.rows) }

// At returns the i-th stored entry.
func (t *Triplet) At(i int) (row, col int, val float64) {
	return t.rows[i], t.cols[i], t.vals[i]
}

// DAE owns the global solution and residual vectors of one simulation case,
// plus the four sparse Jacobian blocks. Exactly one Newton iteration at a
// time may read or write these vectors; the driver owns them for the
// iteration's duration.
type DAE struct {
	// X and F are the state values and differential residuals (length n).
	X, F []float64
	// Y and G are the algebraic values and algebraic residuals (length m).
	Y, G []float64

	// XName and YName label each slot for diagnostics (stall reporting).
	XName, YName []string

	// Fx, Fy, Gx, Gy are the Jacobian blocks: d F/d X, d F/d Y, d G/d X
	// and d G/d Y, kept as coordinate triplets between assemblies.
	Fx, Fy, Gx, Gy Triplet

	n, m      int
	finalized bool
}

// NewDAE returns empty, unfinalized storage.
func NewDAE() *DAE { return &DAE{} }

// N reports the number of state slots allocated so far.
func (d *DAE) N() int { return d.n }

// M reports the number of algebraic slots allocated so far.
func (d *DAE) M() int { return d.m }

// Size reports n+m, the dimension of the stacked Newton system.
func (d *DAE) Size() int { return d.n + d.m }

// AddrState hands out k fresh state addresses labeled after name.
// Fails with ErrFinalized once Finalize froze the address space.
func (d *DAE) AddrState(name string, k int) ([]int, error) {
	if d.finalized {
		return nil, ErrFinalized
	}
	addr := make([]int, k)
	for i := range addr {
		addr[i] = d.n + i
		d.XName = append(d.XName, fmt.Sprintf("%s[%d]", name, i))
	}
	d.n += k
	return addr, nil
}

// AddrAlgeb hands out k fresh algebraic addresses labeled after name.
func (d *DAE) AddrAlgeb(name string, k int) ([]int, error) {
	if d.finalized {
		return nil, ErrFinalized
	}
	addr := make([]int, k)
	for i := range addr {
		addr[i] = d.m + i
		d.YName = append(d.YName, fmt.Sprintf("%s[%d]", name, i))
	}
	d.m += k
	return addr, nil
}

// Finalize freezes the address space and allocates the global vectors.
func (d *DAE) Finalize() error {
	if d.finalized {
		return ErrFinalized
	}
	d.X = make([]float64, d.n)
	d.F = make([]float64, d.n)
	d.Y = make([]float64, d.m)
	d.G = make([]float64, d.m)
	d.finalized = true
	return nil
}

// Finalized reports whether Finalize has been called.
func (d *DAE) Finalized() bool { return d.finalized }

// ClearE zeroes both residual vectors. Called first in every iteration.
func (d *DAE) ClearE() {
	for i := range d.F {
		d.F[i] = 0
	}
	for i := range d.G {
		d.G[i] = 0
	}
}

// ClearJ drops all Jacobian triplets, keeping capacity.
func (d *DAE) ClearJ() {
	d.Fx.Reset()
	d.Fy.Reset()
	d.Gx.Reset()
	d.Gy.Reset()
}

// StackResiduals writes the stacked residual vector [F; G] into dst,
// which must have length Size().
func (d *DAE) StackResiduals(dst []float64) {
	copy(dst[:d.n], d.F)
	copy(dst[d.n:], d.G)
}

// Mismatch returns the maximum absolute residual over F and G — the Newton
// convergence metric — together with the stacked row index where it occurs.
func (d *DAE) Mismatch() (float64, int) {
	mis, at := 0.0, 0
	for i, v := range d.F {
		if a := math.Abs(v); a > mis {
			mis, at = a, i
		}
	}
	for i, v := range d.G {
		if a := math.Abs(v); a > mis {
			mis, at = a, d.n+i
		}
	}
	return mis, at
}

// RowName maps a stacked row index to the owning variable element name.
func (d *DAE) RowName(i int) string {
	if i < d.n {
		return d.XName[i]
	}
	if i-d.n < len(d.YName) {
		return d.YName[i-d.n]
	}
	return fmt.Sprintf("row[%d]", i)
}

// Assemble stacks the four Jacobian blocks into one (n+m)×(n+m) coordinate
// matrix: algebraic rows and columns are offset by the state count n.
// The returned Triplet is freshly populated on every call.
func (d *DAE) Assemble(dst *Triplet) {
	dst.Reset()
	for i := 0; i < d.Fx.Len(); i++ {
		r, c, v := d.Fx.At(i)
		dst.Append(r, c, v)
	}
	for i := 0; i < d.Fy.Len(); i++ {
		r, c, v := d.Fy.At(i)
		dst.Append(r, c+d.n, v)
	}
	for i := 0; i < d.Gx.Len(); i++ {
		r, c, v := d.Gx.At(i)
		dst.Append(r+d.n, c, v)
	}
	for i := 0; i < d.Gy.Len(); i++ {
		r, c, v := d.Gy.At(i)
		dst.Append(r+d.n, c+d.n, v)
	}
}
