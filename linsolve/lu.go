package linsolve

import "math"

// Solver solves Ax = b for the assembled Newton matrix. Implementations
// must either return the exact direct solution or fail — never approximate
// silently.
type Solver interface {
	// Name identifies the backend in logs and configuration.
	Name() string
	// Solve factorizes a and solves against b. a is never mutated.
	Solve(a *Coord, b []float64) ([]float64, error)
}

// LU is the default backend: direct sparse LU factorization with row
// partial pivoting. Rows are kept as ordered sparse vectors; elimination
// merges the pivot row into each target row, creating fill-in only where
// the merge produces it.
type LU struct{}

// Name returns "sparse-lu".
func (LU) Name() string { return "sparse-lu" }

// Solve factorizes PA = LU in place on a clone of a, then runs the
// forward and backward substitutions. A zero pivot column returns
// ErrSingular; a non-finite result returns ErrNumerical.
func (LU) Solve(a *Coord, b []float64) ([]float64, error) {
	n := a.n
	if len(b) != n {
		return nil, ErrDimension
	}

	m := a.clone()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for k := 0; k < n; k++ {
		// pivot: the row at or below k with the largest magnitude in column k
		best, bestAbs := -1, 0.0
		for r := k; r < n; r++ {
			if v := math.Abs(rowAt(&m.rows[r], k)); v > bestAbs {
				best, bestAbs = r, v
			}
		}
		if best < 0 || bestAbs == 0 {
			return nil, ErrSingular
		}
		if best != k {
			m.rows[k], m.rows[best] = m.rows[best], m.rows[k]
			perm[k], perm[best] = perm[best], perm[k]
		}

		piv := rowAt(&m.rows[k], k)
		for r := k + 1; r < n; r++ {
			f := rowAt(&m.rows[r], k)
			if f == 0 {
				continue
			}
			f /= piv
			m.rows[r] = eliminate(m.rows[r], m.rows[k], k, f)
		}
	}

	// forward: L y = P b (unit diagonal, factors stored left of the diagonal)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		s := b[perm[i]]
		row := &m.rows[i]
		for p, col := range row.idx {
			if col >= i {
				break
			}
			s -= row.val[p] * y[col]
		}
		y[i] = s
	}

	// backward: U x = y
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		s := y[i]
		diag := 0.0
		row := &m.rows[i]
		for p := len(row.idx) - 1; p >= 0; p-- {
			col := row.idx[p]
			if col > i {
				s -= row.val[p] * x[col]
				continue
			}
			if col == i {
				diag = row.val[p]
			}
			break
		}
		if diag == 0 {
			return nil, ErrSingular
		}
		x[i] = s / diag
	}

	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNumerical
		}
	}
	return x, nil
}

// rowAt returns the value of row r at column j, zero when absent.
func rowAt(r *spRow, j int) float64 {
	lo, hi := 0, len(r.idx)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case r.idx[mid] < j:
			lo = mid + 1
		case r.idx[mid] > j:
			hi = mid
		default:
			return r.val[mid]
		}
	}
	return 0
}

// eliminate returns row r after the update r ← r − f·p restricted to
// columns right of k, with the multiplier f stored at column k (the L
// factor slot). Columns left of k — r's already-computed factors — pass
// through untouched.
func eliminate(r, p spRow, k int, f float64) spRow {
	idx := make([]int, 0, len(r.idx)+len(p.idx))
	val := make([]float64, 0, len(r.idx)+len(p.idx))

	i := 0
	for ; i < len(r.idx) && r.idx[i] < k; i++ {
		idx = append(idx, r.idx[i])
		val = append(val, r.val[i])
	}
	if i < len(r.idx) && r.idx[i] == k {
		i++ // consumed into the factor
	}
	idx = append(idx, k)
	val = append(val, f)

	j := 0
	for ; j < len(p.idx) && p.idx[j] <= k; j++ {
	}

	for i < len(r.idx) || j < len(p.idx) {
		switch {
		case j >= len(p.idx) || (i < len(r.idx) && r.idx[i] < p.idx[j]):
			idx = append(idx, r.idx[i])
			val = append(val, r.val[i])
			i++
		case i >= len(r.idx) || p.idx[j] < r.idx[i]:
			idx = append(idx, p.idx[j])
			val = append(val, -f*p.val[j])
			j++
		default:
			idx = append(idx, r.idx[i])
			val = append(val, r.val[i]-f*p.val[j])
			i++
			j++
		}
	}
	return spRow{idx: idx, val: val}
}
