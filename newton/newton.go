package newton

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/daeflow/core"
	"github.com/katalvlaran/daeflow/linsolve"
)

// System is the lifecycle surface the driver iterates over. It is satisfied
// by system.System; tests may implement it directly with a minimal stub.
type System interface {
	// DAE exposes the global vectors and Jacobian blocks.
	DAE() *core.DAE

	// EClear zeroes every residual accumulator, global and per-variable.
	EClear()

	// LUpdate lets every discrete instance update its flags from the
	// current variable values (the CheckVar pass).
	LUpdate()

	// FUpdate evaluates the differential residuals into the owning
	// variables' accumulators.
	FUpdate()

	// GUpdate evaluates the algebraic residuals likewise.
	GUpdate()

	// LCheckEq runs the anti-windup pass: CheckEq on every discrete, then
	// SetEq, applying forced state values to the global vector.
	LCheckEq()

	// FGToDAE sums the per-variable residual accumulators into the global
	// F and G vectors by address.
	FGToDAE()

	// JUpdate rebuilds the four Jacobian triplet blocks.
	JUpdate()

	// VarsToModels pushes the solved global values back to the owners.
	VarsToModels()
}

// Status classifies the outcome of one Newton solve.
type Status int

const (
	// Converged means the mismatch fell below the tolerance.
	Converged Status = iota
	// Diverged means the mismatch grew past DivergenceFactor times the
	// first iteration's mismatch.
	Diverged
	// MaxIterExceeded means the iteration cap was reached first.
	MaxIterExceeded
	// Failed means a fatal error (for example a singular Jacobian) aborted
	// the solve; the accompanying error carries the cause.
	Failed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	case MaxIterExceeded:
		return "max-iter-exceeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result summarizes one completed solve.
type Result struct {
	// Status is the outcome classification.
	Status Status

	// Iterations is the number of Newton iterations performed.
	Iterations int

	// Mismatches records the mismatch after each iteration, in order.
	Mismatches []float64
}

// Mismatch returns the final recorded mismatch, or 0 before any iteration.
func (r Result) Mismatch() float64 {
	if len(r.Mismatches) == 0 {
		return 0
	}
	return r.Mismatches[len(r.Mismatches)-1]
}

// Driver runs Newton-Raphson solves against one system. All per-solve
// state (iteration counters, mismatch history, scratch buffers) is created
// in Solve and discarded when it returns; only reusable assembly buffers
// persist across calls.
type Driver struct {
	sys System
	cfg Config

	trip core.Triplet // scratch for the stacked Jacobian
	rhs  []float64    // scratch for −[F; G]
}

// New builds a driver over sys. Zero-valued Config fields take defaults.
func New(sys System, cfg Config) (*Driver, error) {
	if sys == nil {
		return nil, ErrNilSystem
	}
	return &Driver{sys: sys, cfg: cfg.normalize()}, nil
}

// Solve iterates until convergence, divergence or the iteration cap.
// Iterations counts applied increments: a system already at a solution
// reports Converged after zero iterations. A non-nil error means the solve
// aborted on a fatal condition; Result still reports whatever history was
// accumulated.
func (d *Driver) Solve() (Result, error) {
	var res Result
	log := d.cfg.Logger

	for {
		mis, at := d.evaluate()
		res.Mismatches = append(res.Mismatches, mis)
		log.Debug("newton iteration",
			"iter", res.Iterations, "mismatch", mis,
			"at", d.sys.DAE().RowName(at))

		if mis < d.cfg.Tol {
			res.Status = Converged
			return res, nil
		}
		if mis > DivergenceFactor*res.Mismatches[0] || math.IsNaN(mis) {
			res.Status = Diverged
			log.Error("newton diverged",
				"iter", res.Iterations, "mismatch", mis,
				"first", res.Mismatches[0])
			return res, nil
		}
		if res.Iterations >= d.cfg.MaxIter {
			res.Status = MaxIterExceeded
			d.reportStall(res, log)
			return res, nil
		}

		if err := d.increment(); err != nil {
			res.Status = Failed
			return res, err
		}
		res.Iterations++
	}
}

// evaluate runs the residual half of an iteration — flag updates, residual
// evaluation, the anti-windup pass and global collection — and returns the
// mismatch together with the stacked row index where it occurs.
func (d *Driver) evaluate() (float64, int) {
	sys := d.sys
	sys.EClear()
	sys.LUpdate()
	sys.FUpdate()
	sys.GUpdate()
	sys.LCheckEq()
	sys.FGToDAE()
	return sys.DAE().Mismatch()
}

// increment runs the linear half: Jacobian assembly, the sparse solve of
// A·Δ = −[F;G], and application of Δ to the global and per-model values.
func (d *Driver) increment() error {
	sys := d.sys
	dae := sys.DAE()

	sys.JUpdate()
	dae.Assemble(&d.trip)
	a := linsolve.FromTriplet(dae.Size(), &d.trip)

	if cap(d.rhs) < dae.Size() {
		d.rhs = make([]float64, dae.Size())
	}
	d.rhs = d.rhs[:dae.Size()]
	dae.StackResiduals(d.rhs)
	for i := range d.rhs {
		d.rhs[i] = -d.rhs[i]
	}

	inc, err := d.cfg.Solver.Solve(a, d.rhs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLinearSolve, err)
	}

	n := dae.N()
	for i := range dae.X {
		dae.X[i] += inc[i]
	}
	for i := range dae.Y {
		dae.Y[i] += inc[n+i]
	}
	sys.VarsToModels()
	return nil
}

// reportStall flags a non-converged solve whose mismatch has stopped moving
// and names the equation carrying the largest residual.
func (d *Driver) reportStall(res Result, log *slog.Logger) {
	k := len(res.Mismatches)
	if k < 2 {
		return
	}
	if math.Abs(res.Mismatches[k-1]-res.Mismatches[k-2]) >= d.cfg.Tol {
		return
	}
	_, at := d.sys.DAE().Mismatch()
	log.Warn("newton stalled",
		"mismatch", res.Mismatches[k-1],
		"equation", d.sys.DAE().RowName(at))
}
