package newton_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/daeflow/core"
	"github.com/katalvlaran/daeflow/linsolve"
	"github.com/katalvlaran/daeflow/newton"
)

// algebSystem is a minimal driver target: one block of algebraic variables
// with residual and Jacobian closures writing straight into the DAE.
type algebSystem struct {
	dae *core.DAE
	g   func(y, g []float64)
	j   func(d *core.DAE)
}

func newAlgebSystem(t *testing.T, y0 []float64,
	g func(y, g []float64), j func(d *core.DAE)) *algebSystem {
	t.Helper()
	d := core.NewDAE()
	_, err := d.AddrAlgeb("y", len(y0))
	require.NoError(t, err)
	require.NoError(t, d.Finalize())
	copy(d.Y, y0)
	return &algebSystem{dae: d, g: g, j: j}
}

func (s *algebSystem) DAE() *core.DAE { return s.dae }
func (s *algebSystem) EClear()        { s.dae.ClearE() }
func (s *algebSystem) LUpdate()       {}
func (s *algebSystem) FUpdate()       {}
func (s *algebSystem) GUpdate()       { s.g(s.dae.Y, s.dae.G) }
func (s *algebSystem) LCheckEq()      {}
func (s *algebSystem) FGToDAE()       {}
func (s *algebSystem) JUpdate() {
	s.dae.ClearJ()
	s.j(s.dae)
}
func (s *algebSystem) VarsToModels() {}

func quietConfig() newton.Config {
	cfg := newton.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return cfg
}

func TestNewNilSystem(t *testing.T) {
	_, err := newton.New(nil, newton.Config{})
	require.ErrorIs(t, err, newton.ErrNilSystem)
}

// A single linear equation 2y - 4 = 0 with the exact Jacobian must land on
// y = 2 after one increment.
func TestSolveLinearOneIteration(t *testing.T) {
	sys := newAlgebSystem(t, []float64{0},
		func(y, g []float64) { g[0] = 2*y[0] - 4 },
		func(d *core.DAE) { d.Gy.Append(0, 0, 2) })

	drv, err := newton.New(sys, quietConfig())
	require.NoError(t, err)

	res, err := drv.Solve()
	require.NoError(t, err)
	require.Equal(t, newton.Converged, res.Status)
	require.Equal(t, 1, res.Iterations)
	require.InDelta(t, 2.0, sys.dae.Y[0], 1e-9)
	require.Equal(t, []float64{4, 0}, res.Mismatches)
}

func TestSolveAlreadyConverged(t *testing.T) {
	sys := newAlgebSystem(t, []float64{2},
		func(y, g []float64) { g[0] = 2*y[0] - 4 },
		func(d *core.DAE) { d.Gy.Append(0, 0, 2) })

	drv, err := newton.New(sys, quietConfig())
	require.NoError(t, err)

	res, err := drv.Solve()
	require.NoError(t, err)
	require.Equal(t, newton.Converged, res.Status)
	require.Zero(t, res.Iterations)
}

func TestSolveNonlinear(t *testing.T) {
	sys := newAlgebSystem(t, []float64{3},
		func(y, g []float64) { g[0] = y[0]*y[0] - 4 },
		func(d *core.DAE) { d.Gy.Append(0, 0, 2*sys2y(d)) })

	drv, err := newton.New(sys, quietConfig())
	require.NoError(t, err)

	res, err := drv.Solve()
	require.NoError(t, err)
	require.Equal(t, newton.Converged, res.Status)
	require.InDelta(t, 2.0, sys.dae.Y[0], 1e-6)
	require.LessOrEqual(t, res.Iterations, 6)
}

// sys2y reads the single algebraic value back out of the DAE so the
// Jacobian closure stays self-contained.
func sys2y(d *core.DAE) float64 { return d.Y[0] }

// A mismatch sequence that doubles once past 10,000x the initial value must
// abort as Diverged well before the iteration cap.
func TestSolveDiverged(t *testing.T) {
	script := []float64{1, 5e3, 1e4, 2e4, 4e4, 8e4}
	k := 0
	sys := newAlgebSystem(t, []float64{0},
		func(y, g []float64) {
			g[0] = script[k]
			if k < len(script)-1 {
				k++
			}
		},
		func(d *core.DAE) { d.Gy.Append(0, 0, 1) })

	drv, err := newton.New(sys, quietConfig())
	require.NoError(t, err)

	res, err := drv.Solve()
	require.NoError(t, err)
	require.Equal(t, newton.Diverged, res.Status)
	require.LessOrEqual(t, res.Iterations, 4)
	require.Less(t, res.Iterations, newton.DefaultMaxIter)
	require.Greater(t, res.Mismatch(), newton.DivergenceFactor*res.Mismatches[0])
}

// A constant nonzero residual never converges; the driver must stop at the
// iteration cap and name the stalled equation in its diagnostic.
func TestSolveStallDiagnostic(t *testing.T) {
	sys := newAlgebSystem(t, []float64{0},
		func(y, g []float64) { g[0] = 1 },
		func(d *core.DAE) { d.Gy.Append(0, 0, 1) })

	var buf bytes.Buffer
	cfg := newton.DefaultConfig()
	cfg.MaxIter = 5
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	drv, err := newton.New(sys, cfg)
	require.NoError(t, err)

	res, err := drv.Solve()
	require.NoError(t, err)
	require.Equal(t, newton.MaxIterExceeded, res.Status)
	require.Equal(t, 5, res.Iterations)
	require.Contains(t, buf.String(), "newton stalled")
	require.Contains(t, buf.String(), "y[0]")
}

func TestSolveSingularJacobian(t *testing.T) {
	sys := newAlgebSystem(t, []float64{0},
		func(y, g []float64) { g[0] = 2*y[0] - 4 },
		func(d *core.DAE) { d.Gy.Append(0, 0, 0) })

	drv, err := newton.New(sys, quietConfig())
	require.NoError(t, err)

	res, err := drv.Solve()
	require.ErrorIs(t, err, newton.ErrLinearSolve)
	require.ErrorIs(t, err, linsolve.ErrSingular)
	require.Equal(t, newton.Failed, res.Status)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "converged", newton.Converged.String())
	require.Equal(t, "diverged", newton.Diverged.String())
	require.Equal(t, "max-iter-exceeded", newton.MaxIterExceeded.String())
	require.Equal(t, "failed", newton.Failed.String())
}
