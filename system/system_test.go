package system_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/daeflow/core"
	"github.com/katalvlaran/daeflow/discrete"
	"github.com/katalvlaran/daeflow/newton"
	"github.com/katalvlaran/daeflow/service"
	"github.com/katalvlaran/daeflow/system"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestSetupAddressing(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))

	gen := system.NewModel("gen", 2)
	delta := gen.State("delta")
	v := gen.Algeb("v")
	require.NoError(t, sys.AddModel(gen))

	load := system.NewModel("load", 3)
	p := load.Algeb("p")
	require.NoError(t, sys.AddModel(load))

	require.NoError(t, sys.Setup())

	require.Equal(t, []int{0, 1}, delta.A)
	require.Equal(t, []int{0, 1}, v.A)
	require.Equal(t, []int{2, 3, 4}, p.A)
	require.Equal(t, 2, sys.DAE().N())
	require.Equal(t, 5, sys.DAE().M())
	require.Equal(t, "gen.delta[1]", sys.DAE().RowName(1))
	require.Equal(t, "load.p[0]", sys.DAE().RowName(4))

	require.ErrorIs(t, sys.Setup(), system.ErrSetupDone)
	require.ErrorIs(t, sys.AddModel(system.NewModel("late", 1)), system.ErrSetupDone)
}

func TestAddModelDuplicate(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))
	require.NoError(t, sys.AddModel(system.NewModel("gen", 1)))
	require.ErrorIs(t, sys.AddModel(system.NewModel("gen", 2)), system.ErrDupModel)
}

func TestSetupRejectsBadSymbols(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		sys := system.New(system.WithLogger(quietLogger()))
		m := system.NewModel("gen", 1)
		m.State("x")
		m.Algeb("x")
		require.NoError(t, sys.AddModel(m))
		require.ErrorIs(t, sys.Setup(), system.ErrDupSymbol)
	})
	t.Run("parameter length", func(t *testing.T) {
		sys := system.New(system.WithLogger(quietLogger()))
		m := system.NewModel("gen", 2)
		m.Param("tm", []float64{1})
		require.NoError(t, sys.AddModel(m))
		require.ErrorIs(t, sys.Setup(), system.ErrParamLength)
	})
	t.Run("unknown external model", func(t *testing.T) {
		sys := system.New(system.WithLogger(quietLogger()))
		m := system.NewModel("load", 1)
		m.ExtAlgeb("v", "bus", "v", nil)
		require.NoError(t, sys.AddModel(m))
		require.ErrorIs(t, sys.Setup(), system.ErrUnknownModel)
	})
}

func TestModelGet(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))
	m := system.NewModel("gen", 3)
	m.Param("tm", []float64{10, 20, 30})
	x := m.State("x")
	require.NoError(t, sys.AddModel(m))
	require.NoError(t, sys.Setup())
	copy(x.V, []float64{1, 2, 3})
	x.E[1] = 7

	got, err := m.Get("tm", []int{2, 0}, "v")
	require.NoError(t, err)
	require.Equal(t, []float64{30, 10}, got)

	got, err = m.Get("x", nil, "v")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, got)

	got, err = m.Get("x", []int{1}, "e")
	require.NoError(t, err)
	require.Equal(t, []float64{7}, got)

	_, err = m.Get("tm", nil, "e")
	require.ErrorIs(t, err, system.ErrBadAttr)
	_, err = m.Get("x", nil, "z")
	require.ErrorIs(t, err, system.ErrBadAttr)
	_, err = m.Get("nope", nil, "v")
	require.ErrorIs(t, err, system.ErrUnknownSymbol)
	_, err = m.Get("tm", []int{3}, "v")
	require.ErrorIs(t, err, core.ErrIndexRange)
}

func TestExtServiceLinking(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))
	a := system.NewModel("bus", 3)
	a.Param("vn", []float64{110, 220, 330})
	require.NoError(t, sys.AddModel(a))

	b := system.NewModel("line", 2)
	svc := b.ExtServiceFrom(service.NewExtService("vn1", "vn", []int{2, 0}), "bus")
	require.NoError(t, sys.AddModel(b))

	require.NoError(t, sys.Setup())
	require.Equal(t, []float64{330, 110}, svc.Values())
}

// A linear state/algebraic pair must close in one Newton iteration:
//
//	f: x - 2y = 0
//	g: x + y - 6 = 0   →   x = 4, y = 2
func TestSolveLinearDAE(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))
	m := system.NewModel("plant", 1)
	x := m.State("x")
	y := m.Algeb("y")
	m.FUpdate = func() { x.E[0] = x.V[0] - 2*y.V[0] }
	m.GUpdate = func() { y.E[0] = x.V[0] + y.V[0] - 6 }
	m.JUpdate = func(d *core.DAE) {
		d.Fx.Append(x.A[0], x.A[0], 1)
		d.Fy.Append(x.A[0], y.A[0], -2)
		d.Gx.Append(y.A[0], x.A[0], 1)
		d.Gy.Append(y.A[0], y.A[0], 1)
	}
	require.NoError(t, sys.AddModel(m))
	require.NoError(t, sys.Setup())
	require.NoError(t, sys.InitFromModels())

	cfg := newton.DefaultConfig()
	cfg.Logger = quietLogger()
	drv, err := newton.New(sys, cfg)
	require.NoError(t, err)

	res, err := drv.Solve()
	require.NoError(t, err)
	require.Equal(t, newton.Converged, res.Status)
	require.Equal(t, 1, res.Iterations)
	require.InDelta(t, 4.0, x.V[0], 1e-9)
	require.InDelta(t, 2.0, y.V[0], 1e-9)
}

// Residuals from an external variable must add to the source's equation,
// not replace it: g(y) = (y - 5) + 2 → y = 3.
func TestExternalResidualComposition(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))

	bus := system.NewModel("bus", 1)
	v := bus.Algeb("v")
	bus.GUpdate = func() { v.E[0] = v.V[0] - 5 }
	bus.JUpdate = func(d *core.DAE) { d.Gy.Append(v.A[0], v.A[0], 1) }
	require.NoError(t, sys.AddModel(bus))

	load := system.NewModel("load", 1)
	lv := load.ExtAlgeb("v", "bus", "v", nil)
	load.GUpdate = func() { lv.E[0] = 2 }
	require.NoError(t, sys.AddModel(load))

	require.NoError(t, sys.Setup())
	require.NoError(t, sys.InitFromModels())

	cfg := newton.DefaultConfig()
	cfg.Logger = quietLogger()
	drv, err := newton.New(sys, cfg)
	require.NoError(t, err)

	res, err := drv.Solve()
	require.NoError(t, err)
	require.Equal(t, newton.Converged, res.Status)
	require.InDelta(t, 3.0, v.V[0], 1e-9)
	require.InDelta(t, 3.0, lv.V[0], 1e-9)
}

// An anti-windup limiter must clamp the state at its bound and zero the
// residual so the clamped point counts as converged.
func TestSolveWithAntiWindup(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))
	m := system.NewModel("ctl", 1)
	x := m.State("x")
	aw := discrete.NewAntiWindup("lim", x,
		core.Slice{-1000}, core.Slice{3})
	m.Discrete(aw)
	m.FUpdate = func() { x.E[0] = x.V[0] - 4 }
	m.JUpdate = func(d *core.DAE) { d.Fx.Append(x.A[0], x.A[0], 1) }
	require.NoError(t, sys.AddModel(m))
	require.NoError(t, sys.Setup())
	require.NoError(t, sys.InitFromModels())

	cfg := newton.DefaultConfig()
	cfg.Logger = quietLogger()
	drv, err := newton.New(sys, cfg)
	require.NoError(t, err)

	res, err := drv.Solve()
	require.NoError(t, err)
	require.Equal(t, newton.Converged, res.Status)
	require.InDelta(t, 3.0, x.V[0], 1e-9)
	require.InDelta(t, 3.0, sys.DAE().X[0], 1e-9)
	require.Equal(t, 1.0, aw.Zu()[0])
}

func TestExportFlags(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))
	m := system.NewModel("gov", 2)
	u := m.Param("u", []float64{0.5, 2.5})
	lim := discrete.NewLimiter("lim", u, core.Slice{0, 0}, core.Slice{1, 1})
	m.Discrete(lim)
	require.NoError(t, sys.AddModel(m))
	require.NoError(t, sys.Setup())

	sys.LUpdate()
	flags := sys.ExportFlags()
	require.Equal(t, []float64{1, 0}, flags["gov.lim_zi"])
	require.Equal(t, []float64{0, 1}, flags["gov.lim_zu"])
	require.Equal(t, []float64{0, 0}, flags["gov.lim_zl"])
}

func TestClock(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))
	require.Zero(t, sys.Now())
	sys.SetTime(1.5)
	require.Equal(t, 1.5, sys.Now())

	var clock discrete.Clock = sys
	require.Equal(t, 1.5, clock.Now())
}

func TestInitBeforeSetup(t *testing.T) {
	sys := system.New(system.WithLogger(quietLogger()))
	require.ErrorIs(t, sys.InitFromModels(), system.ErrNotSetup)
}
