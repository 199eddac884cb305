package system_test

import (
	"fmt"

	"github.com/katalvlaran/daeflow/core"
	"github.com/katalvlaran/daeflow/newton"
	"github.com/katalvlaran/daeflow/system"
)

// ExampleSystem wires one model with a coupled state/algebraic pair,
//
//	f: x - 2y = 0
//	g: x + y - 6 = 0
//
// and solves it with the default Newton driver. The residual callbacks
// write into the variables' local E accumulators; the Jacobian callback
// appends triplets addressed by the variables' global slots.
func ExampleSystem() {
	sys := system.New()
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

	if err := sys.AddModel(m); err != nil {
		panic(err)
	}
	if err := sys.Setup(); err != nil {
		panic(err)
	}
	if err := sys.InitFromModels(); err != nil {
		panic(err)
	}

	drv, err := newton.New(sys, newton.DefaultConfig())
	if err != nil {
		panic(err)
	}
	res, err := drv.Solve()
	if err != nil {
		panic(err)
	}

	fmt.Printf("x = %.0f\n", x.V[0])
	fmt.Printf("y = %.0f\n", y.V[0])
	fmt.Printf("status = %s\n", res.Status)
	// Output:
	// x = 4
	// y = 2
	// status = converged
}
