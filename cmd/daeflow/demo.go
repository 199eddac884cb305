package main

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/daeflow/core"
	"github.com/katalvlaran/daeflow/discrete"
	"github.com/katalvlaran/daeflow/system"
)

// demoBuilders maps case system names to constructors. Each returns a
// set-up system with initial values written into its variables.
var demoBuilders = map[string]func() (*system.System, error){
	"linear":    demoLinear,
	"quadratic": demoQuadratic,
	"clamped":   demoClamped,
}

func buildDemo(name string) (*system.System, error) {
	b, ok := demoBuilders[name]
	if !ok {
		names := make([]string, 0, len(demoBuilders))
		for n := range demoBuilders {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown demo system %q, have %v", name, names)
	}
	return b()
}

// demoLinear couples one state and one algebraic unknown:
//
//	f: x - 2y = 0
//	g: x + y - 6 = 0   →   x = 4, y = 2
func demoLinear() (*system.System, error) {
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
		return nil, err
	}
	if err := sys.Setup(); err != nil {
		return nil, err
	}
	return sys, nil
}

// demoQuadratic solves y² = 4 from y₀ = 3, converging onto the root 2.
func demoQuadratic() (*system.System, error) {
	sys := system.New()
	m := system.NewModel("quad", 1)
	y := m.Algeb("y")
	m.GUpdate = func() { y.E[0] = y.V[0]*y.V[0] - 4 }
	m.JUpdate = func(d *core.DAE) { d.Gy.Append(y.A[0], y.A[0], 2*y.V[0]) }
	if err := sys.AddModel(m); err != nil {
		return nil, err
	}
	if err := sys.Setup(); err != nil {
		return nil, err
	}
	y.V[0] = 3
	return sys, nil
}

// demoClamped drives a state toward 4 under an anti-windup limit at 3;
// the converged solution sits clamped on the bound with its limit flag up.
func demoClamped() (*system.System, error) {
	sys := system.New()
	m := system.NewModel("ctl", 1)
	x := m.State("x")
	m.Discrete(discrete.NewAntiWindup("lim", x,
		core.Slice{-1e6}, core.Slice{3}))
	m.FUpdate = func() { x.E[0] = x.V[0] - 4 }
	m.JUpdate = func(d *core.DAE) { d.Fx.Append(x.A[0], x.A[0], 1) }
	if err := sys.AddModel(m); err != nil {
		return nil, err
	}
	if err := sys.Setup(); err != nil {
		return nil, err
	}
	return sys, nil
}
