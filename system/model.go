package system

import (
	"fmt"

	"github.com/katalvlaran/daeflow/core"
	"github.com/katalvlaran/daeflow/discrete"
	"github.com/katalvlaran/daeflow/service"
)

// extRef is an external variable together with its unresolved source
// coordinates; Setup resolves and links it.
type extRef struct {
	v        *core.ExtVar
	srcModel string
	srcVar   string
	uid      []int
}

// extSvcRef is an external service together with its source model name.
type extSvcRef struct {
	s        *service.ExtService
	srcModel string
}

// Model is one named device group: n elements sharing the same equations.
// Variables, parameters, services and discrete instances are declared on
// the model; the residual and Jacobian callbacks are plain closures over
// whatever the model declared.
type Model struct {
	// Name prefixes every address label and flag export of this model.
	Name string

	// FUpdate evaluates differential residuals into the declared state
	// variables' E accumulators. May be nil for purely algebraic models.
	FUpdate func()

	// GUpdate evaluates algebraic residuals likewise.
	GUpdate func()

	// JUpdate appends this model's partial derivatives to the DAE's
	// Jacobian triplet blocks. Row and column indices are global
	// addresses taken from the declared variables.
	JUpdate func(d *core.DAE)

	n int

	states    []*core.Var
	algebs    []*core.Var
	exts      []extRef
	params    map[string]core.Slice
	consts    []*service.Const
	extSvcs   []extSvcRef
	discretes []discrete.Discrete
}

// NewModel declares an n-element model.
func NewModel(name string, n int) *Model {
	return &Model{Name: name, n: n, params: make(map[string]core.Slice)}
}

// N reports the element count.
func (m *Model) N() int { return m.n }

// State declares a differential variable owned by this model.
func (m *Model) State(name string) *core.Var {
	v := core.NewState(name)
	m.states = append(m.states, v)
	return v
}

// Algeb declares an algebraic variable owned by this model.
func (m *Model) Algeb(name string) *core.Var {
	v := core.NewAlgeb(name)
	m.algebs = append(m.algebs, v)
	return v
}

// ExtState declares an external reference to srcModel's state variable
// srcVar. uid maps local elements to source element indices; nil selects
// the full source range. Linking happens at Setup.
func (m *Model) ExtState(name, srcModel, srcVar string, uid []int) *core.ExtVar {
	v := core.NewExtState(name)
	m.exts = append(m.exts, extRef{v: v, srcModel: srcModel, srcVar: srcVar, uid: uid})
	return v
}

// ExtAlgeb declares an external reference to an algebraic variable.
func (m *Model) ExtAlgeb(name, srcModel, srcVar string, uid []int) *core.ExtVar {
	v := core.NewExtAlgeb(name)
	m.exts = append(m.exts, extRef{v: v, srcModel: srcModel, srcVar: srcVar, uid: uid})
	return v
}

// Param declares a constant per-element parameter array. Length is
// validated at Setup.
func (m *Model) Param(name string, v []float64) core.Slice {
	p := core.Slice(v)
	m.params[name] = p
	return p
}

// Const registers a once-computed service, evaluated at Setup.
func (m *Model) Const(c *service.Const) *service.Const {
	m.consts = append(m.consts, c)
	return c
}

// ExtServiceFrom registers an external service pulled from srcModel at
// Setup.
func (m *Model) ExtServiceFrom(s *service.ExtService, srcModel string) *service.ExtService {
	m.extSvcs = append(m.extSvcs, extSvcRef{s: s, srcModel: srcModel})
	return s
}

// Discrete registers a discrete flag instance. Setup resizes it to the
// model's element count.
func (m *Model) Discrete(d discrete.Discrete) discrete.Discrete {
	m.discretes = append(m.discretes, d)
	return d
}

// Get implements service.Getter: it returns a copy of the named parameter
// or variable attribute at the given element indices. attr selects "v"
// (values) or "e" (residuals); parameters only carry "v". A nil idx selects
// all elements.
func (m *Model) Get(src string, idx []int, attr string) ([]float64, error) {
	var arr []float64
	if p, ok := m.params[src]; ok {
		if attr != "v" {
			return nil, fmt.Errorf("%w: %s.%s has no %q", ErrBadAttr, m.Name, src, attr)
		}
		arr = p
	} else if v := m.varByName(src); v != nil {
		switch attr {
		case "v":
			arr = v.V
		case "e":
			arr = v.E
		default:
			return nil, fmt.Errorf("%w: %q", ErrBadAttr, attr)
		}
	} else {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownSymbol, m.Name, src)
	}

	if idx == nil {
		out := make([]float64, len(arr))
		copy(out, arr)
		return out, nil
	}
	out := make([]float64, len(idx))
	for i, u := range idx {
		if u < 0 || u >= len(arr) {
			return nil, fmt.Errorf("%w: index %d in %s.%s", core.ErrIndexRange, u, m.Name, src)
		}
		out[i] = arr[u]
	}
	return out, nil
}

// varByName finds an owned or external variable by name, nil when absent.
func (m *Model) varByName(name string) *core.Var {
	for _, v := range m.states {
		if v.Name == name {
			return v
		}
	}
	for _, v := range m.algebs {
		if v.Name == name {
			return v
		}
	}
	for _, e := range m.exts {
		if e.v.Name == name {
			return &e.v.Var
		}
	}
	return nil
}

// allVars yields owned variables first, then externals.
func (m *Model) allVars() []*core.Var {
	out := make([]*core.Var, 0, len(m.states)+len(m.algebs)+len(m.exts))
	out = append(out, m.states...)
	out = append(out, m.algebs...)
	for _, e := range m.exts {
		out = append(out, &e.v.Var)
	}
	return out
}

// checkSymbols rejects duplicate variable/parameter names and parameter
// arrays of the wrong length.
func (m *Model) checkSymbols() error {
	seen := make(map[string]struct{}, len(m.states)+len(m.algebs)+len(m.exts)+len(m.params))
	add := func(name string) error {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s.%s", ErrDupSymbol, m.Name, name)
		}
		seen[name] = struct{}{}
		return nil
	}
	for _, v := range m.allVars() {
		if err := add(v.Name); err != nil {
			return err
		}
	}
	for name, p := range m.params {
		if err := add(name); err != nil {
			return err
		}
		if len(p) != m.n {
			return fmt.Errorf("%w: %s.%s has %d values, want %d",
				ErrParamLength, m.Name, name, len(p), m.n)
		}
	}
	return nil
}
