package system

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/daeflow/core"
	"github.com/katalvlaran/daeflow/discrete"
)

// Option customizes a System.
type Option func(*System)

// WithLogger replaces the process-default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *System) { s.log = l }
}

// System owns the global DAE storage and the model list, performs one-time
// setup (addressing, linking, service evaluation) and exposes the
// per-iteration lifecycle hooks in the order the driver calls them.
type System struct {
	dae    *core.DAE
	models []*Model
	byName map[string]*Model

	log   *slog.Logger
	time  float64
	setup bool
}

// New returns an empty system.
func New(opts ...Option) *System {
	s := &System{
		dae:    core.NewDAE(),
		byName: make(map[string]*Model),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DAE exposes the global vectors and Jacobian blocks.
func (s *System) DAE() *core.DAE { return s.dae }

// Now implements discrete.Clock: the current simulation time.
func (s *System) Now() float64 { return s.time }

// SetTime advances (or rewinds) the simulation clock. Callers move time
// between solves, never mid-iteration.
func (s *System) SetTime(t float64) { s.time = t }

// AddModel registers a model. Names must be unique.
func (s *System) AddModel(m *Model) error {
	if s.setup {
		return ErrSetupDone
	}
	if _, dup := s.byName[m.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDupModel, m.Name)
	}
	s.models = append(s.models, m)
	s.byName[m.Name] = m
	return nil
}

// Model returns a registered model by name.
func (s *System) Model(name string) (*Model, error) {
	m, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return m, nil
}

// Setup finalizes the system exactly once: it validates every model's
// symbol table, binds global addresses for all owned variables, freezes the
// address space, links external variables and services, evaluates constant
// services, sizes every discrete instance and force-evaluates switchers.
// After Setup the variable layout is immutable.
func (s *System) Setup() error {
	if s.setup {
		return ErrSetupDone
	}

	for _, m := range s.models {
		if err := m.checkSymbols(); err != nil {
			return err
		}
	}

	// address binding: states first within each model, then algebraics
	for _, m := range s.models {
		for _, v := range m.states {
			addr, err := s.dae.AddrState(m.Name+"."+v.Name, m.n)
			if err != nil {
				return err
			}
			if err := v.SetAddress(addr); err != nil {
				return fmt.Errorf("%s.%s: %w", m.Name, v.Name, err)
			}
		}
		for _, v := range m.algebs {
			addr, err := s.dae.AddrAlgeb(m.Name+"."+v.Name, m.n)
			if err != nil {
				return err
			}
			if err := v.SetAddress(addr); err != nil {
				return fmt.Errorf("%s.%s: %w", m.Name, v.Name, err)
			}
		}
	}
	if err := s.dae.Finalize(); err != nil {
		return err
	}

	// external variable linking
	for _, m := range s.models {
		for _, e := range m.exts {
			src, ok := s.byName[e.srcModel]
			if !ok {
				return fmt.Errorf("%w: %q referenced by %s.%s",
					ErrUnknownModel, e.srcModel, m.Name, e.v.Name)
			}
			sv := src.varByName(e.srcVar)
			if sv == nil {
				return fmt.Errorf("%w: %s.%s referenced by %s.%s",
					ErrUnknownSymbol, e.srcModel, e.srcVar, m.Name, e.v.Name)
			}
			if err := e.v.LinkExternal(sv, e.uid); err != nil {
				return fmt.Errorf("%s.%s: %w", m.Name, e.v.Name, err)
			}
		}
	}

	// services: constants once, externals pulled from their source model
	for _, m := range s.models {
		for _, c := range m.consts {
			c.Evaluate()
		}
		for _, ref := range m.extSvcs {
			src, ok := s.byName[ref.srcModel]
			if !ok {
				return fmt.Errorf("%w: %q referenced by service %q",
					ErrUnknownModel, ref.srcModel, ref.s.Name)
			}
			if err := ref.s.Link(src); err != nil {
				return err
			}
		}
	}

	// discretes: size flag arrays, validate switchers eagerly
	for _, m := range s.models {
		for _, d := range m.discretes {
			d.Resize(m.n)
			if sw, ok := d.(*discrete.Switcher); ok {
				if err := sw.Eval(); err != nil {
					return fmt.Errorf("model %s: %w", m.Name, err)
				}
			}
		}
	}

	s.setup = true
	s.log.Debug("system setup complete",
		"models", len(s.models), "states", s.dae.N(), "algebs", s.dae.M())
	return nil
}

// InitFromModels seeds the global vectors from the owned variables' V
// arrays, then refreshes external copies. Call after Setup, once initial
// values are written into the variables.
func (s *System) InitFromModels() error {
	if !s.setup {
		return ErrNotSetup
	}
	for _, m := range s.models {
		for _, v := range m.states {
			for i, a := range v.A {
				s.dae.X[a] = v.V[i]
			}
		}
		for _, v := range m.algebs {
			for i, a := range v.A {
				s.dae.Y[a] = v.V[i]
			}
		}
	}
	for _, m := range s.models {
		for _, e := range m.exts {
			e.v.PullV()
		}
	}
	return nil
}

// EClear zeroes the global residual vectors and every variable's local
// accumulator. First hook of each iteration.
func (s *System) EClear() {
	s.dae.ClearE()
	for _, m := range s.models {
		for _, v := range m.allVars() {
			for i := range v.E {
				v.E[i] = 0
			}
		}
	}
}

// LUpdate runs every discrete instance's CheckVar pass.
func (s *System) LUpdate() {
	for _, m := range s.models {
		for _, d := range m.discretes {
			d.CheckVar()
		}
	}
}

// FUpdate runs the differential residual callbacks.
func (s *System) FUpdate() {
	for _, m := range s.models {
		if m.FUpdate != nil {
			m.FUpdate()
		}
	}
}

// GUpdate runs the algebraic residual callbacks.
func (s *System) GUpdate() {
	for _, m := range s.models {
		if m.GUpdate != nil {
			m.GUpdate()
		}
	}
}

// LCheckEq runs the anti-windup pass: CheckEq on every discrete instance,
// then SetEq, writing each forced state value into the global X vector so
// the clamped value survives the upcoming solve.
func (s *System) LCheckEq() {
	for _, m := range s.models {
		for _, d := range m.discretes {
			d.CheckEq()
		}
	}
	for _, m := range s.models {
		for _, d := range m.discretes {
			for _, fv := range d.SetEq() {
				s.dae.X[fv.Addr] = fv.Value
			}
		}
	}
}

// FGToDAE sums every variable's local residual accumulator into the global
// F and G vectors by address. External contributions compose additively
// with the source owner's.
func (s *System) FGToDAE() {
	for _, m := range s.models {
		for _, v := range m.allVars() {
			switch v.Kind {
			case core.State:
				for i, a := range v.A {
					s.dae.F[a] += v.E[i]
				}
			case core.Algeb:
				for i, a := range v.A {
					s.dae.G[a] += v.E[i]
				}
			}
		}
	}
}

// JUpdate drops the previous Jacobian triplets and runs the Jacobian
// callbacks.
func (s *System) JUpdate() {
	s.dae.ClearJ()
	for _, m := range s.models {
		if m.JUpdate != nil {
			m.JUpdate(s.dae)
		}
	}
}

// VarsToModels pushes the solved global values back into every owned
// variable, then refreshes external copies from their sources.
func (s *System) VarsToModels() {
	for _, m := range s.models {
		for _, v := range m.states {
			for i, a := range v.A {
				v.V[i] = s.dae.X[a]
			}
		}
		for _, v := range m.algebs {
			for i, a := range v.A {
				v.V[i] = s.dae.Y[a]
			}
		}
	}
	for _, m := range s.models {
		for _, e := range m.exts {
			e.v.PullV()
		}
	}
}

// ExportFlags collects every discrete flag under its qualified export name
// "model.instance_flag". Values are copies.
func (s *System) ExportFlags() map[string][]float64 {
	out := make(map[string][]float64)
	for _, m := range s.models {
		for _, d := range m.discretes {
			for _, f := range d.Flags() {
				v := make([]float64, len(f.V))
				copy(v, f.V)
				out[m.Name+"."+discrete.ExportName(d, f)] = v
			}
		}
	}
	return out
}
