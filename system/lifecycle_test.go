package system_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/daeflow/core"
	"github.com/katalvlaran/daeflow/discrete"
	"github.com/katalvlaran/daeflow/system"
)

// spyDiscrete records which lifecycle phases touched it.
type spyDiscrete struct {
	log *[]string
}

func (d *spyDiscrete) Name() string            { return "spy" }
func (d *spyDiscrete) Flags() []*discrete.Flag { return nil }
func (d *spyDiscrete) Resize(int)              {}
func (d *spyDiscrete) CheckVar()               { *d.log = append(*d.log, "CheckVar") }
func (d *spyDiscrete) CheckEq()                { *d.log = append(*d.log, "CheckEq") }
func (d *spyDiscrete) SetEq() []discrete.ForcedValue {
	*d.log = append(*d.log, "SetEq")
	return nil
}

// LifecycleSuite exercises the per-iteration hook contract of System.
type LifecycleSuite struct {
	suite.Suite

	sys *system.System
	x   *core.Var
	y   *core.Var
	log []string
}

func (s *LifecycleSuite) SetupTest() {
	s.log = nil
	s.sys = system.New(system.WithLogger(quietLogger()))

	m := system.NewModel("plant", 1)
	s.x = m.State("x")
	s.y = m.Algeb("y")
	m.Discrete(&spyDiscrete{log: &s.log})
	m.FUpdate = func() { s.log = append(s.log, "FUpdate") }
	m.GUpdate = func() { s.log = append(s.log, "GUpdate") }
	m.JUpdate = func(d *core.DAE) { s.log = append(s.log, "JUpdate") }

	require.NoError(s.T(), s.sys.AddModel(m))
	require.NoError(s.T(), s.sys.Setup())
}

// TestHookOrder drives one full pass by hand and pins the phase order the
// driver relies on.
func (s *LifecycleSuite) TestHookOrder() {
	s.sys.EClear()
	s.sys.LUpdate()
	s.sys.FUpdate()
	s.sys.GUpdate()
	s.sys.LCheckEq()
	s.sys.FGToDAE()
	s.sys.JUpdate()
	s.sys.VarsToModels()

	require.Equal(s.T(),
		[]string{"CheckVar", "FUpdate", "GUpdate", "CheckEq", "SetEq", "JUpdate"},
		s.log)
}

// TestEClearZeroesAccumulators covers both the global vectors and the
// per-variable local accumulators.
func (s *LifecycleSuite) TestEClearZeroesAccumulators() {
	s.x.E[0] = 3
	s.y.E[0] = -2
	s.sys.DAE().F[0] = 9
	s.sys.DAE().G[0] = 9

	s.sys.EClear()
	require.Zero(s.T(), s.x.E[0])
	require.Zero(s.T(), s.y.E[0])
	require.Zero(s.T(), s.sys.DAE().F[0])
	require.Zero(s.T(), s.sys.DAE().G[0])
}

func (s *LifecycleSuite) TestFGToDAESumsByKind() {
	s.x.E[0] = 1.5
	s.y.E[0] = -4

	s.sys.FGToDAE()
	require.Equal(s.T(), 1.5, s.sys.DAE().F[0])
	require.Equal(s.T(), -4.0, s.sys.DAE().G[0])

	// a second collection without EClear accumulates further
	s.sys.FGToDAE()
	require.Equal(s.T(), 3.0, s.sys.DAE().F[0])
}

func (s *LifecycleSuite) TestVarsToModelsPushesSolvedValues() {
	s.sys.DAE().X[0] = 7
	s.sys.DAE().Y[0] = -1

	s.sys.VarsToModels()
	require.Equal(s.T(), 7.0, s.x.V[0])
	require.Equal(s.T(), -1.0, s.y.V[0])
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LifecycleSuite))
}
