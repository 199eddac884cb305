package discrete

import "github.com/katalvlaran/daeflow/core"

// AntiWindup is the limiter variant that prevents integral wind-up of a
// differential variable:
//
//	if x >= upper and ẋ pushes further up:   x = upper, ẋ = 0
//	if x <= lower and ẋ pushes further down: x = lower, ẋ = 0
//
// Unlike the other limiters, it classifies in CheckEq — the flags depend on
// the governed state's derivative residual, which only exists after the
// equations are evaluated. CheckVar is a no-op, deferring entirely
// to CheckEq/SetEq. SetEq is the single place in the flag layer permitted to
// overwrite another owner's equation state.
type AntiWindup struct {
	Limiter

	state *core.Var
}

// NewAntiWindup builds the anti-windup limiter over the governed state.
// state carries the derivative residual checked in CheckEq and mutated in
// SetEq; it is also the comparison input.
func NewAntiWindup(name string, state *core.Var, lower, upper core.VProvider, opts ...Option) *AntiWindup {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &AntiWindup{
		Limiter: *newLimiter(name, state, lower, upper, o),
		state:   state,
	}
}

// CheckVar does nothing: classification needs equation residuals and runs
// in CheckEq instead.
func (a *AntiWindup) CheckVar() {}

// CheckEq marks a limit active only where the violated side's residual
// pushes further out of bound: zu where x >= upper and e >= 0, zl where
// x <= lower and e <= 0.
func (a *AntiWindup) CheckEq() {
	if !a.enable {
		return
	}
	u := a.state.V
	e := a.state.E
	lo := a.lower.Values()
	up := a.upper.Values()
	for i := range a.zi.V {
		a.zu.V[i] = b2f(u[i] >= up[i] && e[i] >= 0)
		a.zl.V[i] = b2f(u[i] <= lo[i] && e[i] <= 0)
		a.zi.V[i] = b2f(a.zu.V[i] == 0 && a.zl.V[i] == 0)
	}
}

// SetEq resets the governed state wherever a limit is active: the residual
// is zeroed, the value is clamped to the violated bound, and the (address,
// clamped-value) pair is recorded for the driver to apply onto the global
// solution vector.
func (a *AntiWindup) SetEq() []ForcedValue {
	if !a.enable {
		return nil
	}
	var forced []ForcedValue
	lo := a.lower.Values()
	up := a.upper.Values()
	for i := range a.zi.V {
		if a.zi.V[i] != 0 {
			continue
		}
		a.state.E[i] = 0
		if a.zu.V[i] != 0 {
			a.state.V[i] = up[i]
		} else {
			a.state.V[i] = lo[i]
		}
		forced = append(forced, ForcedValue{Addr: a.state.A[i], Value: a.state.V[i]})
	}
	return forced
}
