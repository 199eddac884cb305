package core

// Kind distinguishes differential (state) unknowns from algebraic ones.
// State residuals land in DAE.F, algebraic residuals in DAE.G.
type Kind uint8

const (
	// State marks a differential variable (solved in X, residual in F).
	State Kind = iota
	// Algeb marks an algebraic variable (solved in Y, residual in G).
	Algeb
)

// String returns "state" or "algeb".
func (k Kind) String() string {
	if k == State {
		return "state"
	}
	return "algeb"
}

// Var is one named unknown: one scalar per element of the owning model.
//
// A Var is declared with no address at model-definition time. SetAddress
// binds the global slots exactly once; afterwards A, V and E are valid and
// share the same length. V holds the current iterate values, E accumulates
// the residual of the equation associated with this variable.
type Var struct {
	// Name identifies the variable for diagnostics and flag exports.
	Name string
	// Kind selects the residual destination (F for State, G for Algeb).
	Kind Kind

	// A holds the global address of each element. Unique and stable
	// once assigned.
	A []int
	// V holds the per-element values of the current iterate.
	V []float64
	// E accumulates the per-element equation residuals.
	E []float64

	addressed bool
}

// NewState declares an unaddressed differential variable.
func NewState(name string) *Var { return &Var{Name: name, Kind: State} }

// NewAlgeb declares an unaddressed algebraic variable.
func NewAlgeb(name string) *Var { return &Var{Name: name, Kind: Algeb} }

// N reports the element count. Zero until addressed.
func (v *Var) N() int { return len(v.A) }

// Addressed reports whether SetAddress has been called.
func (v *Var) Addressed() bool { return v.addressed }

// SetAddress binds the global slots of this variable. It must be called
// exactly once: a second call returns ErrAddressSet. V and E become valid,
// zero-initialized arrays of the same length as addr.
func (v *Var) SetAddress(addr []int) error {
	if v.addressed {
		return ErrAddressSet
	}
	v.A = make([]int, len(addr))
	copy(v.A, addr)
	v.V = make([]float64, len(addr))
	v.E = make([]float64, len(addr))
	v.addressed = true
	return nil
}

// ExtVar references another owner's variable through an index mapping.
//
// It owns no addresses: after LinkExternal, A aliases the source addresses
// selected by the mapping, while V and E are locally allocated zero vectors,
// separate from the source's. Local E values are summed into the global
// residual vector at the shared addresses by the residual collection step —
// the source owner's contributions are never overwritten.
type ExtVar struct {
	Var

	// Src is the source owner resolved by LinkExternal.
	Src *Var
	// UID maps local elements to source element indices.
	UID []int

	linked bool
}

// NewExtState declares an unlinked external reference to a state variable.
func NewExtState(name string) *ExtVar { return &ExtVar{Var: Var{Name: name, Kind: State}} }

// NewExtAlgeb declares an unlinked external reference to an algebraic variable.
func NewExtAlgeb(name string) *ExtVar { return &ExtVar{Var: Var{Name: name, Kind: Algeb}} }

// Linked reports whether LinkExternal has been called.
func (x *ExtVar) Linked() bool { return x.linked }

// LinkExternal resolves the index mapping against src. src must already be
// addressed. uid holds source element indices, one per local element; a nil
// uid copies the full source range. Out-of-range indices return ErrIndexRange.
func (x *ExtVar) LinkExternal(src *Var, uid []int) error {
	if x.linked {
		return ErrLinked
	}
	if src == nil || !src.Addressed() {
		return ErrNotAddressed
	}
	if uid == nil {
		uid = make([]int, src.N())
		for i := range uid {
			uid[i] = i
		}
	}

	x.Src = src
	x.Kind = src.Kind
	x.UID = make([]int, len(uid))
	x.A = make([]int, len(uid))
	for i, u := range uid {
		if u < 0 || u >= src.N() {
			x.Src, x.UID, x.A = nil, nil, nil
			return ErrIndexRange
		}
		x.UID[i] = u
		x.A[i] = src.A[u]
	}
	x.V = make([]float64, len(uid))
	x.E = make([]float64, len(uid))
	x.addressed = true
	x.linked = true
	return nil
}

// PullV copies the source values selected by the mapping into the local V.
func (x *ExtVar) PullV() {
	for i, u := range x.UID {
		x.V[i] = x.Src.V[u]
	}
}
