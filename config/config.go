package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/daeflow/linsolve"
)

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("config: invalid value")

	// ErrUnknownBackend is returned for a backend name that matches no
	// registered linear solver.
	ErrUnknownBackend = errors.New("config: unknown backend")
)

// Backend names accepted in the run configuration.
const (
	BackendSparseLU = "sparse-lu"
	BackendDenseLU  = "dense-lu"
)

// Run is the YAML-backed run configuration.
type Run struct {
	// Tol is the Newton convergence tolerance.
	Tol float64 `yaml:"tol"`

	// MaxIter caps the Newton iterations per solve.
	MaxIter int `yaml:"max_iter"`

	// NCPU bounds the number of concurrently running case processes.
	NCPU int `yaml:"ncpu"`

	// Backend selects the linear solver: "sparse-lu" or "dense-lu".
	Backend string `yaml:"backend"`

	// Cases lists the case files or glob patterns to run.
	Cases []string `yaml:"cases"`
}

// Default returns the stock run configuration.
func Default() Run {
	return Run{
		Tol:     1e-6,
		MaxIter: 20,
		NCPU:    runtime.NumCPU(),
		Backend: BackendSparseLU,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Run, error) {
	r := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Validate rejects non-positive tolerances and counts and unknown backends.
func (r Run) Validate() error {
	if r.Tol <= 0 {
		return fmt.Errorf("%w: tol %v, want > 0", ErrInvalid, r.Tol)
	}
	if r.MaxIter <= 0 {
		return fmt.Errorf("%w: max_iter %d, want > 0", ErrInvalid, r.MaxIter)
	}
	if r.NCPU <= 0 {
		return fmt.Errorf("%w: ncpu %d, want > 0", ErrInvalid, r.NCPU)
	}
	if _, err := r.Solver(); err != nil {
		return err
	}
	return nil
}

// Solver instantiates the configured linear backend.
func (r Run) Solver() (linsolve.Solver, error) {
	switch r.Backend {
	case BackendSparseLU:
		return linsolve.LU{}, nil
	case BackendDenseLU:
		return linsolve.Dense{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, r.Backend)
	}
}
