package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoCases is returned when pattern expansion produced nothing.
	ErrNoCases = errors.New("batch: no case files matched")

	// ErrCaseFailed wraps the exit failure of one case process.
	ErrCaseFailed = errors.New("batch: case failed")
)

// Expand resolves glob patterns into a sorted, deduplicated case list.
// A pattern that matches nothing contributes nothing; a malformed pattern
// is an error. An empty overall result returns ErrNoCases.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var cases []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("batch: pattern %q: %w", p, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			cases = append(cases, m)
		}
	}
	if len(cases) == 0 {
		return nil, ErrNoCases
	}
	sort.Strings(cases)
	return cases, nil
}

// Runner launches one child process per case.
type Runner struct {
	// Command is the executable to invoke for each case.
	Command string

	// Args builds the argument list for one case file.
	Args func(caseFile string) []string

	// NCPU bounds the number of concurrently running processes.
	NCPU int

	// Logger receives per-case start/finish events.
	Logger *slog.Logger
}

// Run executes every case. Cases launch in groups of at most NCPU; each
// group is joined before the next starts. Failures do not cancel sibling
// cases or later groups; the combined error reports every failed case.
func (r *Runner) Run(ctx context.Context, cases []string) error {
	if len(cases) == 0 {
		return ErrNoCases
	}
	ncpu := r.NCPU
	if ncpu < 1 {
		ncpu = 1
	}
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	var failures []error
	for start := 0; start < len(cases); start += ncpu {
		end := start + ncpu
		if end > len(cases) {
			end = len(cases)
		}

		group := cases[start:end]
		errs := make([]error, len(group))
		var g errgroup.Group
		for i, cf := range group {
			i, cf := i, cf // per-iteration copies; required under go <1.22
			g.Go(func() error {
				log.Info("case started", "case", cf)
				cmd := exec.CommandContext(ctx, r.Command, r.Args(cf)...)
				if err := cmd.Run(); err != nil {
					log.Error("case failed", "case", cf, "err", err)
					errs[i] = fmt.Errorf("%w: %s: %w", ErrCaseFailed, cf, err)
					return nil
				}
				log.Info("case finished", "case", cf)
				return nil
			})
		}
		// join barrier: the whole group finishes before the next launches
		_ = g.Wait()
		for _, err := range errs {
			if err != nil {
				failures = append(failures, err)
			}
		}
	}
	return errors.Join(failures...)
}
