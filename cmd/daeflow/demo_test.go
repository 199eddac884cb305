package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/daeflow/newton"
)

func TestBuildDemoUnknown(t *testing.T) {
	_, err := buildDemo("nope")
	require.ErrorContains(t, err, "unknown demo system")
}

// Every shipped demo system must converge with the default driver.
func TestDemosConverge(t *testing.T) {
	for name := range demoBuilders {
		t.Run(name, func(t *testing.T) {
			sys, err := buildDemo(name)
			require.NoError(t, err)
			require.NoError(t, sys.InitFromModels())

			drv, err := newton.New(sys, newton.DefaultConfig())
			require.NoError(t, err)
			res, err := drv.Solve()
			require.NoError(t, err)
			require.Equal(t, newton.Converged, res.Status)
		})
	}
}

func TestSolveCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: quadratic\n"), 0o644))
	require.NoError(t, solveCase(path))
}

func TestSolveCaseUnknownSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: venus\n"), 0o644))
	require.Error(t, solveCase(path))
}
