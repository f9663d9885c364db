// Package config loads the solver's ini-style tunables, grounded on the
// teacher's gcfg.ReadFileInto + documented Example*File constant pattern.
package config

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

// ExampleSolverFile documents every [Solver] key a run.cfg can set.
const ExampleSolverFile = `[Solver]

#######################
# Required Parameters #
#######################

# Path to the geometry/material/track input bundle.
Input = path/to/geometry

#######################
# Optional Parameters #
#######################

# VectorLength is the SIMD lane count per-group arrays are padded to.
# VectorLength = 8

# VectorAlignment is the byte alignment (in bytes) requested for per-group
# allocations.
# VectorAlignment = 16

# ExponentialMode is one of Direct or Interpolated.
# ExponentialMode = Interpolated

# ExponentialTableSize is the number of entries in the interpolation table,
# used only when ExponentialMode = Interpolated.
# ExponentialTableSize = 2048

# MaxIterations bounds the outer power iteration.
# MaxIterations = 1000

# SourceTolerance is the convergence criterion: the RMS relative change of
# the source between iterations in Eigenvalue mode, the L2 relative change
# of the scalar flux in FixedSource mode.
# SourceTolerance = 1e-5

# ThreadCount is the number of sweep worker goroutines. 0 means
# runtime.NumCPU().
# ThreadCount = 0
`

// Tunables is the parsed [Solver] section of a run configuration.
type Tunables struct {
	Input string

	VectorLength          int
	VectorAlignment       int
	ExponentialMode       string
	ExponentialTableSize  int
	MaxIterations         int
	SourceTolerance       float64
	ThreadCount           int
}

type fileConfig struct {
	Solver Tunables
}

// Defaults returns the tunables used for any key left unset in a config
// file.
func Defaults() Tunables {
	return Tunables{
		VectorLength:         8,
		VectorAlignment:      16,
		ExponentialMode:      "Interpolated",
		ExponentialTableSize: 2048,
		MaxIterations:        1000,
		SourceTolerance:      1e-5,
		ThreadCount:          0,
	}
}

// ReadFile loads Tunables from an ini-format file, filling any key absent
// from the file with its Defaults() value.
func ReadFile(fname string) (Tunables, error) {
	fc := fileConfig{Solver: Defaults()}
	if err := gcfg.ReadFileInto(&fc, fname); err != nil {
		return Tunables{}, err
	}
	if err := fc.Solver.validate(); err != nil {
		return Tunables{}, err
	}
	return fc.Solver, nil
}

func (t *Tunables) validate() error {
	if t.Input == "" {
		return fmt.Errorf("config: Input is required")
	}
	if t.VectorLength <= 0 {
		return fmt.Errorf("config: VectorLength must be positive, got %d", t.VectorLength)
	}
	if t.ExponentialMode != "Direct" && t.ExponentialMode != "Interpolated" {
		return fmt.Errorf("config: ExponentialMode must be Direct or Interpolated, got %q", t.ExponentialMode)
	}
	if t.MaxIterations <= 0 {
		return fmt.Errorf("config: MaxIterations must be positive, got %d", t.MaxIterations)
	}
	if t.SourceTolerance <= 0 {
		return fmt.Errorf("config: SourceTolerance must be positive, got %g", t.SourceTolerance)
	}
	return nil
}
