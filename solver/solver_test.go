package solver

import (
	"context"
	"testing"

	"github.com/luisarose/openmoc2d/material"
	"github.com/luisarose/openmoc2d/quadrature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInfiniteMediumConvergesToAnalyticKEff(t *testing.T) {
	// Single group, single FSR, no tracks: an infinite homogeneous
	// reflective medium. k_inf = nuSigmaF / (Sigma_t - Sigma_s).
	sigmaT, sigmaS, nuSigmaF := 0.5, 0.4, 0.2
	m, err := material.New(1, 1, 1, []float64{sigmaT}, []float64{sigmaT - sigmaS}, []float64{nuSigmaF}, []float64{1.0}, []float64{sigmaS})
	require.NoError(t, err)

	geo := &Geometry{
		NumFSR:          1,
		FSRMaterial:     []int{1},
		Library:         material.NewLibrary(m),
		Tracks:          nil,
		Polar:           quadrature.TY3Polar,
		NumGroups:       1,
		NumGroupsPadded: 1,
	}

	cfg := DefaultConfig()
	cfg.MaxIterations = 500
	cfg.SourceTolerance = 1e-10

	s, err := New(geo, cfg)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	wantKEff := nuSigmaF / (sigmaT - sigmaS)
	assert.InDelta(t, wantKEff, result.KEff, 1e-6)
	assert.Equal(t, 0.0, result.Leakage)
	assert.NotEmpty(t, result.RunID)
}

func TestRunRejectsMismatchedFSRMaterialLength(t *testing.T) {
	lib := material.NewLibrary()
	geo := &Geometry{NumFSR: 2, FSRMaterial: []int{1}, Library: lib, Polar: quadrature.TY3Polar, NumGroupsPadded: 1}
	_, err := New(geo, DefaultConfig())
	require.Error(t, err)
}

func TestRunRequiresExternalSourceInFixedSourceMode(t *testing.T) {
	m, err := material.New(1, 1, 1, []float64{0.5}, []float64{0.1}, []float64{0.2}, []float64{1.0}, []float64{0.4})
	require.NoError(t, err)

	geo := &Geometry{
		NumFSR:          1,
		FSRMaterial:     []int{1},
		Library:         material.NewLibrary(m),
		Polar:           quadrature.TY3Polar,
		NumGroupsPadded: 1,
	}
	cfg := DefaultConfig()
	cfg.Mode = FixedSource
	_, err = New(geo, cfg)
	require.Error(t, err)
}

func TestRunFixedSourceModeHoldsKEffAtOne(t *testing.T) {
	m, err := material.New(1, 1, 1, []float64{0.5}, []float64{0.1}, []float64{0.0}, []float64{0.0}, []float64{0.2})
	require.NoError(t, err)

	geo := &Geometry{
		NumFSR:          1,
		FSRMaterial:     []int{1},
		Library:         material.NewLibrary(m),
		Polar:           quadrature.TY3Polar,
		NumGroupsPadded: 1,
		ExternalSource:  []float64{1.0},
	}
	cfg := DefaultConfig()
	cfg.Mode = FixedSource
	cfg.MaxIterations = 200
	cfg.SourceTolerance = 1e-10

	s, err := New(geo, cfg)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.KEff)
}
