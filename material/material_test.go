package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPadsVectorsToVectorWidth(t *testing.T) {
	// 3 groups, vector width 8 -> padded to 8.
	sigmaT := []float64{1, 2, 3}
	sigmaA := []float64{0.5, 0.6, 0.7}
	nuSigmaF := []float64{0.1, 0.2, 0.3}
	chi := []float64{1, 0, 0}
	sigmaS := []float64{
		0.1, 0.2, 0.0,
		0.0, 0.3, 0.1,
		0.0, 0.0, 0.4,
	}

	m, err := New(1, 3, 8, sigmaT, sigmaA, nuSigmaF, chi, sigmaS)
	require.NoError(t, err)

	assert.Equal(t, 3, m.NumGroups)
	assert.Equal(t, 8, m.NumGroupsPadded)
	assert.Len(t, m.SigmaT, 8)
	assert.Equal(t, 0.0, m.SigmaT[3]) // padding group is zero
	assert.Equal(t, 3.0, m.SigmaT[2])

	assert.InDelta(t, 0.2, m.ScatterInto(0, 1), 1e-12)
	assert.InDelta(t, 0.0, m.ScatterInto(3, 0), 1e-12) // padding row
}

func TestNewRejectsMismatchedLengths(t *testing.T) {
	_, err := New(1, 2, 8, []float64{1}, []float64{1, 1}, []float64{1, 1}, []float64{1, 1}, []float64{0, 0, 0, 0})
	require.Error(t, err)
}

func TestLibraryGetMissingHandle(t *testing.T) {
	lib := NewLibrary()
	_, err := lib.Get(99)
	require.Error(t, err)
}

func TestSingleMaterialInfiniteMediumCrossSections(t *testing.T) {
	// Scenario 1 setup: Sigma_t=0.5, Sigma_s=0.4, nuSigmaF=0.2 -> expect
	// k_inf = nuSigmaF / (Sigma_t - Sigma_s) = 0.2/0.1 = 2.0 once a solver
	// runs this through power iteration; here we only check the material
	// bookkeeping the solver will consume.
	m, err := New(1, 1, 1, []float64{0.5}, []float64{0.1}, []float64{0.2}, []float64{1.0}, []float64{0.4})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, m.SigmaT[0]-m.ScatterInto(0, 0), 1e-12)
}
