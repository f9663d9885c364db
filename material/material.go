// Package material holds per-group cross-section data: Sigma_t, Sigma_a,
// nu*Sigma_f, chi, and the group-to-group scattering matrix Sigma_s. Every
// vector is padded to a multiple of the configured vector width so the
// transport sweep's inner group loop can run unmasked, grounded on the
// teacher's mat.Matrix flat-array-plus-dimensions layout.
package material

import (
	"github.com/luisarose/openmoc2d/internal/xserr"
)

// DefaultVectorWidth is the SIMD lane count group vectors are padded to
// when a config does not override it.
const DefaultVectorWidth = 8

// Material is one material's per-group cross sections. SigmaT, SigmaA,
// NuSigmaF and Chi have length NumGroupsPadded; SigmaS is a flat row-major
// NumGroupsPadded x NumGroupsPadded matrix, SigmaS[g*NumGroupsPadded+g']
// giving the scattering cross section from group g into group g'. Padding
// groups carry all-zero cross sections, so they never contribute to a
// source or reaction-rate sum.
type Material struct {
	Handle int

	NumGroups       int
	NumGroupsPadded int

	SigmaT   []float64
	SigmaA   []float64
	NuSigmaF []float64
	Chi      []float64
	SigmaS   []float64 // NumGroupsPadded x NumGroupsPadded, row-major
}

// padded rounds n up to the next multiple of width.
func padded(n, width int) int {
	if width <= 0 {
		width = DefaultVectorWidth
	}
	if n%width == 0 {
		return n
	}
	return (n/width + 1) * width
}

// New builds a Material from unpadded per-group data, padding every vector
// out to the given vector width (DefaultVectorWidth if vectorWidth <= 0).
// sigmaS must be numGroups x numGroups, row-major, unpadded.
func New(handle, numGroups, vectorWidth int, sigmaT, sigmaA, nuSigmaF, chi, sigmaS []float64) (*Material, error) {
	if numGroups <= 0 {
		return nil, xserr.New(xserr.InvalidGeometry, "material %d: numGroups must be positive, got %d", handle, numGroups)
	}
	if len(sigmaT) != numGroups || len(sigmaA) != numGroups || len(nuSigmaF) != numGroups || len(chi) != numGroups {
		return nil, xserr.New(xserr.InvalidGeometry, "material %d: per-group vectors must have length %d", handle, numGroups)
	}
	if len(sigmaS) != numGroups*numGroups {
		return nil, xserr.New(xserr.InvalidGeometry, "material %d: sigmaS must have length %d", handle, numGroups*numGroups)
	}

	np := padded(numGroups, vectorWidth)

	m := &Material{
		Handle:          handle,
		NumGroups:       numGroups,
		NumGroupsPadded: np,
		SigmaT:          make([]float64, np),
		SigmaA:          make([]float64, np),
		NuSigmaF:        make([]float64, np),
		Chi:             make([]float64, np),
		SigmaS:          make([]float64, np*np),
	}
	copy(m.SigmaT, sigmaT)
	copy(m.SigmaA, sigmaA)
	copy(m.NuSigmaF, nuSigmaF)
	copy(m.Chi, chi)
	for g := 0; g < numGroups; g++ {
		copy(m.SigmaS[g*np:g*np+numGroups], sigmaS[g*numGroups:(g+1)*numGroups])
	}
	return m, nil
}

// ScatterInto returns Sigma_s(g -> gPrime).
func (m *Material) ScatterInto(g, gPrime int) float64 {
	return m.SigmaS[g*m.NumGroupsPadded+gPrime]
}

// Library is the frozen set of materials a geometry refers to by handle.
type Library struct {
	byHandle map[int]*Material
}

// NewLibrary builds a Library from a set of materials, keyed by their own
// Handle field.
func NewLibrary(materials ...*Material) *Library {
	l := &Library{byHandle: make(map[int]*Material, len(materials))}
	for _, m := range materials {
		l.byHandle[m.Handle] = m
	}
	return l
}

// Get returns the material registered under handle, or an error if none
// is.
func (l *Library) Get(handle int) (*Material, error) {
	m, ok := l.byHandle[handle]
	if !ok {
		return nil, xserr.New(xserr.InvalidGeometry, "material handle %d is not in the library", handle)
	}
	return m, nil
}
