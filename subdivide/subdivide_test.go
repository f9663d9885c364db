package subdivide

import (
	"math"
	"testing"

	"github.com/luisarose/openmoc2d/cell"
	"github.com/luisarose/openmoc2d/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinCell(t *testing.T, rings, sectors int) (*geom.Registry, *cell.Registry, *cell.Cell) {
	t.Helper()
	sReg := geom.NewRegistry()
	cReg := cell.NewRegistry()

	circ, err := geom.NewCircle(sReg, 0, 0, 0, 1.0, geom.NoBoundary)
	require.NoError(t, err)

	c, err := cell.NewMaterialCell(cReg, 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, c.AddSurface(-1, circ))
	require.NoError(t, c.SetNumRings(rings))
	require.NoError(t, c.SetNumSectors(sectors))

	return sReg, cReg, c
}

func TestRingifyEqualAreaRadii(t *testing.T) {
	sReg, cReg, c := pinCell(t, 4, 0)

	leaves, warnings, err := Subdivide(sReg, cReg, c)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, leaves, 4)

	wantRadii := []float64{1.0, math.Sqrt(3.0 / 4.0), math.Sqrt(1.0 / 2.0), math.Sqrt(1.0 / 4.0)}

	totalArea := 0.0
	for i, leaf := range leaves {
		var outer *geom.Surface
		var rIn float64
		for _, b := range leaf.Bounds {
			if b.Surface.Kind != geom.Circle {
				continue
			}
			if b.Halfspace == -1 {
				outer = b.Surface
			} else {
				rIn = b.Surface.Radius()
			}
		}
		require.NotNil(t, outer)
		assert.InDelta(t, wantRadii[i], outer.Radius(), 1e-9)

		ringArea := math.Pi * (outer.Radius()*outer.Radius() - rIn*rIn)
		totalArea += ringArea
	}

	assert.InDelta(t, math.Pi*1.0*1.0, totalArea, 1e-9)
}

func TestSectorizePlaneAngles(t *testing.T) {
	sReg, cReg, c := pinCell(t, 0, 4)

	leaves, warnings, err := Subdivide(sReg, cReg, c)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, leaves, 4)

	wantAB := [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for i, leaf := range leaves {
		for _, b := range leaf.Bounds {
			if b.Surface.Kind == geom.Plane && b.Halfspace == 1 {
				assert.InDelta(t, wantAB[i][0], b.Surface.A, 1e-9)
				assert.InDelta(t, wantAB[i][1], b.Surface.B, 1e-9)
			}
		}
	}
}

func TestSubdivideCartesianProduct(t *testing.T) {
	sReg, cReg, c := pinCell(t, 3, 4)

	leaves, warnings, err := Subdivide(sReg, cReg, c)
	require.NoError(t, err)
	require.Empty(t, warnings)
	assert.Len(t, leaves, 12)
}

func TestRingifyDegenerateOrderLeavesUndivided(t *testing.T) {
	sReg := geom.NewRegistry()
	cReg := cell.NewRegistry()

	outerLabeled, err := geom.NewCircle(sReg, 0, 0, 0, 0.5, geom.NoBoundary)
	require.NoError(t, err)
	innerLabeled, err := geom.NewCircle(sReg, 0, 0, 0, 1.0, geom.NoBoundary)
	require.NoError(t, err)

	c, err := cell.NewMaterialCell(cReg, 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, c.AddSurface(-1, outerLabeled))
	require.NoError(t, c.AddSurface(1, innerLabeled))
	require.NoError(t, c.SetNumRings(3))

	leaves, warnings, err := Subdivide(sReg, cReg, c)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Len(t, leaves, 1)
}

func TestRingifyNoCircleIsFatal(t *testing.T) {
	sReg := geom.NewRegistry()
	cReg := cell.NewRegistry()

	xp, err := geom.NewXPlane(sReg, 0, 0, geom.NoBoundary)
	require.NoError(t, err)

	c, err := cell.NewMaterialCell(cReg, 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, c.AddSurface(1, xp))
	require.NoError(t, c.SetNumRings(2))

	_, _, err = Subdivide(sReg, cReg, c)
	require.Error(t, err)
}
