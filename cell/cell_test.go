package cell

import (
	"testing"

	"github.com/luisarose/openmoc2d/geom"
	"github.com/stretchr/testify/require"
)

func quadrantCell(t *testing.T) *Cell {
	t.Helper()
	sReg := geom.NewRegistry()
	cReg := NewRegistry()

	xp, err := geom.NewXPlane(sReg, 0, 0, geom.NoBoundary)
	require.NoError(t, err)
	yp, err := geom.NewYPlane(sReg, 0, 0, geom.NoBoundary)
	require.NoError(t, err)
	circ, err := geom.NewCircle(sReg, 0, 0, 0, 1, geom.NoBoundary)
	require.NoError(t, err)

	c, err := NewMaterialCell(cReg, 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, c.AddSurface(1, xp))
	require.NoError(t, c.AddSurface(1, yp))
	require.NoError(t, c.AddSurface(-1, circ))
	return c
}

func TestCellContainsQuadrantWedge(t *testing.T) {
	c := quadrantCell(t)

	if !c.Contains(geom.Point{X: 0.5, Y: 0.5}) {
		t.Errorf("expected (0.5, 0.5) to be contained")
	}
	if c.Contains(geom.Point{X: -0.1, Y: 0.5}) {
		t.Errorf("expected (-0.1, 0.5) to be excluded")
	}
	if c.Contains(geom.Point{X: 0.8, Y: 0.8}) {
		t.Errorf("expected (0.8, 0.8) to be excluded")
	}
}

func TestAddSurfaceRejectsBadHalfspace(t *testing.T) {
	sReg := geom.NewRegistry()
	cReg := NewRegistry()
	xp, err := geom.NewXPlane(sReg, 0, 0, geom.NoBoundary)
	require.NoError(t, err)
	c, err := NewMaterialCell(cReg, 0, 0, 0)
	require.NoError(t, err)

	err = c.AddSurface(2, xp)
	require.Error(t, err)
}

func TestSetNumSectorsRewritesOneToZero(t *testing.T) {
	cReg := NewRegistry()
	c, err := NewMaterialCell(cReg, 0, 0, 0)
	require.NoError(t, err)

	require.NoError(t, c.SetNumSectors(1))
	if c.NumSectors != 0 {
		t.Errorf("expected SetNumSectors(1) to rewrite to 0, got %d", c.NumSectors)
	}
}

func TestCloneResetsRingsAndSectors(t *testing.T) {
	cReg := NewRegistry()
	c, err := NewMaterialCell(cReg, 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, c.SetNumRings(4))
	require.NoError(t, c.SetNumSectors(8))

	clone, err := c.Clone(cReg, 0)
	require.NoError(t, err)

	if clone.NumRings != 0 || clone.NumSectors != 0 {
		t.Errorf("expected clone to reset rings/sectors, got rings=%d sectors=%d",
			clone.NumRings, clone.NumSectors)
	}
	if clone.UID == c.UID {
		t.Errorf("expected clone to have a fresh UID")
	}

	forSub, err := c.CloneForSubdivision(cReg, 0)
	require.NoError(t, err)
	if forSub.NumRings != 4 || forSub.NumSectors != 8 {
		t.Errorf("expected CloneForSubdivision to preserve rings/sectors")
	}
}
