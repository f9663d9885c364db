package universe

import (
	"testing"

	"github.com/luisarose/openmoc2d/cell"
	"github.com/luisarose/openmoc2d/geom"
	"github.com/stretchr/testify/require"
)

func TestFindCellSimpleUniverse(t *testing.T) {
	sReg := geom.NewRegistry()
	cReg := cell.NewRegistry()

	xp, err := geom.NewXPlane(sReg, 0, 0, geom.NoBoundary)
	require.NoError(t, err)

	left, err := cell.NewMaterialCell(cReg, 0, 1, 10)
	require.NoError(t, err)
	require.NoError(t, left.AddSurface(-1, xp))

	right, err := cell.NewMaterialCell(cReg, 0, 1, 20)
	require.NoError(t, err)
	require.NoError(t, right.AddSurface(1, xp))

	w := NewWorld()
	w.AddUniverse(1, map[int]*cell.Cell{left.UserID: left, right.UserID: right})

	_, leaf, err := w.FindCell(1, geom.Point{X: -1, Y: 0})
	require.NoError(t, err)
	require.Equal(t, 10, leaf.MaterialHandle)

	_, leaf, err = w.FindCell(1, geom.Point{X: 1, Y: 0})
	require.NoError(t, err)
	require.Equal(t, 20, leaf.MaterialHandle)
}

func TestFindCellThroughFillAndLattice(t *testing.T) {
	sReg := geom.NewRegistry()
	cReg := cell.NewRegistry()

	everything, err := geom.NewCircle(sReg, 0, 0, 0, 100, geom.NoBoundary)
	require.NoError(t, err)

	pin, err := cell.NewMaterialCell(cReg, 0, 2, 42)
	require.NoError(t, err)
	require.NoError(t, pin.AddSurface(-1, everything))

	w := NewWorld()
	w.AddUniverse(2, map[int]*cell.Cell{pin.UserID: pin})

	lat := NewLattice(0, 0, 1, 1, 2, 2, []int{2, 2, 2, 2})
	w.AddLattice(1, lat)

	fillCell, err := cell.NewFillCell(cReg, 0, 0, 1)
	require.NoError(t, err)
	require.NoError(t, fillCell.AddSurface(-1, everything))
	w.AddUniverse(0, map[int]*cell.Cell{fillCell.UserID: fillCell})

	chain, leaf, err := w.FindCell(0, geom.Point{X: 0.5, Y: 1.5})
	require.NoError(t, err)
	require.Equal(t, 42, leaf.MaterialHandle)
	require.Equal(t, 0, chain.UniverseID)
	require.NotNil(t, chain.Next)
	require.Equal(t, 1, chain.Next.UniverseID)
}

func TestLatticeLocateOutOfBounds(t *testing.T) {
	lat := NewLattice(0, 0, 1, 1, 2, 2, []int{1, 1, 1, 1})
	_, _, ok := lat.Locate(geom.Point{X: 10, Y: 10})
	require.False(t, ok)
}
