package universe

import (
	"math"

	"github.com/luisarose/openmoc2d/geom"
)

// Lattice is a regular grid of universe cells. Locate runs in O(1) via
// direct coordinate hashing, grounded on the integer cell-index arithmetic
// the teacher uses for its density grid (geom.CellBounds-style origin +
// width bookkeeping), generalized from a 3-D periodic grid to a 2-D
// non-periodic one.
type Lattice struct {
	OriginX, OriginY   float64
	PitchX, PitchY     float64
	NX, NY             int
	FillUniverseIDs    []int // row-major, length NX*NY
}

// NewLattice builds a lattice with a uniform per-cell fill universe id
// grid. fillUniverseIDs must have NX*NY entries in row-major (x fastest)
// order.
func NewLattice(originX, originY, pitchX, pitchY float64, nx, ny int, fillUniverseIDs []int) *Lattice {
	return &Lattice{
		OriginX: originX, OriginY: originY,
		PitchX: pitchX, PitchY: pitchY,
		NX: nx, NY: ny,
		FillUniverseIDs: fillUniverseIDs,
	}
}

// Locate maps a global point to the fill universe occupying its lattice
// cell and the point expressed in that cell's local (center-relative)
// coordinates. ok is false if p falls outside the lattice's extent.
func (l *Lattice) Locate(p geom.Point) (fillUniverseID int, local geom.Point, ok bool) {
	ix := int(math.Floor((p.X - l.OriginX) / l.PitchX))
	iy := int(math.Floor((p.Y - l.OriginY) / l.PitchY))
	if ix < 0 || ix >= l.NX || iy < 0 || iy >= l.NY {
		return 0, geom.Point{}, false
	}

	cx := l.OriginX + (float64(ix)+0.5)*l.PitchX
	cy := l.OriginY + (float64(iy)+0.5)*l.PitchY

	idx := iy*l.NX + ix
	return l.FillUniverseIDs[idx], geom.Point{X: p.X - cx, Y: p.Y - cy, Z: p.Z}, true
}
