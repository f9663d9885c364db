// Package subdivide implements the ring/sector partitioning of material
// cells: cloning a cell into equal-volume rings and equal-angular sectors by
// attaching synthesized bounding surfaces.
package subdivide

import (
	"math"

	"github.com/luisarose/openmoc2d/cell"
	"github.com/luisarose/openmoc2d/geom"
	"github.com/luisarose/openmoc2d/internal/xserr"
)

// centerEps is the tolerance for treating two ringify circles as sharing a
// center.
const centerEps = 1e-9

// Subdivide returns the leaf cells that replace c, applying sectorization
// before ringification so the final set is the cartesian product of sectors
// and rings, per spec.md §4.3. Non-fatal degenerate-subdivision conditions
// are reported in warnings and leave the affected branch undivided rather
// than aborting the whole call; a returned err is always fatal
// (InvalidGeometry).
func Subdivide(sReg *geom.Registry, cReg *cell.Registry, c *cell.Cell) (leaves []*cell.Cell, warnings []error, err error) {
	if c.Type != cell.Material {
		return nil, nil, xserr.New(xserr.InvalidGeometry,
			"cell %d: only material cells can be subdivided", c.UserID)
	}

	// Subdivide works on its own copy of c rather than consuming the
	// caller's cell directly, since sectorize/ringify progressively clone
	// and discard NumRings/NumSectors as they peel off children.
	working, err := c.CloneForSubdivision(cReg, 0)
	if err != nil {
		return nil, nil, err
	}
	numRings, numSectors := working.NumRings, working.NumSectors

	sectorCells, err := sectorize(sReg, cReg, working, numSectors)
	if err != nil {
		return nil, nil, err
	}

	for _, sc := range sectorCells {
		ringCells, warn, err := ringify(sReg, cReg, sc, numRings)
		if err != nil {
			return nil, nil, err
		}
		if warn != nil {
			warnings = append(warnings, warn)
		}
		leaves = append(leaves, ringCells...)
	}
	return leaves, warnings, nil
}

// sectorize synthesizes numSectors planes through the origin and returns
// one clone per sector, each bounded by the (+1, plane_i) constraint and,
// unless numSectors == 2, the (-1, plane_{i+1 mod numSectors}) constraint.
// numSectors < 2 means "no sectorization": the cell is returned unchanged,
// not cloned.
func sectorize(sReg *geom.Registry, cReg *cell.Registry, c *cell.Cell, numSectors int) ([]*cell.Cell, error) {
	if numSectors < 2 {
		return []*cell.Cell{c}, nil
	}

	planes := make([]*geom.Surface, numSectors)
	for i := 0; i < numSectors; i++ {
		angle := float64(i) * 2 * math.Pi / float64(numSectors)
		p, err := geom.NewPlane(sReg, 0, math.Cos(angle), math.Sin(angle), 0, geom.NoBoundary)
		if err != nil {
			return nil, err
		}
		planes[i] = p
	}

	cells := make([]*cell.Cell, numSectors)
	for i := 0; i < numSectors; i++ {
		clone, err := c.Clone(cReg, 0)
		if err != nil {
			return nil, err
		}
		if err := clone.AddSurface(1, planes[i]); err != nil {
			return nil, err
		}
		if numSectors != 2 {
			if err := clone.AddSurface(-1, planes[(i+1)%numSectors]); err != nil {
				return nil, err
			}
		}
		cells[i] = clone
	}
	return cells, nil
}

// ringify partitions sc into numRings equal-area rings. numRings < 2 means
// "no ringification": sc is returned unchanged. A non-nil warn return
// (DegenerateSubdivision) means sc is left undivided and returned as-is;
// a non-nil err return is fatal (InvalidGeometry).
func ringify(sReg *geom.Registry, cReg *cell.Registry, sc *cell.Cell, numRings int) (cells []*cell.Cell, warn error, err error) {
	if numRings < 2 {
		return []*cell.Cell{sc}, nil, nil
	}

	outerID, innerID, rOut, rIn, cx, cy, derr, dwarn := findRingCircles(sc)
	if derr != nil {
		return nil, nil, derr
	}
	if dwarn != nil {
		return []*cell.Cell{sc}, dwarn, nil
	}
	if rOut <= rIn {
		return []*cell.Cell{sc}, xserr.New(xserr.DegenerateSubdivision,
			"cell %d: outer radius %g <= inner radius %g", sc.UserID, rOut, rIn), nil
	}

	area := math.Pi * (rOut*rOut - rIn*rIn) / float64(numRings)

	radii := make([]float64, numRings+1)
	radii[0] = rOut
	for k := 1; k <= numRings; k++ {
		v := radii[k-1]*radii[k-1] - area/math.Pi
		if v < 0 {
			v = 0
		}
		radii[k] = math.Sqrt(v)
	}

	out := make([]*cell.Cell, numRings)
	for k := 0; k < numRings; k++ {
		clone, err := sc.Clone(cReg, 0)
		if err != nil {
			return nil, nil, err
		}
		if outerID != 0 {
			delete(clone.Bounds, outerID)
		}
		if innerID != 0 {
			delete(clone.Bounds, innerID)
		}

		outerSurf, err := geom.NewCircle(sReg, 0, cx, cy, radii[k], geom.NoBoundary)
		if err != nil {
			return nil, nil, err
		}
		if err := clone.AddSurface(-1, outerSurf); err != nil {
			return nil, nil, err
		}

		if k != numRings-1 {
			innerSurf, err := geom.NewCircle(sReg, 0, cx, cy, radii[k+1], geom.NoBoundary)
			if err != nil {
				return nil, nil, err
			}
			if err := clone.AddSurface(1, innerSurf); err != nil {
				return nil, nil, err
			}
		}
		out[k] = clone
	}
	return out, nil, nil
}

// findRingCircles locates the one or two circle bounds of sc that ringify
// needs. derr is fatal (InvalidGeometry); dwarn is non-fatal
// (DegenerateSubdivision, e.g. more than two circles).
func findRingCircles(sc *cell.Cell) (outerID, innerID int, rOut, rIn, cx, cy float64, derr, dwarn error) {
	type found struct {
		id        int
		halfspace int
		center    geom.Point
		radius    float64
	}
	var circles []found
	for id, b := range sc.Bounds {
		if b.Surface.Kind == geom.Circle {
			circles = append(circles, found{id, b.Halfspace, b.Surface.Center(), b.Surface.Radius()})
		}
	}

	switch {
	case len(circles) == 0:
		return 0, 0, 0, 0, 0, 0,
			xserr.New(xserr.InvalidGeometry, "cell %d: ringify requires a circle bound", sc.UserID), nil
	case len(circles) > 2:
		return 0, 0, 0, 0, 0, 0, nil,
			xserr.New(xserr.DegenerateSubdivision, "cell %d: ringify given more than two circles", sc.UserID)
	case len(circles) == 1:
		c := circles[0]
		if c.halfspace != -1 {
			return 0, 0, 0, 0, 0, 0,
				xserr.New(xserr.InvalidGeometry, "cell %d: ringify needs an outer (-1) circle, only found a +1 circle", sc.UserID), nil
		}
		return c.id, 0, c.radius, 0, c.center.X, c.center.Y, nil, nil
	default:
		a, b := circles[0], circles[1]
		outer, inner := a, b
		if outer.halfspace != -1 {
			outer, inner = b, a
		}
		if outer.halfspace != -1 || inner.halfspace != 1 {
			return 0, 0, 0, 0, 0, 0,
				xserr.New(xserr.InvalidGeometry, "cell %d: ringify needs one +1 and one -1 circle", sc.UserID), nil
		}
		if math.Abs(outer.center.X-inner.center.X) > centerEps ||
			math.Abs(outer.center.Y-inner.center.Y) > centerEps {
			return 0, 0, 0, 0, 0, 0,
				xserr.New(xserr.InvalidGeometry, "cell %d: ringify circles have mismatched centers", sc.UserID), nil
		}
		return outer.id, inner.id, outer.radius, inner.radius, outer.center.X, outer.center.Y, nil, nil
	}
}
