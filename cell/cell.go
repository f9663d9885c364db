// Package cell implements bounded regions of space: a set of
// (surface, halfspace) constraints that define containment, plus the
// material-filled vs. universe-filled distinction cells carry.
package cell

import (
	"math"

	"github.com/luisarose/openmoc2d/geom"
	"github.com/luisarose/openmoc2d/internal/idalloc"
	"github.com/luisarose/openmoc2d/internal/xserr"
)

// Type distinguishes a material-filled cell from one filled by another
// universe. Base/derived cells are modeled as a tagged variant rather than
// an interface hierarchy, matching the closed two-case design in spec.md
// §9.
type Type int

const (
	Material Type = iota
	Fill
)

// Bound is one (surface, halfspace) constraint. Halfspace is +1 or -1; a
// point satisfies the bound iff sign(surface.Evaluate(p)) == Halfspace,
// within geom.OnSurfaceThresh.
type Bound struct {
	Surface   *geom.Surface
	Halfspace int
}

// Registry owns the id counters for the cell family, mirroring
// geom.Registry.
type Registry struct {
	uids    idalloc.Dense
	userIDs idalloc.UserIDs
}

// NewRegistry returns an empty cell-id registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Cell is a region of space bounded by a set of surfaces. It is either
// Material-filled (carries a material handle and ring/sector counts) or
// Fill-filled (carries a child universe id).
type Cell struct {
	UID             int
	UserID          int
	OwningUniverse  int
	Type            Type
	Bounds          map[int]Bound // keyed by surface UserID

	// Material-filled fields.
	MaterialHandle int
	NumRings       int
	NumSectors     int

	// Fill-filled fields.
	FillUniverse int
}

// NewMaterialCell creates an empty material-filled cell owned by the given
// universe.
func NewMaterialCell(reg *Registry, userID, owningUniverse, materialHandle int) (*Cell, error) {
	c, err := newCell(reg, userID, owningUniverse)
	if err != nil {
		return nil, err
	}
	c.Type = Material
	c.MaterialHandle = materialHandle
	return c, nil
}

// NewFillCell creates an empty universe-filled cell owned by the given
// universe.
func NewFillCell(reg *Registry, userID, owningUniverse, fillUniverse int) (*Cell, error) {
	c, err := newCell(reg, userID, owningUniverse)
	if err != nil {
		return nil, err
	}
	c.Type = Fill
	c.FillUniverse = fillUniverse
	return c, nil
}

func newCell(reg *Registry, userID, owningUniverse int) (*Cell, error) {
	userOut, err := reg.userIDs.Assign(userID)
	if err != nil {
		return nil, xserr.New(xserr.InvalidGeometry, "cell: %v", err)
	}
	return &Cell{
		UID:            reg.uids.Next(),
		UserID:         userOut,
		OwningUniverse: owningUniverse,
		Bounds:         make(map[int]Bound),
	}, nil
}

// AddSurface binds a (halfspace, surface) constraint to the cell. halfspace
// must be +1 or -1.
func (c *Cell) AddSurface(halfspace int, s *geom.Surface) error {
	if halfspace != 1 && halfspace != -1 {
		return xserr.New(xserr.InvalidGeometry,
			"cell %d: halfspace must be +1 or -1, got %d", c.UserID, halfspace)
	}
	c.Bounds[s.UserID] = Bound{Surface: s, Halfspace: halfspace}
	return nil
}

// SetNumSectors records the sector count for a material cell, silently
// rewriting 1 to 0 ("no sectorization") — a deliberately preserved quirk
// from the original implementation, see SPEC_FULL.md Open Question 1.
func (c *Cell) SetNumSectors(n int) error {
	if c.Type != Material {
		return xserr.New(xserr.InvalidGeometry,
			"cell %d: sectors only apply to material cells", c.UserID)
	}
	if n < 0 {
		return xserr.New(xserr.InvalidGeometry,
			"cell %d: negative sector count %d", c.UserID, n)
	}
	if n == 1 {
		n = 0
	}
	c.NumSectors = n
	return nil
}

// SetNumRings records the ring count for a material cell.
func (c *Cell) SetNumRings(n int) error {
	if c.Type != Material {
		return xserr.New(xserr.InvalidGeometry,
			"cell %d: rings only apply to material cells", c.UserID)
	}
	if n < 0 {
		return xserr.New(xserr.InvalidGeometry,
			"cell %d: negative ring count %d", c.UserID, n)
	}
	c.NumRings = n
	return nil
}

// Contains reports whether p satisfies every bound, within the on-surface
// tolerance band.
func (c *Cell) Contains(p geom.Point) bool {
	for _, b := range c.Bounds {
		v := b.Surface.Evaluate(p)
		signed := v * float64(b.Halfspace)
		if signed < -geom.OnSurfaceThresh {
			return false
		}
	}
	return true
}

// MinSurfaceDistance returns the nearest bound surface's forward
// intersection point and its distance from p along the ray at angle theta.
// dist is +Inf if no bound surface is crossed.
func (c *Cell) MinSurfaceDistance(p geom.Point, theta float64) (dist float64, point geom.Point) {
	dist = math.Inf(1)
	for _, b := range c.Bounds {
		var cand geom.Point
		d := b.Surface.MinDistance(p, theta, &cand)
		if d < dist {
			dist = d
			point = cand
		}
	}
	return dist, point
}

// Clone deep-copies a material cell into a fresh cell with a new uid,
// surfaces shared by handle, and ring/sector counts reset to zero — the
// clone is meant to become a ring or sector child, which is never itself
// subdivided further. Only material cells may be cloned.
func (c *Cell) Clone(reg *Registry, userID int) (*Cell, error) {
	if c.Type != Material {
		return nil, xserr.New(xserr.InvalidGeometry,
			"cell %d: only material cells may be cloned", c.UserID)
	}
	clone, err := newCell(reg, userID, c.OwningUniverse)
	if err != nil {
		return nil, err
	}
	clone.Type = Material
	clone.MaterialHandle = c.MaterialHandle
	clone.NumRings = 0
	clone.NumSectors = 0
	for k, b := range c.Bounds {
		clone.Bounds[k] = b
	}
	return clone, nil
}

// CloneForSubdivision is like Clone but preserves NumRings/NumSectors,
// which the subdivider needs on its own working copy before it starts
// peeling off ring and sector children (see SPEC_FULL.md's Cell clone
// semantics note).
func (c *Cell) CloneForSubdivision(reg *Registry, userID int) (*Cell, error) {
	clone, err := c.Clone(reg, userID)
	if err != nil {
		return nil, err
	}
	clone.NumRings = c.NumRings
	clone.NumSectors = c.NumSectors
	return clone, nil
}
