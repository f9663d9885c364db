// Package universe implements the hierarchical composition of cells: a
// Universe is a keyed collection of cells, and locating a point means
// descending the universe/cell tree until a material-filled leaf cell is
// found, recording the (universe, cell, local point) chain along the way.
package universe

import (
	"github.com/luisarose/openmoc2d/cell"
	"github.com/luisarose/openmoc2d/geom"
	"github.com/luisarose/openmoc2d/internal/xserr"
)

// LocalCoords is one link in the chain from the root universe down to the
// leaf material cell containing a point. The chain head is the root
// universe; the chain tail is the innermost material cell.
type LocalCoords struct {
	UniverseID int
	CellID     int // the cell's UserID
	Point      geom.Point
	Next       *LocalCoords
}

// Tail walks to the last link in the chain.
func (lc *LocalCoords) Tail() *LocalCoords {
	for lc.Next != nil {
		lc = lc.Next
	}
	return lc
}

// Universe is either a general keyed collection of cells (checked by
// O(|cells|) containment) or a regular-grid Lattice (checked in O(1) via
// coordinate hashing). The two are modeled as one type with a nil-or-not
// Lattice field rather than a full interface hierarchy, since a lattice's
// "cells" are really its Lattice.FillUniverseIDs entries.
type Universe struct {
	ID      int
	Cells   map[int]*cell.Cell // keyed by Cell.UserID; nil if Lattice != nil
	Lattice *Lattice
}

// World owns every Universe in a geometry, keyed by universe id, and
// resolves the Fill-cell and lattice-entry references between them.
type World struct {
	Universes map[int]*Universe
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{Universes: make(map[int]*Universe)}
}

// AddUniverse registers a general (non-lattice) universe.
func (w *World) AddUniverse(id int, cells map[int]*cell.Cell) *Universe {
	u := &Universe{ID: id, Cells: cells}
	w.Universes[id] = u
	return u
}

// AddLattice registers a lattice universe.
func (w *World) AddLattice(id int, lat *Lattice) *Universe {
	u := &Universe{ID: id, Lattice: lat}
	w.Universes[id] = u
	return u
}

// FindCell descends from the universe rootID to the material cell
// containing p, returning the full LocalCoords chain and the leaf cell.
func (w *World) FindCell(rootID int, p geom.Point) (*LocalCoords, *cell.Cell, error) {
	return w.findCell(rootID, p)
}

func (w *World) findCell(uid int, p geom.Point) (*LocalCoords, *cell.Cell, error) {
	u, ok := w.Universes[uid]
	if !ok {
		return nil, nil, xserr.New(xserr.InvalidGeometry, "universe %d: not found", uid)
	}

	if u.Lattice != nil {
		fillID, local, ok := u.Lattice.Locate(p)
		if !ok {
			return nil, nil, xserr.New(xserr.InvalidGeometry,
				"universe %d: point (%g, %g) is outside the lattice", uid, p.X, p.Y)
		}
		head := &LocalCoords{UniverseID: uid, Point: p}
		childHead, leaf, err := w.findCell(fillID, local)
		if err != nil {
			return nil, nil, err
		}
		head.Next = childHead
		return head, leaf, nil
	}

	for _, c := range u.Cells {
		if !c.Contains(p) {
			continue
		}
		head := &LocalCoords{UniverseID: uid, CellID: c.UserID, Point: p}
		if c.Type == cell.Fill {
			childHead, leaf, err := w.findCell(c.FillUniverse, p)
			if err != nil {
				return nil, nil, err
			}
			head.Next = childHead
			return head, leaf, nil
		}
		return head, c, nil
	}
	return nil, nil, xserr.New(xserr.InvalidGeometry,
		"universe %d: no cell contains point (%g, %g)", uid, p.X, p.Y)
}
