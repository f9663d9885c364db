// Package track holds the traced ray geometry the transport sweep walks:
// Tracks crossing the domain at a fixed azimuthal angle, each broken into
// per-FSR Segments, and the Graph that couples every track's two ends to
// its reflective or vacuum boundary partner.
package track

import (
	"github.com/luisarose/openmoc2d/geom"
	"github.com/luisarose/openmoc2d/internal/xserr"
)

// Segment is one FSR crossing along a track.
type Segment struct {
	FSRID  int
	Length float64
}

// Direction names a track's two ends, matching the convention that a
// track is walked forward from P0 to P1 and backward from P1 to P0.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Track is one characteristic line crossing the domain at azimuthal angle
// Phi, pre-populated with its ordered FSR segments. LinkFwd and LinkBwd
// name the track (and end) that continues the ray past this track's P1 and
// P0 respectively, under a reflective boundary condition; they are
// meaningless (and unused) at a vacuum boundary.
type Track struct {
	ID         int
	P0, P1     geom.Point
	Phi        float64 // azimuthal angle in [0, 2*pi)
	AzimWeight float64
	Segments   []Segment

	BoundaryFwd geom.BoundaryType
	BoundaryBwd geom.BoundaryType

	LinkFwdTrack, LinkFwdEnd int
	LinkBwdTrack, LinkBwdEnd int
}

// Graph is the full set of tracks generated for a geometry, indexed by ID.
type Graph struct {
	Tracks []*Track
}

// NewGraph wraps a slice of tracks, indexed by position (Tracks[i].ID must
// equal i).
func NewGraph(tracks []*Track) *Graph {
	return &Graph{Tracks: tracks}
}

// Validate eagerly checks that every end has a boundary condition, that
// every reflective end's link partner exists, and that the boundary
// condition recorded on a reflective end agrees with its partner's. The
// link fields of vacuum ends are not checked. A link where one end claims
// Reflective
// and the other claims Vacuum is always a track-generation bug, and is
// caught here rather than deferred to the first sweep that walks off the
// end of the array.
func (g *Graph) Validate() error {
	n := len(g.Tracks)
	for _, t := range g.Tracks {
		if err := g.validateEnd(t, t.LinkFwdTrack, t.LinkFwdEnd, t.BoundaryFwd, n); err != nil {
			return err
		}
		if err := g.validateEnd(t, t.LinkBwdTrack, t.LinkBwdEnd, t.BoundaryBwd, n); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) validateEnd(t *Track, linkTrack, linkEnd int, boundary geom.BoundaryType, n int) error {
	if boundary == geom.NoBoundary {
		return xserr.New(xserr.InvalidGeometry, "track %d: end has no boundary condition assigned", t.ID)
	}
	if boundary == geom.Vacuum {
		// Link fields are meaningless at a vacuum end: the sweep deposits
		// outgoing flux as leakage instead of following the link, so a
		// vacuum end's link partner is never consulted.
		return nil
	}
	if linkTrack < 0 || linkTrack >= n {
		return xserr.New(xserr.InvalidGeometry, "track %d: link track %d out of range", t.ID, linkTrack)
	}
	partner := g.Tracks[linkTrack]
	var partnerBoundary geom.BoundaryType
	switch linkEnd {
	case int(Forward):
		partnerBoundary = partner.BoundaryFwd
	case int(Backward):
		partnerBoundary = partner.BoundaryBwd
	default:
		return xserr.New(xserr.InvalidGeometry, "track %d: invalid link end %d", t.ID, linkEnd)
	}
	if partnerBoundary != boundary {
		return xserr.New(xserr.InvalidGeometry,
			"track %d and its link partner track %d disagree on boundary condition (%s vs %s)",
			t.ID, partner.ID, boundary, partnerBoundary)
	}
	return nil
}

// TotalLength returns the sum of every segment's length on the track,
// useful for volume-conservation checks against the FSR registry.
func (t *Track) TotalLength() float64 {
	total := 0.0
	for _, s := range t.Segments {
		total += s.Length
	}
	return total
}
