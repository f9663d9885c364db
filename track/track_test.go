package track

import (
	"testing"

	"github.com/luisarose/openmoc2d/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTrackReflectiveLoop() *Graph {
	// Two tracks, each reflecting into the other at both ends, the
	// simplest possible self-consistent reflective graph.
	t0 := &Track{
		ID:            0,
		BoundaryFwd:   geom.Reflective,
		BoundaryBwd:   geom.Reflective,
		LinkFwdTrack:  1,
		LinkFwdEnd:    int(Forward),
		LinkBwdTrack:  1,
		LinkBwdEnd:    int(Backward),
		Segments:      []Segment{{FSRID: 0, Length: 1.0}, {FSRID: 1, Length: 2.0}},
	}
	t1 := &Track{
		ID:            1,
		BoundaryFwd:   geom.Reflective,
		BoundaryBwd:   geom.Reflective,
		LinkFwdTrack:  0,
		LinkFwdEnd:    int(Forward),
		LinkBwdTrack:  0,
		LinkBwdEnd:    int(Backward),
	}
	return NewGraph([]*Track{t0, t1})
}

func TestValidateAcceptsConsistentReflectiveLoop(t *testing.T) {
	g := twoTrackReflectiveLoop()
	require.NoError(t, g.Validate())
}

func TestValidateRejectsBoundaryMismatch(t *testing.T) {
	g := twoTrackReflectiveLoop()
	g.Tracks[1].BoundaryFwd = geom.Vacuum

	err := g.Validate()
	require.Error(t, err)
}

func TestValidateRejectsMissingBoundary(t *testing.T) {
	g := twoTrackReflectiveLoop()
	g.Tracks[0].BoundaryFwd = geom.NoBoundary

	err := g.Validate()
	require.Error(t, err)
}

func TestValidateRejectsOutOfRangeLink(t *testing.T) {
	g := twoTrackReflectiveLoop()
	g.Tracks[0].LinkFwdTrack = 99

	err := g.Validate()
	require.Error(t, err)
}

func TestTotalLengthSumsSegments(t *testing.T) {
	g := twoTrackReflectiveLoop()
	assert.InDelta(t, 3.0, g.Tracks[0].TotalLength(), 1e-12)
	assert.InDelta(t, 0.0, g.Tracks[1].TotalLength(), 1e-12)
}
