package fsr

import (
	"testing"

	"github.com/luisarose/openmoc2d/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(universeID, cellID int, next *universe.LocalCoords) *universe.LocalCoords {
	return &universe.LocalCoords{UniverseID: universeID, CellID: cellID, Next: next}
}

func TestIDForReusesSameChain(t *testing.T) {
	r := NewRegistry()

	c1 := chain(0, 1, chain(2, 5, nil))
	c2 := chain(0, 1, chain(2, 5, nil))

	id1 := r.IDFor(c1, 42)
	id2 := r.IDFor(c2, 42)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, r.Count())
}

func TestIDForDistinctChainsGetDistinctIDs(t *testing.T) {
	r := NewRegistry()

	idA := r.IDFor(chain(0, 1, nil), 10)
	idB := r.IDFor(chain(0, 2, nil), 20)
	assert.NotEqual(t, idA, idB)
	assert.Equal(t, 2, r.Count())
}

func TestAddVolumeAccumulates(t *testing.T) {
	r := NewRegistry()
	id := r.IDFor(chain(0, 1, nil), 10)

	r.AddVolume(id, 2.0, 0.5)
	r.AddVolume(id, 1.0, 0.5)

	assert.InDelta(t, 1.5, r.Get(id).Volume, 1e-12)
}

func TestValidateCatchesZeroVolumeFSR(t *testing.T) {
	r := NewRegistry()
	r.IDFor(chain(0, 1, nil), 10)

	err := r.Validate()
	require.Error(t, err)
}

func TestFreezeBlocksNewChains(t *testing.T) {
	r := NewRegistry()
	id := r.IDFor(chain(0, 1, nil), 10)
	r.Freeze()

	// Re-seeing the same chain is fine.
	assert.Equal(t, id, r.IDFor(chain(0, 1, nil), 10))

	assert.Panics(t, func() {
		r.IDFor(chain(0, 2, nil), 20)
	})
}
