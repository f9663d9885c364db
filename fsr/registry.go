// Package fsr implements the flat source region registry: assigning a
// dense integer id to each distinct leaf-cell trajectory through the
// universe tree, and accumulating per-FSR volume as segments are traced.
package fsr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/luisarose/openmoc2d/internal/xserr"
	"github.com/luisarose/openmoc2d/universe"
)

// FSR is one flat source region: a connected sub-volume that shares a
// single (universe, cell) chain from the root universe to a leaf material
// cell.
type FSR struct {
	ID             int
	MaterialHandle int
	Volume         float64
}

// Registry assigns dense FSR ids keyed by a stable hash of the (universe,
// cell) chain, grounded on the teacher's dense-id-on-first-sight pattern in
// catalog/manager.go. It is safe for concurrent use: chain hashing and
// volume accumulation both happen while many tracks are being traced in
// parallel during geometry setup.
type Registry struct {
	mu        sync.Mutex
	chainToID map[string]int
	fsrs      []*FSR
	frozen    bool
}

// NewRegistry returns an empty FSR registry.
func NewRegistry() *Registry {
	return &Registry{chainToID: make(map[string]int)}
}

// ChainKey builds the stable string key for a (universe, cell) chain.
func ChainKey(chain *universe.LocalCoords) string {
	var b strings.Builder
	for lc := chain; lc != nil; lc = lc.Next {
		fmt.Fprintf(&b, "%d:%d/", lc.UniverseID, lc.CellID)
	}
	return b.String()
}

// IDFor returns the FSR id for the given chain, allocating a new one on
// first encounter. After Freeze it still returns the id of a chain already
// seen, and panics on a chain not seen before, since the FSR set is
// defined to be fixed once tracing completes.
func (r *Registry) IDFor(chain *universe.LocalCoords, materialHandle int) int {
	key := ChainKey(chain)

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.chainToID[key]; ok {
		return id
	}
	if r.frozen {
		panic("fsr: IDFor called on a frozen registry")
	}

	id := len(r.fsrs)
	r.chainToID[key] = id
	r.fsrs = append(r.fsrs, &FSR{ID: id, MaterialHandle: materialHandle})
	return id
}

// AddVolume accumulates a segment's contribution to an FSR's volume:
// V_r += length * azimuthalWeight.
func (r *Registry) AddVolume(id int, length, azimuthalWeight float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fsrs[id].Volume += length * azimuthalWeight
}

// Freeze marks the FSR set as final. After Freeze, IDFor must only be
// called with chains already seen.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Count returns the number of FSRs allocated so far.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fsrs)
}

// Get returns the FSR with the given id.
func (r *Registry) Get(id int) *FSR {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fsrs[id]
}

// Validate confirms every FSR ended up with a positive volume, a common
// geometry-setup sanity check: an FSR with zero volume means no traced
// segment ever passed through it, which is always a setup bug (an
// unreachable region or a track density too coarse to sample it).
func (r *Registry) Validate() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.fsrs {
		if f.Volume <= 0 {
			return xserr.New(xserr.InvalidGeometry, "FSR %d has non-positive volume %g", f.ID, f.Volume)
		}
	}
	return nil
}
