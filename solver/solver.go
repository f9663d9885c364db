// Package solver implements the outer power iteration and the per-track
// transport sweep that are this system's computational core: for each
// iteration, build the within-group + fission source from the current
// scalar flux, sweep every track to update the flat-source-region scalar
// flux and boundary angular flux, then refresh k_eff and check for
// convergence.
package solver

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/luisarose/openmoc2d/internal/telemetry"
	"github.com/luisarose/openmoc2d/internal/xserr"
	"github.com/luisarose/openmoc2d/material"
	"github.com/luisarose/openmoc2d/quadrature"
	"github.com/luisarose/openmoc2d/track"
)

// Mode selects between a criticality eigenvalue solve and a fixed-source
// solve with an external source and k_eff held at 1.
type Mode int

const (
	Eigenvalue Mode = iota
	FixedSource
)

// Config holds the run-time tunables a solver.Solver is built from. It
// mirrors internal/config.Tunables but is decoupled from the ini loader so
// tests can build one directly.
type Config struct {
	Mode                 Mode
	MaxIterations        int
	SourceTolerance      float64
	ExponentialMode      quadrature.ExponentialMode
	ExponentialTableSize int
	ThreadCount          int
	NumStripes           int
}

// DefaultConfig returns the default tunables. New does not fill zero
// fields of a Config from these defaults; the only zero-value fallbacks are
// NumStripes <= 0 (64 stripes) and ThreadCount 0 (runtime.NumCPU()).
func DefaultConfig() Config {
	return Config{
		Mode:                 Eigenvalue,
		MaxIterations:        1000,
		SourceTolerance:      1e-5,
		ExponentialMode:      quadrature.Interpolated,
		ExponentialTableSize: 2048,
		ThreadCount:          0,
		NumStripes:           64,
	}
}

// Geometry is the frozen input a Solver sweeps: the FSR set, the
// FSR-to-material assignment, the track graph coupling every track's ends,
// and the polar quadrature used to collapse the 3-D transport equation
// onto the 2-D tracks.
type Geometry struct {
	NumFSR          int
	FSRMaterial     []int // material handle per FSR, length NumFSR
	Library         *material.Library
	Tracks          *track.Graph
	Polar           quadrature.PolarSet
	NumGroups       int
	NumGroupsPadded int

	// ExternalSource is the per-FSR, per-group fixed source used in
	// FixedSource mode; nil in Eigenvalue mode.
	ExternalSource []float64
}

// Result is the outcome of a power iteration run.
type Result struct {
	RunID      string
	KEff       float64
	Flux       []float64 // NumFSR x NumGroupsPadded, row-major
	Iterations int
	Converged  bool
	Leakage    float64
}

// Solver owns the mutable per-FSR and per-track-end state for one run.
type Solver struct {
	cfg Config
	geo *Geometry

	evaluator *quadrature.Evaluator

	volumes []float64 // per-FSR

	phi       []float64 // current scalar flux, NumFSR x NumGroupsPadded
	phiAcc    []float64 // track-contribution accumulator for the sweep in progress
	source    []float64 // per-FSR, per-group isotropic source Q
	oldSource []float64 // source from the previous iteration, for the residual
	stripe    []stripeLock

	incoming     [][2][]float64 // per track, per direction, numPolar*NumGroupsPadded
	incomingNext [][2][]float64

	kEff      float64
	leakage   float64
	leakageMu sync.Mutex

	runID   string
	Metrics *telemetry.Metrics
}

type stripeLock struct {
	mu sync.Mutex
}

// New builds a Solver for the given geometry and config. It validates the
// track graph eagerly, per the policy that a boundary-condition mismatch
// between link partners is a setup bug that should fail fast rather than
// surface as a corrupted sweep.
func New(geo *Geometry, cfg Config) (*Solver, error) {
	if geo.NumFSR <= 0 {
		return nil, xserr.New(xserr.InvalidGeometry, "geometry has no FSRs")
	}
	if len(geo.FSRMaterial) != geo.NumFSR {
		return nil, xserr.New(xserr.InvalidGeometry, "FSRMaterial has length %d, want %d", len(geo.FSRMaterial), geo.NumFSR)
	}
	if geo.Tracks != nil {
		if err := geo.Tracks.Validate(); err != nil {
			return nil, err
		}
	}
	if err := geo.Polar.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode == FixedSource && len(geo.ExternalSource) != geo.NumFSR*geo.NumGroupsPadded {
		return nil, xserr.New(xserr.InvalidGeometry, "FixedSource mode requires ExternalSource of length %d, got %d",
			geo.NumFSR*geo.NumGroupsPadded, len(geo.ExternalSource))
	}

	evaluator, err := quadrature.NewEvaluator(cfg.ExponentialMode, cfg.ExponentialTableSize)
	if err != nil {
		return nil, err
	}

	n := geo.NumFSR * geo.NumGroupsPadded
	s := &Solver{
		cfg:       cfg,
		geo:       geo,
		evaluator: evaluator,
		volumes:   make([]float64, geo.NumFSR),
		phi:       make([]float64, n),
		phiAcc:    make([]float64, n),
		source:    make([]float64, n),
		oldSource: make([]float64, n),
		kEff:      1.0,
		runID:     uuid.New().String(),
	}

	numStripes := cfg.NumStripes
	if numStripes <= 0 {
		numStripes = 64
	}
	s.stripe = make([]stripeLock, numStripes)

	for i := range s.phi {
		s.phi[i] = 1.0
	}

	if geo.Tracks != nil {
		numTracks := len(geo.Tracks.Tracks)
		width := len(geo.Polar.SinThetaP) * geo.NumGroupsPadded
		s.incoming = make([][2][]float64, numTracks)
		s.incomingNext = make([][2][]float64, numTracks)
		for i := 0; i < numTracks; i++ {
			s.incoming[i][0] = make([]float64, width)
			s.incoming[i][1] = make([]float64, width)
			s.incomingNext[i][0] = make([]float64, width)
			s.incomingNext[i][1] = make([]float64, width)
		}
		for _, t := range geo.Tracks.Tracks {
			for _, seg := range t.Segments {
				s.volumes[seg.FSRID] += seg.Length * t.AzimWeight
			}
		}
	}

	return s, nil
}

// stripeFor returns the lock guarding FSR fsrID's accumulator slots,
// striping across NumStripes buckets so unrelated FSRs essentially never
// contend.
func (s *Solver) stripeFor(fsrID int) *stripeLock {
	return &s.stripe[fsrID%len(s.stripe)]
}

func (s *Solver) workerCount() int {
	if s.cfg.ThreadCount > 0 {
		return s.cfg.ThreadCount
	}
	return runtime.NumCPU()
}

// Run drives the power iteration to convergence or MaxIterations,
// returning the best available result either way (Result.Converged
// records which).
//
// Each iteration: normalize the flux to the total fission source
// (Eigenvalue mode only), build the fission/scatter source and its
// residual against the previous iteration's source, sweep every track, and
// refresh k_eff from the absorption/fission/leakage balance. Convergence is
// judged on the source residual in Eigenvalue mode, and on the sweep's flux
// residual in FixedSource mode (there is no fission source to converge).
func (s *Solver) Run(ctx context.Context) (*Result, error) {
	for iter := 0; iter < s.cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if s.cfg.Mode == Eigenvalue {
			if err := s.normalize(iter); err != nil {
				return nil, err
			}
		}

		sourceResidual := s.buildSource()
		fluxResidual := s.sweep()

		if s.cfg.Mode == Eigenvalue {
			s.kEff = s.computeKEff()
		}

		residual := sourceResidual
		if s.cfg.Mode == FixedSource {
			residual = fluxResidual
		}

		s.Metrics.RecordIteration(s.kEff, residual, s.leakage)

		if residual < s.cfg.SourceTolerance {
			return s.result(iter+1, true), nil
		}
	}
	return s.result(s.cfg.MaxIterations, false), nil
}

// normalize scales phi and every track's boundary angular flux by 1/F,
// where F is the total fission source Σ νΣ_f·φ·V, so that after
// normalization the fission source integrates to 1. A zero total fission
// source means the flux has decayed to nothing (or the geometry has no
// fissile material in Eigenvalue mode) and is a fatal condition rather than
// a divide-by-zero to paper over.
func (s *Solver) normalize(iter int) error {
	f := s.totalFission()
	if f == 0 {
		return xserr.New(xserr.NumericFailure, "iteration %d: total fission source is zero, cannot normalize", iter)
	}
	inv := 1.0 / f

	for i := range s.phi {
		s.phi[i] *= inv
	}
	for _, sides := range [2][][2][]float64{s.incoming, s.incomingNext} {
		for _, pair := range sides {
			for d := 0; d < 2; d++ {
				for i := range pair[d] {
					pair[d][i] *= inv
				}
			}
		}
	}
	return nil
}

// computeKEff evaluates the absorption/fission/leakage neutron balance:
// k_eff = (total fission) / (total absorption + leakage/2).
func (s *Solver) computeKEff() float64 {
	fission := s.totalFission()
	absorption := s.totalAbsorption()
	denom := absorption + s.leakage/2
	if denom == 0 {
		return s.kEff
	}
	return fission / denom
}

func (s *Solver) result(iterations int, converged bool) *Result {
	flux := make([]float64, len(s.phi))
	copy(flux, s.phi)
	return &Result{
		RunID:      s.runID,
		KEff:       s.kEff,
		Flux:       flux,
		Iterations: iterations,
		Converged:  converged,
		Leakage:    s.leakage,
	}
}

func (s *Solver) totalFission() float64 {
	g := s.geo
	total := 0.0
	for r := 0; r < g.NumFSR; r++ {
		m, err := g.Library.Get(g.FSRMaterial[r])
		if err != nil {
			continue
		}
		base := r * g.NumGroupsPadded
		for gi := 0; gi < g.NumGroupsPadded; gi++ {
			total += m.NuSigmaF[gi] * s.phi[base+gi] * s.volumeOrUnit(r)
		}
	}
	return total
}

func (s *Solver) totalAbsorption() float64 {
	g := s.geo
	total := 0.0
	for r := 0; r < g.NumFSR; r++ {
		m, err := g.Library.Get(g.FSRMaterial[r])
		if err != nil {
			continue
		}
		base := r * g.NumGroupsPadded
		for gi := 0; gi < g.NumGroupsPadded; gi++ {
			total += m.SigmaA[gi] * s.phi[base+gi] * s.volumeOrUnit(r)
		}
	}
	return total
}

// volumeOrUnit returns the FSR's traced volume, or 1 for geometries with
// no tracks (the degenerate single-FSR infinite-medium case, where every
// FSR is implicitly unit volume and the sweep term is identically zero)
// and for an FSR that no track segment crosses.
func (s *Solver) volumeOrUnit(r int) float64 {
	if s.geo.Tracks == nil || s.volumes[r] == 0 {
		return 1
	}
	return s.volumes[r]
}

// buildSource computes the isotropic per-FSR, per-group source
// Q = (chi * fissionRate / k_eff + scatter-in) / (4*pi) in Eigenvalue mode,
// and Q = scatter-in / (4*pi) + external source in FixedSource mode, and
// returns the source residual against the previous
// iteration's source:
//
//	sqrt((1/N) * sum[|Q| > 1e-10]((Q - Q_old) / Q)^2)
//
// N is the count of (FSR, group) terms actually included in the sum.
// Q_old is then overwritten with the freshly built Q, ready for the next
// call.
func (s *Solver) buildSource() float64 {
	g := s.geo

	sumSq := 0.0
	count := 0

	for r := 0; r < g.NumFSR; r++ {
		m, err := g.Library.Get(g.FSRMaterial[r])
		if err != nil {
			continue
		}
		base := r * g.NumGroupsPadded

		fissionRate := 0.0
		for gi := 0; gi < g.NumGroupsPadded; gi++ {
			fissionRate += m.NuSigmaF[gi] * s.phi[base+gi]
		}

		for gi := 0; gi < g.NumGroupsPadded; gi++ {
			scatterIn := 0.0
			for gp := 0; gp < g.NumGroupsPadded; gp++ {
				scatterIn += m.ScatterInto(gp, gi) * s.phi[base+gp]
			}

			fission := 0.0
			if s.cfg.Mode == Eigenvalue {
				fission = m.Chi[gi] * fissionRate / s.kEff
			}

			q := (fission + scatterIn) / (4 * math.Pi)
			if s.cfg.Mode == FixedSource {
				q += g.ExternalSource[base+gi]
			}

			idx := base + gi
			if math.Abs(q) > 1e-10 {
				rel := (q - s.oldSource[idx]) / q
				sumSq += rel * rel
				count++
			}
			s.oldSource[idx] = q
			s.source[idx] = q
		}
	}

	if count == 0 {
		return 0
	}
	return math.Sqrt(sumSq / float64(count))
}
