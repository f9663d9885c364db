package solver

import (
	"math"
	"sync"

	"github.com/luisarose/openmoc2d/geom"
	"github.com/luisarose/openmoc2d/track"
)

// sweep walks every track once in each direction, attenuating the angular
// flux segment by segment and depositing its change into the FSR scalar
// flux accumulator, then folds the accumulated contribution into phi and
// returns the L2 relative change in phi (the convergence residual).
//
// The two directions run as separate sequential passes across all tracks
// rather than interleaved per track: each pass only ever reads the
// previous sweep's incoming boundary flux and writes into incomingNext, so
// a track's forward and backward passes never race on the same track's
// own incoming slot.
func (s *Solver) sweep() float64 {
	for i := range s.phiAcc {
		s.phiAcc[i] = 0
	}
	s.leakage = 0

	if s.geo.Tracks != nil {
		s.sweepDirection(track.Forward)
		s.sweepDirection(track.Backward)
		s.incoming, s.incomingNext = s.incomingNext, s.incoming
	}

	return s.applySweepResult()
}

func (s *Solver) sweepDirection(dir track.Direction) {
	tracks := s.geo.Tracks.Tracks
	workers := s.workerCount()
	if workers > len(tracks) {
		workers = len(tracks)
	}
	if workers <= 0 {
		return
	}

	var wg sync.WaitGroup
	chunk := (len(tracks) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(tracks) {
			hi = len(tracks)
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				s.sweepTrack(tracks[i], dir)
			}
		}(lo, hi)
	}
	wg.Wait()
}

func (s *Solver) sweepTrack(t *track.Track, dir track.Direction) {
	g := s.geo
	numPolar := len(g.Polar.SinThetaP)
	width := numPolar * g.NumGroupsPadded

	psi := make([]float64, width)
	copy(psi, s.incoming[t.ID][dir])

	segs := t.Segments
	if dir == track.Backward {
		segs = reversedSegments(segs)
	}

	for _, seg := range segs {
		m, err := g.Library.Get(g.FSRMaterial[seg.FSRID])
		if err != nil {
			continue
		}

		contribution := make([]float64, g.NumGroupsPadded)
		for p := 0; p < numPolar; p++ {
			sinTheta := g.Polar.SinThetaP[p]
			polarWeight := g.Polar.WeightP[p]
			pOff := p * g.NumGroupsPadded
			for gi := 0; gi < g.NumGroupsPadded; gi++ {
				sigmaT := m.SigmaT[gi]
				if sigmaT <= 0 {
					continue
				}
				tau := sigmaT * seg.Length / sinTheta
				atten := s.evaluator.Eval(tau)

				idx := pOff + gi
				qOverSigmaT := s.source[seg.FSRID*g.NumGroupsPadded+gi] / sigmaT
				delta := (psi[idx] - qOverSigmaT) * atten
				psi[idx] -= delta
				contribution[gi] += t.AzimWeight * polarWeight * delta
			}
		}

		lock := s.stripeFor(seg.FSRID)
		lock.mu.Lock()
		base := seg.FSRID * g.NumGroupsPadded
		for gi := 0; gi < g.NumGroupsPadded; gi++ {
			s.phiAcc[base+gi] += contribution[gi]
		}
		lock.mu.Unlock()
	}

	s.depositOutgoing(t, dir, psi)
}

func (s *Solver) depositOutgoing(t *track.Track, dir track.Direction, psi []float64) {
	var boundary geom.BoundaryType
	var linkTrack, linkEnd int
	if dir == track.Forward {
		boundary = t.BoundaryFwd
		linkTrack, linkEnd = t.LinkFwdTrack, t.LinkFwdEnd
	} else {
		boundary = t.BoundaryBwd
		linkTrack, linkEnd = t.LinkBwdTrack, t.LinkBwdEnd
	}

	if boundary == geom.Vacuum {
		for p, w := range s.geo.Polar.WeightP {
			pOff := p * s.geo.NumGroupsPadded
			sum := 0.0
			for gi := 0; gi < s.geo.NumGroupsPadded; gi++ {
				sum += psi[pOff+gi]
			}
			s.addLeakage(t.AzimWeight * w * sum)
		}
		return
	}

	dst := s.incomingNext[linkTrack][linkEnd]
	copy(dst, psi)
}

func (s *Solver) addLeakage(v float64) {
	s.leakageMu.Lock()
	s.leakage += v
	s.leakageMu.Unlock()
}

func reversedSegments(segs []track.Segment) []track.Segment {
	out := make([]track.Segment, len(segs))
	for i, s := range segs {
		out[len(segs)-1-i] = s
	}
	return out
}

// applySweepResult folds phiAcc (the track contribution, halved to account
// for the forward and backward passes both tallying into the same
// accumulator) and the isotropic source into an updated phi, and returns
// the L2 relative change — the convergence criterion in FixedSource mode,
// where there is no source residual to converge on.
func (s *Solver) applySweepResult() float64 {
	g := s.geo

	sumSq, diffSq := 0.0, 0.0
	for r := 0; r < g.NumFSR; r++ {
		m, err := g.Library.Get(g.FSRMaterial[r])
		if err != nil {
			continue
		}
		base := r * g.NumGroupsPadded
		vol := s.volumeOrUnit(r)

		for gi := 0; gi < g.NumGroupsPadded; gi++ {
			sigmaT := m.SigmaT[gi]
			old := s.phi[base+gi]

			var updated float64
			if sigmaT > 0 {
				half := 0.5 * s.phiAcc[base+gi]
				updated = half/(sigmaT*vol) + 4*math.Pi*s.source[base+gi]/sigmaT
			}

			s.phi[base+gi] = updated
			diffSq += (updated - old) * (updated - old)
			sumSq += old * old
		}
	}

	if sumSq == 0 {
		return 1
	}
	return math.Sqrt(diffSq / sumSq)
}
