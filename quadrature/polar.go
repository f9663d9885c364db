// Package quadrature provides the polar angle quadrature set used to
// collapse the 3-D transport equation onto 2-D tracks, and the
// exponential attenuation evaluator used on every segment of the sweep.
package quadrature

import (
	"math"

	"github.com/luisarose/openmoc2d/internal/xserr"
)

// PolarSet is a fixed polar angle quadrature: sinThetaP gives sin(theta_p)
// for each polar angle p, WeightP the corresponding quadrature weight, and
// the weights sum to 1.
type PolarSet struct {
	SinThetaP []float64
	WeightP   []float64
}

// TY3Polar is the three-polar-angle Tabuchi-Yamamoto set, the classic
// default polar quadrature for 2-D MOC solvers.
var TY3Polar = PolarSet{
	SinThetaP: []float64{0.166648, 0.537707, 0.932954},
	WeightP:   []float64{0.046233, 0.283619, 0.670148},
}

// NewEqualWeightPolar builds an n-angle polar set with sin(theta_p) spaced
// evenly over (0, 1) and equal weights, for geometries that want a coarser
// or finer approximation than the standard Tabuchi-Yamamoto set.
func NewEqualWeightPolar(n int) (PolarSet, error) {
	if n < 1 {
		return PolarSet{}, xserr.New(xserr.InvalidGeometry, "polar set must have at least 1 angle, got %d", n)
	}
	ps := PolarSet{SinThetaP: make([]float64, n), WeightP: make([]float64, n)}
	for p := 0; p < n; p++ {
		ps.SinThetaP[p] = (float64(p) + 0.5) / float64(n)
		ps.WeightP[p] = 1.0 / float64(n)
	}
	return ps, nil
}

// Validate checks that the weights sum to 1 within tolerance and that
// every sin(theta_p) lies in (0, 1].
func (ps PolarSet) Validate() error {
	if len(ps.SinThetaP) != len(ps.WeightP) {
		return xserr.New(xserr.InvalidGeometry, "polar set: %d sines but %d weights", len(ps.SinThetaP), len(ps.WeightP))
	}
	sum := 0.0
	for p, s := range ps.SinThetaP {
		if s <= 0 || s > 1 {
			return xserr.New(xserr.InvalidGeometry, "polar set: sin(theta_%d) = %g out of (0, 1]", p, s)
		}
		sum += ps.WeightP[p]
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return xserr.New(xserr.InvalidGeometry, "polar set: weights sum to %g, want 1", sum)
	}
	return nil
}
