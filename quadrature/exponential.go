package quadrature

import (
	"math"

	"github.com/luisarose/openmoc2d/internal/xserr"
	"github.com/luisarose/openmoc2d/math/interpolate"
)

// ExponentialMode selects how 1 - exp(-tau) is evaluated on the hot path
// of the transport sweep.
type ExponentialMode int

const (
	// Direct calls math.Exp on every evaluation.
	Direct ExponentialMode = iota
	// Interpolated looks the value up in a uniform-spacing linear table,
	// trading a small accuracy loss for an O(1) table lookup instead of a
	// transcendental call.
	Interpolated
)

// MaxTau is the optical-path-length cutoff beyond which 1 - exp(-tau) is
// treated as 1 (exp(-MaxTau) is about 1e-5), and the upper end of the
// interpolation table.
const MaxTau = 11.5

// Evaluator computes 1 - exp(-tau) for tau >= 0, either directly or via a
// lookup table, grounded on the teacher's math/interpolate.NewUniformLinear
// O(1) uniform-table interpolator.
type Evaluator struct {
	mode  ExponentialMode
	table *interpolate.Linear
}

// NewEvaluator builds an Evaluator. numTableEntries is only used when mode
// is Interpolated; it must be at least 2.
func NewEvaluator(mode ExponentialMode, numTableEntries int) (*Evaluator, error) {
	e := &Evaluator{mode: mode}
	if mode != Interpolated {
		return e, nil
	}
	if numTableEntries < 2 {
		return nil, xserr.New(xserr.InvalidGeometry, "exponential table needs at least 2 entries, got %d", numTableEntries)
	}

	dTau := MaxTau / float64(numTableEntries-1)
	vals := make([]float64, numTableEntries)
	for i := range vals {
		tau := float64(i) * dTau
		vals[i] = 1 - math.Exp(-tau)
	}
	e.table = interpolate.NewUniformLinear(0, dTau, vals)
	return e, nil
}

// Eval returns 1 - exp(-tau). tau <= 0 returns 0; tau >= MaxTau returns 1
// directly regardless of mode, since the table does not extend past MaxTau
// and exp(-tau) is below about 1e-5 there.
func (e *Evaluator) Eval(tau float64) float64 {
	if tau <= 0 {
		return 0
	}
	if tau >= MaxTau {
		return 1
	}
	if e.mode == Direct {
		return 1 - math.Exp(-tau)
	}
	return e.table.Eval(tau)
}
