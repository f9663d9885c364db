package geom

import "math"

// verticalRayEps matches the tolerance spec.md gives for treating a ray as
// vertical rather than solving the general sloped-line case.
const verticalRayEps = 1e-10

// parallelEps matches the tolerance spec.md gives for the plane/general
// slope-comparison parallel test.
const parallelEps = 1e-11

func isVertical(theta float64) bool {
	return math.Abs(theta-math.Pi/2) < verticalRayEps ||
		math.Abs(theta-3*math.Pi/2) < verticalRayEps
}

// forward applies the y-monotonicity rule from spec.md §4.1: a candidate
// point is ahead of the ray from p0 at angle theta iff it lies further along
// the direction sin(theta) points. Exactly horizontal rays (sin(theta) == 0)
// fall back to the equivalent rule in x, since y never changes along them.
func forward(p0 Point, theta float64, cand Point) bool {
	s := math.Sin(theta)
	if math.Abs(s) > 1e-15 {
		if theta < math.Pi {
			return cand.Y > p0.Y
		}
		return cand.Y < p0.Y
	}
	if math.Cos(theta) >= 0 {
		return cand.X > p0.X
	}
	return cand.X < p0.X
}

// Intersect returns the 0, 1, or 2 forward-travel points where the ray from
// p0 at angle theta crosses the surface.
func (s *Surface) Intersect(p0 Point, theta float64) []Point {
	var candidates []Point
	switch s.Kind {
	case Plane, XPlane, YPlane:
		candidates = intersectPlane(s, p0, theta)
	case ZPlane:
		// A 2-D ray never leaves its z-plane, so it either lies entirely
		// on the surface (not a transverse crossing) or never meets it.
		return nil
	case Circle:
		candidates = intersectCircle(s, p0, theta)
	}

	out := candidates[:0]
	for _, c := range candidates {
		if forward(p0, theta, c) {
			out = append(out, c)
		}
	}
	return out
}

func intersectPlane(s *Surface, p0 Point, theta float64) []Point {
	if isVertical(theta) {
		if s.B == 0 {
			return nil
		}
		y := (-s.A*p0.X - s.C) / s.B
		return []Point{{X: p0.X, Y: y}}
	}

	m := math.Tan(theta)

	if s.B == 0 {
		// Vertical plane x = -C/A; any non-vertical ray crosses it once.
		x := -s.C / s.A
		y := m*(x-p0.X) + p0.Y
		return []Point{{X: x, Y: y}}
	}

	slopePlane := -s.A / s.B
	if math.Abs(slopePlane-m) < parallelEps {
		return nil
	}

	interceptPlane := -s.C / s.B
	interceptRay := p0.Y - m*p0.X

	x := (interceptPlane - interceptRay) / (m - slopePlane)
	y := m*x + interceptRay
	return []Point{{X: x, Y: y}}
}

func intersectCircle(s *Surface, p0 Point, theta float64) []Point {
	if isVertical(theta) {
		// x is fixed; solve the circle equation for y.
		x := p0.X
		a := 1.0
		b := s.D
		c := x*x + s.C*x + s.E
		return quadraticPoints(a, b, c, func(y float64) Point {
			return Point{X: x, Y: y}
		})
	}

	cosT, sinT := math.Cos(theta), math.Sin(theta)
	// Substitute x = p0.X + t*cosT, y = p0.Y + t*sinT into
	// x^2 + y^2 + Cx + Dy + E = 0.
	a := 1.0 // cosT^2 + sinT^2
	b := 2*p0.X*cosT + 2*p0.Y*sinT + s.C*cosT + s.D*sinT
	c := s.Evaluate(p0)

	return quadraticPoints(a, b, c, func(t float64) Point {
		return Point{X: p0.X + t*cosT, Y: p0.Y + t*sinT}
	})
}

// quadraticPoints solves a*u^2 + b*u + c = 0 and maps each real root through
// toPoint, returning 0, 1, or 2 points depending on the discriminant.
func quadraticPoints(a, b, c float64, toPoint func(u float64) Point) []Point {
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		u := -b / (2 * a)
		return []Point{toPoint(u)}
	default:
		sq := math.Sqrt(disc)
		u1 := (-b + sq) / (2 * a)
		u2 := (-b - sq) / (2 * a)
		return []Point{toPoint(u1), toPoint(u2)}
	}
}

// MinDistance computes the nearest forward intersection of the ray from p0
// at angle theta with the surface, writing the point to out and returning
// the Euclidean distance. It returns +Inf if there is no forward
// intersection.
func (s *Surface) MinDistance(p0 Point, theta float64, out *Point) float64 {
	best := math.Inf(1)
	for _, cand := range s.Intersect(p0, theta) {
		d := math.Hypot(cand.X-p0.X, cand.Y-p0.Y)
		if d < best {
			best = d
			*out = cand
		}
	}
	return best
}
