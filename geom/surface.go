package geom

import (
	"fmt"
	"math"

	"github.com/luisarose/openmoc2d/internal/xserr"
)

// Kind is the closed set of surface primitives this solver understands.
// Virtual dispatch over surface kinds is deliberately replaced by a tagged
// variant with direct pattern-matching in the hot paths (Evaluate,
// Intersect) — the table of five variants is closed, so a switch is both
// faster and clearer than an interface hierarchy here.
type Kind int

const (
	Plane Kind = iota
	XPlane
	YPlane
	ZPlane
	Circle
)

func (k Kind) String() string {
	switch k {
	case Plane:
		return "Plane"
	case XPlane:
		return "XPlane"
	case YPlane:
		return "YPlane"
	case ZPlane:
		return "ZPlane"
	case Circle:
		return "Circle"
	default:
		return "UnknownKind"
	}
}

// BoundaryType is the track-coupling behavior attached to a surface.
type BoundaryType int

const (
	NoBoundary BoundaryType = iota
	Reflective
	Vacuum
)

func (b BoundaryType) String() string {
	switch b {
	case NoBoundary:
		return "NoBoundary"
	case Reflective:
		return "Reflective"
	case Vacuum:
		return "Vacuum"
	default:
		return "UnknownBoundary"
	}
}

// Surface is an immutable analytic boundary. For PLANE/XPLANE/YPLANE the
// implicit form is A*x + B*y + C = 0; for ZPLANE it is z - Z0 = 0; for
// CIRCLE it is x^2 + y^2 + Cx + Dy + E = 0 (center (-C/2, -D/2), radius
// sqrt(C^2/4 + D^2/4 - E)).
type Surface struct {
	UID      int
	UserID   int
	Kind     Kind
	Boundary BoundaryType

	A, B, C, D, E float64
	Z0            float64
}

func newSurface(reg *Registry, userID int, boundary BoundaryType) (Surface, error) {
	uid, uid2, err := reg.assign(userID)
	if err != nil {
		return Surface{}, xserr.New(xserr.InvalidGeometry, "surface: %v", err)
	}
	return Surface{UID: uid, UserID: uid2, Boundary: boundary}, nil
}

// NewPlane builds a general plane A*x + B*y + C = 0.
func NewPlane(reg *Registry, userID int, a, b, c float64, boundary BoundaryType) (*Surface, error) {
	if a == 0 && b == 0 {
		return nil, xserr.New(xserr.InvalidGeometry, "plane: A and B cannot both be zero")
	}
	s, err := newSurface(reg, userID, boundary)
	if err != nil {
		return nil, err
	}
	s.Kind, s.A, s.B, s.C = Plane, a, b, c
	return &s, nil
}

// NewXPlane builds the vertical line x = x0.
func NewXPlane(reg *Registry, userID int, x0 float64, boundary BoundaryType) (*Surface, error) {
	s, err := newSurface(reg, userID, boundary)
	if err != nil {
		return nil, err
	}
	s.Kind, s.A, s.B, s.C = XPlane, 1, 0, -x0
	return &s, nil
}

// NewYPlane builds the horizontal line y = y0.
func NewYPlane(reg *Registry, userID int, y0 float64, boundary BoundaryType) (*Surface, error) {
	s, err := newSurface(reg, userID, boundary)
	if err != nil {
		return nil, err
	}
	s.Kind, s.A, s.B, s.C = YPlane, 0, 1, -y0
	return &s, nil
}

// NewZPlane builds the plane z = z0. It never participates in a 2-D sweep
// but is part of the data model.
func NewZPlane(reg *Registry, userID int, z0 float64, boundary BoundaryType) (*Surface, error) {
	s, err := newSurface(reg, userID, boundary)
	if err != nil {
		return nil, err
	}
	s.Kind, s.Z0 = ZPlane, z0
	return &s, nil
}

// NewCircle builds a circle from its center and radius.
func NewCircle(reg *Registry, userID int, x0, y0, radius float64, boundary BoundaryType) (*Surface, error) {
	if radius <= 0 {
		return nil, xserr.New(xserr.InvalidGeometry, "circle: radius must be positive, got %g", radius)
	}
	s, err := newSurface(reg, userID, boundary)
	if err != nil {
		return nil, err
	}
	s.Kind = Circle
	s.C, s.D, s.E = -2*x0, -2*y0, x0*x0+y0*y0-radius*radius
	return &s, nil
}

// Center returns the circle's center. Panics if the surface is not a
// circle.
func (s *Surface) Center() Point {
	if s.Kind != Circle {
		panic("geom: Center called on a non-circle surface")
	}
	return Point{X: -s.C / 2, Y: -s.D / 2}
}

// Radius returns the circle's radius. Panics if the surface is not a
// circle.
func (s *Surface) Radius() float64 {
	if s.Kind != Circle {
		panic("geom: Radius called on a non-circle surface")
	}
	r2 := s.C*s.C/4 + s.D*s.D/4 - s.E
	return math.Sqrt(r2)
}

// Evaluate returns the signed implicit-form value of the surface at p.
// Positive is conventionally the +1 halfspace, negative the -1 halfspace.
func (s *Surface) Evaluate(p Point) float64 {
	switch s.Kind {
	case Plane, XPlane, YPlane:
		return s.A*p.X + s.B*p.Y + s.C
	case ZPlane:
		return p.Z - s.Z0
	case Circle:
		return p.X*p.X + p.Y*p.Y + s.C*p.X + s.D*p.Y + s.E
	default:
		panic(fmt.Sprintf("geom: unknown surface kind %v", s.Kind))
	}
}

// IsOn reports whether p lies within OnSurfaceThresh of the surface.
func (s *Surface) IsOn(p Point) bool {
	return math.Abs(s.Evaluate(p)) < OnSurfaceThresh
}

// Extent describes an axis-aligned bounding interval, possibly unbounded.
type Extent struct {
	Min, Max float64
}

// Unbounded reports whether the extent spans the whole real line.
func (e Extent) Unbounded() bool {
	return math.IsInf(e.Min, -1) && math.IsInf(e.Max, 1)
}

// XExtent returns the surface's axis-aligned extent along x.
func (s *Surface) XExtent() Extent {
	switch s.Kind {
	case XPlane:
		x0 := -s.C / s.A
		return Extent{x0, x0}
	case Circle:
		cx := s.Center().X
		r := s.Radius()
		return Extent{cx - r, cx + r}
	default:
		return Extent{math.Inf(-1), math.Inf(1)}
	}
}

// YExtent returns the surface's axis-aligned extent along y.
func (s *Surface) YExtent() Extent {
	switch s.Kind {
	case YPlane:
		y0 := -s.C / s.B
		return Extent{y0, y0}
	case Circle:
		cy := s.Center().Y
		r := s.Radius()
		return Extent{cy - r, cy + r}
	default:
		return Extent{math.Inf(-1), math.Inf(1)}
	}
}
