// Package geom implements the analytic boundary primitives (plane, x/y/z
// plane, circle), point evaluation, and ray/surface intersection used to
// carve a 2-D geometry into flat source regions. Surfaces are immutable
// after construction; id counters live on a Registry passed in explicitly
// so more than one geometry can be built in the same process.
package geom

// OnSurfaceThresh is the tolerance below which a point is considered to lie
// on a surface rather than strictly to one side of it.
const OnSurfaceThresh = 1e-12

// Point is a real-valued 2-D location. Z is carried for completeness (the
// data model allows it) but is unused by every operation in this package;
// the solver's sweep is strictly 2-D.
type Point struct {
	X, Y, Z float64
}
