package contour

import (
	"fmt"
	"math"
)

// Vertex is a polyline vertex: a position and the bulge of the segment that
// starts at it.
//
// The bulge encodes arc curvature as tan(θ/4), where θ is the arc's included
// angle. It is zero for a straight segment, positive for an arc that sweeps
// counter-clockwise from this vertex to the next, and negative for a
// clockwise sweep.
type Vertex struct {
	X     float64
	Y     float64
	Bulge float64
}

// V returns the vertex at (x, y) with the given bulge.
func V(x, y, bulge float64) Vertex {
	return Vertex{X: x, Y: y, Bulge: bulge}
}

func (v Vertex) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Bulge)
}

// Pos returns the vertex's position.
func (v Vertex) Pos() Point {
	return Point{X: v.X, Y: v.Y}
}

// BulgeIsZero reports whether the segment starting at v is a line.
func (v Vertex) BulgeIsZero() bool {
	return math.Abs(v.Bulge) < bulgeEps
}

// BulgeIsPositive reports whether the segment starting at v is a
// counter-clockwise arc.
func (v Vertex) BulgeIsPositive() bool {
	return v.Bulge > bulgeEps
}

// BulgeIsNegative reports whether the segment starting at v is a clockwise
// arc.
func (v Vertex) BulgeIsNegative() bool {
	return v.Bulge < -bulgeEps
}

// WithBulge returns a copy of v with its bulge replaced.
func (v Vertex) WithBulge(bulge float64) Vertex {
	return Vertex{X: v.X, Y: v.Y, Bulge: bulge}
}

// WithPos returns a copy of v moved to pt.
func (v Vertex) WithPos(pt Point) Vertex {
	return Vertex{X: pt.X, Y: pt.Y, Bulge: v.Bulge}
}

// vertexAt returns the vertex at pt with the given bulge.
func vertexAt(pt Point, bulge float64) Vertex {
	return Vertex{X: pt.X, Y: pt.Y, Bulge: bulge}
}
