package contour

import (
	"iter"
	"math"
)

// Polyline is an ordered sequence of vertices connected by line and arc
// segments. If Closed is set, the last vertex connects back to the first
// using the last vertex's bulge.
//
// Both fields are stable, exported state: external serialization layers may
// read and write them field by field and rely on vertex order being
// preserved.
//
// A closed polyline with positive signed area runs counter-clockwise; the
// boolean operations and the offset sign convention are defined in terms of
// that orientation.
type Polyline struct {
	Vertices []Vertex
	Closed   bool
}

// ClosedPolyline returns a closed polyline with the given vertices.
func ClosedPolyline(vertices ...Vertex) Polyline {
	return Polyline{Vertices: vertices, Closed: true}
}

// OpenPolyline returns an open polyline with the given vertices.
func OpenPolyline(vertices ...Vertex) Polyline {
	return Polyline{Vertices: vertices}
}

// Clone returns a deep copy of the polyline.
func (p Polyline) Clone() Polyline {
	out := p
	out.Vertices = append([]Vertex(nil), p.Vertices...)
	return out
}

// SegmentCount returns the number of segments. A polyline with fewer than two
// vertices is degenerate and has no segments.
func (p Polyline) SegmentCount() int {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	if p.Closed {
		return n
	}
	return n - 1
}

// Segment returns the i'th segment. For a closed polyline the last segment
// connects the final vertex back to the first.
func (p Polyline) Segment(i int) Segment {
	return Segment{
		V1: p.Vertices[i],
		V2: p.Vertices[(i+1)%len(p.Vertices)],
	}
}

// Segments iterates over index and segment pairs.
func (p Polyline) Segments() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i := range p.SegmentCount() {
			if !yield(i, p.Segment(i)) {
				return
			}
		}
	}
}

// SignedArea returns the area enclosed by a closed polyline, positive for
// counter-clockwise orientation. Arc segments contribute their circular
// segment areas, so a full circle built from two bulge-1 vertices reports
// πr². Open polylines report zero.
func (p Polyline) SignedArea() float64 {
	if !p.Closed || len(p.Vertices) < 2 {
		return 0
	}
	// Shoelace formula over the chords plus circular segment corrections.
	doubled := 0.0
	for _, s := range p.Segments() {
		p1, p2 := s.V1.Pos(), s.V2.Pos()
		doubled += p1.X*p2.Y - p2.X*p1.Y
		if s.IsArc() {
			radius, _ := s.ArcRadiusAndCenter()
			sweep := s.SweepAngle()
			doubled += radius * radius * (sweep - math.Sin(sweep))
		}
	}
	return doubled / 2
}

// IsCCW reports whether a closed polyline is oriented counter-clockwise.
func (p Polyline) IsCCW() bool {
	return p.SignedArea() > 0
}

// PathLength returns the total arc length of the polyline.
func (p Polyline) PathLength() float64 {
	total := 0.0
	for _, s := range p.Segments() {
		total += s.Length()
	}
	return total
}

// Extents returns the exact bounding box of the polyline. ok is false for
// degenerate polylines without segments.
func (p Polyline) Extents() (bbox Rect, ok bool) {
	if p.SegmentCount() == 0 {
		return Rect{}, false
	}
	bbox = Rect{
		X0: math.Inf(1), Y0: math.Inf(1),
		X1: math.Inf(-1), Y1: math.Inf(-1),
	}
	for _, s := range p.Segments() {
		bbox = bbox.Union(s.BoundingBox())
	}
	return bbox, true
}

// Reverse returns the polyline traversed in the opposite direction. Vertex
// order is reversed and each segment's bulge is negated and moved to the
// segment's new start vertex.
func (p Polyline) Reverse() Polyline {
	n := len(p.Vertices)
	out := Polyline{Closed: p.Closed, Vertices: make([]Vertex, n)}
	for i := range n {
		src := p.Vertices[n-1-i]
		bulge := 0.0
		if n-2-i >= 0 {
			bulge = -p.Vertices[n-2-i].Bulge
		} else if p.Closed {
			bulge = -p.Vertices[n-1].Bulge
		}
		out.Vertices[i] = src.WithBulge(bulge)
	}
	return out
}

// Translate returns the polyline moved by v.
func (p Polyline) Translate(v Vec2) Polyline {
	out := p.Clone()
	for i := range out.Vertices {
		out.Vertices[i] = out.Vertices[i].WithPos(out.Vertices[i].Pos().Translate(v))
	}
	return out
}

// Scale returns the polyline uniformly scaled about the origin. Bulges are
// scale invariant and stay unchanged.
func (p Polyline) Scale(f float64) Polyline {
	out := p.Clone()
	for i := range out.Vertices {
		v := out.Vertices[i]
		out.Vertices[i] = V(v.X*f, v.Y*f, v.Bulge)
	}
	return out
}

// WindingNumber returns the winding number of pt with respect to a closed
// polyline. It is zero for points outside and for open polylines. Points
// lying exactly on the boundary yield an unspecified value; callers needing
// boundary detection must test distance first.
func (p Polyline) WindingNumber(pt Point) int {
	if !p.Closed || len(p.Vertices) < 2 {
		return 0
	}
	winding := 0
	for _, s := range p.Segments() {
		p1, p2 := s.V1.Pos(), s.V2.Pos()
		// Chord crossing rule for the ray toward +x.
		if p1.Y <= pt.Y {
			if p2.Y > pt.Y && isLeft(p1, p2, pt) > 0 {
				winding++
			}
		} else {
			if p2.Y <= pt.Y && isLeft(p1, p2, pt) < 0 {
				winding--
			}
		}
		if !s.IsArc() {
			continue
		}
		// An arc deviates from its chord on exactly one side: the right of
		// the travel direction for positive bulge, the left for negative.
		// Membership in that circular segment adjusts the chord result by
		// one winding in the bulge's direction.
		radius, center := s.ArcRadiusAndCenter()
		if pt.DistanceSquared(center) >= radius*radius {
			continue
		}
		side := isLeft(p1, p2, pt)
		if side == 0 {
			// On the chord line but strictly inside the circle. Break the tie
			// as if pt were nudged toward +y, consistent with the half-open
			// convention of the crossing rule above.
			side = p2.X - p1.X
		}
		if s.V1.BulgeIsPositive() && side < 0 {
			winding++
		} else if s.V1.BulgeIsNegative() && side > 0 {
			winding--
		}
	}
	return winding
}

// Contains reports whether pt lies inside a closed polyline, using the
// nonzero winding rule.
func (p Polyline) Contains(pt Point) bool {
	return p.WindingNumber(pt) != 0
}

// ClosestPoint returns the point on the polyline closest to pt and the index
// of the segment it lies on. ok is false for degenerate polylines.
func (p Polyline) ClosestPoint(pt Point) (closest Point, segIdx int, ok bool) {
	best := math.Inf(1)
	for i, s := range p.Segments() {
		c := s.ClosestPoint(pt)
		if d := pt.DistanceSquared(c); d < best {
			best = d
			closest = c
			segIdx = i
			ok = true
		}
	}
	return closest, segIdx, ok
}
