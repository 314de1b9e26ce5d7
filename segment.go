package contour

import (
	"math"
)

// Segment is the span between two adjacent polyline vertices. It is a view
// derived on demand; segments are never stored. V1's bulge decides whether
// the segment is a line or an arc, V2's bulge belongs to the next segment.
type Segment struct {
	V1 Vertex
	V2 Vertex
}

// IsLine reports whether the segment is a straight line.
func (s Segment) IsLine() bool {
	return s.V1.BulgeIsZero()
}

// IsArc reports whether the segment is a circular arc.
func (s Segment) IsArc() bool {
	return !s.V1.BulgeIsZero()
}

// IsZeroLength reports whether the segment's endpoints coincide within eps.
func (s Segment) IsZeroLength(eps float64) bool {
	return s.V1.Pos().Close(s.V2.Pos(), eps)
}

// SweepAngle returns the signed included angle of an arc segment, which is
// 4·atan(bulge). It is zero for lines.
func (s Segment) SweepAngle() float64 {
	if s.IsLine() {
		return 0
	}
	return 4 * math.Atan(s.V1.Bulge)
}

// ArcRadiusAndCenter computes the radius and center of an arc segment from
// its endpoints and bulge.
//
// The center always lies on the perpendicular bisector of the chord: left of
// the chord direction for positive bulge, right of it for negative bulge. The
// result is meaningless for line or zero-length segments.
func (s Segment) ArcRadiusAndCenter() (radius float64, center Point) {
	b := math.Abs(s.V1.Bulge)
	chord := s.V2.Pos().Sub(s.V1.Pos())
	chordLen := chord.Hypot()
	radius = chordLen * (b*b + 1) / (4 * b)

	// Distance from the chord midpoint to the center (the apothem), via the
	// sagitta b·chordLen/2.
	m := radius - b*chordLen/2
	offs := chord.Rot90CCW().Mul(m / chordLen)
	if s.V1.BulgeIsNegative() {
		offs = offs.Negate()
	}
	center = s.V1.Pos().Midpoint(s.V2.Pos()).Translate(offs)
	return radius, center
}

// StartAngle returns the angle from the arc's center to its start point.
func (s Segment) startAngle(center Point) float64 {
	return s.V1.Pos().Sub(center).Angle()
}

// PointAt returns the point at parameter t ∈ [0, 1] along the segment.
func (s Segment) PointAt(t float64) Point {
	if s.IsLine() {
		return s.V1.Pos().Lerp(s.V2.Pos(), t)
	}
	if t >= 1 {
		// Land exactly on the end point; the angle parametrization would
		// accumulate rounding error there.
		return s.V2.Pos()
	}
	radius, center := s.ArcRadiusAndCenter()
	ang := s.startAngle(center) + s.SweepAngle()*t
	return center.Translate(VecFromAngle(ang).Mul(radius))
}

// Midpoint returns the point at the middle of the segment.
func (s Segment) Midpoint() Point {
	return s.PointAt(0.5)
}

// ParamAt returns the parameter t ∈ [0, 1] of a point assumed to lie on the
// segment. For points off the segment the result is the parameter of the
// chordwise or angular projection.
func (s Segment) ParamAt(pt Point) float64 {
	if s.IsLine() {
		d := s.V2.Pos().Sub(s.V1.Pos())
		dd := d.Hypot2()
		if dd == 0 {
			return 0
		}
		return clamp01(pt.Sub(s.V1.Pos()).Dot(d) / dd)
	}
	_, center := s.ArcRadiusAndCenter()
	sweep := s.SweepAngle()
	ang := pt.Sub(center).Angle()
	var d float64
	if sweep >= 0 {
		d = normalizeRadians(ang - s.startAngle(center))
	} else {
		d = -normalizeRadians(s.startAngle(center) - ang)
	}
	if math.Abs(sweep) < realEps {
		return 0
	}
	return clamp01(d / sweep)
}

func clamp01(t float64) float64 {
	return min(max(t, 0), 1)
}

// Length returns the segment's arc length.
func (s Segment) Length() float64 {
	if s.IsLine() {
		return s.V1.Pos().Distance(s.V2.Pos())
	}
	radius, _ := s.ArcRadiusAndCenter()
	return radius * math.Abs(s.SweepAngle())
}

// BoundingBox returns the segment's exact axis-aligned bounding box. For arcs
// it accounts for the axis-extreme points the sweep passes through.
func (s Segment) BoundingBox() Rect {
	bbox := NewRectFromPoints(s.V1.Pos(), s.V2.Pos())
	if s.IsLine() || s.IsZeroLength(realEps) {
		return bbox
	}

	radius, center := s.ArcRadiusAndCenter()
	start := s.startAngle(center)
	sweep := s.SweepAngle()
	// Quadrant crossings extend the box to the circle's extremes.
	for _, ext := range [4]Point{
		{center.X + radius, center.Y},
		{center.X, center.Y + radius},
		{center.X - radius, center.Y},
		{center.X, center.Y - radius},
	} {
		if angleIsWithinSweep(start, sweep, ext.Sub(center).Angle(), realEps) {
			bbox = bbox.UnionPoint(ext)
		}
	}
	return bbox
}

// SplitResult describes a segment split into two halves sharing the split
// vertex. The first half runs from UpdatedStart to SplitVertex's position,
// the second from SplitVertex to the original end vertex. Arc halves carry
// recomputed bulges whose sweeps sum to the original sweep.
type SplitResult struct {
	UpdatedStart Vertex
	SplitVertex  Vertex
}

// SplitAtPoint splits the segment at a point assumed to lie on it.
func (s Segment) SplitAtPoint(pt Point) SplitResult {
	if s.IsLine() {
		return SplitResult{
			UpdatedStart: s.V1,
			SplitVertex:  vertexAt(pt, 0),
		}
	}

	_, center := s.ArcRadiusAndCenter()
	if pt.Close(s.V1.Pos(), realEps) {
		return SplitResult{
			UpdatedStart: s.V1.WithBulge(0),
			SplitVertex:  vertexAt(pt, s.V1.Bulge),
		}
	}
	if pt.Close(s.V2.Pos(), realEps) {
		return SplitResult{
			UpdatedStart: s.V1,
			SplitVertex:  vertexAt(pt, 0),
		}
	}

	sweep := s.SweepAngle()
	var sweep1 float64
	if sweep >= 0 {
		sweep1 = normalizeRadians(pt.Sub(center).Angle() - s.startAngle(center))
	} else {
		sweep1 = -normalizeRadians(s.startAngle(center) - pt.Sub(center).Angle())
	}
	sweep2 := sweep - sweep1
	return SplitResult{
		UpdatedStart: s.V1.WithBulge(math.Tan(sweep1 / 4)),
		SplitVertex:  vertexAt(pt, math.Tan(sweep2/4)),
	}
}

// SplitAt splits the segment at parameter t ∈ (0, 1).
func (s Segment) SplitAt(t float64) SplitResult {
	return s.SplitAtPoint(s.PointAt(t))
}

// ClosestPoint returns the point on the segment closest to pt.
func (s Segment) ClosestPoint(pt Point) Point {
	if s.IsLine() {
		d := s.V2.Pos().Sub(s.V1.Pos())
		dd := d.Hypot2()
		if dd == 0 {
			return s.V1.Pos()
		}
		t := clamp01(pt.Sub(s.V1.Pos()).Dot(d) / dd)
		return s.V1.Pos().Lerp(s.V2.Pos(), t)
	}

	radius, center := s.ArcRadiusAndCenter()
	v := pt.Sub(center)
	if v.Hypot2() < realEps*realEps {
		// Center point: every point on the arc is equidistant.
		return s.V1.Pos()
	}
	candidate := center.Translate(v.Normalize().Mul(radius))
	if angleIsWithinSweep(s.startAngle(center), s.SweepAngle(), v.Angle(), realEps) {
		return candidate
	}
	if pt.DistanceSquared(s.V1.Pos()) < pt.DistanceSquared(s.V2.Pos()) {
		return s.V1.Pos()
	}
	return s.V2.Pos()
}

// TangentAt returns the direction of travel at a point on the segment. The
// result is not normalized; pt is assumed to lie on the segment.
func (s Segment) TangentAt(pt Point) Vec2 {
	if s.IsLine() {
		return s.V2.Pos().Sub(s.V1.Pos())
	}
	_, center := s.ArcRadiusAndCenter()
	tangent := pt.Sub(center).Rot90CCW()
	if s.V1.BulgeIsNegative() {
		tangent = tangent.Negate()
	}
	return tangent
}

// bulgeForConnection computes the bulge of the arc from start to end around
// center, sweeping counter-clockwise when ccw is true. The sweep is the full
// angle traversed in that direction, normalized to [0, 2π).
func bulgeForConnection(center, start, end Point, ccw bool) float64 {
	a1 := start.Sub(center).Angle()
	a2 := end.Sub(center).Angle()
	var sweep float64
	if ccw {
		sweep = normalizeRadians(a2 - a1)
	} else {
		sweep = -normalizeRadians(a1 - a2)
	}
	return math.Tan(sweep / 4)
}
