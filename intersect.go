package contour

import (
	"math"
)

// SegIntersectKind classifies the intersection of two segments.
type SegIntersectKind uint8

const (
	// SegIntersectNone means the segments do not touch.
	SegIntersectNone SegIntersectKind = iota
	// SegIntersectOne means the segments properly cross in a single point.
	SegIntersectOne
	// SegIntersectTangent means the segments touch in a single point without
	// crossing.
	SegIntersectTangent
	// SegIntersectTwo means the segments cross in two points.
	SegIntersectTwo
	// SegIntersectOverlap means the segments share a range of coincident
	// points.
	SegIntersectOverlap
)

func (k SegIntersectKind) String() string {
	switch k {
	case SegIntersectNone:
		return "none"
	case SegIntersectOne:
		return "one"
	case SegIntersectTangent:
		return "tangent"
	case SegIntersectTwo:
		return "two"
	case SegIntersectOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// SegIntersect is the result of intersecting two segments. Point1 is set for
// all kinds except none; Point2 is set for two crossings and carries the end
// of the shared range for overlaps.
type SegIntersect struct {
	Kind   SegIntersectKind
	Point1 Point
	Point2 Point
}

// IntersectSegments computes the intersection of two segments. Comparisons
// use eps as the distance tolerance; degenerate configurations (tangency,
// collinear or coincident ranges) are reported with their kind rather than
// dropped.
func IntersectSegments(s1, s2 Segment, eps float64) SegIntersect {
	switch {
	case s1.IsLine() && s2.IsLine():
		return intrLineLineSegs(s1, s2, eps)
	case s1.IsLine():
		return intrLineArcSegs(s1, s2, false, eps)
	case s2.IsLine():
		return intrLineArcSegs(s2, s1, true, eps)
	default:
		return intrArcArcSegs(s1, s2, eps)
	}
}

type lineLineKind uint8

const (
	llNone lineLineKind = iota
	llTrue
	llFalse
	llOverlapping
)

type lineLineResult struct {
	kind   lineLineKind
	t1, t2 float64 // params on line 1 and line 2 for true/false intersects
	u0, u1 float64 // params of q0 and q1 on line 1 for overlapping lines
}

// intrLineLine intersects the infinite extensions of two line segments and
// classifies the result relative to the segments' [0, 1] parameter ranges.
func intrLineLine(p0, p1, q0, q1 Point, eps float64) lineLineResult {
	r := p1.Sub(p0)
	s := q1.Sub(q0)
	rxs := r.Cross(s)
	qmp := q0.Sub(p0)

	if math.Abs(rxs) > realEps {
		t := qmp.Cross(s) / rxs
		u := qmp.Cross(r) / rxs
		tEps := realEps
		if l := r.Hypot(); l > 0 {
			tEps = eps / l
		}
		uEps := realEps
		if l := s.Hypot(); l > 0 {
			uEps = eps / l
		}
		if fuzzyInRange(0, t, 1, tEps) && fuzzyInRange(0, u, 1, uEps) {
			return lineLineResult{kind: llTrue, t1: t, t2: u}
		}
		return lineLineResult{kind: llFalse, t1: t, t2: u}
	}

	// Parallel lines: coincident only if q0 lies on line 1.
	if math.Abs(qmp.Cross(r)) > eps*r.Hypot() {
		return lineLineResult{kind: llNone}
	}
	rr := r.Hypot2()
	if rr == 0 {
		return lineLineResult{kind: llNone}
	}
	return lineLineResult{
		kind: llOverlapping,
		u0:   qmp.Dot(r) / rr,
		u1:   q1.Sub(p0).Dot(r) / rr,
	}
}

func intrLineLineSegs(s1, s2 Segment, eps float64) SegIntersect {
	p0, p1 := s1.V1.Pos(), s1.V2.Pos()
	res := intrLineLine(p0, p1, s2.V1.Pos(), s2.V2.Pos(), eps)
	switch res.kind {
	case llTrue:
		return SegIntersect{Kind: SegIntersectOne, Point1: p0.Lerp(p1, clamp01(res.t1))}
	case llOverlapping:
		lo, hi := min(res.u0, res.u1), max(res.u0, res.u1)
		lo, hi = max(lo, 0.0), min(hi, 1.0)
		tEps := realEps
		if l := p1.Sub(p0).Hypot(); l > 0 {
			tEps = eps / l
		}
		if hi < lo-tEps {
			return SegIntersect{Kind: SegIntersectNone}
		}
		a, b := p0.Lerp(p1, lo), p0.Lerp(p1, hi)
		if a.Close(b, eps) {
			// Collinear segments touching end to end.
			return SegIntersect{Kind: SegIntersectTangent, Point1: a}
		}
		return SegIntersect{Kind: SegIntersectOverlap, Point1: a, Point2: b}
	default:
		return SegIntersect{Kind: SegIntersectNone}
	}
}

// intrLineCircle returns the parameters along the line p0→p1 at which it
// crosses the circle. tangent is set when the line touches the circle in a
// single point.
func intrLineCircle(p0, p1 Point, radius float64, center Point, eps float64) (ts [2]float64, n int, tangent bool) {
	d := p1.Sub(p0)
	f := p0.Sub(center)
	a := d.Hypot2()
	if a < realEps*realEps {
		return ts, 0, false
	}
	b := 2 * f.Dot(d)
	c := f.Hypot2() - radius*radius
	disc := b*b - 4*a*c

	// Scale the discriminant tolerance to the segment so tangency detection
	// is size independent.
	discEps := eps * a * radius
	if disc < -discEps {
		return ts, 0, false
	}
	if disc < discEps {
		ts[0] = -b / (2 * a)
		return ts, 1, true
	}
	sq := math.Sqrt(disc)
	ts[0] = (-b - sq) / (2 * a)
	ts[1] = (-b + sq) / (2 * a)
	return ts, 2, false
}

// intrCircleCircle intersects two circles. tangent is set when the circles
// touch in a single point, coincident when they are the same circle.
func intrCircleCircle(r1 float64, c1 Point, r2 float64, c2 Point, eps float64) (pts [2]Point, n int, tangent, coincident bool) {
	v := c2.Sub(c1)
	d := v.Hypot()
	if d < eps {
		if fuzzyEq(r1, r2, eps) {
			return pts, 0, false, true
		}
		return pts, 0, false, false
	}
	if d > r1+r2+eps || d < math.Abs(r1-r2)-eps {
		return pts, 0, false, false
	}

	// Distance from c1 to the radical line along v.
	a := (d*d + r1*r1 - r2*r2) / (2 * d)
	mid := c1.Translate(v.Mul(a / d))
	h2 := r1*r1 - a*a
	if h2 < eps*r1 {
		return [2]Point{mid}, 1, true, false
	}
	h := math.Sqrt(h2)
	offs := v.Rot90CCW().Mul(h / d)
	pts[0] = mid.Translate(offs)
	pts[1] = mid.Translate(offs.Negate())
	return pts, 2, false, false
}

// intrLineArcSegs intersects a line segment with an arc segment. swapped
// records that the caller passed the segments in (arc, line) order; it only
// matters for ordering the two-intersection case along the first segment.
func intrLineArcSegs(line, arc Segment, swapped bool, eps float64) SegIntersect {
	p0, p1 := line.V1.Pos(), line.V2.Pos()
	radius, center := arc.ArcRadiusAndCenter()
	if radius < eps {
		// Arc collapsed to its center point; excluded from intersection.
		return SegIntersect{Kind: SegIntersectNone}
	}
	ts, n, tangent := intrLineCircle(p0, p1, radius, center, eps)

	tEps := realEps
	if l := p1.Sub(p0).Hypot(); l > 0 {
		tEps = eps / l
	}
	start := arc.startAngle(center)
	sweep := arc.SweepAngle()
	angEps := eps / radius

	var pts [2]Point
	count := 0
	for _, t := range ts[:n] {
		if !fuzzyInRange(0, t, 1, tEps) {
			continue
		}
		pt := p0.Lerp(p1, clamp01(t))
		if !angleIsWithinSweep(start, sweep, pt.Sub(center).Angle(), angEps) {
			continue
		}
		pts[count] = pt
		count++
	}

	switch count {
	case 0:
		return SegIntersect{Kind: SegIntersectNone}
	case 1:
		if tangent {
			return SegIntersect{Kind: SegIntersectTangent, Point1: pts[0]}
		}
		return SegIntersect{Kind: SegIntersectOne, Point1: pts[0]}
	default:
		first := Segment{line.V1, line.V2}
		if swapped {
			first = arc
		}
		if first.ParamAt(pts[0]) > first.ParamAt(pts[1]) {
			pts[0], pts[1] = pts[1], pts[0]
		}
		return SegIntersect{Kind: SegIntersectTwo, Point1: pts[0], Point2: pts[1]}
	}
}

func intrArcArcSegs(s1, s2 Segment, eps float64) SegIntersect {
	r1, c1 := s1.ArcRadiusAndCenter()
	r2, c2 := s2.ArcRadiusAndCenter()
	if r1 < eps || r2 < eps {
		return SegIntersect{Kind: SegIntersectNone}
	}

	start1, sweep1 := s1.startAngle(c1), s1.SweepAngle()
	start2, sweep2 := s2.startAngle(c2), s2.SweepAngle()
	angEps1 := eps / r1
	angEps2 := eps / r2
	within1 := func(pt Point) bool {
		return angleIsWithinSweep(start1, sweep1, pt.Sub(c1).Angle(), angEps1)
	}
	within2 := func(pt Point) bool {
		return angleIsWithinSweep(start2, sweep2, pt.Sub(c2).Angle(), angEps2)
	}

	pts, n, tangent, coincident := intrCircleCircle(r1, c1, r2, c2, eps)
	if coincident {
		// Same circle: the shared range is bounded by whichever endpoints lie
		// on both arcs, ordered along s1's direction.
		type boundary struct {
			t  float64
			pt Point
		}
		var bounds []boundary
		add := func(pt Point) {
			for _, b := range bounds {
				if b.pt.Close(pt, eps) {
					return
				}
			}
			bounds = append(bounds, boundary{s1.ParamAt(pt), pt})
		}
		for _, pt := range [2]Point{s2.V1.Pos(), s2.V2.Pos()} {
			if within1(pt) {
				add(pt)
			}
		}
		for _, pt := range [2]Point{s1.V1.Pos(), s1.V2.Pos()} {
			if within2(pt) {
				add(pt)
			}
		}
		switch len(bounds) {
		case 0:
			return SegIntersect{Kind: SegIntersectNone}
		case 1:
			return SegIntersect{Kind: SegIntersectTangent, Point1: bounds[0].pt}
		default:
			lo, hi := bounds[0], bounds[0]
			for _, b := range bounds[1:] {
				if b.t < lo.t {
					lo = b
				}
				if b.t > hi.t {
					hi = b
				}
			}
			if lo.pt.Close(hi.pt, eps) {
				return SegIntersect{Kind: SegIntersectTangent, Point1: lo.pt}
			}
			// Two sub-arcs of one circle can share just their endpoints
			// without sharing a range; the range is real only if its interior
			// lies on both arcs.
			mid := s1.PointAt((lo.t + hi.t) / 2)
			if !within2(mid) {
				return SegIntersect{Kind: SegIntersectTwo, Point1: lo.pt, Point2: hi.pt}
			}
			return SegIntersect{Kind: SegIntersectOverlap, Point1: lo.pt, Point2: hi.pt}
		}
	}

	var kept [2]Point
	count := 0
	for _, pt := range pts[:n] {
		if within1(pt) && within2(pt) {
			kept[count] = pt
			count++
		}
	}
	switch count {
	case 0:
		return SegIntersect{Kind: SegIntersectNone}
	case 1:
		if tangent {
			return SegIntersect{Kind: SegIntersectTangent, Point1: kept[0]}
		}
		return SegIntersect{Kind: SegIntersectOne, Point1: kept[0]}
	default:
		if s1.ParamAt(kept[0]) > s1.ParamAt(kept[1]) {
			kept[0], kept[1] = kept[1], kept[0]
		}
		return SegIntersect{Kind: SegIntersectTwo, Point1: kept[0], Point2: kept[1]}
	}
}
