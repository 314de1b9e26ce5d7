package contour

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestIntersectLineLine(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)
	eps := DefaultPosEqualEps

	// Transversal crossing.
	got := IntersectSegments(
		Segment{V(0, 0, 0), V(2, 2, 0)},
		Segment{V(0, 2, 0), V(2, 0, 0)},
		eps,
	)
	diff(t, SegIntersectOne, got.Kind)
	diff(t, Pt(1, 1), got.Point1, approx)

	// Disjoint parallels.
	got = IntersectSegments(
		Segment{V(0, 0, 0), V(2, 0, 0)},
		Segment{V(0, 1, 0), V(2, 1, 0)},
		eps,
	)
	diff(t, SegIntersectNone, got.Kind)

	// Crossing beyond the segment bounds.
	got = IntersectSegments(
		Segment{V(0, 0, 0), V(1, 0, 0)},
		Segment{V(2, -1, 0), V(2, 1, 0)},
		eps,
	)
	diff(t, SegIntersectNone, got.Kind)

	// Collinear with a shared range.
	got = IntersectSegments(
		Segment{V(0, 0, 0), V(2, 0, 0)},
		Segment{V(1, 0, 0), V(3, 0, 0)},
		eps,
	)
	diff(t, SegIntersectOverlap, got.Kind)
	diff(t, Pt(1, 0), got.Point1, approx)
	diff(t, Pt(2, 0), got.Point2, approx)

	// Collinear touching end to end.
	got = IntersectSegments(
		Segment{V(0, 0, 0), V(1, 0, 0)},
		Segment{V(1, 0, 0), V(2, 0, 0)},
		eps,
	)
	diff(t, SegIntersectTangent, got.Kind)
	diff(t, Pt(1, 0), got.Point1, approx)
}

func TestIntersectLineArc(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-7)
	eps := DefaultPosEqualEps

	// Lower semicircle centered at (0.5, 0) with radius 0.5.
	arc := Segment{V(0, 0, 1), V(1, 0, 0)}

	// A horizontal line through the lower half crosses twice, results
	// ordered along the line.
	got := IntersectSegments(Segment{V(-1, -0.25, 0), V(2, -0.25, 0)}, arc, eps)
	diff(t, SegIntersectTwo, got.Kind)
	x := math.Sqrt(0.1875)
	diff(t, Pt(0.5-x, -0.25), got.Point1, approx)
	diff(t, Pt(0.5+x, -0.25), got.Point2, approx)

	// With the line reversed the order along the line and along the arc
	// disagree; results follow whichever segment came first.
	reversed := Segment{V(2, -0.25, 0), V(-1, -0.25, 0)}
	got = IntersectSegments(reversed, arc, eps)
	diff(t, SegIntersectTwo, got.Kind)
	diff(t, Pt(0.5+x, -0.25), got.Point1, approx)
	got = IntersectSegments(arc, reversed, eps)
	diff(t, SegIntersectTwo, got.Kind)
	diff(t, Pt(0.5-x, -0.25), got.Point1, approx)

	// Tangent at the bottom of the circle.
	got = IntersectSegments(Segment{V(-1, -0.5, 0), V(2, -0.5, 0)}, arc, eps)
	diff(t, SegIntersectTangent, got.Kind)
	diff(t, Pt(0.5, -0.5), got.Point1, approx)

	// A line crossing the circle only above the chord misses the arc.
	got = IntersectSegments(Segment{V(-1, 0.25, 0), V(2, 0.25, 0)}, arc, eps)
	diff(t, SegIntersectNone, got.Kind)
}

func TestIntersectArcArc(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-7)
	eps := DefaultPosEqualEps

	// Lower semicircles of unit circles centered at (0,0) and (1,0). Only
	// the lower circle intersection lies on both sweeps.
	a1 := Segment{V(-1, 0, 1), V(1, 0, 0)}
	a2 := Segment{V(0, 0, 1), V(2, 0, 0)}
	got := IntersectSegments(a1, a2, eps)
	diff(t, SegIntersectOne, got.Kind)
	diff(t, Pt(0.5, -math.Sqrt(0.75)), got.Point1, approx)

	// A quarter arc lying on the same circle as a1 shares a range.
	quarter := Segment{V(0, -1, math.Tan(math.Pi / 8)), V(1, 0, 0)}
	got = IntersectSegments(a1, quarter, eps)
	diff(t, SegIntersectOverlap, got.Kind)
	diff(t, Pt(0, -1), got.Point1, approx)
	diff(t, Pt(1, 0), got.Point2, approx)

	// The two halves of one circle share only their endpoints, not a range.
	upper := Segment{V(1, 0, 1), V(-1, 0, 0)}
	got = IntersectSegments(a1, upper, eps)
	diff(t, SegIntersectTwo, got.Kind)

	// Externally tangent circles touching at (0,-1).
	got = IntersectSegments(
		Segment{V(-1, 0, 1), V(1, 0, 0)},
		Segment{V(0.5, -1.5, 1), V(-0.5, -1.5, 0)},
		eps,
	)
	diff(t, SegIntersectTangent, got.Kind)
	diff(t, Pt(0, -1), got.Point1, approx)

	// Disjoint circles.
	got = IntersectSegments(
		Segment{V(-1, 0, 1), V(1, 0, 0)},
		Segment{V(4, 0, 1), V(6, 0, 0)},
		eps,
	)
	diff(t, SegIntersectNone, got.Kind)
}
