package contour

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestArcRadiusAndCenter(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	// Semicircle from (0,0) to (1,0) with bulge 1 sweeps counter-clockwise
	// through the lower half plane.
	s := Segment{V(0, 0, 1), V(1, 0, 0)}
	radius, center := s.ArcRadiusAndCenter()
	diff(t, 0.5, radius, approx)
	diff(t, Pt(0.5, 0), center, approx)
	diff(t, math.Pi, s.SweepAngle(), approx)
	diff(t, Pt(0.5, -0.5), s.Midpoint(), approx)

	// Negating the bulge mirrors the arc into the upper half plane; the
	// center stays on the chord for a semicircle.
	s = Segment{V(0, 0, -1), V(1, 0, 0)}
	radius, center = s.ArcRadiusAndCenter()
	diff(t, 0.5, radius, approx)
	diff(t, Pt(0.5, 0), center, approx)
	diff(t, Pt(0.5, 0.5), s.Midpoint(), approx)

	// Quarter circle: bulge tan(π/8), chord from (1,0) to (0,1) around the
	// origin.
	s = Segment{V(1, 0, math.Tan(math.Pi/8)), V(0, 1, 0)}
	radius, center = s.ArcRadiusAndCenter()
	diff(t, 1.0, radius, approx)
	diff(t, Pt(0, 0), center, approx)
	diff(t, math.Pi/2, s.SweepAngle(), approx)
}

func TestSegmentPointAt(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	line := Segment{V(1, 1, 0), V(3, 5, 0)}
	diff(t, Pt(1, 1), line.PointAt(0))
	diff(t, Pt(2, 3), line.PointAt(0.5), approx)
	diff(t, Pt(3, 5), line.PointAt(1))

	arc := Segment{V(0, 0, 1), V(1, 0, 0)}
	diff(t, Pt(0, 0), arc.PointAt(0), approx)
	diff(t, Pt(0.5, -0.5), arc.PointAt(0.5), approx)
	// The end point is returned exactly, not via the angle parametrization.
	diff(t, Pt(1, 0), arc.PointAt(1))
}

func TestSegmentParamAt(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	line := Segment{V(0, 0, 0), V(4, 0, 0)}
	diff(t, 0.25, line.ParamAt(Pt(1, 0)), approx)
	diff(t, 0.25, line.ParamAt(Pt(1, 2)), approx) // projects onto the chord
	diff(t, 0.0, line.ParamAt(Pt(-3, 0)))
	diff(t, 1.0, line.ParamAt(Pt(9, 0)))

	arc := Segment{V(0, 0, 1), V(1, 0, 0)}
	diff(t, 0.5, arc.ParamAt(Pt(0.5, -0.5)), approx)
	diff(t, 0.0, arc.ParamAt(Pt(0, 0)), approx)
	diff(t, 1.0, arc.ParamAt(Pt(1, 0)), approx)
}

func TestSegmentLength(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	diff(t, 5.0, Segment{V(0, 0, 0), V(3, 4, 0)}.Length(), approx)
	// Semicircle of radius 0.5.
	diff(t, math.Pi/2, Segment{V(0, 0, 1), V(1, 0, 0)}.Length(), approx)
	// Direction does not change the length.
	diff(t, math.Pi/2, Segment{V(0, 0, -1), V(1, 0, 0)}.Length(), approx)
}

func TestSegmentBoundingBox(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	diff(t, Rect{1, 2, 5, 7}, Segment{V(5, 2, 0), V(1, 7, 0)}.BoundingBox())

	// The lower semicircle extends the box down to the circle's bottom.
	arc := Segment{V(0, 0, 1), V(1, 0, 0)}
	diff(t, Rect{0, -0.5, 1, 0}, arc.BoundingBox(), approx)

	// A quarter arc staying in one quadrant is bounded by its endpoints and
	// the rightmost circle extreme.
	quarter := Segment{V(0, -1, math.Tan(math.Pi / 8)), V(1, 0, 0)}
	diff(t, Rect{0, -1, 1, 0}, quarter.BoundingBox(), approx)
}

func TestSegmentSplit(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	line := Segment{V(0, 0, 0), V(2, 2, 0)}
	res := line.SplitAt(0.5)
	diff(t, V(0, 0, 0), res.UpdatedStart)
	diff(t, V(1, 1, 0), res.SplitVertex, approx)

	// Splitting a semicircle at its midpoint yields two quarter arcs whose
	// bulges are tan(π/8).
	arc := Segment{V(0, 0, 1), V(1, 0, 0)}
	res = arc.SplitAtPoint(Pt(0.5, -0.5))
	diff(t, math.Tan(math.Pi/8), res.UpdatedStart.Bulge, approx)
	diff(t, math.Tan(math.Pi/8), res.SplitVertex.Bulge, approx)
	diff(t, Pt(0.5, -0.5), res.SplitVertex.Pos(), approx)

	// Splitting at an endpoint degenerates one half to zero length.
	res = arc.SplitAtPoint(Pt(0, 0))
	diff(t, 0.0, res.UpdatedStart.Bulge)
	diff(t, 1.0, res.SplitVertex.Bulge)
}

func TestSegmentClosestPoint(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	line := Segment{V(0, 0, 0), V(10, 0, 0)}
	diff(t, Pt(4, 0), line.ClosestPoint(Pt(4, 3)), approx)
	diff(t, Pt(0, 0), line.ClosestPoint(Pt(-2, 1)))
	diff(t, Pt(10, 0), line.ClosestPoint(Pt(14, -2)))

	arc := Segment{V(0, 0, 1), V(1, 0, 0)}
	// Radially below the center the projection lands on the arc.
	diff(t, Pt(0.5, -0.5), arc.ClosestPoint(Pt(0.5, -3)), approx)
	// Above the chord the sweep excludes the projection; the nearer endpoint
	// wins.
	diff(t, Pt(1, 0), arc.ClosestPoint(Pt(1.25, 1)), approx)
}

func TestSegmentTangentAt(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	line := Segment{V(0, 0, 0), V(10, 5, 0)}
	diff(t, Vec(10, 5), line.TangentAt(Pt(4, 2)))

	// Lower semicircle from (0,0) to (1,0); at the bottom of the dip the
	// direction of travel is +x.
	arc := Segment{V(0, 0, 1), V(1, 0, 0)}
	got := arc.TangentAt(Pt(0.5, -0.5)).Normalize()
	diff(t, Vec(1, 0), got, approx)

	// Negative bulge sweeps the other way.
	rev := Segment{V(1, 0, -1), V(0, 0, 0)}
	diff(t, Vec(-1, 0), rev.TangentAt(Pt(0.5, -0.5)).Normalize(), approx)
}

func TestAngleIsWithinSweep(t *testing.T) {
	// CCW sweep from π covering the lower half circle.
	if !angleIsWithinSweep(math.Pi, math.Pi, 3*math.Pi/2, 1e-9) {
		t.Error("expected 3π/2 to lie within the sweep")
	}
	if angleIsWithinSweep(math.Pi, math.Pi, math.Pi/2, 1e-9) {
		t.Error("expected π/2 to lie outside the sweep")
	}
	// CW sweep from π/2 down to -π/2.
	if !angleIsWithinSweep(math.Pi/2, -math.Pi, 0, 1e-9) {
		t.Error("expected 0 to lie within the clockwise sweep")
	}
	if angleIsWithinSweep(math.Pi/2, -math.Pi, math.Pi, 1e-9) {
		t.Error("expected π to lie outside the clockwise sweep")
	}
}
