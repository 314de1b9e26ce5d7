package contour

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPolylineSignedArea(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	sq := rectangle(0, 0, 10, 10)
	diff(t, 100.0, sq.SignedArea(), approx)
	if !sq.IsCCW() {
		t.Error("expected counter-clockwise orientation")
	}
	diff(t, -100.0, sq.Reverse().SignedArea(), approx)

	// A full circle built from two bulge-1 vertices.
	diff(t, math.Pi*4, circle(Pt(3, -2), 2).SignedArea(), approx)

	// Upper half disk: a diameter line plus a semicircular arc.
	half := ClosedPolyline(V(-1, 0, 0), V(1, 0, 1))
	diff(t, math.Pi/2, half.SignedArea(), approx)
	diff(t, -math.Pi/2, half.Reverse().SignedArea(), approx)

	// Open polylines enclose nothing.
	diff(t, 0.0, OpenPolyline(V(0, 0, 0), V(1, 0, 0), V(1, 1, 0)).SignedArea())
}

func TestPolylinePathLength(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	diff(t, 40.0, rectangle(0, 0, 10, 10).PathLength(), approx)
	diff(t, 2*math.Pi, circle(Pt(0, 0), 1).PathLength(), approx)
	diff(t, (2+math.Pi), ClosedPolyline(V(-1, 0, 0), V(1, 0, 1)).PathLength(), approx)
}

func TestPolylineExtents(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	bbox, ok := circle(Pt(1, 2), 3).Extents()
	if !ok {
		t.Fatal("expected extents")
	}
	diff(t, Rect{-2, -1, 4, 5}, bbox, approx)

	// Arc bulges extend the box beyond the vertex hull.
	p := ClosedPolyline(V(0, 0, 0), V(2, 0, 1), V(2, 2, 0), V(0, 2, 0))
	bbox, ok = p.Extents()
	if !ok {
		t.Fatal("expected extents")
	}
	diff(t, Rect{0, 0, 3, 2}, bbox, approx)

	if _, ok := OpenPolyline(V(1, 1, 0)).Extents(); ok {
		t.Error("expected no extents for a single vertex")
	}
}

func TestPolylineReverse(t *testing.T) {
	p := OpenPolyline(V(0, 0, 0.5), V(1, 0, -0.2), V(2, 1, 0))
	got := p.Reverse()
	want := OpenPolyline(V(2, 1, 0.2), V(1, 0, -0.5), V(0, 0, 0))
	diff(t, want, got)

	// Reversing twice is the identity.
	diff(t, p, got.Reverse())

	closed := ClosedPolyline(V(0, 0, 0), V(4, 0, 1), V(4, 4, 0))
	diff(t, closed.SignedArea(), -closed.Reverse().SignedArea(), cmpopts.EquateApprox(0, 1e-12))
}

func TestPolylineWindingNumber(t *testing.T) {
	c := circle(Pt(0, 0), 1)
	diff(t, 1, c.WindingNumber(Pt(0, 0))) // center lies on both chords
	diff(t, 1, c.WindingNumber(Pt(0.3, 0.6)))
	diff(t, 0, c.WindingNumber(Pt(1.5, 0)))
	diff(t, 0, c.WindingNumber(Pt(0, -1.2)))
	diff(t, -1, c.Reverse().WindingNumber(Pt(0, 0)))

	// Upper half disk: the arc side and the chord side behave differently.
	half := ClosedPolyline(V(-1, 0, 0), V(1, 0, 1))
	diff(t, 1, half.WindingNumber(Pt(0, 0.5)))
	diff(t, 0, half.WindingNumber(Pt(0, -0.5)))
	diff(t, 0, half.WindingNumber(Pt(1.5, 0.2)))

	// A square with one edge bulged outward.
	p := ClosedPolyline(V(0, 0, 0), V(2, 0, 1), V(2, 2, 0), V(0, 2, 0))
	diff(t, 1, p.WindingNumber(Pt(0.5, 1)))
	diff(t, 1, p.WindingNumber(Pt(2.5, 1))) // inside the bulge only
	diff(t, 0, p.WindingNumber(Pt(-0.5, 1)))

	// The same edge bulged inward excludes the lens.
	q := ClosedPolyline(V(0, 0, 0), V(2, 0, -1), V(2, 2, 0), V(0, 2, 0))
	diff(t, 1, q.WindingNumber(Pt(0.5, 1)))
	diff(t, 0, q.WindingNumber(Pt(1.9, 1)))

	// Open polylines have no winding.
	diff(t, 0, OpenPolyline(V(0, 0, 0), V(2, 0, 0)).WindingNumber(Pt(1, -1)))
}

func TestPolylineClosestPoint(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	sq := rectangle(0, 0, 10, 10)
	pt, segIdx, ok := sq.ClosestPoint(Pt(5, -3))
	if !ok {
		t.Fatal("expected a closest point")
	}
	diff(t, Pt(5, 0), pt, approx)
	diff(t, 0, segIdx)

	pt, segIdx, ok = sq.ClosestPoint(Pt(12, 12))
	if !ok {
		t.Fatal("expected a closest point")
	}
	diff(t, Pt(10, 10), pt, approx)

	c := circle(Pt(0, 0), 2)
	pt, _, ok = c.ClosestPoint(Pt(0, -5))
	if !ok {
		t.Fatal("expected a closest point")
	}
	diff(t, Pt(0, -2), pt, approx)
}

func TestPolylineTranslateScale(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	p := ClosedPolyline(V(0, 0, 0), V(2, 0, 1), V(2, 2, 0))
	moved := p.Translate(Vec(3, -1))
	diff(t, V(3, -1, 0), moved.Vertices[0])
	diff(t, p.SignedArea(), moved.SignedArea(), approx)

	scaled := p.Scale(2)
	diff(t, V(4, 0, 1), scaled.Vertices[1])
	diff(t, 4*p.SignedArea(), scaled.SignedArea(), approx)
	diff(t, 2*p.PathLength(), scaled.PathLength(), approx)
}
