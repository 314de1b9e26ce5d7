package contour

import "testing"

func TestRectBasics(t *testing.T) {
	r := Rect{1, 2, 5, 7}
	diff(t, 4.0, r.Width())
	diff(t, 5.0, r.Height())
	diff(t, Pt(3, 4.5), r.Center())

	diff(t, Rect{1, 2, 5, 7}, Rect{5, 7, 1, 2}.Abs())
	diff(t, Rect{0, 1, 6, 8}, r.Inflate(1))
	diff(t, Rect{1, 2, 9, 7}, r.Union(Rect{6, 3, 9, 5}))
	diff(t, Rect{1, 0, 5, 7}, r.UnionPoint(Pt(3, 0)))
}

func TestRectOverlapsAndContains(t *testing.T) {
	r := Rect{0, 0, 4, 4}
	if !r.Overlaps(Rect{3, 3, 6, 6}) {
		t.Error("expected overlap")
	}
	// Touching edges count as overlapping.
	if !r.Overlaps(Rect{4, 0, 6, 4}) {
		t.Error("expected edge touch to overlap")
	}
	if r.Overlaps(Rect{5, 5, 6, 6}) {
		t.Error("expected no overlap")
	}
	if !r.Contains(Pt(4, 4)) {
		t.Error("expected closed edges to contain corner")
	}
	if r.Contains(Pt(4.1, 2)) {
		t.Error("expected point outside")
	}
}
