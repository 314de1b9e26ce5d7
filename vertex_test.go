package contour

import "testing"

func TestVertexBulgeClassification(t *testing.T) {
	if !V(0, 0, 0).BulgeIsZero() {
		t.Error("expected zero bulge")
	}
	// Values below the internal threshold count as zero.
	if !V(0, 0, 1e-10).BulgeIsZero() {
		t.Error("expected near-zero bulge to count as zero")
	}
	if !V(0, 0, 0.5).BulgeIsPositive() || V(0, 0, 0.5).BulgeIsNegative() {
		t.Error("expected positive bulge")
	}
	if !V(0, 0, -0.5).BulgeIsNegative() {
		t.Error("expected negative bulge")
	}
}

func TestVertexWith(t *testing.T) {
	v := V(1, 2, 0.3)
	diff(t, Pt(1, 2), v.Pos())
	diff(t, V(1, 2, -0.7), v.WithBulge(-0.7))
	diff(t, V(4, 5, 0.3), v.WithPos(Pt(4, 5)))
}
