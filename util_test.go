package contour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// circle returns a closed two-vertex polyline tracing a full
// counter-clockwise circle.
func circle(center Point, radius float64) Polyline {
	return ClosedPolyline(
		V(center.X-radius, center.Y, 1),
		V(center.X+radius, center.Y, 1),
	)
}

// rectangle returns a closed counter-clockwise axis-aligned rectangle.
func rectangle(x0, y0, x1, y1 float64) Polyline {
	return ClosedPolyline(
		V(x0, y0, 0),
		V(x1, y0, 0),
		V(x1, y1, 0),
		V(x0, y1, 0),
	)
}

// totalArea sums the signed areas of a set of polylines, the natural measure
// for results that mix counter-clockwise loops and clockwise holes.
func totalArea(plines []Polyline) float64 {
	total := 0.0
	for _, p := range plines {
		total += p.SignedArea()
	}
	return total
}
