package contour

import "math"

const tau = 2 * math.Pi

// Default tolerances used by [Polyline.Offset], [Combine], and
// [FindIntersects] when no options are given. They match coordinate
// magnitudes in the low hundreds; callers working at very different scales
// should tune the options instead.
const (
	// DefaultPosEqualEps is the distance below which two positions are
	// considered the same point.
	DefaultPosEqualEps = 1e-5
	// DefaultSliceJoinEps is the distance below which two slice endpoints are
	// considered joinable during stitching.
	DefaultSliceJoinEps = 1e-4
	// DefaultOffsetDistEps is the tolerance applied to the offset distance
	// when testing whether a point has collapsed back toward the input.
	DefaultOffsetDistEps = 1e-4
)

// bulgeEps is the threshold below which a bulge is treated as zero, i.e. the
// segment is treated as a line.
const bulgeEps = 1e-8

// realEps is the tolerance for scalar comparisons that are not distances,
// such as determinants and angle deltas.
const realEps = 1e-8

func fuzzyEq(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// fuzzyInRange reports whether lo - eps <= v <= hi + eps.
func fuzzyInRange(lo, v, hi, eps float64) bool {
	return v+eps >= lo && v <= hi+eps
}

// normalizeRadians maps an angle into [0, 2π).
func normalizeRadians(ang float64) float64 {
	ang = math.Mod(ang, tau)
	if ang < 0 {
		ang += tau
	}
	return ang
}

// deltaAngle returns the signed sweep from a1 to a2, i.e. the value d with the
// smallest magnitude such that a1 + d = a2 modulo 2π.
func deltaAngle(a1, a2 float64) float64 {
	d := normalizeRadians(a2 - a1)
	if d > math.Pi {
		d -= tau
	}
	return d
}

// angleIsWithinSweep reports whether ang lies on the arc starting at start
// with the given signed sweep. eps is an angular tolerance.
func angleIsWithinSweep(start, sweep, ang, eps float64) bool {
	if sweep >= 0 {
		d := normalizeRadians(ang - start)
		return d <= sweep+eps || tau-d < eps
	}
	d := normalizeRadians(start - ang)
	return d <= -sweep+eps || tau-d < eps
}

// isLeft returns a positive value if pt lies left of the directed line from p0
// to p1, negative if right, and zero if collinear.
func isLeft(p0, p1, pt Point) float64 {
	return p1.Sub(p0).Cross(pt.Sub(p0))
}
