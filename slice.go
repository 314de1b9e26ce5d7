package contour

import (
	"errors"
	"slices"
)

// ErrStitchFailed reports that a slice endpoint could not be matched to any
// stitching partner within the join tolerance. It indicates pathological
// input precision or a tolerance mismatch, and is distinct from an empty but
// valid result.
var ErrStitchFailed = errors.New("contour: slice endpoint has no stitching partner within tolerance")

// dissectionPoint is a cut on a polyline: a position lying on the segment
// with the given index.
type dissectionPoint struct {
	segIdx int
	pos    Point
}

// dissectedSlice is an open sub-polyline cut from a source polyline, pending
// validity classification and stitching.
type dissectedSlice struct {
	source int
	pline  Polyline
}

// appendVertexDedup appends v, replacing the previous vertex when both share
// a position within eps. The newer vertex wins because its bulge describes
// the outgoing segment.
func appendVertexDedup(verts []Vertex, v Vertex, eps float64) []Vertex {
	if n := len(verts); n > 0 && verts[n-1].Pos().Close(v.Pos(), eps) {
		verts[n-1] = v
		return verts
	}
	return append(verts, v)
}

// sortDissectionPoints orders cut points along the polyline's traversal
// direction: by segment index, then by distance from the segment's start.
func sortDissectionPoints(p Polyline, pts []dissectionPoint) {
	slices.SortFunc(pts, func(a, b dissectionPoint) int {
		if a.segIdx != b.segIdx {
			return a.segIdx - b.segIdx
		}
		start := p.Vertices[a.segIdx].Pos()
		d1 := a.pos.DistanceSquared(start)
		d2 := b.pos.DistanceSquared(start)
		switch {
		case d1 < d2:
			return -1
		case d1 > d2:
			return 1
		default:
			return 0
		}
	})
}

// dedupDissectionPoints removes sorted cut points that coincide within eps on
// the same segment. Cuts at the same position on different segments are all
// kept: a self-intersection is visited once per involved segment, and the
// polyline must be split at each visit.
func dedupDissectionPoints(pts []dissectionPoint, eps float64) []dissectionPoint {
	out := pts[:0]
	for _, pt := range pts {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.segIdx == pt.segIdx && prev.pos.Close(pt.pos, eps) {
				continue
			}
		}
		out = append(out, pt)
	}
	// The last point can wrap around onto the first.
	if len(out) > 1 {
		first, last := out[0], out[len(out)-1]
		if first.segIdx == last.segIdx && first.pos.Close(last.pos, eps) {
			out = out[:len(out)-1]
		}
	}
	return out
}

// slicePolyline cuts the open sub-polyline between two cut points out of src,
// walking src in traversal direction and wrapping past the end for closed
// polylines. fullLoop forces a complete wrap when both cuts coincide. ok is
// false for degenerate (near zero length) slices.
func slicePolyline(src Polyline, a, b dissectionPoint, fullLoop bool, eps float64) (Polyline, bool) {
	n := src.SegmentCount()
	if n == 0 {
		return Polyline{}, false
	}

	segA := src.Segment(a.segIdx)
	splitA := segA.SplitAtPoint(a.pos)
	cur := splitA.SplitVertex

	if !fullLoop && a.segIdx == b.segIdx && segA.ParamAt(b.pos) >= segA.ParamAt(a.pos) {
		if a.pos.Close(b.pos, eps) {
			return Polyline{}, false
		}
		sub := Segment{V1: cur, V2: segA.V2}
		splitB := sub.SplitAtPoint(b.pos)
		return OpenPolyline(splitB.UpdatedStart, vertexAt(b.pos, 0)), true
	}

	verts := appendVertexDedup(nil, cur, eps)
	vi := a.segIdx + 1
	if src.Closed {
		vi %= len(src.Vertices)
	} else if vi >= len(src.Vertices) {
		return Polyline{}, false
	}
	for steps := 0; ; steps++ {
		if steps > n {
			return Polyline{}, false
		}
		verts = appendVertexDedup(verts, src.Vertices[vi], eps)
		if vi == b.segIdx {
			break
		}
		vi++
		if src.Closed {
			vi %= len(src.Vertices)
		} else if vi >= len(src.Vertices) {
			return Polyline{}, false
		}
	}

	segB := src.Segment(b.segIdx)
	splitB := segB.SplitAtPoint(b.pos)
	verts[len(verts)-1] = verts[len(verts)-1].WithBulge(splitB.UpdatedStart.Bulge)
	verts = appendVertexDedup(verts, vertexAt(b.pos, 0), eps)
	if len(verts) < 2 {
		return Polyline{}, false
	}
	return OpenPolyline(verts...), true
}

// sliceEntire cuts a closed polyline open at a single point, yielding one
// slice that traverses the whole loop.
func sliceEntire(src Polyline, a dissectionPoint, eps float64) (Polyline, bool) {
	return slicePolyline(src, a, a, true, eps)
}

// sliceAtPoints dissects src at the given cut points into open slices. For a
// closed polyline the slices cover the loop including the wrap from the last
// cut back to the first; for an open polyline the endpoints act as implicit
// cuts.
func sliceAtPoints(src Polyline, pts []dissectionPoint, eps float64) []Polyline {
	sortDissectionPoints(src, pts)
	pts = dedupDissectionPoints(pts, eps)
	if len(pts) == 0 {
		return nil
	}

	var out []Polyline
	add := func(a, b dissectionPoint) {
		if sl, ok := slicePolyline(src, a, b, false, eps); ok {
			out = append(out, sl)
		}
	}

	if !src.Closed {
		first := dissectionPoint{0, src.Vertices[0].Pos()}
		last := dissectionPoint{src.SegmentCount() - 1, src.Vertices[len(src.Vertices)-1].Pos()}
		all := make([]dissectionPoint, 0, len(pts)+2)
		if !pts[0].pos.Close(first.pos, eps) {
			all = append(all, first)
		}
		all = append(all, pts...)
		if !pts[len(pts)-1].pos.Close(last.pos, eps) {
			all = append(all, last)
		}
		for i := 0; i+1 < len(all); i++ {
			add(all[i], all[i+1])
		}
		return out
	}

	if len(pts) == 1 {
		if sl, ok := sliceEntire(src, pts[0], eps); ok {
			out = append(out, sl)
		}
		return out
	}
	for i := range pts {
		add(pts[i], pts[(i+1)%len(pts)])
	}
	return out
}

// stitchSlices reassembles open slices into polylines by matching endpoint
// positions within joinEps. Chains whose ends meet become closed loops. When
// several unvisited slices start within joinEps of a chain's end, the
// continuation from the same source polyline wins, then the lowest slice
// index; this keeps ambiguous junctions deterministic.
//
// If allowOpen is set, chains that cannot close are returned as open
// polylines; otherwise a dangling chain is an invariant failure reported as
// [ErrStitchFailed].
func stitchSlices(sls []dissectedSlice, joinEps, posEps float64, allowOpen bool) ([]Polyline, error) {
	if len(sls) == 0 {
		return nil, nil
	}

	boxes := make([]Rect, len(sls))
	for i, sl := range sls {
		start := sl.pline.Vertices[0].Pos()
		boxes[i] = NewRectFromPoints(start, start).Inflate(joinEps)
	}
	index := NewSpatialIndexFromBoxes(boxes)

	visited := make([]bool, len(sls))
	var results []Polyline
	for i := range sls {
		if visited[i] {
			continue
		}
		visited[i] = true
		verts := append([]Vertex(nil), sls[i].pline.Vertices...)
		cur := i

		for steps := 0; ; steps++ {
			if steps > len(sls) {
				return nil, ErrStitchFailed
			}
			end := verts[len(verts)-1].Pos()

			var candidates []int
			index.Visit(NewRectFromPoints(end, end), func(j int) bool {
				if !visited[j] && sls[j].pline.Vertices[0].Pos().Close(end, joinEps) {
					candidates = append(candidates, j)
				}
				return true
			})

			if len(candidates) == 0 {
				start := verts[0].Pos()
				switch {
				case start.Close(end, joinEps) && len(verts) >= 3:
					verts = verts[:len(verts)-1]
					results = append(results, ClosedPolyline(verts...))
				case allowOpen && len(verts) >= 2:
					results = append(results, OpenPolyline(verts...))
				case start.Close(end, joinEps):
					// Sliver chain collapsing to a point; drop it.
				default:
					return nil, ErrStitchFailed
				}
				break
			}

			slices.Sort(candidates)
			next := candidates[0]
			for _, j := range candidates {
				if sls[j].source == sls[cur].source {
					next = j
					break
				}
			}
			visited[next] = true
			// Drop the chain's end vertex; the next slice's start vertex
			// replaces it.
			verts = verts[:len(verts)-1]
			for _, v := range sls[next].pline.Vertices {
				verts = appendVertexDedup(verts, v, posEps)
			}
			cur = next
		}
	}
	return results, nil
}
