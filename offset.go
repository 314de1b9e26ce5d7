package contour

import (
	"math"
)

// OffsetOptions tunes [Polyline.OffsetOpt].
type OffsetOptions struct {
	// PosEqualEps is the distance below which two positions are considered
	// the same point. Zero selects [DefaultPosEqualEps].
	PosEqualEps float64
	// SliceJoinEps is the distance below which slice endpoints are joined
	// during stitching. Zero selects [DefaultSliceJoinEps].
	SliceJoinEps float64
	// OffsetDistEps is the tolerance applied to the offset distance when
	// testing whether a candidate slice collapsed back toward the input.
	// Zero selects [DefaultOffsetDistEps].
	OffsetDistEps float64
	// Index is a prebuilt spatial index of the input polyline. If nil, one is
	// built for the call.
	Index *SpatialIndex
}

func (opts OffsetOptions) withDefaults() OffsetOptions {
	if opts.PosEqualEps == 0 {
		opts.PosEqualEps = DefaultPosEqualEps
	}
	if opts.SliceJoinEps == 0 {
		opts.SliceJoinEps = DefaultSliceJoinEps
	}
	if opts.OffsetDistEps == 0 {
		opts.OffsetDistEps = DefaultOffsetDistEps
	}
	return opts
}

// Offset returns the polyline's parallel offset at the given signed distance
// using default options. See [Polyline.OffsetOpt].
func (p Polyline) Offset(distance float64) ([]Polyline, error) {
	return p.OffsetOpt(distance, OffsetOptions{})
}

// OffsetOpt returns one or more polylines tracing the input's boundary at a
// constant distance. For a closed counter-clockwise polyline a positive
// distance offsets outward and a negative distance inward; the convention
// follows the sign of the enclosed area. Open inputs yield open results.
//
// A distance of zero returns the input unchanged. A distance that collapses
// the whole shape yields an empty, non-error result. The result may contain
// several disjoint loops, for example when an inward offset splits a shape
// at a narrow neck.
func (p Polyline) OffsetOpt(distance float64, opts OffsetOptions) ([]Polyline, error) {
	opts = opts.withDefaults()
	if p.SegmentCount() == 0 {
		return nil, nil
	}
	if distance == 0 {
		return []Polyline{p.Clone()}, nil
	}

	raw := createRawOffset(p, distance, opts.PosEqualEps)
	if raw.SegmentCount() == 0 {
		return nil, nil
	}
	index := opts.Index
	if index == nil {
		index = NewSpatialIndex(p, opts.PosEqualEps)
	}
	return resolveRawOffset(p, index, raw, distance, opts)
}

// rawOffsetSeg is one segment of the input offset perpendicular to itself,
// before joining. collapsed marks an arc whose radius did not survive the
// offset; it is treated as a line from then on.
type rawOffsetSeg struct {
	v1, v2    Vertex
	origJoinV Point // input vertex at the junction with the next segment
	collapsed bool
}

func offsetSeg(s Segment, distance, eps float64) (rawOffsetSeg, bool) {
	if s.IsZeroLength(eps) {
		return rawOffsetSeg{}, false
	}
	out := rawOffsetSeg{origJoinV: s.V2.Pos()}
	if s.IsLine() {
		// The interior of a counter-clockwise polyline lies left of the
		// travel direction, so outward is along the right normal.
		offs := s.V2.Pos().Sub(s.V1.Pos()).Normalize().Rot90CW().Mul(distance)
		out.v1 = vertexAt(s.V1.Pos().Translate(offs), 0)
		out.v2 = vertexAt(s.V2.Pos().Translate(offs), 0)
		return out, true
	}

	radius, center := s.ArcRadiusAndCenter()
	newRadius := radius + distance
	if s.V1.BulgeIsNegative() {
		// Clockwise arcs keep their center on the right, so the right normal
		// points inward and the radius shrinks.
		newRadius = radius - distance
	}
	bulge := s.V1.Bulge
	if newRadius < eps {
		out.collapsed = true
		bulge = 0
	}
	u1 := s.V1.Pos().Sub(center).Normalize()
	u2 := s.V2.Pos().Sub(center).Normalize()
	out.v1 = vertexAt(center.Translate(u1.Mul(newRadius)), bulge)
	out.v2 = vertexAt(center.Translate(u2.Mul(newRadius)), 0)
	return out, true
}

// createRawOffset offsets every segment of p and joins adjacent offset
// segments: coincident endpoints connect directly, crossing segments are
// trimmed to their intersection, and separating segments are bridged by an
// arc of radius |distance| around the input vertex. The result generally
// self-intersects and is resolved by resolveRawOffset.
func createRawOffset(p Polyline, distance, eps float64) Polyline {
	var segs []rawOffsetSeg
	for _, s := range p.Segments() {
		if os, ok := offsetSeg(s, distance, eps); ok {
			segs = append(segs, os)
		}
	}
	if len(segs) == 0 || (p.Closed && len(segs) < 2) {
		return Polyline{}
	}

	verts := []Vertex{segs[0].v1}
	for i := 0; i+1 < len(segs); i++ {
		verts = joinOffsetSegs(verts, segs[i], segs[i+1], eps, nil)
	}

	if !p.Closed {
		verts = appendVertexDedup(verts, segs[len(segs)-1].v2.WithBulge(0), eps)
		if len(verts) < 2 {
			return Polyline{}
		}
		return OpenPolyline(verts...)
	}

	// Wrap join between the last and first offset segments. The join may
	// trim the first segment's start, so its effective end (already placed
	// at verts[1]) is pinned for bulge recomputation, and the chain's final
	// vertex becomes the new first vertex.
	var wrapEnd *Point
	if len(verts) > 1 {
		end := verts[1].Pos()
		wrapEnd = &end
	}
	verts = joinOffsetSegs(verts, segs[len(segs)-1], segs[0], eps, wrapEnd)
	verts[0] = verts[len(verts)-1]
	verts = verts[:len(verts)-1]

	cleaned := verts[:0]
	for _, v := range verts {
		cleaned = appendVertexDedup(cleaned, v, eps)
	}
	if len(cleaned) > 1 && cleaned[0].Pos().Close(cleaned[len(cleaned)-1].Pos(), eps) {
		cleaned = cleaned[:len(cleaned)-1]
	}
	if len(cleaned) < 2 {
		return Polyline{}
	}
	return ClosedPolyline(cleaned...)
}

// joinOffsetSegs appends the vertices connecting s1's offset to s2's offset.
// On return the vertex list ends with the vertex beginning s2's
// representation. wrapEnd, when non-nil, overrides s2's end position for
// bulge recomputation after a trim (the closed-polyline wrap join).
func joinOffsetSegs(verts []Vertex, s1, s2 rawOffsetSeg, eps float64, wrapEnd *Point) []Vertex {
	e1 := s1.v2.Pos()
	st2 := s2.v1.Pos()
	if e1.Close(st2, eps) {
		return appendVertexDedup(verts, vertexAt(st2, s2.v1.Bulge), eps)
	}

	seg1 := Segment{s1.v1, s1.v2}
	seg2 := Segment{s2.v1, s2.v2}
	intr := IntersectSegments(seg1, seg2, eps)

	var ip Point
	trim := false
	switch intr.Kind {
	case SegIntersectOne, SegIntersectTangent:
		ip = intr.Point1
		trim = true
	case SegIntersectTwo:
		// Trim at the crossing nearest the input vertex the join wraps.
		ip = intr.Point1
		if intr.Point2.DistanceSquared(s1.origJoinV) < intr.Point1.DistanceSquared(s1.origJoinV) {
			ip = intr.Point2
		}
		trim = true
	case SegIntersectOverlap:
		// Collinear continuation.
		return appendVertexDedup(verts, vertexAt(st2, s2.v1.Bulge), eps)
	}

	if trim {
		if seg1.IsArc() {
			_, c1 := seg1.ArcRadiusAndCenter()
			last := &verts[len(verts)-1]
			last.Bulge = bulgeForConnection(c1, last.Pos(), ip, seg1.V1.BulgeIsPositive())
		}
		var bulge float64
		if seg2.IsArc() {
			_, c2 := seg2.ArcRadiusAndCenter()
			end := seg2.V2.Pos()
			if wrapEnd != nil {
				end = *wrapEnd
			}
			bulge = bulgeForConnection(c2, ip, end, seg2.V1.BulgeIsPositive())
		}
		return appendVertexDedup(verts, vertexAt(ip, bulge), eps)
	}

	// No crossing: bridge the gap with an arc around the input vertex.
	a := e1.Sub(s1.origJoinV)
	b := st2.Sub(s1.origJoinV)
	sweep := math.Atan2(a.Cross(b), a.Dot(b))
	verts = appendVertexDedup(verts, vertexAt(e1, math.Tan(sweep/4)), eps)
	return appendVertexDedup(verts, vertexAt(st2, s2.v1.Bulge), eps)
}

// resolveRawOffset cuts the raw offset at every self-intersection and at
// every crossing with the input, discards the slices that fell closer to the
// input than the offset distance, and stitches the remainder.
func resolveRawOffset(input Polyline, inputIndex *SpatialIndex, raw Polyline, distance float64, opts OffsetOptions) ([]Polyline, error) {
	posEps := opts.PosEqualEps
	rawIndex := NewSpatialIndex(raw, posEps)
	self := SelfIntersectsOpt(raw, IntersectsOptions{PosEqualEps: posEps, Index: rawIndex})
	cross := FindIntersectsOpt(raw, input, IntersectsOptions{PosEqualEps: posEps, Index: rawIndex})

	var cuts []dissectionPoint
	for _, x := range self.Basic {
		cuts = append(cuts,
			dissectionPoint{x.SegIndex1, x.Point},
			dissectionPoint{x.SegIndex2, x.Point})
	}
	for _, ov := range self.Overlaps {
		cuts = append(cuts,
			dissectionPoint{ov.SegIndex1, ov.Point1},
			dissectionPoint{ov.SegIndex1, ov.Point2},
			dissectionPoint{ov.SegIndex2, ov.Point1},
			dissectionPoint{ov.SegIndex2, ov.Point2})
	}
	for _, x := range cross.Basic {
		cuts = append(cuts, dissectionPoint{x.SegIndex1, x.Point})
	}
	for _, ov := range cross.Overlaps {
		cuts = append(cuts,
			dissectionPoint{ov.SegIndex1, ov.Point1},
			dissectionPoint{ov.SegIndex1, ov.Point2})
	}

	absDist := math.Abs(distance)
	if len(cuts) == 0 {
		// No intersections: the raw offset stands or collapses as a whole.
		// Orientation flips when a narrow closed shape inverted.
		if input.Closed && raw.IsCCW() != input.IsCCW() {
			return nil, nil
		}
		for _, s := range raw.Segments() {
			if !pointValidForOffset(input, inputIndex, s.Midpoint(), absDist, opts.OffsetDistEps) {
				return nil, nil
			}
		}
		return []Polyline{raw}, nil
	}

	var kept []dissectedSlice
	for _, sl := range sliceAtPoints(raw, cuts, posEps) {
		if sliceValidForOffset(sl, input, inputIndex, absDist, opts.OffsetDistEps) {
			kept = append(kept, dissectedSlice{source: 0, pline: sl})
		}
	}
	return stitchSlices(kept, opts.SliceJoinEps, posEps, !input.Closed)
}

// sliceValidForOffset reports whether every sampled point of the slice kept
// the full offset distance from the input polyline. Slices are bounded by
// intersection cuts, so per-segment midpoints characterize them.
func sliceValidForOffset(sl Polyline, input Polyline, inputIndex *SpatialIndex, absDist, distTol float64) bool {
	for _, s := range sl.Segments() {
		if !pointValidForOffset(input, inputIndex, s.Midpoint(), absDist, distTol) {
			return false
		}
	}
	return true
}

// pointValidForOffset reports whether pt lies at least absDist − tol away
// from every point of p.
func pointValidForOffset(p Polyline, index *SpatialIndex, pt Point, absDist, tol float64) bool {
	minDist := absDist - tol
	minDist2 := minDist * minDist
	query := NewRectFromPoints(pt, pt).Inflate(minDist)
	valid := true
	index.Visit(query, func(i int) bool {
		closest := p.Segment(i).ClosestPoint(pt)
		if pt.DistanceSquared(closest) < minDist2 {
			valid = false
			return false
		}
		return true
	})
	return valid
}
