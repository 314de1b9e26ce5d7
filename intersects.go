package contour

// IntersectKind tags a point intersection between two polyline segments.
type IntersectKind uint8

const (
	// IntersectProper is a transversal crossing.
	IntersectProper IntersectKind = iota
	// IntersectTangent is a touching intersection without a crossing.
	IntersectTangent
)

// Intersect is a point intersection between segment SegIndex1 of the first
// polyline and SegIndex2 of the second. T1 and T2 are the parameters of the
// point on the respective segments.
type Intersect struct {
	SegIndex1 int
	SegIndex2 int
	Point     Point
	T1, T2    float64
	Kind      IntersectKind
}

// OverlapIntersect is a range of coincident points shared by segment
// SegIndex1 of the first polyline and SegIndex2 of the second. Point1 and
// Point2 bound the range, ordered along the first segment's direction.
type OverlapIntersect struct {
	SegIndex1 int
	SegIndex2 int
	Point1    Point
	Point2    Point
}

// Intersects collects all intersections found between two polylines (or a
// polyline and itself). Coincident ranges are reported once as overlaps, not
// as point intersections.
type Intersects struct {
	Basic    []Intersect
	Overlaps []OverlapIntersect
}

// IsEmpty reports whether no intersections were found.
func (x Intersects) IsEmpty() bool {
	return len(x.Basic) == 0 && len(x.Overlaps) == 0
}

// IntersectsOptions tunes intersection discovery.
type IntersectsOptions struct {
	// PosEqualEps is the distance below which two positions are considered
	// the same point. Zero selects [DefaultPosEqualEps].
	PosEqualEps float64
	// Index is a prebuilt spatial index of the first polyline. If nil, one is
	// built for the call.
	Index *SpatialIndex
}

func (opts IntersectsOptions) withDefaults() IntersectsOptions {
	if opts.PosEqualEps == 0 {
		opts.PosEqualEps = DefaultPosEqualEps
	}
	return opts
}

// FindIntersects returns all intersections between two polylines using
// default options. See [FindIntersectsOpt].
func FindIntersects(a, b Polyline) Intersects {
	return FindIntersectsOpt(a, b, IntersectsOptions{})
}

// FindIntersectsOpt returns all intersections between two polylines. Every
// pair of segments whose true intersection lies farther than the position
// tolerance from all reported points is a defect. Points closer than the
// tolerance to an already reported point are deduplicated.
func FindIntersectsOpt(a, b Polyline, opts IntersectsOptions) Intersects {
	opts = opts.withDefaults()
	var out Intersects
	if a.SegmentCount() == 0 || b.SegmentCount() == 0 {
		return out
	}
	index := opts.Index
	if index == nil {
		index = NewSpatialIndex(a, opts.PosEqualEps)
	}

	for j, sb := range b.Segments() {
		query := sb.BoundingBox().Inflate(opts.PosEqualEps)
		index.Visit(query, func(i int) bool {
			out.append(i, j, a.Segment(i), sb, opts.PosEqualEps)
			return true
		})
	}
	return out
}

// SelfIntersects returns all self-intersections of a polyline using default
// options. See [SelfIntersectsOpt].
func SelfIntersects(p Polyline) Intersects {
	return SelfIntersectsOpt(p, IntersectsOptions{})
}

// SelfIntersectsOpt returns all self-intersections of a polyline. Adjacent
// segments meeting at their shared vertex are expected and not reported;
// any other contact between two segments is.
func SelfIntersectsOpt(p Polyline, opts IntersectsOptions) Intersects {
	opts = opts.withDefaults()
	var out Intersects
	n := p.SegmentCount()
	if n < 2 {
		return out
	}
	index := opts.Index
	if index == nil {
		index = NewSpatialIndex(p, opts.PosEqualEps)
	}

	for i := range n {
		si := p.Segment(i)
		query := si.BoundingBox().Inflate(opts.PosEqualEps)
		index.Visit(query, func(j int) bool {
			if j <= i {
				return true
			}
			sharedVertex, adjacent := p.sharedVertex(i, j)
			if adjacent && j == i+1 && n == 2 && p.Closed {
				// Two-segment closed polyline: the segments share both
				// endpoints; only interior contacts count.
				out.appendExcluding(i, j, si, p.Segment(j), opts.PosEqualEps,
					p.Vertices[0].Pos(), p.Vertices[1].Pos())
				return true
			}
			if adjacent {
				out.appendExcluding(i, j, si, p.Segment(j), opts.PosEqualEps, sharedVertex)
				return true
			}
			out.append(i, j, si, p.Segment(j), opts.PosEqualEps)
			return true
		})
	}
	return out
}

// sharedVertex returns the position shared by segments i and j when they are
// adjacent, for i < j.
func (p Polyline) sharedVertex(i, j int) (Point, bool) {
	if j == i+1 {
		return p.Vertices[j].Pos(), true
	}
	if p.Closed && i == 0 && j == p.SegmentCount()-1 {
		return p.Vertices[0].Pos(), true
	}
	return Point{}, false
}

func (x *Intersects) append(i, j int, si, sj Segment, eps float64) {
	x.appendExcluding(i, j, si, sj, eps)
}

// appendExcluding records the intersection of two segments, dropping point
// intersections that coincide with any of the excluded positions or with a
// previously recorded point.
func (x *Intersects) appendExcluding(i, j int, si, sj Segment, eps float64, exclude ...Point) {
	intr := IntersectSegments(si, sj, eps)
	addPoint := func(pt Point, kind IntersectKind) {
		for _, ex := range exclude {
			if pt.Close(ex, eps) {
				return
			}
		}
		for _, prev := range x.Basic {
			if prev.Point.Close(pt, eps) {
				return
			}
		}
		x.Basic = append(x.Basic, Intersect{
			SegIndex1: i,
			SegIndex2: j,
			Point:     pt,
			T1:        si.ParamAt(pt),
			T2:        sj.ParamAt(pt),
			Kind:      kind,
		})
	}

	switch intr.Kind {
	case SegIntersectOne:
		addPoint(intr.Point1, IntersectProper)
	case SegIntersectTangent:
		addPoint(intr.Point1, IntersectTangent)
	case SegIntersectTwo:
		addPoint(intr.Point1, IntersectProper)
		addPoint(intr.Point2, IntersectProper)
	case SegIntersectOverlap:
		x.Overlaps = append(x.Overlaps, OverlapIntersect{
			SegIndex1: i,
			SegIndex2: j,
			Point1:    intr.Point1,
			Point2:    intr.Point2,
		})
	}
}
