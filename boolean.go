package contour

// BooleanOp selects the set operation performed by [Combine].
type BooleanOp uint8

const (
	// BooleanOr is the union of the two enclosed regions.
	BooleanOr BooleanOp = iota
	// BooleanAnd is the intersection of the two enclosed regions.
	BooleanAnd
	// BooleanNot is the first region with the second subtracted.
	BooleanNot
	// BooleanXor is the symmetric difference of the two regions.
	BooleanXor
)

func (op BooleanOp) String() string {
	switch op {
	case BooleanOr:
		return "or"
	case BooleanAnd:
		return "and"
	case BooleanNot:
		return "not"
	case BooleanXor:
		return "xor"
	default:
		return "unknown"
	}
}

// CombineOptions tunes [CombineOpt].
type CombineOptions struct {
	// PosEqualEps is the distance below which two positions are considered
	// the same point. Zero selects [DefaultPosEqualEps].
	PosEqualEps float64
	// SliceJoinEps is the distance below which slice endpoints are joined
	// during stitching. Zero selects [DefaultSliceJoinEps].
	SliceJoinEps float64
}

func (opts CombineOptions) withDefaults() CombineOptions {
	if opts.PosEqualEps == 0 {
		opts.PosEqualEps = DefaultPosEqualEps
	}
	if opts.SliceJoinEps == 0 {
		opts.SliceJoinEps = DefaultSliceJoinEps
	}
	return opts
}

// Combine computes a set operation between two closed polylines using
// default options. See [CombineOpt].
func Combine(a, b Polyline, op BooleanOp) ([]Polyline, error) {
	return CombineOpt(a, b, op, CombineOptions{})
}

// CombineOpt computes a set operation between the regions enclosed by two
// closed polylines. Result loops oriented counter-clockwise bound kept
// regions; clockwise loops are holes inside them.
//
// A degenerate operand (open, or fewer than two vertices) is treated as the
// empty set. Disjoint and fully contained inputs resolve without slicing,
// via containment tests.
func CombineOpt(a, b Polyline, op BooleanOp, opts CombineOptions) ([]Polyline, error) {
	opts = opts.withDefaults()

	aOK := a.Closed && a.SegmentCount() > 0
	bOK := b.Closed && b.SegmentCount() > 0
	if !aOK || !bOK {
		var out []Polyline
		switch op {
		case BooleanOr, BooleanXor:
			if aOK {
				out = append(out, a.Clone())
			}
			if bOK {
				out = append(out, b.Clone())
			}
		case BooleanAnd:
		case BooleanNot:
			if aOK {
				out = append(out, a.Clone())
			}
		}
		return out, nil
	}

	// Work on counter-clockwise copies so that kept regions always lie left
	// of the traversal direction.
	if !a.IsCCW() {
		a = a.Reverse()
	}
	if !b.IsCCW() {
		b = b.Reverse()
	}

	if op == BooleanXor {
		// A xor B = (A − B) ∪ (B − A).
		r1, err := combineCore(a, b, BooleanNot, opts)
		if err != nil {
			return nil, err
		}
		r2, err := combineCore(b, a, BooleanNot, opts)
		if err != nil {
			return nil, err
		}
		return append(r1, r2...), nil
	}
	return combineCore(a, b, op, opts)
}

type sliceClass uint8

const (
	sliceOutside sliceClass = iota
	sliceInside
	sliceOnBoundary
)

func combineCore(a, b Polyline, op BooleanOp, opts CombineOptions) ([]Polyline, error) {
	posEps := opts.PosEqualEps
	aIndex := NewSpatialIndex(a, posEps)
	bIndex := NewSpatialIndex(b, posEps)
	intrs := FindIntersectsOpt(a, b, IntersectsOptions{PosEqualEps: posEps, Index: aIndex})

	if intrs.IsEmpty() {
		return combineDisjoint(a, b, op), nil
	}

	var cutsA, cutsB []dissectionPoint
	for _, x := range intrs.Basic {
		cutsA = append(cutsA, dissectionPoint{x.SegIndex1, x.Point})
		cutsB = append(cutsB, dissectionPoint{x.SegIndex2, x.Point})
	}
	for _, ov := range intrs.Overlaps {
		cutsA = append(cutsA,
			dissectionPoint{ov.SegIndex1, ov.Point1},
			dissectionPoint{ov.SegIndex1, ov.Point2})
		cutsB = append(cutsB,
			dissectionPoint{ov.SegIndex2, ov.Point1},
			dissectionPoint{ov.SegIndex2, ov.Point2})
	}

	var kept []dissectedSlice
	for _, sl := range sliceAtPoints(a, cutsA, posEps) {
		switch classifySlice(sl, b, bIndex, posEps) {
		case sliceOutside:
			if op == BooleanOr || op == BooleanNot {
				kept = append(kept, dissectedSlice{source: 0, pline: sl})
			}
		case sliceInside:
			if op == BooleanAnd {
				kept = append(kept, dissectedSlice{source: 0, pline: sl})
			}
		case sliceOnBoundary:
			// A coincident run borders the result if and only if result
			// membership differs across it. The first polyline contributes
			// the single kept copy.
			if boundarySliceKept(sl, a, b, op, posEps) {
				kept = append(kept, dissectedSlice{source: 0, pline: sl})
			}
		}
	}
	for _, sl := range sliceAtPoints(b, cutsB, posEps) {
		switch classifySlice(sl, a, aIndex, posEps) {
		case sliceOutside:
			if op == BooleanOr {
				kept = append(kept, dissectedSlice{source: 1, pline: sl})
			}
		case sliceInside:
			switch op {
			case BooleanAnd:
				kept = append(kept, dissectedSlice{source: 1, pline: sl})
			case BooleanNot:
				// The removed region's boundary bounds the remainder from
				// the other side.
				kept = append(kept, dissectedSlice{source: 1, pline: sl.Reverse()})
			}
		case sliceOnBoundary:
			// Dropped: the coincident copy from the first polyline decides.
		}
	}
	return stitchSlices(kept, opts.SliceJoinEps, posEps, false)
}

// combineDisjoint resolves an operation between polylines without boundary
// intersections: the inputs are either fully disjoint or one contains the
// other.
func combineDisjoint(a, b Polyline, op BooleanOp) []Polyline {
	aInB := b.Contains(a.Vertices[0].Pos())
	bInA := a.Contains(b.Vertices[0].Pos())
	switch op {
	case BooleanOr:
		switch {
		case aInB:
			return []Polyline{b.Clone()}
		case bInA:
			return []Polyline{a.Clone()}
		default:
			return []Polyline{a.Clone(), b.Clone()}
		}
	case BooleanAnd:
		switch {
		case aInB:
			return []Polyline{a.Clone()}
		case bInA:
			return []Polyline{b.Clone()}
		default:
			return nil
		}
	case BooleanNot:
		switch {
		case aInB:
			return nil
		case bInA:
			return []Polyline{a.Clone(), b.Reverse()}
		default:
			return []Polyline{a.Clone()}
		}
	default:
		return nil
	}
}

// classifySlice tags a slice by where its representative point lies relative
// to the other polyline. Slices are bounded by intersection cuts, so the
// midpoint of the first segment represents the whole slice.
func classifySlice(sl, other Polyline, otherIndex *SpatialIndex, posEps float64) sliceClass {
	pt := sl.Segment(0).Midpoint()
	onBoundary := false
	otherIndex.Visit(NewRectFromPoints(pt, pt).Inflate(posEps), func(i int) bool {
		if pt.DistanceSquared(other.Segment(i).ClosestPoint(pt)) < posEps*posEps {
			onBoundary = true
			return false
		}
		return true
	})
	if onBoundary {
		return sliceOnBoundary
	}
	if other.Contains(pt) {
		return sliceInside
	}
	return sliceOutside
}

// boundarySliceKept probes both sides of a coincident slice and keeps it when
// exactly one side belongs to the operation's result region.
func boundarySliceKept(sl, a, b Polyline, op BooleanOp, posEps float64) bool {
	s := sl.Segment(0)
	mid := s.Midpoint()

	normal := s.TangentAt(mid).Normalize().Rot90CCW()
	delta := 10 * posEps

	inResult := func(pt Point) bool {
		inA := a.Contains(pt)
		inB := b.Contains(pt)
		switch op {
		case BooleanOr:
			return inA || inB
		case BooleanAnd:
			return inA && inB
		case BooleanNot:
			return inA && !inB
		default:
			return false
		}
	}
	left := inResult(mid.Translate(normal.Mul(delta)))
	right := inResult(mid.Translate(normal.Mul(-delta)))
	return left != right
}
