package contour

import "math"

// IndexedPolyline pairs a polyline with a spatial index over its segment
// bounding boxes.
type IndexedPolyline struct {
	Polyline Polyline
	Index    *SpatialIndex
}

// NewIndexedPolyline builds the spatial index for p. Boxes are inflated by
// eps; zero selects [DefaultPosEqualEps].
func NewIndexedPolyline(p Polyline, eps float64) IndexedPolyline {
	if eps == 0 {
		eps = DefaultPosEqualEps
	}
	return IndexedPolyline{Polyline: p, Index: NewSpatialIndex(p, eps)}
}

// Shape is a set of closed polylines forming a region with holes.
// Counter-clockwise loops bound filled areas, clockwise loops bound holes
// inside them.
type Shape struct {
	CCWLoops []IndexedPolyline
	CWLoops  []IndexedPolyline
	// Index holds one box per loop, covering the loop's extents. CCW loops
	// come first, in the same order as [Shape.Loop].
	Index *SpatialIndex
}

// NewShape partitions the given closed polylines by orientation and indexes
// them. Open or degenerate polylines are skipped.
func NewShape(loops ...Polyline) Shape {
	var s Shape
	for _, p := range loops {
		if !p.Closed || p.SegmentCount() == 0 {
			continue
		}
		ip := NewIndexedPolyline(p, DefaultPosEqualEps)
		if p.IsCCW() {
			s.CCWLoops = append(s.CCWLoops, ip)
		} else {
			s.CWLoops = append(s.CWLoops, ip)
		}
	}
	s.Index = newLoopIndex(s.CCWLoops, s.CWLoops)
	return s
}

func newLoopIndex(ccw, cw []IndexedPolyline) *SpatialIndex {
	boxes := make([]Rect, 0, len(ccw)+len(cw))
	for _, l := range ccw {
		boxes = append(boxes, l.Index.Bounds())
	}
	for _, l := range cw {
		boxes = append(boxes, l.Index.Bounds())
	}
	return NewSpatialIndexFromBoxes(boxes)
}

// LoopCount returns the total number of loops.
func (s Shape) LoopCount() int {
	return len(s.CCWLoops) + len(s.CWLoops)
}

// Loop returns the i'th loop; counter-clockwise loops come before clockwise
// ones.
func (s Shape) Loop(i int) IndexedPolyline {
	if i < len(s.CCWLoops) {
		return s.CCWLoops[i]
	}
	return s.CWLoops[i-len(s.CCWLoops)]
}

// Offset computes the parallel offset of the whole shape using default
// options. See [Shape.OffsetOpt].
func (s Shape) Offset(distance float64) (Shape, error) {
	return s.OffsetOpt(distance, OffsetOptions{})
}

// OffsetOpt computes the parallel offset of the whole shape. A positive
// distance grows the filled region: outer loops expand and holes shrink.
// A negative distance shrinks it.
//
// Each loop is offset on its own first. The offset loops are then cut at
// their mutual intersections, slices closer than the offset distance to any
// other input loop are discarded, and the survivors are stitched back into
// closed loops. The result may be empty when the region collapses.
func (s Shape) OffsetOpt(distance float64, opts OffsetOptions) (Shape, error) {
	opts = opts.withDefaults()
	posEps := opts.PosEqualEps

	type offsetLoop struct {
		parent int
		pline  Polyline
		index  *SpatialIndex
	}
	var loops []offsetLoop
	for parent := 0; parent < s.LoopCount(); parent++ {
		src := s.Loop(parent)
		loopOpts := opts
		loopOpts.Index = src.Index
		offs, err := src.Polyline.OffsetOpt(distance, loopOpts)
		if err != nil {
			return Shape{}, err
		}
		for _, op := range offs {
			// A narrow CCW loop can invert orientation when the offset
			// collapses it; those loops enclose nothing.
			if parent < len(s.CCWLoops) && !op.IsCCW() {
				continue
			}
			loops = append(loops, offsetLoop{parent, op, NewSpatialIndex(op, posEps)})
		}
	}
	if len(loops) == 0 {
		return Shape{Index: NewSpatialIndexFromBoxes(nil)}, nil
	}

	loopBoxes := make([]Rect, len(loops))
	for i, l := range loops {
		loopBoxes[i] = l.index.Bounds()
	}
	loopsIndex := NewSpatialIndexFromBoxes(loopBoxes)

	// Cut every offset loop where it crosses another offset loop.
	cuts := make([][]dissectionPoint, len(loops))
	for i, l1 := range loops {
		for _, j := range loopsIndex.Query(l1.index.Bounds()) {
			if j <= i {
				// Pairs are symmetric, visit each once.
				continue
			}
			l2 := loops[j]
			intrs := FindIntersectsOpt(l1.pline, l2.pline, IntersectsOptions{
				PosEqualEps: posEps,
				Index:       l1.index,
			})
			for _, x := range intrs.Basic {
				cuts[i] = append(cuts[i], dissectionPoint{x.SegIndex1, x.Point})
				cuts[j] = append(cuts[j], dissectionPoint{x.SegIndex2, x.Point})
			}
			for _, ov := range intrs.Overlaps {
				cuts[i] = append(cuts[i],
					dissectionPoint{ov.SegIndex1, ov.Point1},
					dissectionPoint{ov.SegIndex1, ov.Point2})
				cuts[j] = append(cuts[j],
					dissectionPoint{ov.SegIndex2, ov.Point1},
					dissectionPoint{ov.SegIndex2, ov.Point2})
			}
		}
	}

	absDist := math.Abs(distance)
	validAgainstInputs := func(sl Polyline, parent int) bool {
		for k := 0; k < s.LoopCount(); k++ {
			if k == parent {
				// The slice came from this loop's own offset, it sits at
				// exactly the offset distance from it.
				continue
			}
			in := s.Loop(k)
			if !sliceValidForOffset(sl, in.Polyline, in.Index, absDist, opts.OffsetDistEps) {
				return false
			}
		}
		return true
	}

	var result Shape
	addLoop := func(p Polyline, index *SpatialIndex) {
		if index == nil {
			index = NewSpatialIndex(p, posEps)
		}
		ip := IndexedPolyline{Polyline: p, Index: index}
		if p.IsCCW() {
			result.CCWLoops = append(result.CCWLoops, ip)
		} else {
			result.CWLoops = append(result.CWLoops, ip)
		}
	}

	var slices []dissectedSlice
	for i, l := range loops {
		if len(cuts[i]) == 0 {
			// Untouched by the other offsets, but it may still be eclipsed
			// by another loop's offset region.
			if validAgainstInputs(l.pline, l.parent) {
				addLoop(l.pline, l.index)
			}
			continue
		}
		for _, sl := range sliceAtPoints(l.pline, cuts[i], posEps) {
			if validAgainstInputs(sl, l.parent) {
				slices = append(slices, dissectedSlice{source: i, pline: sl})
			}
		}
	}

	stitched, err := stitchSlices(slices, opts.SliceJoinEps, posEps, false)
	if err != nil {
		return Shape{}, err
	}
	for _, p := range stitched {
		addLoop(p, nil)
	}
	result.Index = newLoopIndex(result.CCWLoops, result.CWLoops)
	return result, nil
}
