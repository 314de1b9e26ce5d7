package contour

import (
	"math"
	"slices"
)

// SpatialIndex is a static axis-aligned bounding box index. It is bulk-loaded
// once from a fixed set of boxes, packed bottom-up into nodes of fixed
// fanout after sorting the items along a Hilbert curve, and never mutated
// afterwards. Queries are therefore safe to run concurrently.
type SpatialIndex struct {
	numItems    int
	nodeSize    int
	levelBounds []int
	// 4 coordinates per node: minX, minY, maxX, maxY. Leaf nodes come first,
	// followed by each parent level; the last node is the root.
	boxes []float64
	// indices maps leaf nodes back to the caller's item indices and interior
	// nodes to the position of their first child.
	indices []int
	bounds  Rect
}

const indexNodeSize = 16

// NewSpatialIndex builds an index over the segments of a polyline, one box
// per segment index. Boxes are inflated by eps to absorb floating point error
// in later queries.
func NewSpatialIndex(p Polyline, eps float64) *SpatialIndex {
	boxes := make([]Rect, 0, p.SegmentCount())
	for _, s := range p.Segments() {
		boxes = append(boxes, s.BoundingBox().Inflate(eps))
	}
	return NewSpatialIndexFromBoxes(boxes)
}

// NewSpatialIndexFromBoxes bulk-loads an index over arbitrary boxes. Query
// results refer to positions in the given slice.
func NewSpatialIndexFromBoxes(boxes []Rect) *SpatialIndex {
	n := len(boxes)
	idx := &SpatialIndex{
		numItems: n,
		nodeSize: indexNodeSize,
		bounds: Rect{
			X0: math.Inf(1), Y0: math.Inf(1),
			X1: math.Inf(-1), Y1: math.Inf(-1),
		},
	}
	if n == 0 {
		return idx
	}

	// Compute the number of nodes per level up to the root.
	numNodes := n
	idx.levelBounds = []int{n}
	for cur := n; cur > 1; {
		cur = (cur + idx.nodeSize - 1) / idx.nodeSize
		numNodes += cur
		idx.levelBounds = append(idx.levelBounds, numNodes)
	}

	idx.boxes = make([]float64, numNodes*4)
	idx.indices = make([]int, numNodes)
	for i, b := range boxes {
		idx.setBox(i, b)
		idx.indices[i] = i
		idx.bounds = idx.bounds.Union(b)
	}

	if n > idx.nodeSize {
		idx.hilbertSortItems()
	}

	// Pack parent nodes bottom-up.
	pos := 0
	for _, end := range idx.levelBounds[:len(idx.levelBounds)-1] {
		for pos < end {
			first := pos
			nodeBox := idx.box(pos)
			for pos < min(first+idx.nodeSize, end) {
				nodeBox = nodeBox.Union(idx.box(pos))
				pos++
			}
			parent := idx.addNodeAfter(end, first)
			idx.setBox(parent, nodeBox)
		}
	}
	return idx
}

func (idx *SpatialIndex) box(node int) Rect {
	return Rect{
		X0: idx.boxes[node*4],
		Y0: idx.boxes[node*4+1],
		X1: idx.boxes[node*4+2],
		Y1: idx.boxes[node*4+3],
	}
}

func (idx *SpatialIndex) setBox(node int, b Rect) {
	idx.boxes[node*4] = b.X0
	idx.boxes[node*4+1] = b.Y0
	idx.boxes[node*4+2] = b.X1
	idx.boxes[node*4+3] = b.Y1
}

// addNodeAfter claims the next free node at or after levelStart whose box is
// still unset, recording the position of its first child.
func (idx *SpatialIndex) addNodeAfter(levelStart, firstChild int) int {
	node := levelStart + (firstChild-idx.levelStartOf(firstChild))/idx.nodeSize
	idx.indices[node] = firstChild
	return node
}

func (idx *SpatialIndex) levelStartOf(node int) int {
	start := 0
	for _, end := range idx.levelBounds {
		if node < end {
			return start
		}
		start = end
	}
	return start
}

// Bounds returns the union of all indexed boxes.
func (idx *SpatialIndex) Bounds() Rect {
	return idx.bounds
}

// Count returns the number of indexed items.
func (idx *SpatialIndex) Count() int {
	return idx.numItems
}

// Query returns the indices of all items whose box overlaps r. Order is
// unspecified; the result is exhaustive.
func (idx *SpatialIndex) Query(r Rect) []int {
	var out []int
	idx.Visit(r, func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

// Visit calls visit for every item whose box overlaps r until visit returns
// false.
func (idx *SpatialIndex) Visit(r Rect, visit func(item int) bool) {
	if idx.numItems == 0 {
		return
	}
	if idx.numItems == 1 {
		if r.Overlaps(idx.box(0)) {
			visit(idx.indices[0])
		}
		return
	}

	// Iterative traversal from the root.
	stack := make([]int, 0, 32)
	stack = append(stack, len(idx.indices)-1)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node < idx.numItems {
			if r.Overlaps(idx.box(node)) && !visit(idx.indices[node]) {
				return
			}
			continue
		}
		if !r.Overlaps(idx.box(node)) {
			continue
		}
		first := idx.indices[node]
		levelEnd := idx.levelEndOf(first)
		for child := first; child < min(first+idx.nodeSize, levelEnd); child++ {
			stack = append(stack, child)
		}
	}
}

func (idx *SpatialIndex) levelEndOf(node int) int {
	for _, end := range idx.levelBounds {
		if node < end {
			return end
		}
	}
	return idx.levelBounds[len(idx.levelBounds)-1]
}

// hilbertSortItems orders the leaf boxes along a Hilbert curve over the total
// bounds, which keeps sibling boxes spatially close and minimizes overlap
// between packed nodes.
func (idx *SpatialIndex) hilbertSortItems() {
	n := idx.numItems
	w := idx.bounds.Width()
	h := idx.bounds.Height()
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	type item struct {
		h   uint32
		idx int
		box Rect
	}
	items := make([]item, n)
	for i := range n {
		b := idx.box(i)
		c := b.Center()
		x := uint32(hilbertMax * (c.X - idx.bounds.X0) / w)
		y := uint32(hilbertMax * (c.Y - idx.bounds.Y0) / h)
		items[i] = item{hilbertXY(x, y), idx.indices[i], b}
	}
	slices.SortFunc(items, func(a, b item) int {
		switch {
		case a.h < b.h:
			return -1
		case a.h > b.h:
			return 1
		default:
			return 0
		}
	})
	for i, it := range items {
		idx.setBox(i, it.box)
		idx.indices[i] = it.idx
	}
}

const hilbertMax = float64(1<<16 - 1)

// hilbertXY converts 16 bit x/y coordinates to a distance along the Hilbert
// curve, using the lookup-free bit manipulation from the flatbush library.
func hilbertXY(x, y uint32) uint32 {
	a := x ^ y
	b := 0xFFFF ^ a
	c := 0xFFFF ^ (x | y)
	d := x & (y ^ 0xFFFF)

	aa := a | (b >> 1)
	bb := (a >> 1) ^ a
	cc := ((c >> 1) ^ (b & (d >> 1))) ^ c
	dd := ((a & (c >> 1)) ^ (d >> 1)) ^ d
	a, b, c, d = aa, bb, cc, dd

	aa = (a & (a >> 2)) ^ (b & (b >> 2))
	bb = (a & (b >> 2)) ^ (b & ((a ^ b) >> 2))
	cc ^= (a & (c >> 2)) ^ (b & (d >> 2))
	dd ^= (b & (c >> 2)) ^ ((a ^ b) & (d >> 2))
	a, b, c, d = aa, bb, cc, dd

	aa = (a & (a >> 4)) ^ (b & (b >> 4))
	bb = (a & (b >> 4)) ^ (b & ((a ^ b) >> 4))
	cc ^= (a & (c >> 4)) ^ (b & (d >> 4))
	dd ^= (b & (c >> 4)) ^ ((a ^ b) & (d >> 4))
	a, b, c, d = aa, bb, cc, dd

	cc ^= (a & (c >> 8)) ^ (b & (d >> 8))
	dd ^= (b & (c >> 8)) ^ ((a ^ b) & (d >> 8))
	c, d = cc, dd

	a = c ^ (c >> 1)
	b = d ^ (d >> 1)
	i0 := x ^ y
	i1 := b | (0xFFFF ^ (i0 | a))

	i0 = (i0 | (i0 << 8)) & 0x00FF00FF
	i0 = (i0 | (i0 << 4)) & 0x0F0F0F0F
	i0 = (i0 | (i0 << 2)) & 0x33333333
	i0 = (i0 | (i0 << 1)) & 0x55555555

	i1 = (i1 | (i1 << 8)) & 0x00FF00FF
	i1 = (i1 | (i1 << 4)) & 0x0F0F0F0F
	i1 = (i1 | (i1 << 2)) & 0x33333333
	i1 = (i1 | (i1 << 1)) & 0x55555555

	return (i1 << 1) | i0
}
