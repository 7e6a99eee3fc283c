package csg

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// bvhNode is one node of the hierarchy. Leaves carry a face index and
// chain further leaves through next; internal nodes carry child links.
type bvhNode struct {
	bounds geometry.AABB
	center mgl64.Vec3
	left   int32
	right  int32
	face   int32 // -1 for internal nodes
	next   int32 // leaf chain, -1 terminated
}

// bvh is a read-only bounding-volume hierarchy over one operand's
// merge faces, built once per operation
type bvh struct {
	nodes []bvhNode
	root  int32
	faces []mergeFace
}

type bvhItem struct {
	face   int32
	bounds geometry.AABB
	center mgl64.Vec3
}

// buildBVH partitions faces by the longest axis of their enclosing
// box, using median-of-3 partial selection so construction stays
// O(n log n). Groups of at most bvhLeafSize faces become a chain of
// leaves instead of further splits.
func buildBVH(mm *meshMerge, faces []mergeFace) *bvh {
	b := &bvh{faces: faces, root: -1}
	if len(faces) == 0 {
		return b
	}

	items := make([]bvhItem, len(faces))
	for i, f := range faces {
		bounds := mm.faceBounds(f)
		items[i] = bvhItem{face: int32(i), bounds: bounds, center: bounds.Center()}
	}
	b.root = b.build(items)
	return b
}

func (b *bvh) build(items []bvhItem) int32 {
	if len(items) == 0 {
		return -1
	}

	if len(items) <= bvhLeafSize {
		chain := int32(-1)
		bounds := geometry.NewAABB()
		for i := len(items) - 1; i >= 0; i-- {
			bounds.ExtendBox(items[i].bounds)
			b.nodes = append(b.nodes, bvhNode{
				bounds: items[i].bounds,
				center: items[i].center,
				left:   -1,
				right:  -1,
				face:   items[i].face,
				next:   chain,
			})
			chain = int32(len(b.nodes) - 1)
		}
		// The chain head carries the aggregate box so parents can prune.
		b.nodes[chain].bounds = bounds
		return chain
	}

	centerBounds := geometry.NewAABB()
	for _, it := range items {
		centerBounds.Extend(it.center)
	}
	axis := centerBounds.LongestAxis()

	mid := len(items) / 2
	selectMedian(items, axis, mid)

	left := b.build(items[:mid])
	right := b.build(items[mid:])

	node := bvhNode{left: left, right: right, face: -1, next: -1}
	node.bounds = geometry.NewAABB()
	if left >= 0 {
		node.bounds.ExtendBox(b.nodes[left].bounds)
	}
	if right >= 0 {
		node.bounds.ExtendBox(b.nodes[right].bounds)
	}
	node.center = node.bounds.Center()
	b.nodes = append(b.nodes, node)
	return int32(len(b.nodes) - 1)
}

// selectMedian partially sorts items so items[n] holds the n-th
// element by center coordinate on the given axis. Median-of-3
// quickselect with a depth guard falling back to a full sort.
func selectMedian(items []bvhItem, axis, n int) {
	lo, hi := 0, len(items)-1
	depth := 0
	maxDepth := 2 * bitLen(len(items))

	for lo < hi {
		if depth > maxDepth {
			sort.Slice(items[lo:hi+1], func(i, j int) bool {
				return items[lo+i].center[axis] < items[lo+j].center[axis]
			})
			return
		}
		depth++

		p := medianOf3(items, axis, lo, (lo+hi)/2, hi)
		pivot := items[p].center[axis]

		i, j := lo, hi
		for i <= j {
			for items[i].center[axis] < pivot {
				i++
			}
			for items[j].center[axis] > pivot {
				j--
			}
			if i <= j {
				items[i], items[j] = items[j], items[i]
				i++
				j--
			}
		}
		if n <= j {
			hi = j
		} else if n >= i {
			lo = i
		} else {
			return
		}
	}
}

func medianOf3(items []bvhItem, axis, a, b, c int) int {
	av, bv, cv := items[a].center[axis], items[b].center[axis], items[c].center[axis]
	if av < bv {
		switch {
		case bv < cv:
			return b
		case av < cv:
			return c
		default:
			return a
		}
	}
	switch {
	case av < cv:
		return a
	case bv < cv:
		return c
	default:
		return b
	}
}

func bitLen(n int) int {
	bits := 0
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}

// visitState drives the iterative traversal worklist
type visitState uint8

const (
	visitTestBounds visitState = iota
	visitLeft
	visitRight
	visitDone
)

type visitFrame struct {
	node  int32
	state visitState
}

// rayVisit walks the hierarchy iteratively, calling fn for every face
// whose leaf chain is reached by the ray. Stack depth stays O(log n).
func (b *bvh) rayVisit(origin, dir mgl64.Vec3, fn func(face int32)) {
	if b.root < 0 {
		return
	}
	stack := make([]visitFrame, 0, 64)
	stack = append(stack, visitFrame{node: b.root, state: visitTestBounds})

	for len(stack) > 0 {
		fr := &stack[len(stack)-1]
		switch fr.state {
		case visitTestBounds:
			node := &b.nodes[fr.node]
			if _, ok := node.bounds.IntersectRay(origin, dir); !ok {
				stack = stack[:len(stack)-1]
				continue
			}
			if node.face >= 0 {
				for n := fr.node; n >= 0; n = b.nodes[n].next {
					fn(b.nodes[n].face)
				}
				stack = stack[:len(stack)-1]
				continue
			}
			fr.state = visitLeft
		case visitLeft:
			fr.state = visitRight
			if left := b.nodes[fr.node].left; left >= 0 {
				stack = append(stack, visitFrame{node: left, state: visitTestBounds})
			}
		case visitRight:
			fr.state = visitDone
			if right := b.nodes[fr.node].right; right >= 0 {
				stack = append(stack, visitFrame{node: right, state: visitTestBounds})
			}
		case visitDone:
			stack = stack[:len(stack)-1]
		}
	}
}
