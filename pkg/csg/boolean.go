package csg

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/philipparndt/gomesh/pkg/mesh"
)

// Tolerances of the boolean engine. Geometry smaller than these is
// silently treated as non-intersecting rather than reported.
const (
	// degenerateTolerance: minimum edge length; also the 2D vertex
	// coincidence distance in the arrangement builder
	degenerateTolerance = 1e-9
	// planeTolerance: maximum distance at which a point counts as
	// lying on a plane
	planeTolerance = 1e-8
	// edgeSplitTolerance: barycentric weight below which an inserted
	// point lands on a triangulation edge instead of a face interior
	edgeSplitTolerance = 1e-9
	// snapTolerance: grid size of the merge table's spatial hash
	snapTolerance = 1e-6
	// hitTolerance: ray hits closer together than this count once
	hitTolerance = 1e-9

	maxSegmentSplits = 64
	bvhLeafSize      = 10
)

// Operation selects the boolean to perform
type Operation int

const (
	// Union keeps everything outside the other operand
	Union Operation = iota
	// Intersection keeps everything inside the other operand
	Intersection
	// Subtraction removes operand B from operand A
	Subtraction
)

// String returns the operation name
func (op Operation) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Subtraction:
		return "subtraction"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// Perform runs a boolean operation on two fully triangulated meshes
// and returns a freshly built result mesh. The inputs are not
// modified; all intermediate state is discarded when Perform returns.
func Perform(a, b *mesh.Mesh, op Operation) (*mesh.Mesh, error) {
	brushA, err := FromMesh(a)
	if err != nil {
		return nil, fmt.Errorf("operand A: %w", err)
	}
	brushB, err := FromMesh(b)
	if err != nil {
		return nil, fmt.Errorf("operand B: %w", err)
	}

	boundsA := brushA.Bounds()
	boundsB := brushB.Bounds()

	// All-pairs overlap sweep. Intersecting pairs lazily create a 2D
	// arrangement per triangle and feed each other's cut into it.
	arrsA := make(map[int]*arrangement2D)
	arrsB := make(map[int]*arrangement2D)
	pairs := 0
	for i, ta := range brushA.Triangles {
		if ta.geom().IsDegenerate(degenerateTolerance) {
			continue
		}
		gta := ta.geom()
		for j, tb := range brushB.Triangles {
			if tb.geom().IsDegenerate(degenerateTolerance) {
				continue
			}
			if !gta.Intersects(tb.geom()) {
				continue
			}
			pairs++

			arrA := arrsA[i]
			if arrA == nil {
				arrA = newArrangement(ta)
				arrsA[i] = arrA
			}
			arrA.insertTriangle(tb)

			arrB := arrsB[j]
			if arrB == nil {
				arrB = newArrangement(tb)
				arrsB[j] = arrB
			}
			arrB.insertTriangle(ta)
		}
	}

	// Assemble the merged face lists: untouched triangles pass through,
	// subdivided ones contribute their arrangement's pieces.
	mm := newMeshMerge()
	collect := func(brush *Brush, arrs map[int]*arrangement2D, fromB bool) {
		for i, t := range brush.Triangles {
			if arr := arrs[i]; arr != nil && arr.subdivided() {
				for _, sub := range arr.triangles() {
					mm.addTriangle(sub, fromB)
				}
			} else {
				mm.addTriangle(t, fromB)
			}
		}
	}
	collect(brushA, arrsA, false)
	collect(brushB, arrsB, true)

	bvhA := buildBVH(mm, mm.facesA)
	bvhB := buildBVH(mm, mm.facesB)

	log.Debugf("csg %s: %d x %d triangles, %d intersecting pairs, %d merged points, %d+%d faces",
		op, len(brushA.Triangles), len(brushB.Triangles), pairs,
		len(mm.points), len(mm.facesA), len(mm.facesB))

	overlap := boundsA.Intersection(boundsB)

	var out []Triangle
	switch op {
	case Union:
		for _, f := range mm.facesA {
			// Faces clear of the other operand's box skip classification.
			if !mm.faceBounds(f).Overlaps(boundsB) || !mm.classifyInside(f, bvhB, true) {
				out = append(out, mm.triangle(f))
			}
		}
		for _, f := range mm.facesB {
			if !mm.faceBounds(f).Overlaps(boundsA) || !mm.classifyInside(f, bvhA, false) {
				out = append(out, mm.triangle(f))
			}
		}

	case Intersection:
		if overlap.IsValid() {
			for _, f := range mm.facesA {
				if mm.faceBounds(f).Overlaps(overlap) && mm.classifyInside(f, bvhB, true) {
					out = append(out, mm.triangle(f))
				}
			}
			for _, f := range mm.facesB {
				if mm.faceBounds(f).Overlaps(overlap) && mm.classifyInside(f, bvhA, false) {
					out = append(out, mm.triangle(f))
				}
			}
		}

	case Subtraction:
		for _, f := range mm.facesA {
			if !mm.faceBounds(f).Overlaps(boundsB) || !mm.classifyInside(f, bvhB, true) {
				out = append(out, mm.triangle(f))
			}
		}
		for _, f := range mm.facesB {
			if mm.faceBounds(f).Overlaps(boundsA) && mm.classifyInside(f, bvhA, false) {
				out = append(out, mm.reversedTriangle(f))
			}
		}

	default:
		return nil, fmt.Errorf("csg: unknown operation %d", int(op))
	}

	log.Debugf("csg %s: %d output triangles", op, len(out))
	return ToMesh(out), nil
}
