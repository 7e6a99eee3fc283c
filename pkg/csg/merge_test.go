package csg

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPointIndexSnaps(t *testing.T) {
	mm := newMeshMerge()

	i := mm.pointIndex(mgl64.Vec3{1, 2, 3})
	j := mm.pointIndex(mgl64.Vec3{1 + 2e-7, 2, 3 - 2e-7})
	if i != j {
		t.Errorf("nearby points got distinct indices %d and %d", i, j)
	}

	k := mm.pointIndex(mgl64.Vec3{1.001, 2, 3})
	if k == i {
		t.Error("distant point merged into an existing index")
	}
	if len(mm.points) != 2 {
		t.Errorf("expected 2 points in the table, got %d", len(mm.points))
	}
}

func TestAddTriangleDropsCollapsed(t *testing.T) {
	mm := newMeshMerge()

	mm.addTriangle(Triangle{P: [3]mgl64.Vec3{
		{0, 0, 0}, {1e-8, 0, 0}, {1, 1, 0},
	}}, false)
	if len(mm.facesA) != 0 {
		t.Errorf("collapsed triangle kept, %d faces", len(mm.facesA))
	}

	mm.addTriangle(Triangle{P: [3]mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
	}}, true)
	if len(mm.facesB) != 1 {
		t.Errorf("expected 1 face on the B side, got %d", len(mm.facesB))
	}
}

func TestReversedTriangle(t *testing.T) {
	mm := newMeshMerge()
	mm.addTriangle(Triangle{
		P:  [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		UV: [3]mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}},
	}, false)

	fwd := mm.triangle(mm.facesA[0])
	rev := mm.reversedTriangle(mm.facesA[0])

	n1 := fwd.geom().Normal()
	n2 := rev.geom().Normal()
	if n1.Add(n2).Len() > 1e-12 {
		t.Errorf("expected opposite normals, got %v and %v", n1, n2)
	}
	if rev.P[1] != fwd.P[2] || rev.UV[1] != fwd.UV[2] {
		t.Error("reversal did not swap positions and uvs together")
	}
}

// cubeMerge registers a triangulated unit cube under one operand.
func cubeMerge(t *testing.T, fromB bool) *meshMerge {
	t.Helper()
	brush, err := FromMesh(unitCube())
	if err != nil {
		t.Fatal(err)
	}
	mm := newMeshMerge()
	for _, tri := range brush.Triangles {
		mm.addTriangle(tri, fromB)
	}
	return mm
}

func TestBVHRayParity(t *testing.T) {
	mm := cubeMerge(t, false)
	tree := buildBVH(mm, mm.facesA)

	countCrossings := func(origin, dir mgl64.Vec3) int {
		var hits []float64
		tree.rayVisit(origin, dir, func(face int32) {
			if d, ok := mm.faceTriangle(tree.faces[face]).IntersectRay(origin, dir); ok {
				hits = append(hits, d)
			}
		})
		// Duplicate hits on a shared edge collapse to one crossing.
		distinct := 0
		for i, d := range hits {
			dup := false
			for _, prev := range hits[:i] {
				if d-prev < hitTolerance && prev-d < hitTolerance {
					dup = true
					break
				}
			}
			if !dup {
				distinct++
			}
		}
		return distinct
	}

	// Through the middle: in through x=0, out through x=1. The entry
	// point lies on the diagonal shared by the two face triangles, so
	// the duplicate suppression is load-bearing here.
	if got := countCrossings(mgl64.Vec3{-1, 0.5, 0.5}, mgl64.Vec3{1, 0, 0}); got != 2 {
		t.Errorf("outside ray: expected 2 crossings, got %d", got)
	}

	// From the center: a single exit crossing, odd parity.
	if got := countCrossings(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1, 0, 0}); got != 1 {
		t.Errorf("inside ray: expected 1 crossing, got %d", got)
	}

	// Missing the cube entirely.
	if got := countCrossings(mgl64.Vec3{-1, 5, 5}, mgl64.Vec3{1, 0, 0}); got != 0 {
		t.Errorf("miss ray: expected 0 crossings, got %d", got)
	}
}

func TestBVHVisitsAllCandidates(t *testing.T) {
	// Many triangles force real tree splits past the leaf chain size.
	mm := newMeshMerge()
	for i := 0; i < 100; i++ {
		x := float64(i)
		mm.addTriangle(Triangle{P: [3]mgl64.Vec3{
			{x, 0, 0}, {x + 0.5, 0, 0}, {x, 0.5, 0},
		}}, false)
	}
	tree := buildBVH(mm, mm.facesA)

	origin := mgl64.Vec3{0.1, 0.1, 1}
	dir := mgl64.Vec3{0, 0, -1}

	seen := make(map[int32]bool)
	tree.rayVisit(origin, dir, func(face int32) {
		seen[face] = true
	})
	if len(seen) == 0 {
		t.Fatal("no candidates visited")
	}
	// Pruning must not hide the one triangle the ray actually pierces,
	// and must cut away the vast majority of the strip.
	pierced := false
	for face := range seen {
		if _, ok := mm.faceTriangle(tree.faces[face]).IntersectRay(origin, dir); ok {
			pierced = true
		}
	}
	if !pierced {
		t.Error("the pierced triangle was pruned from the visit")
	}
	if len(seen) > 20 {
		t.Errorf("expected tight pruning, visited %d of 100 faces", len(seen))
	}
}

func TestClassifyInsideCube(t *testing.T) {
	mm := cubeMerge(t, true)
	tree := buildBVH(mm, mm.facesB)

	// A small triangle at the cube center classifies as inside.
	mm.addTriangle(Triangle{P: [3]mgl64.Vec3{
		{0.4, 0.4, 0.5}, {0.6, 0.4, 0.5}, {0.4, 0.6, 0.5},
	}}, false)
	if !mm.classifyInside(mm.facesA[0], tree, false) {
		t.Error("center triangle classified as outside")
	}

	// A triangle above the cube classifies as outside.
	mm.addTriangle(Triangle{P: [3]mgl64.Vec3{
		{0.4, 0.4, 5}, {0.6, 0.4, 5}, {0.4, 0.6, 5},
	}}, false)
	if mm.classifyInside(mm.facesA[1], tree, false) {
		t.Error("distant triangle classified as inside")
	}
}

func TestClassifyCoplanarAsymmetry(t *testing.T) {
	mm := cubeMerge(t, true)
	tree := buildBVH(mm, mm.facesB)

	// A triangle lying exactly on the cube's top face, same facing.
	mm.addTriangle(Triangle{P: [3]mgl64.Vec3{
		{0.2, 0.2, 1}, {0.8, 0.2, 1}, {0.2, 0.8, 1},
	}}, false)
	f := mm.facesA[0]

	if !mm.classifyInside(f, tree, true) {
		t.Error("coplanar face not counted when the zero-distance rule is on")
	}
	if mm.classifyInside(f, tree, false) {
		t.Error("coplanar face counted when the zero-distance rule is off")
	}
}
