package csg

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// mergeFace is one triangle of the merged result, indexing into the
// shared point table and keeping its per-corner UVs
type mergeFace struct {
	idx [3]int
	uv  [3]mgl64.Vec2
}

// meshMerge is the global deduplicated point table plus the two
// provenance-tagged face lists, one per operand
type meshMerge struct {
	points []mgl64.Vec3
	snap   map[[3]int64]int

	facesA []mergeFace
	facesB []mergeFace
}

func newMeshMerge() *meshMerge {
	return &meshMerge{snap: make(map[[3]int64]int)}
}

func snapKey(p mgl64.Vec3) [3]int64 {
	return [3]int64{
		int64(math.Round(p.X() / snapTolerance)),
		int64(math.Round(p.Y() / snapTolerance)),
		int64(math.Round(p.Z() / snapTolerance)),
	}
}

// pointIndex finds or appends a point, deduplicating by the snap grid
func (mm *meshMerge) pointIndex(p mgl64.Vec3) int {
	key := snapKey(p)
	if i, ok := mm.snap[key]; ok {
		return i
	}
	i := len(mm.points)
	mm.points = append(mm.points, p)
	mm.snap[key] = i
	return i
}

// addTriangle registers a triangle under one operand. Triangles that
// collapse to fewer than three distinct points are dropped.
func (mm *meshMerge) addTriangle(t Triangle, fromB bool) {
	idx := [3]int{
		mm.pointIndex(t.P[0]),
		mm.pointIndex(t.P[1]),
		mm.pointIndex(t.P[2]),
	}
	if idx[0] == idx[1] || idx[1] == idx[2] || idx[0] == idx[2] {
		return
	}
	f := mergeFace{idx: idx, uv: t.UV}
	if fromB {
		mm.facesB = append(mm.facesB, f)
	} else {
		mm.facesA = append(mm.facesA, f)
	}
}

func (mm *meshMerge) faceTriangle(f mergeFace) geometry.Triangle {
	return geometry.NewTriangle(mm.points[f.idx[0]], mm.points[f.idx[1]], mm.points[f.idx[2]])
}

func (mm *meshMerge) faceBounds(f mergeFace) geometry.AABB {
	return geometry.AABBFromPoints(mm.points[f.idx[0]], mm.points[f.idx[1]], mm.points[f.idx[2]])
}

// triangle converts a merge face back to a brush triangle
func (mm *meshMerge) triangle(f mergeFace) Triangle {
	return Triangle{
		P:  [3]mgl64.Vec3{mm.points[f.idx[0]], mm.points[f.idx[1]], mm.points[f.idx[2]]},
		UV: f.uv,
	}
}

// reversedTriangle flips the winding so the surface normal points the
// other way (used for the B side of a subtraction)
func (mm *meshMerge) reversedTriangle(f mergeFace) Triangle {
	return Triangle{
		P:  [3]mgl64.Vec3{mm.points[f.idx[0]], mm.points[f.idx[2]], mm.points[f.idx[1]]},
		UV: [3]mgl64.Vec2{f.uv[0], f.uv[2], f.uv[1]},
	}
}

// classifyInside classifies a face against the other operand by
// casting a ray from the face centroid along its own normal and
// counting surface crossings: odd means inside.
//
// countCoplanar controls the zero-distance rule for exactly coplanar,
// same-facing triangles of the other operand. It is applied when
// classifying operand-A faces against operand-B only: the asymmetry is
// the tie-break that lets exactly one copy of a coincident surface
// survive a boolean.
func (mm *meshMerge) classifyInside(f mergeFace, other *bvh, countCoplanar bool) bool {
	tri := mm.faceTriangle(f)
	origin := tri.Centroid()
	dir := tri.Normal()
	if dir.Len() == 0 {
		return false
	}

	var hits []float64
	other.rayVisit(origin, dir, func(face int32) {
		ot := mm.faceTriangle(other.faces[face])

		// A triangle coplanar with the ray origin never counts as a
		// transversal crossing; it is subject to the zero-distance rule
		// only. The raw ray test would report it at distance zero.
		facing := dir.Dot(ot.Normal())
		if math.Abs(facing) >= 1-1e-9 &&
			math.Abs(ot.Plane().DistanceTo(origin)) <= planeTolerance {
			if countCoplanar && facing > 0 && ot.ContainsPoint(origin, 1e-9) {
				hits = append(hits, 0)
			}
			return
		}

		if d, ok := ot.IntersectRay(origin, dir); ok {
			hits = append(hits, d)
		}
	})

	// Hits closer together than the tolerance are one crossing (a ray
	// grazing the shared edge of two triangles reports twice).
	sort.Float64s(hits)
	crossings := 0
	for i, d := range hits {
		if i == 0 || d-hits[i-1] > hitTolerance {
			crossings++
		}
	}
	return crossings%2 == 1
}
