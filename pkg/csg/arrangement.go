package csg

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// arrangement2D is a triangulated subdivision of one brush triangle,
// kept in the triangle's own plane basis. Constraint segments from
// triangles of the other operand are inserted incrementally; every
// insertion leaves the face list a valid triangulation that conforms
// to all segments inserted so far.
type arrangement2D struct {
	origin mgl64.Vec3
	basisU mgl64.Vec3
	basisV mgl64.Vec3
	plane  geometry.Plane

	base   [3]mgl64.Vec2 // the seed triangle in plane coordinates
	baseUV [3]mgl64.Vec2

	verts []arrVertex
	faces [][3]int
}

type arrVertex struct {
	pos mgl64.Vec2
	uv  mgl64.Vec2
}

func newArrangement(t Triangle) *arrangement2D {
	n := t.geom().Normal()
	u := t.P[1].Sub(t.P[0]).Normalize()
	v := n.Cross(u)

	a := &arrangement2D{
		origin: t.P[0],
		basisU: u,
		basisV: v,
		plane:  geometry.NewPlane(t.P[0], n),
		baseUV: t.UV,
	}
	for i := 0; i < 3; i++ {
		a.base[i] = a.to2D(t.P[i])
		a.verts = append(a.verts, arrVertex{pos: a.base[i], uv: t.UV[i]})
	}
	a.faces = [][3]int{{0, 1, 2}}
	return a
}

func (a *arrangement2D) to2D(p mgl64.Vec3) mgl64.Vec2 {
	d := p.Sub(a.origin)
	return mgl64.Vec2{d.Dot(a.basisU), d.Dot(a.basisV)}
}

func (a *arrangement2D) to3D(q mgl64.Vec2) mgl64.Vec3 {
	return a.origin.Add(a.basisU.Mul(q.X())).Add(a.basisV.Mul(q.Y()))
}

// uvAt interpolates the seed triangle's UVs at a plane position.
// Barycentric weights degrade to plain linear interpolation for points
// on a seed edge.
func (a *arrangement2D) uvAt(q mgl64.Vec2) mgl64.Vec2 {
	w0, w1, w2 := barycentric2D(q, a.base[0], a.base[1], a.base[2])
	return a.baseUV[0].Mul(w0).Add(a.baseUV[1].Mul(w1)).Add(a.baseUV[2].Mul(w2))
}

// subdivided reports whether any constraint changed the triangulation
func (a *arrangement2D) subdivided() bool {
	return len(a.verts) > 3
}

// insertTriangle inserts the other triangle's contribution: the
// segment where it crosses this arrangement's plane, or, for a
// coplanar triangle, each of its three edges
func (a *arrangement2D) insertTriangle(other Triangle) {
	d := [3]float64{
		a.plane.DistanceTo(other.P[0]),
		a.plane.DistanceTo(other.P[1]),
		a.plane.DistanceTo(other.P[2]),
	}
	onPlane := [3]bool{
		math.Abs(d[0]) <= planeTolerance,
		math.Abs(d[1]) <= planeTolerance,
		math.Abs(d[2]) <= planeTolerance,
	}

	if onPlane[0] && onPlane[1] && onPlane[2] {
		for i := 0; i < 3; i++ {
			a.insertSegment(a.to2D(other.P[i]), a.to2D(other.P[(i+1)%3]))
		}
		return
	}

	var pts []mgl64.Vec3
	add := func(p mgl64.Vec3) {
		for _, q := range pts {
			if p.Sub(q).Len() <= degenerateTolerance {
				return
			}
		}
		pts = append(pts, p)
	}
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if onPlane[i] {
			add(other.P[i])
			continue
		}
		if onPlane[j] {
			continue // picked up by the next edge
		}
		if (d[i] > 0) != (d[j] > 0) {
			t := d[i] / (d[i] - d[j])
			add(other.P[i].Add(other.P[j].Sub(other.P[i]).Mul(t)))
		}
	}

	if len(pts) < 2 {
		return
	}
	a.insertSegment(a.to2D(pts[0]), a.to2D(pts[1]))
}

// insertSegment clips the segment to the seed triangle, inserts both
// endpoints, then splits every triangulation edge the segment properly
// crosses until the segment is covered by triangulation edges
func (a *arrangement2D) insertSegment(p0, p1 mgl64.Vec2) {
	p0, p1, ok := clipSegmentToTriangle(p0, p1, a.base)
	if !ok {
		return
	}

	i0 := a.insertPoint(p0)
	i1 := a.insertPoint(p1)
	if i0 < 0 || i1 < 0 || i0 == i1 {
		return
	}

	// Near-degenerate constraints are silently skipped.
	if a.verts[i0].pos.Sub(a.verts[i1].pos).Len() <= degenerateTolerance {
		return
	}

	s0 := a.verts[i0].pos
	s1 := a.verts[i1].pos
	for iter := 0; iter < maxSegmentSplits; iter++ {
		x, found := a.findEdgeCrossing(s0, s1)
		if !found {
			return
		}
		if a.insertPoint(x) < 0 {
			return
		}
	}
}

// findEdgeCrossing returns a point where a triangulation edge properly
// crosses the open segment s0-s1, if any
func (a *arrangement2D) findEdgeCrossing(s0, s1 mgl64.Vec2) (mgl64.Vec2, bool) {
	for _, f := range a.faces {
		for k := 0; k < 3; k++ {
			q0 := a.verts[f[k]].pos
			q1 := a.verts[f[(k+1)%3]].pos
			x, ok := properCrossing(s0, s1, q0, q1)
			if !ok {
				continue
			}
			// A crossing within tolerance of an existing vertex is that
			// vertex, not a new point.
			if x.Sub(q0).Len() <= degenerateTolerance || x.Sub(q1).Len() <= degenerateTolerance ||
				x.Sub(s0).Len() <= degenerateTolerance || x.Sub(s1).Len() <= degenerateTolerance {
				continue
			}
			return x, true
		}
	}
	return mgl64.Vec2{}, false
}

// insertPoint adds a point to the triangulation, splitting the edge or
// face it lands on. Points matching an existing vertex reuse it.
// Returns -1 for points outside the arrangement.
func (a *arrangement2D) insertPoint(p mgl64.Vec2) int {
	for i, v := range a.verts {
		if p.Sub(v.pos).Len() <= degenerateTolerance {
			return i
		}
	}

	for fi, f := range a.faces {
		w0, w1, w2 := barycentric2D(p, a.verts[f[0]].pos, a.verts[f[1]].pos, a.verts[f[2]].pos)
		const inTol = 1e-9
		if w0 < -inTol || w1 < -inTol || w2 < -inTol {
			continue
		}

		idx := len(a.verts)
		a.verts = append(a.verts, arrVertex{pos: p, uv: a.uvAt(p)})

		// On-edge weights select the edge opposite the zero weight.
		w := [3]float64{w0, w1, w2}
		onEdge := -1
		for k := 0; k < 3; k++ {
			if math.Abs(w[k]) <= edgeSplitTolerance {
				onEdge = k
				break
			}
		}
		if onEdge >= 0 {
			va := f[(onEdge+1)%3]
			vb := f[(onEdge+2)%3]
			a.splitEdge(va, vb, idx)
		} else {
			a.faces[fi] = [3]int{f[0], f[1], idx}
			a.faces = append(a.faces,
				[3]int{f[1], f[2], idx},
				[3]int{f[2], f[0], idx})
		}
		return idx
	}
	return -1
}

// splitEdge replaces every face sharing the edge va-vb with two faces
// meeting at the new point, preserving winding
func (a *arrangement2D) splitEdge(va, vb, point int) {
	for fi := len(a.faces) - 1; fi >= 0; fi-- {
		f := a.faces[fi]
		for k := 0; k < 3; k++ {
			x, y := f[k], f[(k+1)%3]
			if (x == va && y == vb) || (x == vb && y == va) {
				opp := f[(k+2)%3]
				a.faces[fi] = [3]int{x, point, opp}
				a.faces = append(a.faces, [3]int{point, y, opp})
				break
			}
		}
	}
}

// triangles exports the arrangement back to 3D brush triangles,
// dropping slivers with near-zero area
func (a *arrangement2D) triangles() []Triangle {
	out := make([]Triangle, 0, len(a.faces))
	for _, f := range a.faces {
		v0, v1, v2 := a.verts[f[0]], a.verts[f[1]], a.verts[f[2]]
		area := cross2D(v1.pos.Sub(v0.pos), v2.pos.Sub(v0.pos)) / 2
		if math.Abs(area) <= degenerateTolerance*degenerateTolerance {
			continue
		}
		out = append(out, Triangle{
			P:  [3]mgl64.Vec3{a.to3D(v0.pos), a.to3D(v1.pos), a.to3D(v2.pos)},
			UV: [3]mgl64.Vec2{v0.uv, v1.uv, v2.uv},
		})
	}
	return out
}

func cross2D(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

func barycentric2D(p, a, b, c mgl64.Vec2) (float64, float64, float64) {
	den := cross2D(b.Sub(a), c.Sub(a))
	if math.Abs(den) < 1e-18 {
		return 1, 0, 0
	}
	w1 := cross2D(p.Sub(a), c.Sub(a)) / den
	w2 := cross2D(b.Sub(a), p.Sub(a)) / den
	return 1 - w1 - w2, w1, w2
}

// properCrossing intersects two segments, requiring each to strictly
// straddle the other's supporting line
func properCrossing(s0, s1, q0, q1 mgl64.Vec2) (mgl64.Vec2, bool) {
	ds := s1.Sub(s0)
	dq := q1.Sub(q0)
	den := cross2D(ds, dq)
	if math.Abs(den) < 1e-15 {
		return mgl64.Vec2{}, false // parallel or near-parallel, skip
	}
	t := cross2D(q0.Sub(s0), dq) / den
	u := cross2D(q0.Sub(s0), ds) / den
	const strict = 1e-12
	if t <= strict || t >= 1-strict || u <= strict || u >= 1-strict {
		return mgl64.Vec2{}, false
	}
	return s0.Add(ds.Mul(t)), true
}

// clipSegmentToTriangle clips a segment to a CCW triangle, reporting
// false when nothing remains inside
func clipSegmentToTriangle(p0, p1 mgl64.Vec2, tri [3]mgl64.Vec2) (mgl64.Vec2, mgl64.Vec2, bool) {
	t0, t1 := 0.0, 1.0
	d := p1.Sub(p0)

	for k := 0; k < 3; k++ {
		// Inward edge normal of the CCW triangle.
		e := tri[(k+1)%3].Sub(tri[k])
		n := mgl64.Vec2{-e.Y(), e.X()}
		num := n.Dot(p0.Sub(tri[k]))
		den := n.Dot(d)

		if math.Abs(den) < 1e-18 {
			if num < -planeTolerance {
				return p0, p1, false
			}
			continue
		}
		t := -num / den
		if den > 0 {
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t1 {
				t1 = t
			}
		}
		if t0 > t1 {
			return p0, p1, false
		}
	}

	return p0.Add(d.Mul(t0)), p0.Add(d.Mul(t1)), true
}
