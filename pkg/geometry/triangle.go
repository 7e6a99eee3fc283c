package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	A, B, C mgl64.Vec3
}

// NewTriangle creates a new triangle
func NewTriangle(a, b, c mgl64.Vec3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Vertex returns the i-th vertex (0, 1 or 2)
func (t Triangle) Vertex(i int) mgl64.Vec3 {
	switch i {
	case 0:
		return t.A
	case 1:
		return t.B
	default:
		return t.C
	}
}

// Normal computes the unit normal following the winding order
func (t Triangle) Normal() mgl64.Vec3 {
	n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Len() / 2.0
}

// Centroid returns the center of mass of the triangle
func (t Triangle) Centroid() mgl64.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// Bounds returns the axis-aligned bounding box of the triangle
func (t Triangle) Bounds() AABB {
	return AABBFromPoints(t.A, t.B, t.C)
}

// Plane returns the supporting plane of the triangle
func (t Triangle) Plane() Plane {
	return PlaneFromPoints(t.A, t.B, t.C)
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.B.Sub(t.A).Len(),
		t.C.Sub(t.B).Len(),
		t.A.Sub(t.C).Len(),
	}
}

// IsDegenerate reports whether any edge is shorter than the tolerance
func (t Triangle) IsDegenerate(tolerance float64) bool {
	lengths := t.EdgeLengths()
	return lengths[0] < tolerance || lengths[1] < tolerance || lengths[2] < tolerance
}

// IntersectRay tests a ray against the triangle using the
// Möller-Trumbore algorithm. The test is two-sided. It reports the hit
// distance along the ray; rays parallel to the triangle plane miss.
func (t Triangle) IntersectRay(origin, dir mgl64.Vec3) (float64, bool) {
	const eps = 1e-12

	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	pvec := dir.Cross(e2)
	det := e1.Dot(pvec)
	if math.Abs(det) < eps {
		return 0, false
	}

	invDet := 1.0 / det
	tvec := origin.Sub(t.A)
	u := tvec.Dot(pvec) * invDet
	if u < -eps || u > 1+eps {
		return 0, false
	}
	qvec := tvec.Cross(e1)
	v := dir.Dot(qvec) * invDet
	if v < -eps || u+v > 1+eps {
		return 0, false
	}

	dist := e2.Dot(qvec) * invDet
	if dist < 0 {
		return 0, false
	}
	return dist, true
}

// ContainsPoint reports whether a point lying in the triangle's plane
// is inside the triangle (with tolerance on the edges)
func (t Triangle) ContainsPoint(p mgl64.Vec3, tolerance float64) bool {
	// Barycentric test in the plane of the triangle.
	v0 := t.B.Sub(t.A)
	v1 := t.C.Sub(t.A)
	v2 := p.Sub(t.A)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-18 {
		return false
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1.0 - v - w
	return u >= -tolerance && v >= -tolerance && w >= -tolerance
}

// Intersects reports whether two triangles share any point, including
// coplanar area overlap. Based on Möller's interval overlap method.
func (t Triangle) Intersects(other Triangle) bool {
	const eps = 1e-10

	n1 := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	d1 := -n1.Dot(t.A)
	du0 := n1.Dot(other.A) + d1
	du1 := n1.Dot(other.B) + d1
	du2 := n1.Dot(other.C) + d1
	if math.Abs(du0) < eps {
		du0 = 0
	}
	if math.Abs(du1) < eps {
		du1 = 0
	}
	if math.Abs(du2) < eps {
		du2 = 0
	}
	if du0*du1 > 0 && du0*du2 > 0 {
		return false
	}

	n2 := other.B.Sub(other.A).Cross(other.C.Sub(other.A))
	d2 := -n2.Dot(other.A)
	dv0 := n2.Dot(t.A) + d2
	dv1 := n2.Dot(t.B) + d2
	dv2 := n2.Dot(t.C) + d2
	if math.Abs(dv0) < eps {
		dv0 = 0
	}
	if math.Abs(dv1) < eps {
		dv1 = 0
	}
	if math.Abs(dv2) < eps {
		dv2 = 0
	}
	if dv0*dv1 > 0 && dv0*dv2 > 0 {
		return false
	}

	if du0 == 0 && du1 == 0 && du2 == 0 {
		return t.coplanarIntersects(other, n1)
	}

	// Direction of the intersection line of the two planes.
	dir := n1.Cross(n2)
	axis := 0
	if math.Abs(dir.Y()) > math.Abs(dir[axis]) {
		axis = 1
	}
	if math.Abs(dir.Z()) > math.Abs(dir[axis]) {
		axis = 2
	}

	min1, max1, ok1 := triangleInterval(t.A[axis], t.B[axis], t.C[axis], dv0, dv1, dv2)
	min2, max2, ok2 := triangleInterval(other.A[axis], other.B[axis], other.C[axis], du0, du1, du2)
	if !ok1 || !ok2 {
		// One triangle only touches the other's plane; fall back to the
		// coplanar test for the touching configuration.
		return t.coplanarIntersects(other, n1)
	}

	return min1 <= max2+eps && min2 <= max1+eps
}

// triangleInterval projects one triangle's crossing of the intersection
// line onto a coordinate axis, producing a 1D interval
func triangleInterval(p0, p1, p2, d0, d1, d2 float64) (float64, float64, bool) {
	var points []float64

	edge := func(pa, pb, da, db float64) {
		if (da > 0 && db < 0) || (da < 0 && db > 0) {
			t := da / (da - db)
			points = append(points, pa+(pb-pa)*t)
		}
	}
	edge(p0, p1, d0, d1)
	edge(p1, p2, d1, d2)
	edge(p2, p0, d2, d0)

	if d0 == 0 {
		points = append(points, p0)
	}
	if d1 == 0 {
		points = append(points, p1)
	}
	if d2 == 0 {
		points = append(points, p2)
	}

	if len(points) < 2 {
		if len(points) == 1 {
			return points[0], points[0], true
		}
		return 0, 0, false
	}

	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = math.Min(min, p)
		max = math.Max(max, p)
	}
	return min, max, true
}

// coplanarIntersects tests two coplanar triangles for 2D overlap by
// projecting them onto the dominant axis plane of the shared normal
func (t Triangle) coplanarIntersects(other Triangle, n mgl64.Vec3) bool {
	// Pick the projection plane that maximizes the projected area.
	ax, ay := 0, 1
	absN := mgl64.Vec3{math.Abs(n.X()), math.Abs(n.Y()), math.Abs(n.Z())}
	if absN.X() >= absN.Y() && absN.X() >= absN.Z() {
		ax, ay = 1, 2
	} else if absN.Y() >= absN.X() && absN.Y() >= absN.Z() {
		ax, ay = 0, 2
	}

	t1 := [3]mgl64.Vec2{
		{t.A[ax], t.A[ay]},
		{t.B[ax], t.B[ay]},
		{t.C[ax], t.C[ay]},
	}
	t2 := [3]mgl64.Vec2{
		{other.A[ax], other.A[ay]},
		{other.B[ax], other.B[ay]},
		{other.C[ax], other.C[ay]},
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if segmentsIntersect2D(t1[i], t1[(i+1)%3], t2[j], t2[(j+1)%3]) {
				return true
			}
		}
	}
	return pointInTriangle2D(t2[0], t1) || pointInTriangle2D(t1[0], t2)
}

func segmentsIntersect2D(a, b, c, d mgl64.Vec2) bool {
	cross := func(o, p, q mgl64.Vec2) float64 {
		return (p.X()-o.X())*(q.Y()-o.Y()) - (p.Y()-o.Y())*(q.X()-o.X())
	}
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	onSegment := func(o, p, q mgl64.Vec2) bool {
		return math.Min(o.X(), p.X()) <= q.X() && q.X() <= math.Max(o.X(), p.X()) &&
			math.Min(o.Y(), p.Y()) <= q.Y() && q.Y() <= math.Max(o.Y(), p.Y())
	}
	if d1 == 0 && onSegment(c, d, a) {
		return true
	}
	if d2 == 0 && onSegment(c, d, b) {
		return true
	}
	if d3 == 0 && onSegment(a, b, c) {
		return true
	}
	if d4 == 0 && onSegment(a, b, d) {
		return true
	}
	return false
}

func pointInTriangle2D(p mgl64.Vec2, tri [3]mgl64.Vec2) bool {
	sign := func(a, b, c mgl64.Vec2) float64 {
		return (a.X()-c.X())*(b.Y()-c.Y()) - (b.X()-c.X())*(a.Y()-c.Y())
	}
	d1 := sign(p, tri[0], tri[1])
	d2 := sign(p, tri[1], tri[2])
	d3 := sign(p, tri[2], tri[0])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
