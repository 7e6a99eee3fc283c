package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Frustum represents a convex volume bounded by six inward-facing planes
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum creates a frustum from six planes whose normals point inward
func NewFrustum(planes [6]Plane) Frustum {
	return Frustum{Planes: planes}
}

// FrustumFromMatrix extracts the six clip planes from a combined
// projection-view matrix (Gribb-Hartmann method)
func FrustumFromMatrix(m mgl64.Mat4) Frustum {
	row := func(i int) mgl64.Vec4 {
		return mgl64.Vec4{m.At(i, 0), m.At(i, 1), m.At(i, 2), m.At(i, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	plane := func(v mgl64.Vec4) Plane {
		n := mgl64.Vec3{v.X(), v.Y(), v.Z()}
		length := n.Len()
		if length == 0 {
			return Plane{}
		}
		return Plane{Normal: n.Mul(1 / length), D: v.W() / length}
	}

	return Frustum{Planes: [6]Plane{
		plane(r3.Add(r0)), // left
		plane(r3.Sub(r0)), // right
		plane(r3.Add(r1)), // bottom
		plane(r3.Sub(r1)), // top
		plane(r3.Add(r2)), // near
		plane(r3.Sub(r2)), // far
	}}
}

// ContainsPoint reports whether a point lies inside the frustum
func (f Frustum) ContainsPoint(p mgl64.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.DistanceTo(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether the sphere overlaps the frustum
func (f Frustum) IntersectsSphere(s Sphere) bool {
	for _, plane := range f.Planes {
		if plane.DistanceTo(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether the box overlaps the frustum.
// Conservative: may report true for boxes near a frustum corner.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for _, plane := range f.Planes {
		// The box corner furthest along the plane normal.
		p := box.Min
		if plane.Normal.X() >= 0 {
			p[0] = box.Max.X()
		}
		if plane.Normal.Y() >= 0 {
			p[1] = box.Max.Y()
		}
		if plane.Normal.Z() >= 0 {
			p[2] = box.Max.Z()
		}
		if plane.DistanceTo(p) < 0 {
			return false
		}
	}
	return true
}
