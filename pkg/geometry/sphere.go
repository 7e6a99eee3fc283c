package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere represents a sphere by center and radius
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center mgl64.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Contains reports whether a point lies inside or on the sphere
func (s Sphere) Contains(p mgl64.Vec3) bool {
	return p.Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

// Intersects reports whether two spheres share any point
func (s Sphere) Intersects(other Sphere) bool {
	r := s.Radius + other.Radius
	return s.Center.Sub(other.Center).LenSqr() <= r*r
}

// IntersectsAABB reports whether the sphere and box share any point
func (s Sphere) IntersectsAABB(box AABB) bool {
	var distSqr float64
	for axis := 0; axis < 3; axis++ {
		c := s.Center[axis]
		if c < box.Min[axis] {
			d := box.Min[axis] - c
			distSqr += d * d
		} else if c > box.Max[axis] {
			d := c - box.Max[axis]
			distSqr += d * d
		}
	}
	return distSqr <= s.Radius*s.Radius
}

// IntersectRay returns the distance to the nearest ray-sphere hit
func (s Sphere) IntersectRay(origin, dir mgl64.Vec3) (float64, bool) {
	oc := origin.Sub(s.Center)
	a := dir.Dot(dir)
	if a == 0 {
		return 0, false
	}
	b := 2.0 * oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Bounds returns the axis-aligned bounding box of the sphere
func (s Sphere) Bounds() AABB {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}
