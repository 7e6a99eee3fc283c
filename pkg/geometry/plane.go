package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane represents a plane in normal form: Normal·p + D = 0
type Plane struct {
	Normal mgl64.Vec3
	D      float64
}

// NewPlane creates a plane from a point on the plane and its normal
func NewPlane(point, normal mgl64.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// PlaneFromPoints creates a plane through three points.
// The normal follows the winding order of the points.
func PlaneFromPoints(a, b, c mgl64.Vec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Plane{Normal: n, D: -n.Dot(a)}
}

// DistanceTo returns the signed distance from a point to the plane
func (p Plane) DistanceTo(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Side classifies a point against the plane: +1 in front, -1 behind,
// 0 within the given tolerance of the plane
func (p Plane) Side(point mgl64.Vec3, tolerance float64) int {
	d := p.DistanceTo(point)
	if math.Abs(d) <= tolerance {
		return 0
	}
	if d > 0 {
		return 1
	}
	return -1
}

// IntersectSegment returns the point where the segment a-b crosses the plane.
// It reports false when the segment lies on one side or runs parallel.
func (p Plane) IntersectSegment(a, b mgl64.Vec3) (mgl64.Vec3, bool) {
	da := p.DistanceTo(a)
	db := p.DistanceTo(b)
	if (da > 0 && db > 0) || (da < 0 && db < 0) {
		return mgl64.Vec3{}, false
	}
	denom := da - db
	if math.Abs(denom) < 1e-15 {
		return mgl64.Vec3{}, false
	}
	t := da / denom
	return a.Add(b.Sub(a).Mul(t)), true
}

// Project returns the point projected onto the plane
func (p Plane) Project(point mgl64.Vec3) mgl64.Vec3 {
	return point.Sub(p.Normal.Mul(p.DistanceTo(point)))
}
