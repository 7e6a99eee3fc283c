package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB creates an empty bounding box that can be extended with points
func NewAABB() AABB {
	return AABB{
		Min: mgl64.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: mgl64.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

// AABBFromPoints creates the smallest bounding box containing all given points
func AABBFromPoints(points ...mgl64.Vec3) AABB {
	box := NewAABB()
	for _, p := range points {
		box.Extend(p)
	}
	return box
}

// IsValid reports whether the box contains at least one point
func (b AABB) IsValid() bool {
	return b.Min.X() <= b.Max.X() && b.Min.Y() <= b.Max.Y() && b.Min.Z() <= b.Max.Z()
}

// Extend expands the bounding box to include a point
func (b *AABB) Extend(p mgl64.Vec3) {
	b.Min = mgl64.Vec3{
		math.Min(b.Min.X(), p.X()),
		math.Min(b.Min.Y(), p.Y()),
		math.Min(b.Min.Z(), p.Z()),
	}
	b.Max = mgl64.Vec3{
		math.Max(b.Max.X(), p.X()),
		math.Max(b.Max.Y(), p.Y()),
		math.Max(b.Max.Z(), p.Z()),
	}
}

// ExtendBox expands the bounding box to include another box
func (b *AABB) ExtendBox(other AABB) {
	if !other.IsValid() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Grow returns the box expanded by the given margin on all sides
func (b AABB) Grow(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Size returns the dimensions of the bounding box
func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the bounding box diagonal
func (b AABB) Diagonal() float64 {
	return b.Size().Len()
}

// Volume returns the volume of the bounding box
func (b AABB) Volume() float64 {
	size := b.Size()
	return size.X() * size.Y() * size.Z()
}

// LongestAxis returns the index (0, 1 or 2) of the longest side
func (b AABB) LongestAxis() int {
	size := b.Size()
	axis := 0
	if size.Y() > size[axis] {
		axis = 1
	}
	if size.Z() > size[axis] {
		axis = 2
	}
	return axis
}

// Contains reports whether the point lies inside or on the boundary of the box
func (b AABB) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// Overlaps reports whether two boxes share any point
func (b AABB) Overlaps(other AABB) bool {
	if !b.IsValid() || !other.IsValid() {
		return false
	}
	return b.Min.X() <= other.Max.X() && b.Max.X() >= other.Min.X() &&
		b.Min.Y() <= other.Max.Y() && b.Max.Y() >= other.Min.Y() &&
		b.Min.Z() <= other.Max.Z() && b.Max.Z() >= other.Min.Z()
}

// Intersection returns the overlapping region of two boxes.
// The result is invalid when the boxes do not overlap.
func (b AABB) Intersection(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{
			math.Max(b.Min.X(), other.Min.X()),
			math.Max(b.Min.Y(), other.Min.Y()),
			math.Max(b.Min.Z(), other.Min.Z()),
		},
		Max: mgl64.Vec3{
			math.Min(b.Max.X(), other.Max.X()),
			math.Min(b.Max.Y(), other.Max.Y()),
			math.Min(b.Max.Z(), other.Max.Z()),
		},
	}
}

// IntersectRay tests a ray against the box using the slab method.
// The ray origin may be inside the box; in that case the hit distance is 0.
func (b AABB) IntersectRay(origin, dir mgl64.Vec3) (float64, bool) {
	tMin := 0.0
	tMax := math.MaxFloat64

	for axis := 0; axis < 3; axis++ {
		if math.Abs(dir[axis]) < 1e-15 {
			if origin[axis] < b.Min[axis] || origin[axis] > b.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / dir[axis]
		t1 := (b.Min[axis] - origin[axis]) * inv
		t2 := (b.Max[axis] - origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	return tMin, true
}
