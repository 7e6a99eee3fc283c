// Package csg implements boolean operations (union, intersection,
// subtraction) on triangulated boundary-representation meshes.
//
// Inputs are flattened to disposable triangle soups ("brushes"),
// mutually intersecting triangles are re-triangulated through per-plane
// 2D arrangements, the pieces are merged into a deduplicated point
// table, and each triangle is classified against the other operand by
// ray-parity counting over a bounding-volume hierarchy.
package csg

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// ErrNotTriangulated is returned when an operand mesh contains a face
// with more or fewer than three vertices. Callers must triangulate
// before performing a boolean operation.
var ErrNotTriangulated = errors.New("csg: input mesh is not fully triangulated")

// Triangle is one triangle of a brush: three positions with their
// texture coordinates, no shared topology
type Triangle struct {
	P  [3]mgl64.Vec3
	UV [3]mgl64.Vec2
}

func (t Triangle) geom() geometry.Triangle {
	return geometry.NewTriangle(t.P[0], t.P[1], t.P[2])
}

// Brush is a topology-free triangle soup, the internal working
// representation of one CSG operand
type Brush struct {
	Triangles []Triangle
}

// FromMesh flattens a fully triangulated mesh into a brush. UVs come
// from the "uv" loop attribute and default to zero when it is absent.
func FromMesh(m *mesh.Mesh) (*Brush, error) {
	if !m.IsTriangulated() {
		return nil, ErrNotTriangulated
	}
	uvSlot, hasUV := m.LoopAttrSlot(mesh.UVAttr)

	b := &Brush{Triangles: make([]Triangle, 0, m.FaceCount())}
	for _, f := range m.Faces() {
		var t Triangle
		for i, l := range m.FaceLoops(f) {
			t.P[i] = m.VertexPosition(m.LoopVertex(l))
			if hasUV {
				v := m.LoopAttr(l, uvSlot)
				if v.Kind == mesh.AttrFloat && len(v.Floats) >= 2 {
					t.UV[i] = mgl64.Vec2{v.Floats[0], v.Floats[1]}
				}
			}
		}
		b.Triangles = append(b.Triangles, t)
	}
	return b, nil
}

// Bounds returns the bounding box of all brush triangles
func (b *Brush) Bounds() geometry.AABB {
	box := geometry.NewAABB()
	for _, t := range b.Triangles {
		box.Extend(t.P[0])
		box.Extend(t.P[1])
		box.Extend(t.P[2])
	}
	return box
}

// ToMesh reconstructs a topology store from a triangle list. Vertices
// are deduplicated by exact position; UVs are written to the "uv" loop
// attribute. Triangles that collapse to fewer than three distinct
// vertices are dropped.
func ToMesh(tris []Triangle) *mesh.Mesh {
	m := mesh.NewMesh()
	uvSlot, _ := m.RegisterLoopAttr(mesh.UVAttr, mesh.AttrFloat, 2)

	lookup := make(map[mgl64.Vec3]mesh.VertexID)
	vertex := func(p mgl64.Vec3) mesh.VertexID {
		if id, ok := lookup[p]; ok {
			return id
		}
		id := m.AddVertex(p)
		lookup[p] = id
		return id
	}

	for _, t := range tris {
		vs := [3]mesh.VertexID{vertex(t.P[0]), vertex(t.P[1]), vertex(t.P[2])}
		if vs[0] == vs[1] || vs[1] == vs[2] || vs[0] == vs[2] {
			continue
		}
		f := m.AddFace(vs[0], vs[1], vs[2])
		if !f.Valid() {
			continue
		}
		for i, l := range m.FaceLoops(f) {
			m.SetLoopAttr(l, uvSlot, mesh.AttrValue{
				Kind:   mesh.AttrFloat,
				Floats: []float64{t.UV[i].X(), t.UV[i].Y()},
			})
		}
	}
	return m
}
