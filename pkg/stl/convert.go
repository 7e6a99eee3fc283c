package stl

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// ToMesh builds a topology store from the model's triangle soup.
// Vertices are deduplicated by exact position; degenerate triangles
// (fewer than three distinct vertices) are dropped.
func (m *Model) ToMesh() *mesh.Mesh {
	out := mesh.NewMesh()
	lookup := make(map[mgl64.Vec3]mesh.VertexID)

	vertex := func(p mgl64.Vec3) mesh.VertexID {
		if id, ok := lookup[p]; ok {
			return id
		}
		id := out.AddVertex(p)
		lookup[p] = id
		return id
	}

	for _, t := range m.Triangles {
		v1, v2, v3 := vertex(t.A), vertex(t.B), vertex(t.C)
		if v1 == v2 || v2 == v3 || v1 == v3 {
			continue
		}
		out.AddFace(v1, v2, v3)
	}
	return out
}

// FromMesh flattens a fully triangulated topology store into a model
func FromMesh(m *mesh.Mesh, name string) (*Model, error) {
	if !m.IsTriangulated() {
		return nil, fmt.Errorf("mesh has non-triangular faces")
	}
	model := NewModel(name)
	for _, f := range m.Faces() {
		vs := m.FaceVertices(f)
		model.AddTriangle(geometry.NewTriangle(
			m.VertexPosition(vs[0]),
			m.VertexPosition(vs[1]),
			m.VertexPosition(vs[2]),
		))
	}
	return model, nil
}
