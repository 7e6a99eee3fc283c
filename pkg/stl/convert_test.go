package stl

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

func TestModelToMesh(t *testing.T) {
	m := tetrahedron().ToMesh()

	if m.VertexCount() != 4 {
		t.Errorf("vertex count: expected 4, got %d", m.VertexCount())
	}
	if m.FaceCount() != 4 {
		t.Errorf("face count: expected 4, got %d", m.FaceCount())
	}
	if m.EdgeCount() != 6 {
		t.Errorf("edge count: expected 6, got %d", m.EdgeCount())
	}

	// A closed surface: every edge bounded by exactly two faces.
	for _, e := range m.Edges() {
		if n := len(m.EdgeFaces(e)); n != 2 {
			t.Errorf("edge %d: expected 2 faces, got %d", e, n)
		}
	}
}

func TestFromMesh(t *testing.T) {
	m := mesh.NewBox(mgl64.Vec3{1, 1, 1})

	if _, err := FromMesh(m, "box"); err == nil {
		t.Error("expected an error for a quad mesh")
	}

	m.Triangulate()
	model, err := FromMesh(m, "box")
	if err != nil {
		t.Fatal(err)
	}
	if model.Name != "box" {
		t.Errorf("name: expected %q, got %q", "box", model.Name)
	}
	if model.TriangleCount() != 12 {
		t.Errorf("triangle count: expected 12, got %d", model.TriangleCount())
	}
	if area := model.SurfaceArea(); area < 5.999 || area > 6.001 {
		t.Errorf("surface area: expected 6, got %v", area)
	}
}

func TestToMeshDropsDegenerate(t *testing.T) {
	m := NewModel("bad")
	p := mgl64.Vec3{1, 2, 3}
	m.AddTriangle(geometry.NewTriangle(p, p, mgl64.Vec3{4, 5, 6}))

	out := m.ToMesh()
	if out.FaceCount() != 0 {
		t.Errorf("expected degenerate triangle to be dropped, got %d faces", out.FaceCount())
	}
}
