package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func quadMesh() (*Mesh, [4]VertexID, FaceID) {
	m := NewMesh()
	var vs [4]VertexID
	vs[0] = m.AddVertex(mgl64.Vec3{0, 0, 0})
	vs[1] = m.AddVertex(mgl64.Vec3{1, 0, 0})
	vs[2] = m.AddVertex(mgl64.Vec3{1, 1, 0})
	vs[3] = m.AddVertex(mgl64.Vec3{0, 1, 0})
	f := m.AddFace(vs[0], vs[1], vs[2], vs[3])
	return m, vs, f
}

func TestAddVertex(t *testing.T) {
	m := NewMesh()
	v := m.AddVertex(mgl64.Vec3{1, 2, 3})

	if !v.Valid() {
		t.Fatal("expected valid vertex handle")
	}
	if m.VertexCount() != 1 {
		t.Errorf("vertex count: expected 1, got %d", m.VertexCount())
	}
	if m.VertexPosition(v) != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("unexpected position %v", m.VertexPosition(v))
	}
}

func TestAddEdgeIdempotent(t *testing.T) {
	m := NewMesh()
	v1 := m.AddVertex(mgl64.Vec3{0, 0, 0})
	v2 := m.AddVertex(mgl64.Vec3{1, 0, 0})

	e1 := m.AddEdge(v1, v2)
	e2 := m.AddEdge(v2, v1)

	if e1 != e2 {
		t.Errorf("expected the same edge handle, got %d and %d", e1, e2)
	}
	if m.EdgeCount() != 1 {
		t.Errorf("edge count: expected 1, got %d", m.EdgeCount())
	}
}

func TestAddEdgeSelfLoop(t *testing.T) {
	m := NewMesh()
	v := m.AddVertex(mgl64.Vec3{0, 0, 0})

	if e := m.AddEdge(v, v); e.Valid() {
		t.Errorf("expected invalid handle for self-edge, got %d", e)
	}
}

func TestAddFaceQuad(t *testing.T) {
	m, vs, f := quadMesh()

	if !f.Valid() {
		t.Fatal("expected valid face handle")
	}
	if m.FaceVertexCount(f) != 4 {
		t.Errorf("face vertex count: expected 4, got %d", m.FaceVertexCount(f))
	}
	if m.EdgeCount() != 4 {
		t.Errorf("edge count: expected 4, got %d", m.EdgeCount())
	}
	if m.LoopCount() != 4 {
		t.Errorf("loop count: expected 4, got %d", m.LoopCount())
	}

	got := m.FaceVertices(f)
	for i, v := range vs {
		if got[i] != v {
			t.Errorf("vertex %d: expected %d, got %d", i, v, got[i])
		}
	}
}

func TestAddFaceDegenerate(t *testing.T) {
	m := NewMesh()
	v1 := m.AddVertex(mgl64.Vec3{0, 0, 0})
	v2 := m.AddVertex(mgl64.Vec3{1, 0, 0})

	if f := m.AddFace(); f.Valid() {
		t.Error("expected invalid handle for empty face")
	}
	if f := m.AddFace(v1, v1, v2); f.Valid() {
		t.Error("expected invalid handle for consecutive duplicate vertices")
	}
}

func TestDiskCycle(t *testing.T) {
	m := NewMesh()
	center := m.AddVertex(mgl64.Vec3{0, 0, 0})
	for i := 0; i < 5; i++ {
		v := m.AddVertex(mgl64.Vec3{float64(i + 1), 0, 0})
		m.AddEdge(center, v)
	}

	edges := m.VertexEdges(center)
	if len(edges) != 5 {
		t.Fatalf("expected 5 edges around vertex, got %d", len(edges))
	}
	seen := map[EdgeID]bool{}
	for _, e := range edges {
		if seen[e] {
			t.Errorf("edge %d visited twice in disk cycle", e)
		}
		seen[e] = true
	}
}

func TestRadialCycleMatchesNeighborFaces(t *testing.T) {
	// Two triangles sharing an edge.
	m := NewMesh()
	v1 := m.AddVertex(mgl64.Vec3{0, 0, 0})
	v2 := m.AddVertex(mgl64.Vec3{1, 0, 0})
	v3 := m.AddVertex(mgl64.Vec3{0.5, 1, 0})
	v4 := m.AddVertex(mgl64.Vec3{0.5, -1, 0})
	m.AddFace(v1, v2, v3)
	m.AddFace(v2, v1, v4)

	for _, e := range m.Edges() {
		loops := m.EdgeLoops(e)
		faces := m.EdgeFaces(e)
		if len(loops) != len(faces) {
			t.Errorf("edge %d: %d loops in radial cycle but %d faces", e, len(loops), len(faces))
		}
	}

	shared := m.FindEdge(v1, v2)
	if !shared.Valid() {
		t.Fatal("shared edge not found")
	}
	if n := len(m.EdgeFaces(shared)); n != 2 {
		t.Errorf("shared edge: expected 2 faces, got %d", n)
	}
}

func TestFaceLoopCycle(t *testing.T) {
	m, vs, f := quadMesh()

	loops := m.FaceLoops(f)
	if len(loops) != 4 {
		t.Fatalf("expected 4 loops, got %d", len(loops))
	}
	for i, l := range loops {
		if m.LoopFace(l) != f {
			t.Errorf("loop %d points at face %d, expected %d", l, m.LoopFace(l), f)
		}
		if m.LoopVertex(l) != vs[i] {
			t.Errorf("loop %d: expected vertex %d, got %d", i, vs[i], m.LoopVertex(l))
		}
		e := m.LoopEdge(l)
		a, b := m.EdgeVertices(e)
		next := vs[(i+1)%4]
		if !(a == vs[i] && b == next) && !(a == next && b == vs[i]) {
			t.Errorf("loop %d edge connects %d-%d, expected %d-%d", i, a, b, vs[i], next)
		}
	}
	if m.LoopNext(loops[3]) != loops[0] {
		t.Error("loop cycle is not circular")
	}
}

func TestRemoveFace(t *testing.T) {
	m, _, f := quadMesh()
	m.RemoveFace(f)

	if m.IsFaceAlive(f) {
		t.Error("face still alive after removal")
	}
	if m.FaceCount() != 0 {
		t.Errorf("face count: expected 0, got %d", m.FaceCount())
	}
	if m.LoopCount() != 0 {
		t.Errorf("loop count: expected 0, got %d", m.LoopCount())
	}
	for _, l := range m.Loops() {
		if m.LoopFace(l) == f {
			t.Errorf("loop %d still references removed face", l)
		}
	}
	// Edges and vertices survive.
	if m.EdgeCount() != 4 {
		t.Errorf("edge count: expected 4, got %d", m.EdgeCount())
	}
	if m.VertexCount() != 4 {
		t.Errorf("vertex count: expected 4, got %d", m.VertexCount())
	}
}

func TestRemoveEdgeRemovesFaces(t *testing.T) {
	// Two triangles sharing an edge: removing it kills both faces.
	m := NewMesh()
	v1 := m.AddVertex(mgl64.Vec3{0, 0, 0})
	v2 := m.AddVertex(mgl64.Vec3{1, 0, 0})
	v3 := m.AddVertex(mgl64.Vec3{0.5, 1, 0})
	v4 := m.AddVertex(mgl64.Vec3{0.5, -1, 0})
	m.AddFace(v1, v2, v3)
	m.AddFace(v2, v1, v4)

	m.RemoveEdge(m.FindEdge(v1, v2))

	if m.FaceCount() != 0 {
		t.Errorf("face count: expected 0, got %d", m.FaceCount())
	}
	if m.EdgeCount() != 4 {
		t.Errorf("edge count: expected 4 remaining, got %d", m.EdgeCount())
	}
	if m.FindEdge(v1, v2).Valid() {
		t.Error("removed edge still found in disk cycle")
	}
}

func TestRemoveVertexCascades(t *testing.T) {
	m, vs, _ := quadMesh()
	m.RemoveVertex(vs[0])

	if m.IsVertexAlive(vs[0]) {
		t.Error("vertex still alive after removal")
	}
	if m.FaceCount() != 0 {
		t.Errorf("face count: expected 0, got %d", m.FaceCount())
	}
	// The two edges incident to vs[0] are gone, the opposite two remain.
	if m.EdgeCount() != 2 {
		t.Errorf("edge count: expected 2, got %d", m.EdgeCount())
	}
	if m.VertexCount() != 3 {
		t.Errorf("vertex count: expected 3, got %d", m.VertexCount())
	}
}

func TestHandlesStableAcrossRemoval(t *testing.T) {
	m := NewMesh()
	v1 := m.AddVertex(mgl64.Vec3{0, 0, 0})
	v2 := m.AddVertex(mgl64.Vec3{1, 0, 0})
	v3 := m.AddVertex(mgl64.Vec3{2, 0, 0})

	m.RemoveVertex(v2)

	if !m.IsVertexAlive(v1) || !m.IsVertexAlive(v3) {
		t.Fatal("unrelated vertices died")
	}
	if m.VertexPosition(v3) != (mgl64.Vec3{2, 0, 0}) {
		t.Errorf("handle %d no longer resolves to its position", v3)
	}
}

func TestTranslate(t *testing.T) {
	m, vs, _ := quadMesh()
	m.Translate(mgl64.Vec3{10, 0, -2})

	if m.VertexPosition(vs[2]) != (mgl64.Vec3{11, 1, -2}) {
		t.Errorf("unexpected position %v", m.VertexPosition(vs[2]))
	}
}

func TestTriangulate(t *testing.T) {
	m, _, _ := quadMesh()
	if m.IsTriangulated() {
		t.Fatal("quad mesh reported as triangulated")
	}

	m.Triangulate()

	if !m.IsTriangulated() {
		t.Fatal("mesh not triangulated")
	}
	if m.FaceCount() != 2 {
		t.Errorf("face count: expected 2, got %d", m.FaceCount())
	}

	// Idempotent.
	before := m.FaceCount()
	m.Triangulate()
	if m.FaceCount() != before {
		t.Errorf("second call changed face count: %d to %d", before, m.FaceCount())
	}
}

func TestTriangulateKeepsAttributes(t *testing.T) {
	m, _, f := quadMesh()
	slot, err := m.RegisterLoopAttr("uv", AttrFloat, 2)
	if err != nil {
		t.Fatal(err)
	}
	uvs := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, l := range m.FaceLoops(f) {
		m.SetLoopAttr(l, slot, AttrValue{Kind: AttrFloat, Floats: uvs[i]})
	}

	m.Triangulate()

	for _, tf := range m.Faces() {
		verts := m.FaceVertices(tf)
		for i, l := range m.FaceLoops(tf) {
			got := m.LoopAttr(l, slot).Floats
			want := uvs[int(verts[i])-1]
			if got[0] != want[0] || got[1] != want[1] {
				t.Errorf("vertex %d: expected uv %v, got %v", verts[i], want, got)
			}
		}
	}
}

func TestNewBox(t *testing.T) {
	m := NewBox(mgl64.Vec3{1, 2, 3})

	if m.VertexCount() != 8 {
		t.Errorf("vertex count: expected 8, got %d", m.VertexCount())
	}
	if m.EdgeCount() != 12 {
		t.Errorf("edge count: expected 12, got %d", m.EdgeCount())
	}
	if m.FaceCount() != 6 {
		t.Errorf("face count: expected 6, got %d", m.FaceCount())
	}
	if m.LoopCount() != 24 {
		t.Errorf("loop count: expected 24, got %d", m.LoopCount())
	}

	for _, v := range m.Vertices() {
		p := m.VertexPosition(v)
		if p.X() < 0 || p.X() > 1 || p.Y() < 0 || p.Y() > 2 || p.Z() < 0 || p.Z() > 3 {
			t.Errorf("vertex %v outside box extents", p)
		}
	}

	if _, ok := m.LoopAttrSlot(UVAttr); !ok {
		t.Error("box mesh missing uv attribute")
	}
}

func TestNewUVSphere(t *testing.T) {
	const segments, rings = 16, 8
	m := NewUVSphere(1, segments, rings)

	// Two pole fans plus quad strips between the interior rings.
	wantFaces := segments*2 + segments*(rings-2)
	if m.FaceCount() != wantFaces {
		t.Errorf("face count: expected %d, got %d", wantFaces, m.FaceCount())
	}

	for _, v := range m.Vertices() {
		r := m.VertexPosition(v).Len()
		if r < 0.999 || r > 1.001 {
			t.Errorf("vertex at radius %v, expected 1", r)
		}
	}
}
