package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRegisterVertexAttr(t *testing.T) {
	m := NewMesh()
	slot, err := m.RegisterVertexAttr("weight", AttrFloat, 1)
	if err != nil {
		t.Fatal(err)
	}

	v := m.AddVertex(mgl64.Vec3{0, 0, 0})
	val := m.VertexAttr(v, slot)
	if val.Kind != AttrFloat || val.Dim() != 1 || val.Floats[0] != 0 {
		t.Errorf("unexpected default value %+v", val)
	}

	m.SetVertexAttr(v, slot, AttrValue{Kind: AttrFloat, Floats: []float64{0.5}})
	if got := m.VertexAttr(v, slot).Floats[0]; got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
}

func TestRegisterBackfillsExisting(t *testing.T) {
	m := NewMesh()
	v1 := m.AddVertex(mgl64.Vec3{0, 0, 0})
	v2 := m.AddVertex(mgl64.Vec3{1, 0, 0})

	slot, err := m.RegisterVertexAttr("id", AttrInt, 1)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []VertexID{v1, v2} {
		val := m.VertexAttr(v, slot)
		if val.Kind != AttrInt || len(val.Ints) != 1 || val.Ints[0] != 0 {
			t.Errorf("vertex %d: expected zero int default, got %+v", v, val)
		}
	}
}

func TestRegisterTwice(t *testing.T) {
	m := NewMesh()
	slot1, err := m.RegisterVertexAttr("weight", AttrFloat, 1)
	if err != nil {
		t.Fatal(err)
	}

	slot2, err := m.RegisterVertexAttr("weight", AttrFloat, 1)
	if err != nil {
		t.Fatalf("re-registering the same layout failed: %v", err)
	}
	if slot1 != slot2 {
		t.Errorf("expected the same slot, got %d and %d", slot1, slot2)
	}

	if _, err := m.RegisterVertexAttr("weight", AttrInt, 1); err == nil {
		t.Error("expected error registering a different kind under the same name")
	}
	if _, err := m.RegisterVertexAttr("weight", AttrFloat, 3); err == nil {
		t.Error("expected error registering a different dimension under the same name")
	}
}

func TestAttrSlotLookup(t *testing.T) {
	m := NewMesh()
	want, _ := m.RegisterFaceAttr("material", AttrInt, 1)

	got, ok := m.FaceAttrSlot("material")
	if !ok || got != want {
		t.Errorf("expected slot %d, got %d ok=%v", want, got, ok)
	}
	if _, ok := m.FaceAttrSlot("missing"); ok {
		t.Error("lookup of unregistered attribute succeeded")
	}
}

func TestAttrDomainsIndependent(t *testing.T) {
	m := NewMesh()
	vSlot, _ := m.RegisterVertexAttr("tag", AttrInt, 1)
	eSlot, _ := m.RegisterEdgeAttr("crease", AttrFloat, 1)
	lSlot, _ := m.RegisterLoopAttr("uv", AttrFloat, 2)

	v1 := m.AddVertex(mgl64.Vec3{0, 0, 0})
	v2 := m.AddVertex(mgl64.Vec3{1, 0, 0})
	v3 := m.AddVertex(mgl64.Vec3{0, 1, 0})
	f := m.AddFace(v1, v2, v3)

	m.SetVertexAttr(v1, vSlot, AttrValue{Kind: AttrInt, Ints: []int{7}})
	m.SetEdgeAttr(m.FindEdge(v1, v2), eSlot, AttrValue{Kind: AttrFloat, Floats: []float64{1}})
	l := m.FaceLoops(f)[0]
	m.SetLoopAttr(l, lSlot, AttrValue{Kind: AttrFloat, Floats: []float64{0.25, 0.75}})

	if m.VertexAttr(v1, vSlot).Ints[0] != 7 {
		t.Error("vertex attribute lost")
	}
	if m.EdgeAttr(m.FindEdge(v1, v2), eSlot).Floats[0] != 1 {
		t.Error("edge attribute lost")
	}
	if uv := m.LoopAttr(l, lSlot).Floats; uv[0] != 0.25 || uv[1] != 0.75 {
		t.Error("loop attribute lost")
	}
}

func TestLerpValue(t *testing.T) {
	a := AttrValue{Kind: AttrFloat, Floats: []float64{0, 10}}
	b := AttrValue{Kind: AttrFloat, Floats: []float64{1, 20}}

	got := LerpValue(a, b, 0.5)
	if got.Floats[0] != 0.5 || got.Floats[1] != 15 {
		t.Errorf("unexpected result %v", got.Floats)
	}

	// Integer attributes round to the nearest value.
	ai := AttrValue{Kind: AttrInt, Ints: []int{0}}
	bi := AttrValue{Kind: AttrInt, Ints: []int{10}}
	if got := LerpValue(ai, bi, 0.26); got.Ints[0] != 3 {
		t.Errorf("expected 3, got %d", got.Ints[0])
	}
}

func TestLerpVertexAttrs(t *testing.T) {
	m := NewMesh()
	slot, _ := m.RegisterVertexAttr("weight", AttrFloat, 1)

	v1 := m.AddVertex(mgl64.Vec3{0, 0, 0})
	v2 := m.AddVertex(mgl64.Vec3{1, 0, 0})
	mid := m.AddVertex(mgl64.Vec3{0.5, 0, 0})

	m.SetVertexAttr(v1, slot, AttrValue{Kind: AttrFloat, Floats: []float64{2}})
	m.SetVertexAttr(v2, slot, AttrValue{Kind: AttrFloat, Floats: []float64{4}})

	m.LerpVertexAttrs(mid, v1, v2, 0.5)
	if got := m.VertexAttr(mid, slot).Floats[0]; got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestAttrValueCopy(t *testing.T) {
	orig := AttrValue{Kind: AttrFloat, Floats: []float64{1, 2}}
	dup := orig.Copy()
	dup.Floats[0] = 99

	if orig.Floats[0] != 1 {
		t.Error("copy shares backing storage with the original")
	}
}
