package mesh

import (
	"fmt"
	"math"
)

// AttrKind identifies the value type of an attribute
type AttrKind int

const (
	// AttrFloat is a fixed-length float64 vector
	AttrFloat AttrKind = iota
	// AttrInt is a fixed-length int vector
	AttrInt
)

// AttrValue is a tagged union holding one attribute value: either a
// fixed-length float vector or a fixed-length int vector
type AttrValue struct {
	Kind   AttrKind
	Floats []float64
	Ints   []int
}

// NewFloatValue creates a zeroed float attribute value
func NewFloatValue(dim int) AttrValue {
	return AttrValue{Kind: AttrFloat, Floats: make([]float64, dim)}
}

// NewIntValue creates a zeroed int attribute value
func NewIntValue(dim int) AttrValue {
	return AttrValue{Kind: AttrInt, Ints: make([]int, dim)}
}

// Dim returns the number of components
func (v AttrValue) Dim() int {
	if v.Kind == AttrFloat {
		return len(v.Floats)
	}
	return len(v.Ints)
}

// Copy deep-clones the value
func (v AttrValue) Copy() AttrValue {
	out := AttrValue{Kind: v.Kind}
	if v.Floats != nil {
		out.Floats = append([]float64(nil), v.Floats...)
	}
	if v.Ints != nil {
		out.Ints = append([]int(nil), v.Ints...)
	}
	return out
}

// LerpValue interpolates between two values of the same kind and
// dimension. Float components interpolate linearly; int components
// interpolate linearly and round to the nearest integer.
func LerpValue(a, b AttrValue, t float64) AttrValue {
	out := AttrValue{Kind: a.Kind}
	if a.Kind == AttrFloat {
		out.Floats = make([]float64, len(a.Floats))
		for i := range a.Floats {
			out.Floats[i] = a.Floats[i] + (b.Floats[i]-a.Floats[i])*t
		}
	} else {
		out.Ints = make([]int, len(a.Ints))
		for i := range a.Ints {
			v := float64(a.Ints[i]) + (float64(b.Ints[i])-float64(a.Ints[i]))*t
			out.Ints[i] = int(math.Round(v))
		}
	}
	return out
}

type attrDef struct {
	name string
	kind AttrKind
	dim  int
}

func (d attrDef) defaultValue() AttrValue {
	if d.kind == AttrFloat {
		return NewFloatValue(d.dim)
	}
	return NewIntValue(d.dim)
}

// attrTable holds the attribute declarations of one element kind.
// Names resolve to a slot index once at registration.
type attrTable struct {
	defs  []attrDef
	index map[string]int
}

func (t *attrTable) slot(name string) (int, bool) {
	s, ok := t.index[name]
	return s, ok
}

func (t *attrTable) register(name string, kind AttrKind, dim int) (int, error) {
	if s, ok := t.index[name]; ok {
		d := t.defs[s]
		if d.kind != kind || d.dim != dim {
			return 0, fmt.Errorf("attribute %q already registered with a different type", name)
		}
		return s, nil
	}
	if dim <= 0 {
		return 0, fmt.Errorf("attribute %q: dimension must be positive", name)
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.defs = append(t.defs, attrDef{name: name, kind: kind, dim: dim})
	s := len(t.defs) - 1
	t.index[name] = s
	return s, nil
}

// defaults builds a fresh default value set for a new element
func (t *attrTable) defaults() []AttrValue {
	if len(t.defs) == 0 {
		return nil
	}
	out := make([]AttrValue, len(t.defs))
	for i, d := range t.defs {
		out[i] = d.defaultValue()
	}
	return out
}

// backfill ensures an existing element carries a default value for
// every declared attribute
func (t *attrTable) backfill(attrs []AttrValue) []AttrValue {
	for len(attrs) < len(t.defs) {
		attrs = append(attrs, t.defs[len(attrs)].defaultValue())
	}
	return attrs
}

// RegisterVertexAttr declares a vertex attribute and backfills a
// default value onto every existing vertex. Re-registering a name with
// the same type returns the existing slot.
func (m *Mesh) RegisterVertexAttr(name string, kind AttrKind, dim int) (int, error) {
	s, err := m.vertAttrs.register(name, kind, dim)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(m.verts); i++ {
		if m.verts[i].alive {
			m.verts[i].attrs = m.vertAttrs.backfill(m.verts[i].attrs)
		}
	}
	return s, nil
}

// RegisterEdgeAttr declares an edge attribute; see RegisterVertexAttr
func (m *Mesh) RegisterEdgeAttr(name string, kind AttrKind, dim int) (int, error) {
	s, err := m.edgeAttrs.register(name, kind, dim)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(m.edges); i++ {
		if m.edges[i].alive {
			m.edges[i].attrs = m.edgeAttrs.backfill(m.edges[i].attrs)
		}
	}
	return s, nil
}

// RegisterLoopAttr declares a loop attribute; see RegisterVertexAttr
func (m *Mesh) RegisterLoopAttr(name string, kind AttrKind, dim int) (int, error) {
	s, err := m.loopAttrs.register(name, kind, dim)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(m.loops); i++ {
		if m.loops[i].alive {
			m.loops[i].attrs = m.loopAttrs.backfill(m.loops[i].attrs)
		}
	}
	return s, nil
}

// RegisterFaceAttr declares a face attribute; see RegisterVertexAttr
func (m *Mesh) RegisterFaceAttr(name string, kind AttrKind, dim int) (int, error) {
	s, err := m.faceAttrs.register(name, kind, dim)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(m.faces); i++ {
		if m.faces[i].alive {
			m.faces[i].attrs = m.faceAttrs.backfill(m.faces[i].attrs)
		}
	}
	return s, nil
}

// VertexAttrSlot resolves a vertex attribute name to its slot
func (m *Mesh) VertexAttrSlot(name string) (int, bool) { return m.vertAttrs.slot(name) }

// EdgeAttrSlot resolves an edge attribute name to its slot
func (m *Mesh) EdgeAttrSlot(name string) (int, bool) { return m.edgeAttrs.slot(name) }

// LoopAttrSlot resolves a loop attribute name to its slot
func (m *Mesh) LoopAttrSlot(name string) (int, bool) { return m.loopAttrs.slot(name) }

// FaceAttrSlot resolves a face attribute name to its slot
func (m *Mesh) FaceAttrSlot(name string) (int, bool) { return m.faceAttrs.slot(name) }

// VertexAttr returns the value in a vertex attribute slot
func (m *Mesh) VertexAttr(v VertexID, slot int) AttrValue { return m.verts[v].attrs[slot] }

// SetVertexAttr stores a value in a vertex attribute slot
func (m *Mesh) SetVertexAttr(v VertexID, slot int, val AttrValue) {
	m.verts[v].attrs[slot] = val
}

// EdgeAttr returns the value in an edge attribute slot
func (m *Mesh) EdgeAttr(e EdgeID, slot int) AttrValue { return m.edges[e].attrs[slot] }

// SetEdgeAttr stores a value in an edge attribute slot
func (m *Mesh) SetEdgeAttr(e EdgeID, slot int, val AttrValue) {
	m.edges[e].attrs[slot] = val
}

// LoopAttr returns the value in a loop attribute slot
func (m *Mesh) LoopAttr(l LoopID, slot int) AttrValue { return m.loops[l].attrs[slot] }

// SetLoopAttr stores a value in a loop attribute slot
func (m *Mesh) SetLoopAttr(l LoopID, slot int, val AttrValue) {
	m.loops[l].attrs[slot] = val
}

// FaceAttr returns the value in a face attribute slot
func (m *Mesh) FaceAttr(f FaceID, slot int) AttrValue { return m.faces[f].attrs[slot] }

// SetFaceAttr stores a value in a face attribute slot
func (m *Mesh) SetFaceAttr(f FaceID, slot int, val AttrValue) {
	m.faces[f].attrs[slot] = val
}

// LerpVertexAttrs writes, for every vertex attribute, the interpolation
// of the values on a and b into dst
func (m *Mesh) LerpVertexAttrs(dst, a, b VertexID, t float64) {
	for s := range m.vertAttrs.defs {
		m.verts[dst].attrs[s] = LerpValue(m.verts[a].attrs[s], m.verts[b].attrs[s], t)
	}
}

// LerpLoopAttrs writes, for every loop attribute, the interpolation of
// the values on a and b into dst
func (m *Mesh) LerpLoopAttrs(dst, a, b LoopID, t float64) {
	for s := range m.loopAttrs.defs {
		m.loops[dst].attrs[s] = LerpValue(m.loops[a].attrs[s], m.loops[b].attrs[s], t)
	}
}
