package mesh

import "github.com/go-gl/mathgl/mgl64"

// Translate shifts every vertex position by delta
func (m *Mesh) Translate(delta mgl64.Vec3) {
	for i := 1; i < len(m.verts); i++ {
		if m.verts[i].alive {
			m.verts[i].pos = m.verts[i].pos.Add(delta)
		}
	}
}

// IsTriangulated reports whether every face has exactly three vertices
func (m *Mesh) IsTriangulated() bool {
	for i := 1; i < len(m.faces); i++ {
		if m.faces[i].alive && m.faces[i].vertCount != 3 {
			return false
		}
	}
	return true
}

// Triangulate fan-triangulates every face with more than three
// vertices in place. Loop and face attributes carry over to the new
// corners. Already-triangular faces are left untouched, so the
// operation is idempotent.
func (m *Mesh) Triangulate() {
	for _, f := range m.Faces() {
		if m.faces[f].vertCount <= 3 {
			continue
		}

		verts := m.FaceVertices(f)
		loops := m.FaceLoops(f)

		// Snapshot attribute values before the face (and its loops) go away.
		cornerAttrs := make([][]AttrValue, len(loops))
		for i, l := range loops {
			vals := make([]AttrValue, len(m.loops[l].attrs))
			for s, v := range m.loops[l].attrs {
				vals[s] = v.Copy()
			}
			cornerAttrs[i] = vals
		}
		faceAttrs := make([]AttrValue, len(m.faces[f].attrs))
		for s, v := range m.faces[f].attrs {
			faceAttrs[s] = v.Copy()
		}

		m.RemoveFace(f)

		for i := 1; i < len(verts)-1; i++ {
			nf := m.AddFace(verts[0], verts[i], verts[i+1])
			if !nf.Valid() {
				continue
			}
			for s, v := range faceAttrs {
				m.faces[nf].attrs[s] = v.Copy()
			}
			corners := [3]int{0, i, i + 1}
			for k, l := range m.FaceLoops(nf) {
				for s, v := range cornerAttrs[corners[k]] {
					m.loops[l].attrs[s] = v.Copy()
				}
			}
		}
	}
}
