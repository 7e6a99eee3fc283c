// Package mesh implements a non-manifold boundary-representation mesh
// with vertices, edges, loops (face corners) and faces, plus typed
// per-element attributes.
//
// Topology is stored in flat per-kind arenas addressed by integer
// handles. Removed elements are tombstoned; handles are never reused
// within the lifetime of a mesh. Back-references (a vertex's edge, an
// edge's loop) are lookup hints only and carry no ownership.
package mesh

import "github.com/go-gl/mathgl/mgl64"

// VertexID is a handle to a vertex. The zero value is invalid.
type VertexID int32

// EdgeID is a handle to an edge. The zero value is invalid.
type EdgeID int32

// LoopID is a handle to a loop. The zero value is invalid.
type LoopID int32

// FaceID is a handle to a face. The zero value is invalid.
type FaceID int32

// Valid reports whether the handle refers to an element
func (id VertexID) Valid() bool { return id > 0 }

// Valid reports whether the handle refers to an element
func (id EdgeID) Valid() bool { return id > 0 }

// Valid reports whether the handle refers to an element
func (id LoopID) Valid() bool { return id > 0 }

// Valid reports whether the handle refers to an element
func (id FaceID) Valid() bool { return id > 0 }

type vertexRec struct {
	pos   mgl64.Vec3
	edge  EdgeID // hint into the disk cycle, may be stale after removals
	attrs []AttrValue
	alive bool
}

type edgeRec struct {
	v        [2]VertexID
	diskNext [2]EdgeID // circular disk list, one link pair per endpoint
	diskPrev [2]EdgeID
	loop     LoopID // hint into the radial cycle
	attrs    []AttrValue
	alive    bool
}

type loopRec struct {
	vert       VertexID
	edge       EdgeID
	face       FaceID
	next       LoopID // face cycle
	prev       LoopID
	radialNext LoopID // radial cycle around the edge
	radialPrev LoopID
	attrs      []AttrValue
	alive      bool
}

type faceRec struct {
	loop      LoopID
	vertCount int
	attrs     []AttrValue
	alive     bool
}

// Mesh is a non-manifold topology store.
//
// A Mesh is not safe for concurrent use, and collections must not be
// mutated while being traversed: snapshot the relevant handles (the
// accessors below always return independent slices) before removing
// elements in a loop.
type Mesh struct {
	verts []vertexRec
	edges []edgeRec
	loops []loopRec
	faces []faceRec

	vertAttrs attrTable
	edgeAttrs attrTable
	loopAttrs attrTable
	faceAttrs attrTable

	nVerts int
	nEdges int
	nLoops int
	nFaces int
}

// NewMesh creates an empty mesh
func NewMesh() *Mesh {
	// Slot 0 of every arena is a dummy so that the zero handle is invalid.
	return &Mesh{
		verts: make([]vertexRec, 1),
		edges: make([]edgeRec, 1),
		loops: make([]loopRec, 1),
		faces: make([]faceRec, 1),
	}
}

// VertexCount returns the number of live vertices
func (m *Mesh) VertexCount() int { return m.nVerts }

// EdgeCount returns the number of live edges
func (m *Mesh) EdgeCount() int { return m.nEdges }

// LoopCount returns the number of live loops
func (m *Mesh) LoopCount() int { return m.nLoops }

// FaceCount returns the number of live faces
func (m *Mesh) FaceCount() int { return m.nFaces }

// Vertices returns a snapshot of all live vertex handles
func (m *Mesh) Vertices() []VertexID {
	ids := make([]VertexID, 0, m.nVerts)
	for i := 1; i < len(m.verts); i++ {
		if m.verts[i].alive {
			ids = append(ids, VertexID(i))
		}
	}
	return ids
}

// Edges returns a snapshot of all live edge handles
func (m *Mesh) Edges() []EdgeID {
	ids := make([]EdgeID, 0, m.nEdges)
	for i := 1; i < len(m.edges); i++ {
		if m.edges[i].alive {
			ids = append(ids, EdgeID(i))
		}
	}
	return ids
}

// Loops returns a snapshot of all live loop handles
func (m *Mesh) Loops() []LoopID {
	ids := make([]LoopID, 0, m.nLoops)
	for i := 1; i < len(m.loops); i++ {
		if m.loops[i].alive {
			ids = append(ids, LoopID(i))
		}
	}
	return ids
}

// Faces returns a snapshot of all live face handles
func (m *Mesh) Faces() []FaceID {
	ids := make([]FaceID, 0, m.nFaces)
	for i := 1; i < len(m.faces); i++ {
		if m.faces[i].alive {
			ids = append(ids, FaceID(i))
		}
	}
	return ids
}

// AddVertex creates a vertex at the given position
func (m *Mesh) AddVertex(pos mgl64.Vec3) VertexID {
	rec := vertexRec{pos: pos, alive: true}
	rec.attrs = m.vertAttrs.defaults()
	m.verts = append(m.verts, rec)
	m.nVerts++
	return VertexID(len(m.verts) - 1)
}

// VertexPosition returns the position of a vertex
func (m *Mesh) VertexPosition(v VertexID) mgl64.Vec3 {
	return m.verts[v].pos
}

// SetVertexPosition moves a vertex
func (m *Mesh) SetVertexPosition(v VertexID, pos mgl64.Vec3) {
	m.verts[v].pos = pos
}

// edgeSide returns which endpoint slot of e the vertex v occupies
func (m *Mesh) edgeSide(e EdgeID, v VertexID) int {
	if m.edges[e].v[0] == v {
		return 0
	}
	return 1
}

func (m *Mesh) diskNext(e EdgeID, v VertexID) EdgeID {
	return m.edges[e].diskNext[m.edgeSide(e, v)]
}

// diskAppend splices edge e into vertex v's circular disk list
func (m *Mesh) diskAppend(e EdgeID, v VertexID) {
	s := m.edgeSide(e, v)
	first := m.verts[v].edge
	if !first.Valid() {
		m.verts[v].edge = e
		m.edges[e].diskNext[s] = e
		m.edges[e].diskPrev[s] = e
		return
	}
	fs := m.edgeSide(first, v)
	last := m.edges[first].diskPrev[fs]
	ls := m.edgeSide(last, v)

	m.edges[e].diskNext[s] = first
	m.edges[e].diskPrev[s] = last
	m.edges[last].diskNext[ls] = e
	m.edges[first].diskPrev[fs] = e
}

// diskRemove unsplices edge e from vertex v's disk list
func (m *Mesh) diskRemove(e EdgeID, v VertexID) {
	s := m.edgeSide(e, v)
	next := m.edges[e].diskNext[s]
	prev := m.edges[e].diskPrev[s]

	if next == e {
		m.verts[v].edge = 0
	} else {
		m.edges[prev].diskNext[m.edgeSide(prev, v)] = next
		m.edges[next].diskPrev[m.edgeSide(next, v)] = prev
		if m.verts[v].edge == e {
			m.verts[v].edge = next
		}
	}
	m.edges[e].diskNext[s] = 0
	m.edges[e].diskPrev[s] = 0
}

// FindEdge returns the edge between two vertices, or the invalid handle
func (m *Mesh) FindEdge(v1, v2 VertexID) EdgeID {
	start := m.verts[v1].edge
	if !start.Valid() {
		return 0
	}
	e := start
	for {
		rec := &m.edges[e]
		if (rec.v[0] == v1 && rec.v[1] == v2) || (rec.v[0] == v2 && rec.v[1] == v1) {
			return e
		}
		e = m.diskNext(e, v1)
		if e == start {
			return 0
		}
	}
}

// AddEdge creates an edge between two distinct vertices. If such an
// edge already exists it is returned unchanged. Returns the invalid
// handle when v1 == v2.
func (m *Mesh) AddEdge(v1, v2 VertexID) EdgeID {
	if v1 == v2 {
		return 0
	}
	if existing := m.FindEdge(v1, v2); existing.Valid() {
		return existing
	}

	rec := edgeRec{v: [2]VertexID{v1, v2}, alive: true}
	rec.attrs = m.edgeAttrs.defaults()
	m.edges = append(m.edges, rec)
	m.nEdges++
	e := EdgeID(len(m.edges) - 1)

	m.diskAppend(e, v1)
	m.diskAppend(e, v2)
	return e
}

// EdgeVertices returns the two endpoints of an edge
func (m *Mesh) EdgeVertices(e EdgeID) (VertexID, VertexID) {
	return m.edges[e].v[0], m.edges[e].v[1]
}

// OtherVertex returns the endpoint of e that is not v
func (m *Mesh) OtherVertex(e EdgeID, v VertexID) VertexID {
	if m.edges[e].v[0] == v {
		return m.edges[e].v[1]
	}
	return m.edges[e].v[0]
}

// VertexEdges returns a snapshot of all edges incident to a vertex
func (m *Mesh) VertexEdges(v VertexID) []EdgeID {
	var out []EdgeID
	start := m.verts[v].edge
	if !start.Valid() {
		return out
	}
	e := start
	for {
		out = append(out, e)
		e = m.diskNext(e, v)
		if e == start {
			return out
		}
	}
}

// VertexFaces returns a snapshot of the distinct faces touching a vertex
func (m *Mesh) VertexFaces(v VertexID) []FaceID {
	var out []FaceID
	seen := make(map[FaceID]bool)
	for _, e := range m.VertexEdges(v) {
		for _, f := range m.EdgeFaces(e) {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// radialAppend splices loop l into its edge's radial cycle
func (m *Mesh) radialAppend(l LoopID) {
	e := m.loops[l].edge
	first := m.edges[e].loop
	if !first.Valid() {
		m.edges[e].loop = l
		m.loops[l].radialNext = l
		m.loops[l].radialPrev = l
		return
	}
	last := m.loops[first].radialPrev
	m.loops[l].radialNext = first
	m.loops[l].radialPrev = last
	m.loops[last].radialNext = l
	m.loops[first].radialPrev = l
}

// radialRemove unsplices loop l from its edge's radial cycle
func (m *Mesh) radialRemove(l LoopID) {
	e := m.loops[l].edge
	next := m.loops[l].radialNext
	prev := m.loops[l].radialPrev

	if next == l {
		m.edges[e].loop = 0
	} else {
		m.loops[prev].radialNext = next
		m.loops[next].radialPrev = prev
		if m.edges[e].loop == l {
			m.edges[e].loop = next
		}
	}
	m.loops[l].radialNext = 0
	m.loops[l].radialPrev = 0
}

// EdgeLoops returns a snapshot of the radial cycle of an edge, one
// loop per face using the edge
func (m *Mesh) EdgeLoops(e EdgeID) []LoopID {
	var out []LoopID
	start := m.edges[e].loop
	if !start.Valid() {
		return out
	}
	l := start
	for {
		out = append(out, l)
		l = m.loops[l].radialNext
		if l == start {
			return out
		}
	}
}

// EdgeFaces returns a snapshot of the faces incident to an edge
func (m *Mesh) EdgeFaces(e EdgeID) []FaceID {
	loops := m.EdgeLoops(e)
	out := make([]FaceID, 0, len(loops))
	for _, l := range loops {
		if m.loops[l].face.Valid() {
			out = append(out, m.loops[l].face)
		}
	}
	return out
}

// AddFace creates a face over the given vertices, preserving their
// winding order. Edges are created as needed. Returns the invalid
// handle when no vertices are given or when consecutive vertices
// coincide.
func (m *Mesh) AddFace(vs ...VertexID) FaceID {
	if len(vs) == 0 {
		return 0
	}
	for i, v := range vs {
		if v == vs[(i+1)%len(vs)] {
			return 0
		}
	}

	frec := faceRec{vertCount: len(vs), alive: true}
	frec.attrs = m.faceAttrs.defaults()
	m.faces = append(m.faces, frec)
	m.nFaces++
	f := FaceID(len(m.faces) - 1)

	loopIDs := make([]LoopID, len(vs))
	for i, v := range vs {
		e := m.AddEdge(v, vs[(i+1)%len(vs)])
		lrec := loopRec{vert: v, edge: e, face: f, alive: true}
		lrec.attrs = m.loopAttrs.defaults()
		m.loops = append(m.loops, lrec)
		m.nLoops++
		loopIDs[i] = LoopID(len(m.loops) - 1)
		m.radialAppend(loopIDs[i])
	}

	for i, l := range loopIDs {
		m.loops[l].next = loopIDs[(i+1)%len(loopIDs)]
		m.loops[l].prev = loopIDs[(i+len(loopIDs)-1)%len(loopIDs)]
	}
	m.faces[f].loop = loopIDs[0]
	return f
}

// FaceLoops returns a snapshot of the face's loop cycle in winding order
func (m *Mesh) FaceLoops(f FaceID) []LoopID {
	out := make([]LoopID, 0, m.faces[f].vertCount)
	start := m.faces[f].loop
	if !start.Valid() {
		return out
	}
	l := start
	for {
		out = append(out, l)
		l = m.loops[l].next
		if l == start {
			return out
		}
	}
}

// FaceVertices returns a snapshot of the face's vertices in winding order
func (m *Mesh) FaceVertices(f FaceID) []VertexID {
	loops := m.FaceLoops(f)
	out := make([]VertexID, len(loops))
	for i, l := range loops {
		out[i] = m.loops[l].vert
	}
	return out
}

// FaceVertexCount returns the cached vertex count of a face
func (m *Mesh) FaceVertexCount(f FaceID) int {
	return m.faces[f].vertCount
}

// LoopVertex returns the vertex a loop sits on
func (m *Mesh) LoopVertex(l LoopID) VertexID { return m.loops[l].vert }

// LoopEdge returns the edge a loop follows
func (m *Mesh) LoopEdge(l LoopID) EdgeID { return m.loops[l].edge }

// LoopFace returns the face a loop belongs to
func (m *Mesh) LoopFace(l LoopID) FaceID { return m.loops[l].face }

// LoopNext returns the next loop in the face cycle
func (m *Mesh) LoopNext(l LoopID) LoopID { return m.loops[l].next }

// IsVertexAlive reports whether a vertex handle is still live
func (m *Mesh) IsVertexAlive(v VertexID) bool {
	return int(v) > 0 && int(v) < len(m.verts) && m.verts[v].alive
}

// IsEdgeAlive reports whether an edge handle is still live
func (m *Mesh) IsEdgeAlive(e EdgeID) bool {
	return int(e) > 0 && int(e) < len(m.edges) && m.edges[e].alive
}

// IsLoopAlive reports whether a loop handle is still live
func (m *Mesh) IsLoopAlive(l LoopID) bool {
	return int(l) > 0 && int(l) < len(m.loops) && m.loops[l].alive
}

// IsFaceAlive reports whether a face handle is still live
func (m *Mesh) IsFaceAlive(f FaceID) bool {
	return int(f) > 0 && int(f) < len(m.faces) && m.faces[f].alive
}

// RemoveFace removes a face and its loops. The loops' face references
// are cleared before detaching so removal never cascades back into the
// face.
func (m *Mesh) RemoveFace(f FaceID) {
	if !m.IsFaceAlive(f) {
		return
	}
	loops := m.FaceLoops(f)
	for _, l := range loops {
		m.loops[l].face = 0
	}
	for _, l := range loops {
		m.radialRemove(l)
		m.loops[l].alive = false
		m.loops[l].next = 0
		m.loops[l].prev = 0
		m.nLoops--
	}
	m.faces[f].alive = false
	m.faces[f].loop = 0
	m.nFaces--
}

// RemoveEdge removes an edge. Every face using the edge is removed
// first: an edge never loses a single loop without its whole face.
func (m *Mesh) RemoveEdge(e EdgeID) {
	if !m.IsEdgeAlive(e) {
		return
	}
	for m.edges[e].loop.Valid() {
		l := m.edges[e].loop
		if f := m.loops[l].face; f.Valid() {
			m.RemoveFace(f)
		} else {
			m.radialRemove(l)
			m.loops[l].alive = false
			m.nLoops--
		}
	}
	m.diskRemove(e, m.edges[e].v[0])
	m.diskRemove(e, m.edges[e].v[1])
	m.edges[e].alive = false
	m.nEdges--
}

// RemoveVertex removes a vertex along with every incident edge (and,
// through them, every incident face)
func (m *Mesh) RemoveVertex(v VertexID) {
	if !m.IsVertexAlive(v) {
		return
	}
	for m.verts[v].edge.Valid() {
		m.RemoveEdge(m.verts[v].edge)
	}
	m.verts[v].alive = false
	m.nVerts--
}
