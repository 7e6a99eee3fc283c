package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// UVAttr is the name of the per-corner texture coordinate attribute
// written by the shape generators and consumed by the CSG engine
const UVAttr = "uv"

// NewBox creates an axis-aligned box spanning from the origin to size,
// as six quad faces with outward winding and per-corner UVs
func NewBox(size mgl64.Vec3) *Mesh {
	m := NewMesh()
	uvSlot, _ := m.RegisterLoopAttr(UVAttr, AttrFloat, 2)

	sx, sy, sz := size.X(), size.Y(), size.Z()
	corners := [8]mgl64.Vec3{
		{0, 0, 0}, {sx, 0, 0}, {sx, sy, 0}, {0, sy, 0},
		{0, 0, sz}, {sx, 0, sz}, {sx, sy, sz}, {0, sy, sz},
	}
	var vs [8]VertexID
	for i, c := range corners {
		vs[i] = m.AddVertex(c)
	}

	quads := [6][4]int{
		{0, 3, 2, 1}, // bottom, -z
		{4, 5, 6, 7}, // top, +z
		{0, 1, 5, 4}, // front, -y
		{2, 3, 7, 6}, // back, +y
		{0, 4, 7, 3}, // left, -x
		{1, 2, 6, 5}, // right, +x
	}
	quadUV := [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for _, q := range quads {
		f := m.AddFace(vs[q[0]], vs[q[1]], vs[q[2]], vs[q[3]])
		for i, l := range m.FaceLoops(f) {
			m.SetLoopAttr(l, uvSlot, AttrValue{Kind: AttrFloat, Floats: []float64{quadUV[i].X(), quadUV[i].Y()}})
		}
	}
	return m
}

// NewUVSphere creates a pole-capped UV sphere centered at the origin:
// triangles at the poles, quads elsewhere, per-corner UVs with a
// proper seam (the seam reuses vertices but not texture coordinates)
func NewUVSphere(radius float64, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	m := NewMesh()
	uvSlot, _ := m.RegisterLoopAttr(UVAttr, AttrFloat, 2)

	top := m.AddVertex(mgl64.Vec3{0, 0, radius})
	bottom := m.AddVertex(mgl64.Vec3{0, 0, -radius})

	// Interior rings, pole rows excluded.
	rows := make([][]VertexID, rings-1)
	for i := 1; i < rings; i++ {
		phi := math.Pi * float64(i) / float64(rings)
		row := make([]VertexID, segments)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			row[j] = m.AddVertex(mgl64.Vec3{
				radius * math.Sin(phi) * math.Cos(theta),
				radius * math.Sin(phi) * math.Sin(theta),
				radius * math.Cos(phi),
			})
		}
		rows[i-1] = row
	}

	uv := func(i, j int) mgl64.Vec2 {
		return mgl64.Vec2{float64(j) / float64(segments), float64(i) / float64(rings)}
	}
	setUV := func(f FaceID, uvs ...mgl64.Vec2) {
		for i, l := range m.FaceLoops(f) {
			m.SetLoopAttr(l, uvSlot, AttrValue{Kind: AttrFloat, Floats: []float64{uvs[i].X(), uvs[i].Y()}})
		}
	}

	for j := 0; j < segments; j++ {
		jn := (j + 1) % segments
		poleU := mgl64.Vec2{(float64(j) + 0.5) / float64(segments), 0}

		f := m.AddFace(top, rows[0][j], rows[0][jn])
		setUV(f, poleU, uv(1, j), uv(1, j+1))

		f = m.AddFace(bottom, rows[rings-2][jn], rows[rings-2][j])
		setUV(f,
			mgl64.Vec2{poleU.X(), 1},
			uv(rings-1, j+1), uv(rings-1, j))
	}

	for i := 0; i < rings-2; i++ {
		for j := 0; j < segments; j++ {
			jn := (j + 1) % segments
			f := m.AddFace(rows[i][j], rows[i+1][j], rows[i+1][jn], rows[i][jn])
			setUV(f, uv(i+1, j), uv(i+2, j), uv(i+2, j+1), uv(i+1, j+1))
		}
	}
	return m
}
