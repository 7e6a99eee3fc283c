// Package openscad exports meshes as OpenSCAD polyhedron source, so
// results of boolean operations can be reused inside .scad projects.
package openscad

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/gomesh/pkg/mesh"
)

// Export writes the mesh as a single polyhedron() call. Faces keep
// their arity; OpenSCAD expects faces wound clockwise when viewed from
// outside, the reverse of this library's convention, so the vertex
// order is flipped on output.
func Export(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	index := make(map[mesh.VertexID]int, m.VertexCount())

	fmt.Fprintln(bw, "polyhedron(")
	fmt.Fprintln(bw, "  points = [")
	for i, v := range m.Vertices() {
		index[v] = i
		p := m.VertexPosition(v)
		fmt.Fprintf(bw, "    [%g, %g, %g],\n", p.X(), p.Y(), p.Z())
	}
	fmt.Fprintln(bw, "  ],")

	fmt.Fprintln(bw, "  faces = [")
	for _, f := range m.Faces() {
		vs := m.FaceVertices(f)
		fmt.Fprint(bw, "    [")
		for i := len(vs) - 1; i >= 0; i-- {
			fmt.Fprintf(bw, "%d", index[vs[i]])
			if i > 0 {
				fmt.Fprint(bw, ", ")
			}
		}
		fmt.Fprintln(bw, "],")
	}
	fmt.Fprintln(bw, "  ]")
	fmt.Fprintln(bw, ");")

	return bw.Flush()
}

// Write saves the mesh as an OpenSCAD file
func Write(filename string, m *mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return Export(file, m)
}
