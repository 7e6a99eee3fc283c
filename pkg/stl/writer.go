package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Write saves a model to a file, in binary format when binaryFormat is
// set and ASCII otherwise
func Write(filename string, model *Model, binaryFormat bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if binaryFormat {
		return WriteBinary(file, model)
	}
	return WriteASCII(file, model)
}

// WriteASCII writes a model as ASCII STL
func WriteASCII(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	name := model.Name
	if name == "" {
		name = "model"
	}
	fmt.Fprintf(bw, "solid %s\n", name)

	for _, t := range model.Triangles {
		n := t.Normal()
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", n.X(), n.Y(), n.Z())
		fmt.Fprintf(bw, "    outer loop\n")
		for i := 0; i < 3; i++ {
			v := t.Vertex(i)
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X(), v.Y(), v.Z())
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}

	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// WriteBinary writes a model as binary STL
func WriteBinary(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], model.Name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, t := range model.Triangles {
		n := t.Normal()
		data := [12]float32{
			float32(n.X()), float32(n.Y()), float32(n.Z()),
			float32(t.A.X()), float32(t.A.Y()), float32(t.A.Z()),
			float32(t.B.X()), float32(t.B.Y()), float32(t.B.Z()),
			float32(t.C.X()), float32(t.C.Y()), float32(t.C.Z()),
		}
		if err := binary.Write(bw, binary.LittleEndian, data); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("failed to write attribute for triangle %d: %w", i, err)
		}
	}

	return bw.Flush()
}
