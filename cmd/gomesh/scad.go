package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/pkg/openscad"
	"github.com/philipparndt/gomesh/pkg/stl"
)

var scadOutput string

var scadCmd = &cobra.Command{
	Use:   "scad [file]",
	Short: "Export an STL file as an OpenSCAD polyhedron",
	Args:  cobra.ExactArgs(1),
	Run:   runScad,
}

func init() {
	rootCmd.AddCommand(scadCmd)

	scadCmd.Flags().StringVarP(&scadOutput, "output", "o", "out.scad", "output OpenSCAD file")
}

func runScad(cmd *cobra.Command, args []string) {
	model, err := stl.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	m := model.ToMesh()
	if err := openscad.Write(scadOutput, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", scadOutput, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d faces to %s\n", m.FaceCount(), scadOutput)
}
