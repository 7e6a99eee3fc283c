package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/pkg/csg"
	"github.com/philipparndt/gomesh/pkg/stl"
)

var (
	outputFile   string
	binaryOutput bool
)

var unionCmd = &cobra.Command{
	Use:   "union [fileA] [fileB]",
	Short: "Combine two solids into one",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runBoolean(args[0], args[1], csg.Union)
	},
}

var intersectCmd = &cobra.Command{
	Use:   "intersect [fileA] [fileB]",
	Short: "Keep only the volume shared by two solids",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runBoolean(args[0], args[1], csg.Intersection)
	},
}

var subtractCmd = &cobra.Command{
	Use:   "subtract [fileA] [fileB]",
	Short: "Remove the second solid from the first",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runBoolean(args[0], args[1], csg.Subtraction)
	},
}

func init() {
	for _, c := range []*cobra.Command{unionCmd, intersectCmd, subtractCmd} {
		c.Flags().StringVarP(&outputFile, "output", "o", "out.stl", "output STL file")
		c.Flags().BoolVar(&binaryOutput, "binary", false, "write binary STL instead of ASCII")
		rootCmd.AddCommand(c)
	}
}

func runBoolean(fileA, fileB string, op csg.Operation) {
	modelA, err := stl.Parse(fileA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", fileA, err)
		os.Exit(1)
	}
	modelB, err := stl.Parse(fileB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", fileB, err)
		os.Exit(1)
	}

	result, err := csg.Perform(modelA.ToMesh(), modelB.ToMesh(), op)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error performing %s: %v\n", op, err)
		os.Exit(1)
	}

	outModel, err := stl.FromMesh(result, op.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting result: %v\n", err)
		os.Exit(1)
	}

	if err := stl.Write(outputFile, outModel, binaryOutput); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d + %d triangles -> %d triangles (%s)\n",
		op, modelA.TriangleCount(), modelB.TriangleCount(), outModel.TriangleCount(), outputFile)
}
