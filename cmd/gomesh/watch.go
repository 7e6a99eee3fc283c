package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/pkg/csg"
	"github.com/philipparndt/gomesh/pkg/stl"
	"github.com/philipparndt/gomesh/pkg/watcher"
)

var watchOp string

var watchCmd = &cobra.Command{
	Use:   "watch [fileA] [fileB]",
	Short: "Re-run a boolean operation whenever the inputs change",
	Long: `Watch two STL files and rebuild the boolean result every time one of
them is saved, for iterating on models in an external editor.`,
	Args: cobra.ExactArgs(2),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchOp, "op", "union", "operation: union, intersect or subtract")
	watchCmd.Flags().StringVarP(&outputFile, "output", "o", "out.stl", "output STL file")
	watchCmd.Flags().BoolVar(&binaryOutput, "binary", false, "write binary STL instead of ASCII")
}

func runWatch(cmd *cobra.Command, args []string) {
	var op csg.Operation
	switch watchOp {
	case "union":
		op = csg.Union
	case "intersect":
		op = csg.Intersection
	case "subtract":
		op = csg.Subtraction
	default:
		fmt.Fprintf(os.Stderr, "Unknown operation %q\n", watchOp)
		os.Exit(1)
	}

	rebuild := func(changed string) {
		if changed != "" {
			log.Infof("%s changed, rebuilding", changed)
		}
		modelA, err := stl.Parse(args[0])
		if err != nil {
			log.Errorf("parsing %s: %v", args[0], err)
			return
		}
		modelB, err := stl.Parse(args[1])
		if err != nil {
			log.Errorf("parsing %s: %v", args[1], err)
			return
		}
		result, err := csg.Perform(modelA.ToMesh(), modelB.ToMesh(), op)
		if err != nil {
			log.Errorf("performing %s: %v", op, err)
			return
		}
		outModel, err := stl.FromMesh(result, op.String())
		if err != nil {
			log.Errorf("converting result: %v", err)
			return
		}
		if err := stl.Write(outputFile, outModel, binaryOutput); err != nil {
			log.Errorf("writing %s: %v", outputFile, err)
			return
		}
		log.Infof("%s: wrote %d triangles to %s", op, outModel.TriangleCount(), outputFile)
	}

	fw, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	if err := fw.Watch(args, rebuild); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching files: %v\n", err)
		os.Exit(1)
	}
	fw.Start()

	rebuild("")
	log.Infof("watching %s and %s, press Ctrl-C to stop", args[0], args[1])
	select {}
}
