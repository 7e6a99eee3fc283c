package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gomesh",
	Short: "A CLI tool for boolean operations on triangle meshes",
	Long: `gomesh performs constructive solid geometry (union, intersection,
subtraction) on triangulated STL models and reports model measurements.`,
	Version: version.GetFullVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
