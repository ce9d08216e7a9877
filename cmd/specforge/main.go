package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "specforge",
		Short:   "Specforge — task analysis and specification generator using LLMs",
		Version: version,
	}

	root.AddCommand(
		newAnalyzeCmd(),
		newDesignCmd(),
		newCacheCmd(),
		newStatsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
