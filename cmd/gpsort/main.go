package main

import (
	"fmt"
	"os"

	"github.com/repsac/gp-sort-sequences/internal/report"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(report.ExitFatal)
	}
	os.Exit(exitStatus)
}
