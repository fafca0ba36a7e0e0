// Command nrn converts provincial road network sources into the National
// Road Network canonical schema and emits per-format, per-language output
// bundles (spec.md §6 "External Interfaces").
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
