// lzkit is a discovery-workshop tool for cloud landing-zone engagements.
// It gathers structured answers to a fixed question catalog from uploaded
// documents and the operator, validates them against best practices, and
// exports a self-contained session snapshot for downstream tooling.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
