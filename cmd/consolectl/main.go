package main

import (
	"fmt"
	"os"

	"github.com/opslens/console/internal/cli"
)

var version = "v0.1.0" // Overwritten at build time

func main() {
	rootCmd := cli.NewRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
