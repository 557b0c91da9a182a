// Package main is the entry point for the cjdict CLI.
package main

import (
	"os"

	"github.com/tsangkit/cjdict/cmd/cjdict/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
