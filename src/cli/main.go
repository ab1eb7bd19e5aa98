package main

import (
	"os"

	"github.com/certora/certora-build/src/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
