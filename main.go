package main

import (
	"os"

	"github.com/ropeadope62/zeroenv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Commands print their own failure messages; the error here only
		// drives the exit status.
		os.Exit(1)
	}
}
