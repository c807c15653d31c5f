package main

import (
	"os"

	"github.com/eduplat/campus-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
