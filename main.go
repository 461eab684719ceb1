package main

import (
	"os"

	"github.com/kilianp07/wasteops/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
