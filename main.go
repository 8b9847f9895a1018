package main

import (
	"os"

	"github.com/mgubran1/dispatchgrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
