package main

import (
	"os"

	"github.com/DRSN-tech/pharmacrawl/internal/delivery/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
