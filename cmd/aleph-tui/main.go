package main

import (
	"os"

	"github.com/alephtools/aleph-tui/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
