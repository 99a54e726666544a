package main

import (
	"os"

	"github.com/monocle-dev/holdings/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
