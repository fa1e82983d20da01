package main

import (
	"os"

	"github.com/felixgeelhaar/tagctl/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args, os.Stdout, os.Stderr, cli.BuildService(os.Stdout)))
}
