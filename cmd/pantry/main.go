package main

import (
	"os"

	"github.com/Makepad-fr/pantry/internal/cli"
)

func main() {
	// Flags and subcommands are parsed by the CLI.
	os.Exit(cli.Execute(os.Args[1:]))
}
