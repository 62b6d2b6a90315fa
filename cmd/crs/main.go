package main

import (
	"os"

	"github.com/corsac-lang/corsac/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
