package main

import (
	"os"

	"github.com/faktura-dev/faktura/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
