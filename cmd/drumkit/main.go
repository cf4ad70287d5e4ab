package main

import (
	"os"

	"github.com/drumkit/drumkit/cmd/drumkit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
