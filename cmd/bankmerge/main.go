package main

import (
	"os"

	"github.com/bankmerge-dev/bankmerge/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
