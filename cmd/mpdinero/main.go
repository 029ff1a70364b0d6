package main

import (
	"os"

	"github.com/f-klubben/mpdinero/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
