package main

import (
	"os"

	"github.com/hanzki/rsu-tax-calculator/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
