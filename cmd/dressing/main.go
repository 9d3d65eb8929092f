package main

import (
	"os"

	"dressing-calculator/cmd/dressing/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
