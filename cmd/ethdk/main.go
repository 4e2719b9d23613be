package main

import (
	"os"

	"ethdk/cmd/ethdk/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
