package main

import (
	"os"

	"qslgen/cmd/qslgen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
