package main

import (
	"os"

	"yatra/cmd/yatra/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
