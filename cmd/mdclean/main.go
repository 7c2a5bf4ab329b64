// Package main is the entry point for the mdclean CLI.
package main

import (
	"os"

	"github.com/jmylchreest/mdclean/cmd/mdclean/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
