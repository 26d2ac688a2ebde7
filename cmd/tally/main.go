// Package main provides the entry point for the tally CLI tool.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/gostonefire/countmap/cmd/tally/commands"
)

func main() {
	rootCmd := commands.NewRootCommand()

	err := rootCmd.Execute()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
