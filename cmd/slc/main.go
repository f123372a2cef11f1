package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "slc",
		Short: "slc - screen language compiler and previewer",
		Long: `slc compiles declarative screen documents into executable node
trees and re-executes them against a variable scope to produce widget
trees: check documents for compile errors, render them to HTML, preview
them interactively, or serve them with live reload.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newDevCommand())
	rootCmd.AddCommand(newPlayCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
