package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "mcpdemo",
	Short:   "Minimal MCP client/server demo built on github.com/mcpcore/sdk",
	Version: version,
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
