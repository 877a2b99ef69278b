package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pulseboard-api",
	Short: "Pulseboard API server",
	Long: `A REST API server that aggregates wearable and manual health data
into one coherent timeline with trends, goals, and insights.`,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
