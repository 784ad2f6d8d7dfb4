// Package main provides the entry point for the orientation platform HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orientation_server",
	Short: "Student orientation platform HTTP API Server",
	Long:  "Orientation platform guides students toward fields of study: it serves the orientation survey, scores completed sessions, and recommends matching fields via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
