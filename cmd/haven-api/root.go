package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "haven-api",
	Short: "Haven API server",
	Long:  `A REST API server for the Haven mental health companion application.`,
}

// Execute runs the root command
func Execute() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summarizeCmd)
}

func main() {
	Execute()
}
