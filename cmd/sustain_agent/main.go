// Package main provides the entry point for the sustainability chatbot CLI
// and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sustain_agent",
	Short: "Campus sustainability chatbot",
	Long:  "sustain_agent crawls a campus sustainability website into a text corpus, indexes it in a vector store, and answers questions over it with retrieval-augmented generation via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
