// Package main provides the entry point for the ResumeForge HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumeforge",
	Short: "ResumeForge HTTP API Server",
	Long:  "ResumeForge is a document builder service: users assemble resumes and invoices through a REST API, seed them from uploaded files or generate them with a language model, and export them as A4 PDFs.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
