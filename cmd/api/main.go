// Package main is the brand-insights CLI: an HTTP server plus one-shot and
// batch query commands against the analysis backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brand-insights",
	Short: "Brand visibility insights across AI model answers",
	Long:  "brand-insights asks the analysis backend a question, then aggregates how each brand ranks across model answers, either for the current question, for similar past questions, or for one focused brand.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
