package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "salespulse",
	Short: "SalesPulse - Synthetic Sales Data & Customer Analytics",
	Long: `SalesPulse generates deterministic synthetic customer and order data
and computes business KPIs on top of it.

The tool can run as a server to expose the analytics API, or be used via
CLI commands to generate datasets, validate CSV files and inspect KPIs.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
