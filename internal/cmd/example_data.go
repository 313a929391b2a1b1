package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/salespulse/salespulse/internal/generator"
	"github.com/salespulse/salespulse/internal/store"
	"github.com/spf13/cobra"
)

var exampleOut string

var exampleDataCmd = &cobra.Command{
	Use:   "example-data",
	Short: "Write a small example dataset as CSV",
	Long: `Write the ten customer example dataset to a pair of CSV files. The
files show the exact column layout uploads are expected to follow and
can be used as a starting point for hand-edited datasets.`,
	RunE: exampleData,
}

func init() {
	rootCmd.AddCommand(exampleDataCmd)

	exampleDataCmd.Flags().StringVar(&exampleOut, "out", "examples", "Directory to write the example CSV files into")
}

func exampleData(cmd *cobra.Command, args []string) error {
	fmt.Printf("📄 Writing example dataset to %s...\n", exampleOut)

	ds, err := generator.Example()
	if err != nil {
		return fmt.Errorf("failed to build example dataset: %w", err)
	}

	if err := os.MkdirAll(exampleOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	customersPath := filepath.Join(exampleOut, "customers.csv")
	customersFile, err := os.Create(customersPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", customersPath, err)
	}
	defer customersFile.Close()
	if err := store.WriteCustomersCSV(customersFile, ds.Customers); err != nil {
		return fmt.Errorf("failed to write %s: %w", customersPath, err)
	}

	ordersPath := filepath.Join(exampleOut, "orders.csv")
	ordersFile, err := os.Create(ordersPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", ordersPath, err)
	}
	defer ordersFile.Close()
	if err := store.WriteOrdersCSV(ordersFile, ds.Orders); err != nil {
		return fmt.Errorf("failed to write %s: %w", ordersPath, err)
	}

	fmt.Printf("✅ Wrote %s (%d customers) and %s (%d orders)\n",
		customersPath, len(ds.Customers), ordersPath, len(ds.Orders))
	return nil
}
