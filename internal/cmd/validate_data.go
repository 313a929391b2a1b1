package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/salespulse/salespulse/internal/config"
	"github.com/salespulse/salespulse/internal/store"
	"github.com/spf13/cobra"
)

var (
	validateCustomersPath string
	validateOrdersPath    string
)

var validateDataCmd = &cobra.Command{
	Use:   "validate-data",
	Short: "Validate a CSV dataset without loading it",
	Long: `Run the full upload validation against a pair of CSV files and
report every problem found, without touching the stored dataset.

This is useful for checking hand-edited or externally produced files
before uploading them to a running server.`,
	RunE: validateData,
}

func init() {
	rootCmd.AddCommand(validateDataCmd)

	validateDataCmd.Flags().StringVar(&validateCustomersPath, "customers", "customers.csv", "Path to the customers CSV file")
	validateDataCmd.Flags().StringVar(&validateOrdersPath, "orders", "orders.csv", "Path to the orders CSV file")
}

func validateData(cmd *cobra.Command, args []string) error {
	fmt.Printf("🔍 Validating %s and %s...\n", validateCustomersPath, validateOrdersPath)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	customersFile, err := os.Open(validateCustomersPath)
	if err != nil {
		return fmt.Errorf("failed to open customers file: %w", err)
	}
	defer customersFile.Close()

	ordersFile, err := os.Open(validateOrdersPath)
	if err != nil {
		return fmt.Errorf("failed to open orders file: %w", err)
	}
	defer ordersFile.Close()

	st := store.New(cfg.Data.Dir)
	customers, orders, err := st.DecodeAndValidate(customersFile, ordersFile)
	if err != nil {
		var verr *store.ValidationError
		switch {
		case errors.As(err, &verr):
			fmt.Printf("\n❌ Found %d problem%s:\n", len(verr.Errors), pluralizeProblem(len(verr.Errors)))
			fmt.Println(strings.Repeat("─", 80))
			for i, rowErr := range verr.Errors {
				fmt.Printf("   #%d %s row %d, %s: %s\n", i+1, rowErr.File, rowErr.Row, rowErr.Field, rowErr.Message)
			}
			return fmt.Errorf("dataset is invalid")
		case errors.Is(err, store.ErrMalformedCSV):
			return fmt.Errorf("dataset is not parseable: %w", err)
		default:
			return fmt.Errorf("failed to validate dataset: %w", err)
		}
	}

	fmt.Printf("✅ Dataset is valid (%d customers, %d orders)\n", len(customers), len(orders))
	return nil
}

func pluralizeProblem(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
