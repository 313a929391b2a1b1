package cmd

import (
	"fmt"

	"github.com/salespulse/salespulse/internal/config"
	"github.com/salespulse/salespulse/internal/metrics"
	"github.com/salespulse/salespulse/internal/server"
	"github.com/salespulse/salespulse/internal/store"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the SalesPulse server",
	Long: `Start the SalesPulse server which provides:
- REST API for customer KPIs, trends and sales pitches
- Business analytics across segments, categories and cohorts
- CSV dataset upload with row-level validation`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 SalesPulse Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("📊 Preparing dataset in %s...\n", cfg.Data.Dir)
	st := store.New(cfg.Data.Dir)
	if err := st.Ensure(cfg.GeneratorSettings()); err != nil {
		return fmt.Errorf("failed to prepare dataset: %w", err)
	}

	customers, orders := st.Counts()
	fmt.Printf("✅ Dataset ready (%d customers, %d orders)\n", customers, orders)

	fmt.Println("⚙️  Setting up server...")
	reg := metrics.NewRegistry()
	reg.SetDatasetSize(customers, orders)
	srv := server.NewServer(cfg, st, reg)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
