package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/salespulse/salespulse/internal/analyze"
	"github.com/salespulse/salespulse/internal/config"
	"github.com/salespulse/salespulse/internal/models"
	"github.com/salespulse/salespulse/internal/store"
	"github.com/spf13/cobra"
)

var kpiTrendDays int

var showKPIsCmd = &cobra.Command{
	Use:   "show-kpis [customer-id]",
	Short: "Show KPIs for one customer or the whole business",
	Long: `Compute and print KPIs from the stored dataset.

With a customer ID (e.g. CUST0001) the command prints that customer's
spend, order frequency, top category and recent trend. Without one it
prints the business overview: revenue, segments and top categories.`,
	Args: cobra.MaximumNArgs(1),
	RunE: showKPIs,
}

func init() {
	rootCmd.AddCommand(showKPIsCmd)

	showKPIsCmd.Flags().IntVar(&kpiTrendDays, "trend-days", 90, "Trailing window for the spend trend")
}

func showKPIs(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st := store.New(cfg.Data.Dir)
	if err := st.Ensure(cfg.GeneratorSettings()); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	customers, orders := st.Snapshot()

	if len(args) == 1 {
		return showCustomerKPIs(customers, orders, args[0])
	}
	return showBusinessKPIs(customers, orders)
}

func showCustomerKPIs(customers []models.Customer, orders []models.Order, customerID string) error {
	now := time.Now().UTC()

	kpis, err := analyze.CustomerKPIs(customers, orders, customerID, now)
	if err != nil {
		return err
	}
	customer, err := analyze.Profile(customers, customerID)
	if err != nil {
		return err
	}

	fmt.Printf("👤 %s (%s, %s segment)\n", customer.Name, customer.CustomerID, customer.Segment)
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("   💰 Total spend:     %.2f\n", kpis.TotalSpend)
	fmt.Printf("   🛒 Orders:          %d\n", kpis.OrdersCount)
	fmt.Printf("   📊 Avg order value: %.2f\n", kpis.AverageOrderValue)
	fmt.Printf("   🔁 Order frequency: %.2f per month\n", kpis.OrderFrequency)
	fmt.Printf("   🏆 Top category:    %s\n", kpis.TopCategory)
	fmt.Printf("   📅 Days active:     %d\n", kpis.DaysActive)

	categories := analyze.CustomerCategories(orders, customerID)
	if len(categories) > 0 {
		fmt.Println("\n🧾 Spend by category:")
		for _, c := range categories {
			fmt.Printf("   %-12s %10.2f\n", c.Category, c.Amount)
		}
	}

	trend := analyze.SpendTrend(orders, customerID, kpiTrendDays, now)
	if len(trend) > 0 {
		fmt.Printf("\n📈 Cumulative spend over the last %d days:\n", kpiTrendDays)
		for _, p := range trend {
			fmt.Printf("   %s %10.2f\n", p.Date, p.Spend)
		}
	}

	fmt.Printf("\n💬 %s\n", analyze.SummaryText(customer.Name, kpis))
	return nil
}

func showBusinessKPIs(customers []models.Customer, orders []models.Order) error {
	overview := analyze.BusinessOverview(customers, orders)

	fmt.Println("🏢 Business overview")
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("   👥 Customers:       %d\n", overview.Customers)
	fmt.Printf("   🛒 Orders:          %d\n", overview.Orders)
	fmt.Printf("   💰 Total revenue:   %.2f\n", overview.TotalRevenue)
	fmt.Printf("   📊 Avg LTV:         %.2f\n", overview.AverageLifetimeValue)
	fmt.Printf("   ⚡ Avg engagement:  %.1f\n", overview.AverageEngagement)

	fmt.Println("\n🏷️  Segments:")
	for _, s := range analyze.SegmentDistribution(customers) {
		fmt.Printf("   %-10s %4d (%.0f%%)\n", s.Segment, s.Count, s.Percentage*100)
	}

	fmt.Println("\n🧾 Top categories:")
	for _, c := range analyze.CategoryShare(orders) {
		fmt.Printf("   %-12s %10.2f\n", c.Category, c.Revenue)
	}

	fmt.Println("\n📈 Monthly revenue:")
	for _, b := range analyze.RevenueOverTime(orders, analyze.IntervalMonth) {
		fmt.Printf("   %s %10.2f\n", b.Period, b.Revenue)
	}

	return nil
}
