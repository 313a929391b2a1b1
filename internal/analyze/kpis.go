// Package analyze computes KPIs and aggregate metrics over a dataset. All
// functions are pure: they take customer and order slices, never mutate
// them, and their results do not depend on row order. An empty dataset
// yields zero-valued results, not errors.
package analyze

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/salespulse/salespulse/internal/models"
)

const dayFormat = "2006-01-02"

// ErrCustomerNotFound marks lookups for an id that is not in the dataset.
// A customer that exists but has no orders is not an error; it gets
// zero-valued KPIs.
var ErrCustomerNotFound = errors.New("customer not found")

// KPIs are the per-customer headline numbers.
type KPIs struct {
	CustomerID        string  `json:"customer_id"`
	TotalSpend        float64 `json:"total_spend"`
	OrdersCount       int     `json:"orders_count"`
	AverageOrderValue float64 `json:"average_order_value"`
	OrderFrequency    float64 `json:"order_frequency"`
	TopCategory       string  `json:"top_category"`
	DaysActive        int     `json:"days_active"`
}

// CustomerKPIs computes the KPI set for one customer.
//
// Order frequency is orders per month. With two or more orders the span is
// first-to-last order date (inclusive); with fewer the span runs from the
// customer's created_at to now, so a single order does not read as thirty
// orders a month. A non-positive span falls back to the raw order count.
func CustomerKPIs(customers []models.Customer, orders []models.Order, customerID string, now time.Time) (*KPIs, error) {
	customer, ok := findCustomer(customers, customerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}

	own := ordersOf(orders, customerID)
	if len(own) == 0 {
		return &KPIs{CustomerID: customerID, TopCategory: "N/A"}, nil
	}

	var total float64
	first, last := own[0].OrderDate, own[0].OrderDate
	for _, o := range own {
		total += o.Amount
		if o.OrderDate.Before(first) {
			first = o.OrderDate
		}
		if o.OrderDate.After(last) {
			last = o.OrderDate
		}
	}

	count := len(own)
	daysActive := daysBetween(first, last) + 1

	var spanDays int
	if count >= 2 {
		spanDays = daysActive
	} else {
		spanDays = daysBetween(customer.CreatedAt, now)
	}
	months := float64(spanDays) / 30.0
	frequency := float64(count)
	if months > 0 {
		frequency = float64(count) / months
	}

	return &KPIs{
		CustomerID:        customerID,
		TotalSpend:        total,
		OrdersCount:       count,
		AverageOrderValue: total / float64(count),
		OrderFrequency:    frequency,
		TopCategory:       topCategory(own),
		DaysActive:        daysActive,
	}, nil
}

// topCategory returns the category with the highest summed amount. Ties go
// to the lexicographically smallest name so the answer is stable across
// row orders.
func topCategory(orders []models.Order) string {
	sums := make(map[string]float64)
	for _, o := range orders {
		sums[o.ProductCategory] += o.Amount
	}

	best := "N/A"
	bestSum := 0.0
	for cat, sum := range sums {
		if best == "N/A" || sum > bestSum || (sum == bestSum && cat < best) {
			best, bestSum = cat, sum
		}
	}
	return best
}

// Profile returns the customer record for id.
func Profile(customers []models.Customer, customerID string) (*models.Customer, error) {
	customer, ok := findCustomer(customers, customerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	return &customer, nil
}

// TrendPoint is one order on a customer's cumulative spend curve.
type TrendPoint struct {
	Date  string  `json:"date"`
	Spend float64 `json:"spend"`
}

// SpendTrend returns the customer's orders of the trailing window as a
// chronological cumulative spend series. Customers without recent orders
// get an empty series.
func SpendTrend(orders []models.Order, customerID string, days int, now time.Time) []TrendPoint {
	cutoff := now.AddDate(0, 0, -days)

	var recent []models.Order
	for _, o := range orders {
		if o.CustomerID == customerID && !o.OrderDate.Before(cutoff) {
			recent = append(recent, o)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].OrderDate.Before(recent[j].OrderDate)
	})

	points := make([]TrendPoint, 0, len(recent))
	var cumulative float64
	for _, o := range recent {
		cumulative += o.Amount
		points = append(points, TrendPoint{Date: o.OrderDate.Format(dayFormat), Spend: cumulative})
	}
	return points
}

// CategorySpend is one category's share of a customer's spending.
type CategorySpend struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CustomerCategories breaks one customer's spending down by product
// category, largest first, ties by name.
func CustomerCategories(orders []models.Order, customerID string) []CategorySpend {
	sums := make(map[string]float64)
	for _, o := range orders {
		if o.CustomerID == customerID {
			sums[o.ProductCategory] += o.Amount
		}
	}

	out := make([]CategorySpend, 0, len(sums))
	for cat, sum := range sums {
		out = append(out, CategorySpend{Category: cat, Amount: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// SummaryText renders the one-paragraph KPI summary used for narration and
// text export.
func SummaryText(customerName string, k *KPIs) string {
	return fmt.Sprintf(
		"Hi %s, this is your weekly summary. "+
			"You placed %d orders totaling %.0f rupees. "+
			"Your average order value is %.0f rupees. "+
			"Your top category is %s. "+
			"Thank you for being a valued customer!",
		customerName, k.OrdersCount, k.TotalSpend, k.AverageOrderValue, k.TopCategory,
	)
}

func findCustomer(customers []models.Customer, customerID string) (models.Customer, bool) {
	for _, c := range customers {
		if c.CustomerID == customerID {
			return c, true
		}
	}
	return models.Customer{}, false
}

func ordersOf(orders []models.Order, customerID string) []models.Order {
	var own []models.Order
	for _, o := range orders {
		if o.CustomerID == customerID {
			own = append(own, o)
		}
	}
	return own
}

// daysBetween counts whole days from a to b. Both ends are expected to be
// midnight UTC dates, as produced by the generator and the CSV codec.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
