package analyze

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/salespulse/salespulse/internal/models"
)

// Filters narrows a dataset before aggregation. Zero-valued fields are
// no-ops: the zero Filters passes everything through unchanged.
type Filters struct {
	From     time.Time // keep orders on or after this date
	To       time.Time // keep orders on or before this date
	Segment  string    // keep customers of this segment, and only their orders
	Category string    // keep orders of this product category
}

// Apply returns the filtered dataset. The input slices are never mutated.
func (f Filters) Apply(customers []models.Customer, orders []models.Order) ([]models.Customer, []models.Order) {
	if f == (Filters{}) {
		return customers, orders
	}

	outCustomers := customers
	var allowed map[string]bool
	if f.Segment != "" {
		outCustomers = nil
		allowed = make(map[string]bool)
		for _, c := range customers {
			if c.Segment == f.Segment {
				outCustomers = append(outCustomers, c)
				allowed[c.CustomerID] = true
			}
		}
	}

	var outOrders []models.Order
	for _, o := range orders {
		if allowed != nil && !allowed[o.CustomerID] {
			continue
		}
		if f.Category != "" && o.ProductCategory != f.Category {
			continue
		}
		if !f.From.IsZero() && o.OrderDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && o.OrderDate.After(f.To) {
			continue
		}
		outOrders = append(outOrders, o)
	}
	return outCustomers, outOrders
}

// Customer list sort keys.
const (
	SortLifetimeValue   = "lifetime_value"
	SortEngagementScore = "engagement_score"
	SortResponseRate    = "response_rate"
	SortName            = "name"
)

// SortCustomers returns a copy of customers ordered by the given key.
// Unknown keys are an error so callers can surface them as bad requests.
func SortCustomers(customers []models.Customer, by string, descending bool) ([]models.Customer, error) {
	var cmp func(a, b models.Customer) int
	switch by {
	case SortLifetimeValue:
		cmp = func(a, b models.Customer) int { return compareFloat(a.LifetimeValue, b.LifetimeValue) }
	case SortEngagementScore:
		cmp = func(a, b models.Customer) int { return a.EngagementScore - b.EngagementScore }
	case SortResponseRate:
		cmp = func(a, b models.Customer) int { return compareFloat(a.ResponseRate, b.ResponseRate) }
	case SortName:
		cmp = func(a, b models.Customer) int { return strings.Compare(a.Name, b.Name) }
	default:
		return nil, fmt.Errorf("unknown sort key %q", by)
	}

	out := make([]models.Customer, len(customers))
	copy(out, customers)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
