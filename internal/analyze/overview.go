package analyze

import (
	"fmt"
	"sort"
	"time"

	"github.com/salespulse/salespulse/internal/models"
)

// SegmentStat is one segment's slice of the customer base. Percentages are
// fractions of the total and sum to 1.0 over all returned segments.
type SegmentStat struct {
	Segment    string  `json:"segment"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SegmentDistribution counts customers per segment, largest first, ties by
// name. Segments with no customers are omitted.
func SegmentDistribution(customers []models.Customer) []SegmentStat {
	counts := make(map[string]int)
	for _, c := range customers {
		counts[c.Segment]++
	}

	out := make([]SegmentStat, 0, len(counts))
	for seg, n := range counts {
		out = append(out, SegmentStat{
			Segment:    seg,
			Count:      n,
			Percentage: float64(n) / float64(len(customers)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}

// CategoryRevenue is one product category's share of total revenue.
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// CategoryShare sums revenue per product category across all customers,
// largest first, ties by name. The revenues sum to total revenue.
func CategoryShare(orders []models.Order) []CategoryRevenue {
	sums := make(map[string]float64)
	for _, o := range orders {
		sums[o.ProductCategory] += o.Amount
	}

	out := make([]CategoryRevenue, 0, len(sums))
	for cat, sum := range sums {
		out = append(out, CategoryRevenue{Category: cat, Revenue: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Interval selects the bucket width of a revenue rollup.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return Interval(s), nil
	}
	return "", fmt.Errorf("unknown interval %q (want day, week or month)", s)
}

// RevenueBucket is one period of the revenue rollup.
type RevenueBucket struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

// RevenueOverTime buckets order revenue by day, week (Monday start) or
// month. Buckets run chronologically from the first to the last order with
// empty periods zero-filled, so the series has no gaps.
func RevenueOverTime(orders []models.Order, interval Interval) []RevenueBucket {
	if len(orders) == 0 {
		return nil
	}

	sums := make(map[time.Time]float64)
	var first, last time.Time
	for i, o := range orders {
		b := bucketStart(o.OrderDate, interval)
		sums[b] += o.Amount
		if i == 0 || b.Before(first) {
			first = b
		}
		if i == 0 || b.After(last) {
			last = b
		}
	}

	var out []RevenueBucket
	for b := first; !b.After(last); b = nextBucket(b, interval) {
		out = append(out, RevenueBucket{Period: bucketLabel(b, interval), Revenue: sums[b]})
	}
	return out
}

func bucketStart(t time.Time, interval Interval) time.Time {
	switch interval {
	case IntervalWeek:
		return t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
	case IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

func nextBucket(t time.Time, interval Interval) time.Time {
	switch interval {
	case IntervalWeek:
		return t.AddDate(0, 0, 7)
	case IntervalMonth:
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

func bucketLabel(t time.Time, interval Interval) string {
	if interval == IntervalMonth {
		return t.Format("2006-01")
	}
	return t.Format(dayFormat)
}

// CohortRow tracks one account-creation month: how many customers were
// created in it, and how many distinct ones ordered at each month offset
// from creation (offset 0 is the creation month itself).
type CohortRow struct {
	Cohort    string `json:"cohort"`
	Customers int    `json:"customers"`
	Active    []int  `json:"active_by_month"`
}

// Cohorts builds the retention matrix. Rows are sorted by cohort month;
// each row's offsets run up to the latest order month in the dataset, so
// younger cohorts have shorter rows.
func Cohorts(customers []models.Customer, orders []models.Order) []CohortRow {
	if len(customers) == 0 {
		return nil
	}

	cohortOf := make(map[string]int, len(customers))
	sizes := make(map[int]int)
	for _, c := range customers {
		idx := monthIndex(c.CreatedAt)
		cohortOf[c.CustomerID] = idx
		sizes[idx]++
	}

	type cell struct{ cohort, offset int }
	purchasers := make(map[cell]map[string]bool)
	maxOrder := -1
	for _, o := range orders {
		cohort, ok := cohortOf[o.CustomerID]
		if !ok {
			continue
		}
		idx := monthIndex(o.OrderDate)
		if idx > maxOrder {
			maxOrder = idx
		}
		key := cell{cohort, idx - cohort}
		if purchasers[key] == nil {
			purchasers[key] = make(map[string]bool)
		}
		purchasers[key][o.CustomerID] = true
	}

	months := make([]int, 0, len(sizes))
	for idx := range sizes {
		months = append(months, idx)
	}
	sort.Ints(months)

	out := make([]CohortRow, 0, len(months))
	for _, idx := range months {
		length := maxOrder - idx + 1
		if length < 0 {
			length = 0
		}
		active := make([]int, length)
		for off := 0; off < length; off++ {
			active[off] = len(purchasers[cell{idx, off}])
		}
		out = append(out, CohortRow{Cohort: monthLabel(idx), Customers: sizes[idx], Active: active})
	}
	return out
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func monthLabel(idx int) string {
	return fmt.Sprintf("%04d-%02d", idx/12, idx%12+1)
}

// Overview is the whole-business headline card.
type Overview struct {
	Customers            int     `json:"customers"`
	Orders               int     `json:"orders"`
	TotalRevenue         float64 `json:"total_revenue"`
	AverageLifetimeValue float64 `json:"average_lifetime_value"`
	AverageEngagement    float64 `json:"average_engagement_score"`
}

func BusinessOverview(customers []models.Customer, orders []models.Order) Overview {
	o := Overview{Customers: len(customers), Orders: len(orders)}

	for _, ord := range orders {
		o.TotalRevenue += ord.Amount
	}
	if len(customers) > 0 {
		var ltv, engagement float64
		for _, c := range customers {
			ltv += c.LifetimeValue
			engagement += float64(c.EngagementScore)
		}
		o.AverageLifetimeValue = ltv / float64(len(customers))
		o.AverageEngagement = engagement / float64(len(customers))
	}
	return o
}
