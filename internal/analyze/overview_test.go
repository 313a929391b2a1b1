package analyze

import (
	"math"
	"reflect"
	"testing"

	"github.com/salespulse/salespulse/internal/models"
)

func TestSegmentDistributionPercentagesSumToOne(t *testing.T) {
	customers := []models.Customer{
		cust("CUST0001", models.SegmentReturning, day(2025, 1, 1)),
		cust("CUST0002", models.SegmentReturning, day(2025, 1, 1)),
		cust("CUST0003", models.SegmentVIP, day(2025, 1, 1)),
		cust("CUST0004", models.SegmentNew, day(2025, 1, 1)),
		cust("CUST0005", models.SegmentNew, day(2025, 1, 1)),
		cust("CUST0006", models.SegmentNew, day(2025, 1, 1)),
		cust("CUST0007", models.SegmentAtRisk, day(2025, 1, 1)),
	}

	stats := SegmentDistribution(customers)
	if len(stats) != 4 {
		t.Fatalf("got %d segments, want 4", len(stats))
	}
	if stats[0].Segment != models.SegmentNew || stats[0].Count != 3 {
		t.Errorf("largest segment %+v, want new with 3", stats[0])
	}

	var sum float64
	total := 0
	for _, s := range stats {
		sum += s.Percentage
		total += s.Count
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("percentages sum to %.12f, want 1.0", sum)
	}
	if total != len(customers) {
		t.Errorf("counts sum to %d, want %d", total, len(customers))
	}
}

func TestSegmentDistributionEmpty(t *testing.T) {
	if stats := SegmentDistribution(nil); len(stats) != 0 {
		t.Errorf("empty dataset produced segments: %+v", stats)
	}
}

func TestCategoryShareSumsToTotalRevenue(t *testing.T) {
	orders := []models.Order{
		ord("ORD00000001", "CUST0001", 120.10, "books", day(2025, 6, 1)),
		ord("ORD00000002", "CUST0001", 80.15, "fitness", day(2025, 6, 2)),
		ord("ORD00000003", "CUST0002", 199.99, "books", day(2025, 6, 3)),
		ord("ORD00000004", "CUST0003", 45.50, "beauty", day(2025, 6, 4)),
	}

	shares := CategoryShare(orders)

	var total, sum float64
	for _, o := range orders {
		total += o.Amount
	}
	for _, s := range shares {
		sum += s.Revenue
	}
	if math.Abs(sum-total) > 1e-9 {
		t.Errorf("category revenue sums to %.6f, want %.6f", sum, total)
	}
	if shares[0].Category != "books" {
		t.Errorf("largest category %q, want books", shares[0].Category)
	}
}

func TestRevenueOverTimeZeroFillsMiddleMonth(t *testing.T) {
	orders := []models.Order{
		ord("ORD00000001", "CUST0001", 100.00, "books", day(2025, 1, 15)),
		ord("ORD00000002", "CUST0002", 50.00, "books", day(2025, 3, 10)),
	}

	got := RevenueOverTime(orders, IntervalMonth)
	want := []RevenueBucket{
		{Period: "2025-01", Revenue: 100.00},
		{Period: "2025-02", Revenue: 0},
		{Period: "2025-03", Revenue: 50.00},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("month rollup %+v, want %+v", got, want)
	}
}

func TestRevenueOverTimeWeekStartsMonday(t *testing.T) {
	// 2025-06-04 is a Wednesday; its week bucket starts Monday 2025-06-02.
	orders := []models.Order{
		ord("ORD00000001", "CUST0001", 10.00, "books", day(2025, 6, 4)),
		ord("ORD00000002", "CUST0001", 20.00, "books", day(2025, 6, 17)),
	}

	got := RevenueOverTime(orders, IntervalWeek)
	want := []RevenueBucket{
		{Period: "2025-06-02", Revenue: 10.00},
		{Period: "2025-06-09", Revenue: 0},
		{Period: "2025-06-16", Revenue: 20.00},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("week rollup %+v, want %+v", got, want)
	}
}

func TestRevenueOverTimeDaily(t *testing.T) {
	orders := []models.Order{
		ord("ORD00000001", "CUST0001", 10.00, "books", day(2025, 6, 1)),
		ord("ORD00000002", "CUST0001", 20.00, "books", day(2025, 6, 3)),
		ord("ORD00000003", "CUST0002", 5.00, "books", day(2025, 6, 3)),
	}

	got := RevenueOverTime(orders, IntervalDay)
	want := []RevenueBucket{
		{Period: "2025-06-01", Revenue: 10.00},
		{Period: "2025-06-02", Revenue: 0},
		{Period: "2025-06-03", Revenue: 25.00},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("day rollup %+v, want %+v", got, want)
	}
}

func TestRevenueOverTimeEmpty(t *testing.T) {
	if got := RevenueOverTime(nil, IntervalMonth); len(got) != 0 {
		t.Errorf("empty orders produced buckets: %+v", got)
	}
}

func TestParseInterval(t *testing.T) {
	if _, err := ParseInterval("fortnight"); err == nil {
		t.Error("unknown interval accepted")
	}
	iv, err := ParseInterval("week")
	if err != nil || iv != IntervalWeek {
		t.Errorf("ParseInterval(week) = %v, %v", iv, err)
	}
}

func TestCohorts(t *testing.T) {
	customers := []models.Customer{
		cust("CUST0001", models.SegmentReturning, day(2025, 1, 10)),
		cust("CUST0002", models.SegmentNew, day(2025, 2, 5)),
	}
	orders := []models.Order{
		ord("ORD00000001", "CUST0001", 10.00, "books", day(2025, 1, 20)),
		ord("ORD00000002", "CUST0001", 10.00, "books", day(2025, 2, 14)),
		ord("ORD00000003", "CUST0002", 10.00, "books", day(2025, 2, 20)),
	}

	rows := Cohorts(customers, orders)
	if len(rows) != 2 {
		t.Fatalf("got %d cohort rows, want 2", len(rows))
	}

	jan := rows[0]
	if jan.Cohort != "2025-01" || jan.Customers != 1 || !reflect.DeepEqual(jan.Active, []int{1, 1}) {
		t.Errorf("january cohort %+v, want 2025-01, 1 customer, active [1 1]", jan)
	}
	feb := rows[1]
	if feb.Cohort != "2025-02" || feb.Customers != 1 || !reflect.DeepEqual(feb.Active, []int{1}) {
		t.Errorf("february cohort %+v, want 2025-02, 1 customer, active [1]", feb)
	}
}

func TestBusinessOverview(t *testing.T) {
	customers := []models.Customer{
		{CustomerID: "CUST0001", Segment: models.SegmentVIP, LifetimeValue: 300, EngagementScore: 80, CreatedAt: day(2025, 1, 1)},
		{CustomerID: "CUST0002", Segment: models.SegmentNew, LifetimeValue: 100, EngagementScore: 40, CreatedAt: day(2025, 2, 1)},
	}
	orders := []models.Order{
		ord("ORD00000001", "CUST0001", 300.00, "books", day(2025, 6, 1)),
		ord("ORD00000002", "CUST0002", 100.00, "travel", day(2025, 6, 2)),
	}

	o := BusinessOverview(customers, orders)
	if o.Customers != 2 || o.Orders != 2 {
		t.Errorf("counts %d/%d, want 2/2", o.Customers, o.Orders)
	}
	if math.Abs(o.TotalRevenue-400) > 1e-9 {
		t.Errorf("total revenue %.2f, want 400", o.TotalRevenue)
	}
	if math.Abs(o.AverageLifetimeValue-200) > 1e-9 {
		t.Errorf("average lifetime value %.2f, want 200", o.AverageLifetimeValue)
	}
	if math.Abs(o.AverageEngagement-60) > 1e-9 {
		t.Errorf("average engagement %.2f, want 60", o.AverageEngagement)
	}
}

func TestBusinessOverviewEmpty(t *testing.T) {
	o := BusinessOverview(nil, nil)
	if o.Customers != 0 || o.Orders != 0 || o.TotalRevenue != 0 || o.AverageLifetimeValue != 0 || o.AverageEngagement != 0 {
		t.Errorf("empty dataset overview not zero-valued: %+v", o)
	}
}
