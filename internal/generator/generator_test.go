package generator

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/salespulse/salespulse/internal/models"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Now = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return cfg
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := testConfig()

	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(a.Customers, b.Customers) {
		t.Error("same seed produced different customers")
	}
	if !reflect.DeepEqual(a.Orders, b.Orders) {
		t.Error("same seed produced different orders")
	}
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	cfg := testConfig()
	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg.Seed = 43
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if reflect.DeepEqual(a.Orders, b.Orders) {
		t.Error("different seeds produced identical orders")
	}
}

func TestGenerateReferentialIntegrity(t *testing.T) {
	ds, err := Generate(testConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	known := make(map[string]bool, len(ds.Customers))
	for _, c := range ds.Customers {
		known[c.CustomerID] = true
	}
	for _, o := range ds.Orders {
		if !known[o.CustomerID] {
			t.Fatalf("order %s references unknown customer %s", o.OrderID, o.CustomerID)
		}
	}
}

func TestGenerateOrderCardinality(t *testing.T) {
	cfg := testConfig()
	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	perCustomer := make(map[string]int)
	for _, o := range ds.Orders {
		perCustomer[o.CustomerID]++
	}
	if len(perCustomer) != len(ds.Customers) {
		t.Fatalf("got orders for %d customers, want %d", len(perCustomer), len(ds.Customers))
	}
	for id, n := range perCustomer {
		if n < cfg.OrdersMin || n > cfg.OrdersMax {
			t.Errorf("customer %s has %d orders, want %d..%d", id, n, cfg.OrdersMin, cfg.OrdersMax)
		}
	}
}

func TestGenerateLifetimeValueMatchesOrders(t *testing.T) {
	ds, err := Generate(testConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	totals := make(map[string]float64)
	for _, o := range ds.Orders {
		totals[o.CustomerID] += o.Amount
	}
	for _, c := range ds.Customers {
		if math.Abs(c.LifetimeValue-totals[c.CustomerID]) > 0.005 {
			t.Errorf("customer %s lifetime_value %.2f, order sum %.2f", c.CustomerID, c.LifetimeValue, totals[c.CustomerID])
		}
	}
}

func TestGenerateIDFormats(t *testing.T) {
	ds, err := Generate(testConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	custRe := regexp.MustCompile(`^CUST\d{4}$`)
	seen := make(map[string]bool)
	for _, c := range ds.Customers {
		if !custRe.MatchString(c.CustomerID) {
			t.Errorf("bad customer id %q", c.CustomerID)
		}
		if seen[c.CustomerID] {
			t.Errorf("duplicate customer id %q", c.CustomerID)
		}
		seen[c.CustomerID] = true
	}

	orderRe := regexp.MustCompile(`^ORD\d{8}$`)
	seenOrders := make(map[string]bool)
	for _, o := range ds.Orders {
		if !orderRe.MatchString(o.OrderID) {
			t.Errorf("bad order id %q", o.OrderID)
		}
		if seenOrders[o.OrderID] {
			t.Errorf("duplicate order id %q", o.OrderID)
		}
		seenOrders[o.OrderID] = true
	}
}

func TestGenerateDateBounds(t *testing.T) {
	cfg := testConfig()
	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	now := cfg.Now
	oldestAccount := now.AddDate(0, 0, -cfg.AccountAgeDaysMax)
	newestAccount := now.AddDate(0, 0, -cfg.AccountAgeDaysMin)
	oldestOrder := now.AddDate(0, 0, -cfg.HistoryDays)

	created := make(map[string]time.Time, len(ds.Customers))
	for _, c := range ds.Customers {
		created[c.CustomerID] = c.CreatedAt
		if c.CreatedAt.Before(oldestAccount) || c.CreatedAt.After(newestAccount) {
			t.Errorf("customer %s created_at %s outside account-age window", c.CustomerID, c.CreatedAt.Format("2006-01-02"))
		}
		if c.LastContactDate.Before(c.CreatedAt) || c.LastContactDate.After(now) {
			t.Errorf("customer %s last_contact_date %s outside [created_at, now]", c.CustomerID, c.LastContactDate.Format("2006-01-02"))
		}
	}
	for _, o := range ds.Orders {
		if o.OrderDate.Before(oldestOrder) || o.OrderDate.After(now) {
			t.Errorf("order %s date %s outside history window", o.OrderID, o.OrderDate.Format("2006-01-02"))
		}
		if o.OrderDate.Before(created[o.CustomerID]) {
			t.Errorf("order %s predates its customer's created_at", o.OrderID)
		}
	}
}

func TestGenerateSegmentCounts(t *testing.T) {
	ds, err := Generate(testConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	counts := make(map[string]int)
	for _, c := range ds.Customers {
		counts[c.Segment]++
	}

	// 25 customers: floor gives new 7, returning 10, vip 3, at_risk 3;
	// the 2-customer remainder lands on returning.
	want := map[string]int{
		models.SegmentNew:       7,
		models.SegmentReturning: 12,
		models.SegmentVIP:       3,
		models.SegmentAtRisk:    3,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("segment counts %v, want %v", counts, want)
	}
}

func TestGenerateAmountsFollowSegmentTable(t *testing.T) {
	cfg := testConfig()
	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	segByCustomer := make(map[string]string, len(ds.Customers))
	for _, c := range ds.Customers {
		segByCustomer[c.CustomerID] = c.Segment
	}
	for _, o := range ds.Orders {
		r := cfg.SpendBySegment[segByCustomer[o.CustomerID]]
		if o.Amount < r.Min || o.Amount > r.Max {
			t.Errorf("order %s amount %.2f outside %s range [%.2f, %.2f]",
				o.OrderID, o.Amount, segByCustomer[o.CustomerID], r.Min, r.Max)
		}
	}
}

func TestGenerateInterestsDrawnFromPool(t *testing.T) {
	cfg := testConfig()
	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	pool := make(map[string]bool, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		pool[cat] = true
	}
	for _, c := range ds.Customers {
		if len(c.Interests) < cfg.InterestsMin || len(c.Interests) > cfg.InterestsMax {
			t.Errorf("customer %s has %d interests, want %d..%d", c.CustomerID, len(c.Interests), cfg.InterestsMin, cfg.InterestsMax)
		}
		seen := make(map[string]bool)
		for _, in := range c.Interests {
			if !pool[in] {
				t.Errorf("customer %s interest %q not in the category pool", c.CustomerID, in)
			}
			if seen[in] {
				t.Errorf("customer %s has duplicate interest %q", c.CustomerID, in)
			}
			seen[in] = true
		}
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	cases := map[string]func(*Config){
		"zero customers":      func(c *Config) { c.Customers = 0 },
		"min above max":       func(c *Config) { c.OrdersMin = 6; c.OrdersMax = 5 },
		"empty categories":    func(c *Config) { c.Categories = nil },
		"empty channels":      func(c *Config) { c.Channels = nil },
		"bias above one":      func(c *Config) { c.InterestBias = 1.5 },
		"weights off balance": func(c *Config) { c.SegmentWeights[models.SegmentVIP] = 0.5 },
		"negative spend": func(c *Config) {
			c.SpendBySegment[models.SegmentNew] = SpendRange{Min: -1, Max: 10}
		},
	}

	for name, mutate := range cases {
		cfg := testConfig()
		mutate(&cfg)

		_, err := Generate(cfg)
		if err == nil {
			t.Errorf("%s: expected a config error", name)
			continue
		}
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Errorf("%s: error %v is not a ConfigError", name, err)
		}
	}
}

func TestExampleDataset(t *testing.T) {
	ds, err := Example()
	if err != nil {
		t.Fatalf("example: %v", err)
	}
	if len(ds.Customers) != 10 {
		t.Errorf("example has %d customers, want 10", len(ds.Customers))
	}
	if len(ds.Orders) == 0 {
		t.Error("example has no orders")
	}
}
