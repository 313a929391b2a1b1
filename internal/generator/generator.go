// Package generator produces deterministic synthetic customer and order
// datasets. All randomness flows from a single seeded source, so a given
// Config always yields the same dataset, run after run.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/salespulse/salespulse/internal/models"
)

// Dataset is one complete generation result. Every order's CustomerID
// refers to a customer in Customers.
type Dataset struct {
	Customers []models.Customer
	Orders    []models.Order
}

type generator struct {
	cfg Config
	rng *rand.Rand
	now time.Time
}

// Generate produces a dataset from cfg. It validates the configuration
// first and produces nothing on failure. Equal configs (including Seed and
// Now) yield identical datasets; a zero Now anchors dates to today in UTC.
func Generate(cfg Config) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := cfg.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	g := &generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		now: midnightUTC(now),
	}

	customers := g.customers()
	orders := g.orders(customers)
	ApplyLifetimeValue(customers, orders)

	return &Dataset{Customers: customers, Orders: orders}, nil
}

// segmentCounts splits cfg.Customers across segments: floor(n*weight) per
// segment in canonical order, with the rounding remainder assigned to
// "returning".
func (g *generator) segmentCounts() []int {
	segments := models.Segments()
	counts := make([]int, len(segments))
	total := 0
	for i, seg := range segments {
		counts[i] = int(float64(g.cfg.Customers) * g.cfg.SegmentWeights[seg])
		total += counts[i]
	}
	if rest := g.cfg.Customers - total; rest > 0 {
		for i, seg := range segments {
			if seg == models.SegmentReturning {
				counts[i] += rest
				break
			}
		}
	}
	return counts
}

func (g *generator) customers() []models.Customer {
	counts := g.segmentCounts()
	out := make([]models.Customer, 0, g.cfg.Customers)
	ordinal := 0
	for i, seg := range models.Segments() {
		for n := 0; n < counts[i]; n++ {
			ordinal++
			out = append(out, g.customer(ordinal, seg))
		}
	}
	return out
}

func (g *generator) customer(ordinal int, segment string) models.Customer {
	first := pick(g.rng, firstNames)
	last := pick(g.rng, lastNames)
	domain := pick(g.rng, emailDomains)

	interests := sample(g.rng, g.cfg.Categories, g.intBetween(g.cfg.InterestsMin, g.cfg.InterestsMax))

	engagement := g.cfg.EngagementBySegment[segment]
	response := g.cfg.ResponseBySegment[segment]

	behavior := pick(g.rng, models.BuyingBehaviors())
	contactTime := pick(g.rng, models.ContactTimes())
	painPoints := sample(g.rng, g.cfg.PainPointPool, g.intBetween(g.cfg.PainPointsMin, g.cfg.PainPointsMax))

	ageDays := g.intBetween(g.cfg.AccountAgeDaysMin, g.cfg.AccountAgeDaysMax)
	createdAt := g.now.AddDate(0, 0, -ageDays)
	lastContact := g.now.AddDate(0, 0, -g.intBetween(0, g.cfg.LastContactDaysMax))
	if lastContact.Before(createdAt) {
		lastContact = createdAt
	}

	return models.Customer{
		CustomerID:           fmt.Sprintf("CUST%04d", ordinal),
		Name:                 first + " " + last,
		Email:                fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), ordinal, domain),
		Segment:              segment,
		Interests:            interests,
		EngagementScore:      g.intBetween(engagement.Min, engagement.Max),
		ResponseRate:         round2(g.uniform(response.Min, response.Max)),
		BuyingBehavior:       behavior,
		PreferredContactTime: contactTime,
		PainPoints:           painPoints,
		CreatedAt:            createdAt,
		LastContactDate:      lastContact,
	}
}

func (g *generator) orders(customers []models.Customer) []models.Order {
	out := make([]models.Order, 0, len(customers)*g.cfg.OrdersMax)
	ordinal := 0
	for _, c := range customers {
		count := g.intBetween(g.cfg.OrdersMin, g.cfg.OrdersMax)
		for n := 0; n < count; n++ {
			ordinal++
			out = append(out, g.order(ordinal, c))
		}
	}
	return out
}

func (g *generator) order(ordinal int, c models.Customer) models.Order {
	spend := g.cfg.SpendBySegment[c.Segment]
	amount := round2(g.uniform(spend.Min, spend.Max))

	category := pick(g.rng, g.cfg.Categories)
	if len(c.Interests) > 0 && g.rng.Float64() < g.cfg.InterestBias {
		category = pick(g.rng, c.Interests)
	}

	date := g.now.AddDate(0, 0, -g.intBetween(0, g.cfg.HistoryDays))
	if date.Before(c.CreatedAt) {
		date = c.CreatedAt
	}

	return models.Order{
		OrderID:         fmt.Sprintf("ORD%08d", ordinal),
		CustomerID:      c.CustomerID,
		OrderDate:       date,
		Amount:          amount,
		ProductCategory: category,
		Channel:         pick(g.rng, g.cfg.Channels),
	}
}

// ApplyLifetimeValue sets each customer's LifetimeValue to the sum of their
// own order amounts, so the two tables always agree. The store applies the
// same rule to uploaded datasets before committing them.
func ApplyLifetimeValue(customers []models.Customer, orders []models.Order) {
	totals := make(map[string]float64, len(customers))
	for _, o := range orders {
		totals[o.CustomerID] += o.Amount
	}
	for i := range customers {
		customers[i].LifetimeValue = round2(totals[customers[i].CustomerID])
	}
}

// intBetween draws an integer in [min, max] inclusive.
func (g *generator) intBetween(min, max int) int {
	if min >= max {
		return min
	}
	return min + g.rng.Intn(max-min+1)
}

// uniform draws a float in [min, max).
func (g *generator) uniform(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + g.rng.Float64()*(max-min)
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

// sample draws n distinct values from pool, in draw order.
func sample(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
