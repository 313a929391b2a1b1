package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/salespulse/salespulse/internal/models"
)

// SpendRange bounds the uniform distribution order amounts are drawn from.
type SpendRange struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// ScoreRange bounds an integer attribute such as the engagement score.
type ScoreRange struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// RateRange bounds a fractional attribute such as the response rate.
type RateRange struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// Config holds every parameter of a generation run. It is passed by value
// into Generate so repeated or concurrent runs cannot interfere through
// shared state. All randomness derives from Seed; equal Config values
// produce identical datasets.
//
// The segment-keyed maps are lookup tables consulted by key only; the
// generator iterates segments in the canonical models.Segments() order, so
// map iteration order never influences the output.
type Config struct {
	Customers int   `mapstructure:"customers"`
	OrdersMin int   `mapstructure:"orders_min"`
	OrdersMax int   `mapstructure:"orders_max"`
	Seed      int64 `mapstructure:"seed"`

	// Categories doubles as the interest pool and the product category pool.
	Categories []string `mapstructure:"categories"`
	Channels   []string `mapstructure:"channels"`

	// SegmentWeights is the fraction of customers per segment. Counts are
	// floor(Customers*weight); the rounding remainder goes to "returning".
	SegmentWeights map[string]float64 `mapstructure:"segment_weights"`

	// SpendBySegment maps each segment to its order-amount distribution.
	SpendBySegment map[string]SpendRange `mapstructure:"spend_by_segment"`

	// InterestBias is the probability that an order's category is drawn from
	// the customer's interests instead of the full category pool.
	InterestBias float64 `mapstructure:"interest_bias"`
	InterestsMin int     `mapstructure:"interests_min"`
	InterestsMax int     `mapstructure:"interests_max"`

	// Account lifecycle windows, in days before the run's "now".
	AccountAgeDaysMin  int `mapstructure:"account_age_days_min"`
	AccountAgeDaysMax  int `mapstructure:"account_age_days_max"`
	LastContactDaysMax int `mapstructure:"last_contact_days_max"`

	// HistoryDays is how far back order dates may fall. Order dates are
	// additionally clamped to the owning customer's created_at.
	HistoryDays int `mapstructure:"history_days"`

	// Segment-conditioned behavioral attribute tables.
	EngagementBySegment map[string]ScoreRange `mapstructure:"engagement_by_segment"`
	ResponseBySegment   map[string]RateRange  `mapstructure:"response_by_segment"`

	PainPointPool []string `mapstructure:"pain_point_pool"`
	PainPointsMin int      `mapstructure:"pain_points_min"`
	PainPointsMax int      `mapstructure:"pain_points_max"`

	// Now anchors all generated dates. Zero means "today" (UTC, midnight).
	Now time.Time `mapstructure:"-"`
}

// DefaultConfig returns the stock generation parameters: 25 customers with
// 3-5 orders each under seed 42. The spend table and account-age windows
// mirror the documented segment model (vip > returning > new > at_risk).
func DefaultConfig() Config {
	return Config{
		Customers: 25,
		OrdersMin: 3,
		OrdersMax: 5,
		Seed:      42,
		Categories: []string{
			"beauty", "books", "electronics", "fashion",
			"fitness", "groceries", "home_decor", "travel",
		},
		Channels: models.Channels(),
		SegmentWeights: map[string]float64{
			models.SegmentNew:       0.30,
			models.SegmentReturning: 0.40,
			models.SegmentVIP:       0.15,
			models.SegmentAtRisk:    0.15,
		},
		SpendBySegment: map[string]SpendRange{
			models.SegmentVIP:       {Min: 5000, Max: 20000},
			models.SegmentReturning: {Min: 2000, Max: 8000},
			models.SegmentNew:       {Min: 500, Max: 3000},
			models.SegmentAtRisk:    {Min: 300, Max: 2000},
		},
		InterestBias:       0.70,
		InterestsMin:       2,
		InterestsMax:       4,
		AccountAgeDaysMin:  90,
		AccountAgeDaysMax:  365,
		LastContactDaysMax: 30,
		HistoryDays:        90,
		EngagementBySegment: map[string]ScoreRange{
			models.SegmentVIP:       {Min: 70, Max: 100},
			models.SegmentReturning: {Min: 50, Max: 90},
			models.SegmentNew:       {Min: 30, Max: 80},
			models.SegmentAtRisk:    {Min: 10, Max: 50},
		},
		ResponseBySegment: map[string]RateRange{
			models.SegmentVIP:       {Min: 0.50, Max: 0.95},
			models.SegmentReturning: {Min: 0.30, Max: 0.80},
			models.SegmentNew:       {Min: 0.20, Max: 0.60},
			models.SegmentAtRisk:    {Min: 0.05, Max: 0.40},
		},
		PainPointPool: []string{
			"budget_conscious", "choice_overload", "price_sensitive",
			"quality_focused", "time_constrained",
		},
		PainPointsMin: 1,
		PainPointsMax: 3,
	}
}

// ConfigError reports an invalid generation parameter. Generation fails
// fast on the first one found and writes nothing.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid generator config: %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration before any output is produced.
func (c Config) Validate() error {
	if c.Customers <= 0 {
		return &ConfigError{Field: "customers", Reason: "must be positive"}
	}
	if c.Customers > 9999 {
		return &ConfigError{Field: "customers", Reason: "exceeds the CUST#### id space (max 9999)"}
	}
	if c.OrdersMin <= 0 {
		return &ConfigError{Field: "orders_min", Reason: "must be positive"}
	}
	if c.OrdersMin > c.OrdersMax {
		return &ConfigError{Field: "orders_min", Reason: fmt.Sprintf("min %d exceeds max %d", c.OrdersMin, c.OrdersMax)}
	}
	if len(c.Categories) == 0 {
		return &ConfigError{Field: "categories", Reason: "pool is empty"}
	}
	if len(c.Channels) == 0 {
		return &ConfigError{Field: "channels", Reason: "pool is empty"}
	}
	for _, ch := range c.Channels {
		if !models.ValidChannel(ch) {
			return &ConfigError{Field: "channels", Reason: fmt.Sprintf("unknown channel %q", ch)}
		}
	}
	var weightSum float64
	for seg, w := range c.SegmentWeights {
		if !models.ValidSegment(seg) {
			return &ConfigError{Field: "segment_weights", Reason: fmt.Sprintf("unknown segment %q", seg)}
		}
		if w < 0 {
			return &ConfigError{Field: "segment_weights", Reason: fmt.Sprintf("negative weight for %q", seg)}
		}
		weightSum += w
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		return &ConfigError{Field: "segment_weights", Reason: fmt.Sprintf("weights sum to %.4f, want 1.0", weightSum)}
	}
	for _, seg := range models.Segments() {
		r, ok := c.SpendBySegment[seg]
		if !ok {
			return &ConfigError{Field: "spend_by_segment", Reason: fmt.Sprintf("missing range for %q", seg)}
		}
		if r.Min <= 0 || r.Min > r.Max {
			return &ConfigError{Field: "spend_by_segment", Reason: fmt.Sprintf("bad range [%.2f, %.2f] for %q", r.Min, r.Max, seg)}
		}
	}
	for _, seg := range models.Segments() {
		r, ok := c.EngagementBySegment[seg]
		if !ok {
			return &ConfigError{Field: "engagement_by_segment", Reason: fmt.Sprintf("missing range for %q", seg)}
		}
		if r.Min < 0 || r.Min > r.Max || r.Max > 100 {
			return &ConfigError{Field: "engagement_by_segment", Reason: fmt.Sprintf("bad range [%d, %d] for %q", r.Min, r.Max, seg)}
		}
	}
	for _, seg := range models.Segments() {
		r, ok := c.ResponseBySegment[seg]
		if !ok {
			return &ConfigError{Field: "response_by_segment", Reason: fmt.Sprintf("missing range for %q", seg)}
		}
		if r.Min < 0 || r.Min > r.Max || r.Max > 1 {
			return &ConfigError{Field: "response_by_segment", Reason: fmt.Sprintf("bad range [%.2f, %.2f] for %q", r.Min, r.Max, seg)}
		}
	}
	if c.InterestBias < 0 || c.InterestBias > 1 {
		return &ConfigError{Field: "interest_bias", Reason: "must be within [0, 1]"}
	}
	if c.InterestsMin < 1 || c.InterestsMin > c.InterestsMax {
		return &ConfigError{Field: "interests_min", Reason: fmt.Sprintf("bad range [%d, %d]", c.InterestsMin, c.InterestsMax)}
	}
	if c.InterestsMax > len(c.Categories) {
		return &ConfigError{Field: "interests_max", Reason: fmt.Sprintf("%d exceeds category pool size %d", c.InterestsMax, len(c.Categories))}
	}
	if c.AccountAgeDaysMin < 0 || c.AccountAgeDaysMin > c.AccountAgeDaysMax {
		return &ConfigError{Field: "account_age_days_min", Reason: fmt.Sprintf("bad range [%d, %d]", c.AccountAgeDaysMin, c.AccountAgeDaysMax)}
	}
	if c.LastContactDaysMax < 0 {
		return &ConfigError{Field: "last_contact_days_max", Reason: "must not be negative"}
	}
	if c.HistoryDays < 1 {
		return &ConfigError{Field: "history_days", Reason: "must be at least 1"}
	}
	if c.PainPointsMin < 0 || c.PainPointsMin > c.PainPointsMax {
		return &ConfigError{Field: "pain_points_min", Reason: fmt.Sprintf("bad range [%d, %d]", c.PainPointsMin, c.PainPointsMax)}
	}
	if c.PainPointsMax > len(c.PainPointPool) {
		return &ConfigError{Field: "pain_points_max", Reason: fmt.Sprintf("%d exceeds pain point pool size %d", c.PainPointsMax, len(c.PainPointPool))}
	}
	return nil
}
