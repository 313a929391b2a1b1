package pitch

import (
	"fmt"
	"math/rand"

	"github.com/salespulse/salespulse/internal/models"
)

// Recommendation is one suggested product line.
type Recommendation struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Discount    string `json:"discount"`
	Urgency     string `json:"urgency"`
}

var urgencyLines = []string{
	"Only 3 left in stock!",
	"Sale ends in 24 hours",
	"Limited edition",
	"Bestseller",
	"Trending now",
}

// Recommendations picks 3 to 5 product suggestions from the customer's
// interests. With fewer interests than picks, favorite categories repeat
// with fresh discounts.
func Recommendations(c models.Customer, rng *rand.Rand) []Recommendation {
	if len(c.Interests) == 0 {
		return nil
	}

	count := 3 + rng.Intn(3)
	out := make([]Recommendation, 0, count)
	for i := 0; i < count; i++ {
		interest := c.Interests[i%len(c.Interests)]
		out = append(out, Recommendation{
			Category:    interest,
			Title:       fmt.Sprintf("Premium %s Collection", titleCase(interest)),
			Description: fmt.Sprintf("Handpicked %s items based on your preferences", interest),
			Discount:    fmt.Sprintf("%d%% OFF", 10+rng.Intn(31)),
			Urgency:     urgencyLines[rng.Intn(len(urgencyLines))],
		})
	}
	return out
}
