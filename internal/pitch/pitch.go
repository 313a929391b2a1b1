// Package pitch assembles rule-based personalized sales pitches and
// product recommendations from a customer profile. All randomness flows
// through the caller's *rand.Rand, so a fixed seed reproduces the exact
// same text.
package pitch

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/salespulse/salespulse/internal/models"
)

// Pitch is one assembled sales message, part by part plus the joined
// full text.
type Pitch struct {
	Subject   string `json:"subject"`
	Opening   string `json:"opening"`
	Body      string `json:"body"`
	CTA       string `json:"cta"`
	Closing   string `json:"closing"`
	FullPitch string `json:"full_pitch"`
}

// Generate builds a personalized pitch for the customer.
func Generate(c models.Customer, rng *rand.Rand) Pitch {
	p := Pitch{
		Subject: subjectLine(c, rng),
		Opening: opening(c),
		Body:    body(c),
		CTA:     callToAction(c.BuyingBehavior),
		Closing: closing(c),
	}
	p.FullPitch = strings.Join([]string{p.Opening, p.Body, p.CTA, p.Closing}, "\n\n")
	return p
}

func subjectLine(c models.Customer, rng *rand.Rand) string {
	interest := titleCase(firstInterest(c))

	var options []string
	switch c.Segment {
	case models.SegmentVIP:
		options = []string{
			fmt.Sprintf("🌟 Exclusive VIP Offer: Premium %s Collection", interest),
			fmt.Sprintf("Your VIP Access: New %s Arrivals", interest),
			"🎁 Special Treat for Our Most Valued Customer",
		}
	case models.SegmentReturning:
		options = []string{
			fmt.Sprintf("Welcome Back! New %s Just For You", interest),
			fmt.Sprintf("We Missed You! Fresh %s Deals Inside", interest),
			"🎯 Handpicked Recommendations Based on Your Preferences",
		}
	case models.SegmentNew:
		options = []string{
			fmt.Sprintf("Welcome! Discover Amazing %s Deals", interest),
			fmt.Sprintf("Get Started: Your %s Journey Begins", interest),
			"👋 Welcome to the Community! Special First-Time Offer",
		}
	case models.SegmentAtRisk:
		options = []string{
			fmt.Sprintf("We Want You Back! Special %s Offer", interest),
			"🔥 Don't Miss Out: Exclusive Come-Back Deal",
			fmt.Sprintf("We've Got Something Special for You in %s", interest),
		}
	default:
		return fmt.Sprintf("Personalized Recommendations for %s Lovers", interest)
	}
	return options[rng.Intn(len(options))]
}

func opening(c models.Customer) string {
	switch {
	case c.EngagementScore > 80:
		return fmt.Sprintf("Hi %s! 👋\n\nIt's always a pleasure connecting with our most engaged customers!", c.Name)
	case c.EngagementScore > 50:
		return fmt.Sprintf("Hello %s!\n\nWe hope you're doing great! We have something exciting to share.", c.Name)
	case c.Segment == models.SegmentAtRisk:
		return fmt.Sprintf("Hi %s,\n\nWe noticed it's been a while since we last connected. We'd love to welcome you back with something special!", c.Name)
	default:
		return fmt.Sprintf("Dear %s,\n\nWe're excited to share some personalized recommendations just for you!", c.Name)
	}
}

func body(c models.Customer) string {
	var parts []string

	if hasPainPoint(c, "budget_conscious") || hasPainPoint(c, "price_sensitive") {
		parts = append(parts, fmt.Sprintf(
			"💰 We understand value matters to you. That's why we're offering exclusive "+
				"discounts on %s items that match your preferences perfectly.", firstInterest(c)))
	}
	if hasPainPoint(c, "time_constrained") {
		parts = append(parts,
			"⏰ Save time with our quick checkout process and express delivery options. "+
				"Get what you need, when you need it.")
	}
	if hasPainPoint(c, "quality_focused") {
		parts = append(parts,
			"✨ Premium quality is our priority. Every product we recommend meets the "+
				"highest standards and comes with our satisfaction guarantee.")
	}

	leading := c.Interests
	if len(leading) > 2 {
		leading = leading[:2]
	}
	parts = append(parts, fmt.Sprintf(
		"\n🎯 Based on your interest in %s, we've curated "+
			"a selection that we think you'll love:", strings.Join(leading, ", ")))

	switch c.Segment {
	case models.SegmentVIP:
		parts = append(parts,
			"\n🌟 As a VIP customer, you get:\n"+
				"• Priority access to new releases\n"+
				"• Exclusive member-only pricing\n"+
				"• Complimentary express shipping\n"+
				"• Dedicated customer support")
	case models.SegmentReturning:
		parts = append(parts,
			"\n💙 As a valued returning customer:\n"+
				"• Special loyalty rewards points\n"+
				"• Early access to sales\n"+
				"• Personalized product recommendations")
	case models.SegmentNew:
		parts = append(parts,
			"\n🎉 Welcome bonus for new members:\n"+
				"• 20% off your next purchase\n"+
				"• Free shipping on orders over $50\n"+
				"• Access to our exclusive community")
	case models.SegmentAtRisk:
		parts = append(parts,
			"\n💝 We want to win you back with:\n"+
				"• Extra 30% discount on your favorite categories\n"+
				"• No-questions-asked returns\n"+
				"• Free premium membership for 3 months")
	}

	switch c.BuyingBehavior {
	case models.BehaviorImpulseBuyer:
		parts = append(parts,
			"\n⚡ Limited time offer! These deals won't last long. "+
				"Grab them while you can!")
	case models.BehaviorResearcher:
		parts = append(parts,
			"\n📊 We've included detailed specifications and customer reviews "+
				"to help you make an informed decision.")
	case models.BehaviorBargainHunter:
		parts = append(parts,
			"\n🏷️ Hot deals alert! Save up to 50% on selected items. "+
				"Best prices guaranteed!")
	}

	return strings.Join(parts, "\n\n")
}

func callToAction(behavior string) string {
	cta := "🔍 Discover Your Perfect Match"
	switch behavior {
	case models.BehaviorImpulseBuyer:
		cta = "🛒 Shop Now - Limited Stock Available!"
	case models.BehaviorResearcher:
		cta = "📖 Explore Our Collection & Read Reviews"
	case models.BehaviorBargainHunter:
		cta = "💸 See All Deals - Save Big Today!"
	case models.BehaviorLoyal:
		cta = "🎁 View Your Exclusive Offers"
	case models.BehaviorSeasonal:
		cta = "🌟 Check Out This Season's Must-Haves"
	}
	return cta + "\n\n[View Personalized Recommendations] [Shop Now] [Learn More]"
}

func closing(c models.Customer) string {
	switch c.Segment {
	case models.SegmentVIP:
		return fmt.Sprintf(
			"Thank you for being an exceptional customer, %s! "+
				"Your satisfaction is our top priority.\n\n"+
				"Best regards,\n"+
				"Your Dedicated Account Team 🌟", c.Name)
	case models.SegmentAtRisk:
		return fmt.Sprintf(
			"We truly value your business, %s, and hope to serve you again soon.\n\n"+
				"Warmly,\n"+
				"The Customer Success Team 💙", c.Name)
	default:
		return fmt.Sprintf(
			"Happy shopping, %s! We're here if you need anything.\n\n"+
				"Best wishes,\n"+
				"Your Customer Care Team 😊", c.Name)
	}
}

func hasPainPoint(c models.Customer, point string) bool {
	for _, p := range c.PainPoints {
		if p == point {
			return true
		}
	}
	return false
}

func firstInterest(c models.Customer) string {
	if len(c.Interests) == 0 {
		return "curated"
	}
	return c.Interests[0]
}

// titleCase upper-cases the first letter of every alphabetic run, so
// "home_decor" becomes "Home_Decor".
func titleCase(s string) string {
	runes := []rune(s)
	prevLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if prevLetter {
				runes[i] = unicode.ToLower(r)
			} else {
				runes[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(runes)
}
