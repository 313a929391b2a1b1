package models

import (
	"time"
)

// Customer represents a customer record in the dataset
type Customer struct {
	CustomerID           string    `json:"customer_id" validate:"required,len=8,startswith=CUST"`
	Name                 string    `json:"name" validate:"required"`
	Email                string    `json:"email" validate:"required,email"`
	Segment              string    `json:"segment" validate:"required,oneof=new returning vip at_risk"`
	Interests            []string  `json:"interests" validate:"required,min=1"`
	EngagementScore      int       `json:"engagement_score" validate:"gte=0,lte=100"`
	ResponseRate         float64   `json:"response_rate" validate:"gte=0,lte=1"`
	BuyingBehavior       string    `json:"buying_behavior" validate:"omitempty,oneof=impulse_buyer researcher bargain_hunter loyal seasonal"`
	PreferredContactTime string    `json:"preferred_contact_time" validate:"omitempty,oneof=morning afternoon evening"`
	PainPoints           []string  `json:"pain_points"`
	LifetimeValue        float64   `json:"lifetime_value" validate:"gte=0"`
	CreatedAt            time.Time `json:"created_at" validate:"required"`
	LastContactDate      time.Time `json:"last_contact_date" validate:"omitempty,gtefield=CreatedAt"`
}

// Customer segments
const (
	SegmentNew       = "new"
	SegmentReturning = "returning"
	SegmentVIP       = "vip"
	SegmentAtRisk    = "at_risk"
)

// Buying behaviors
const (
	BehaviorImpulseBuyer  = "impulse_buyer"
	BehaviorResearcher    = "researcher"
	BehaviorBargainHunter = "bargain_hunter"
	BehaviorLoyal         = "loyal"
	BehaviorSeasonal      = "seasonal"
)

// Preferred contact times
const (
	ContactMorning   = "morning"
	ContactAfternoon = "afternoon"
	ContactEvening   = "evening"
)

// Segments returns all valid customer segments in their canonical order.
// The generator assigns customers segment by segment in this order, so it
// is part of the deterministic-output contract.
func Segments() []string {
	return []string{SegmentNew, SegmentReturning, SegmentVIP, SegmentAtRisk}
}

// BuyingBehaviors returns the recognized buying behavior labels.
func BuyingBehaviors() []string {
	return []string{BehaviorImpulseBuyer, BehaviorResearcher, BehaviorBargainHunter, BehaviorLoyal, BehaviorSeasonal}
}

// ContactTimes returns the recognized preferred contact windows.
func ContactTimes() []string {
	return []string{ContactMorning, ContactAfternoon, ContactEvening}
}

// ValidSegment reports whether s is a known customer segment.
func ValidSegment(s string) bool {
	switch s {
	case SegmentNew, SegmentReturning, SegmentVIP, SegmentAtRisk:
		return true
	}
	return false
}
