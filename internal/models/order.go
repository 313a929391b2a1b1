package models

import (
	"time"
)

// Order represents a single purchase made by a customer
type Order struct {
	OrderID         string    `json:"order_id" validate:"required,len=11,startswith=ORD"`
	CustomerID      string    `json:"customer_id" validate:"required,len=8,startswith=CUST"`
	OrderDate       time.Time `json:"order_date" validate:"required"`
	Amount          float64   `json:"amount" validate:"gt=0"`
	ProductCategory string    `json:"product_category" validate:"required"`
	Channel         string    `json:"channel" validate:"required,oneof=web app store"`
}

// Order channels
const (
	ChannelWeb   = "web"
	ChannelApp   = "app"
	ChannelStore = "store"
)

// Channels returns all valid order channels.
func Channels() []string {
	return []string{ChannelWeb, ChannelApp, ChannelStore}
}

// ValidChannel reports whether c is a known order channel.
func ValidChannel(c string) bool {
	switch c {
	case ChannelWeb, ChannelApp, ChannelStore:
		return true
	}
	return false
}
