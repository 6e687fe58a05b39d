package domain

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// Terminal reports whether the status permits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusCancelled
}

// CanTransitionTo allows pending → confirmed|cancelled. Re-applying the
// current status is permitted and treated as a no-op by the store.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == next || s == OrderStatusPending
}

type DeliveryMethod string

const (
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryCourier DeliveryMethod = "delivery"
)

func ParseDeliveryMethod(s string) (DeliveryMethod, bool) {
	switch DeliveryMethod(s) {
	case DeliveryPickup, DeliveryCourier:
		return DeliveryMethod(s), true
	}
	return "", false
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard:
		return PaymentMethod(s), true
	}
	return "", false
}

// OrderLine carries the price snapshotted at order time. It never references
// the live catalog price.
type OrderLine struct {
	FoodID   string
	Quantity int
	Price    float64
}

type Order struct {
	ID              string
	PhoneNumber     string
	Items           []OrderLine
	Total           float64
	DeliveryMethod  DeliveryMethod
	Address         string
	PaymentMethod   PaymentMethod
	Location        Location
	Status          OrderStatus
	StatusChangedAt *time.Time
	CreatedAt       time.Time
}

// NormalizePhone strips every non-digit character. Validity (11 digits,
// leading 8) is checked separately via ValidPhone.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ValidPhone(normalized string) bool {
	return len(normalized) == 11 && strings.HasPrefix(normalized, "8")
}

// ComputeTotal sums price*quantity over the lines. Called exactly once, at
// order creation.
func ComputeTotal(items []OrderLine) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
