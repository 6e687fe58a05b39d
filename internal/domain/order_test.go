package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "89991234567", NormalizePhone("8 (999) 123-45-67"))
	assert.Equal(t, "89991234567", NormalizePhone("89991234567"))
	assert.Equal(t, "79991234567", NormalizePhone("+7 999 123 45 67"))
	assert.Equal(t, "", NormalizePhone("abc"))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("89991234567"))
	assert.False(t, ValidPhone("9991234567"), "too short")
	assert.False(t, ValidPhone("899912345678"), "too long")
	assert.False(t, ValidPhone("79991234567"), "wrong leading digit")
	assert.False(t, ValidPhone(""))
}

func TestComputeTotal(t *testing.T) {
	items := []OrderLine{
		{FoodID: "a", Quantity: 2, Price: 150},
		{FoodID: "b", Quantity: 1, Price: 99.5},
	}

	assert.Equal(t, 399.5, ComputeTotal(items))
	assert.Equal(t, 0.0, ComputeTotal(nil))
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled"} {
		status, ok := ParseOrderStatus(s)
		assert.True(t, ok)
		assert.Equal(t, OrderStatus(s), status)
	}

	_, ok := ParseOrderStatus("shipped")
	assert.False(t, ok)
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusConfirmed), "re-apply")

	assert.False(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPending))

	assert.False(t, OrderStatusPending.Terminal())
	assert.True(t, OrderStatusConfirmed.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
}

func TestParseDeliveryMethod(t *testing.T) {
	m, ok := ParseDeliveryMethod("pickup")
	assert.True(t, ok)
	assert.Equal(t, DeliveryPickup, m)

	m, ok = ParseDeliveryMethod("delivery")
	assert.True(t, ok)
	assert.Equal(t, DeliveryCourier, m)

	_, ok = ParseDeliveryMethod("drone")
	assert.False(t, ok)
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := ParsePaymentMethod("cash")
	assert.True(t, ok)
	assert.Equal(t, PaymentCash, m)

	m, ok = ParsePaymentMethod("card")
	assert.True(t, ok)
	assert.Equal(t, PaymentCard, m)

	_, ok = ParsePaymentMethod("crypto")
	assert.False(t, ok)
}
