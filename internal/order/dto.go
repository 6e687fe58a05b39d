package order

import (
	"time"

	"radagast/internal/domain"
)

type PlaceOrderRequest struct {
	PhoneNumber    string             `json:"phoneNumber"`
	Items          []OrderItemRequest `json:"items"`
	DeliveryMethod string             `json:"deliveryMethod"`
	Address        string             `json:"address,omitempty"`
	PaymentMethod  string             `json:"paymentMethod"`
	Location       string             `json:"location"`
}

type OrderItemRequest struct {
	Food     string `json:"food"`
	Quantity int    `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderLineView struct {
	Food     string  `json:"food"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderView struct {
	ID              string          `json:"id"`
	PhoneNumber     string          `json:"phoneNumber"`
	Items           []OrderLineView `json:"items"`
	Total           float64         `json:"total"`
	DeliveryMethod  string          `json:"deliveryMethod"`
	Address         string          `json:"address,omitempty"`
	PaymentMethod   string          `json:"paymentMethod"`
	Location        string          `json:"location"`
	Status          string          `json:"status"`
	StatusChangedAt *time.Time      `json:"statusChangedAt"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type ListOrdersResponse struct {
	Orders []OrderView `json:"orders"`
}

type OrderResponse struct {
	Message string    `json:"message,omitempty"`
	Order   OrderView `json:"order"`
}

func toView(o domain.Order) OrderView {
	items := make([]OrderLineView, len(o.Items))
	for i, line := range o.Items {
		items[i] = OrderLineView{
			Food:     line.FoodID,
			Quantity: line.Quantity,
			Price:    line.Price,
		}
	}

	return OrderView{
		ID:              o.ID,
		PhoneNumber:     o.PhoneNumber,
		Items:           items,
		Total:           o.Total,
		DeliveryMethod:  string(o.DeliveryMethod),
		Address:         o.Address,
		PaymentMethod:   string(o.PaymentMethod),
		Location:        string(o.Location),
		Status:          string(o.Status),
		StatusChangedAt: o.StatusChangedAt,
		CreatedAt:       o.CreatedAt,
	}
}
