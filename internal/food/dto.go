package food

import "radagast/internal/domain"

// FoodView is the wire form of a projected catalog item. StockByLocation is a
// plain string-keyed map for JSON compatibility.
type FoodView struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           float64         `json:"price"`
	Category        string          `json:"category"`
	Image           string          `json:"image"`
	Locations       []string        `json:"locations"`
	StockByLocation map[string]bool `json:"stockByLocation"`
	InStock         bool            `json:"inStock"`
}

type CreateFoodInput struct {
	Name      string
	Price     float64
	Category  string
	Locations []domain.Location
	InStock   bool
}

type UpdatePriceRequest struct {
	Price float64 `json:"price"`
}

type UpdateNameRequest struct {
	Name string `json:"name"`
}

// UpdateStockRequest toggles one location's flag, or every eligible
// location's when Location is empty (admin only).
type UpdateStockRequest struct {
	InStock  *bool  `json:"inStock"`
	Location string `json:"location,omitempty"`
}

type ListFoodsResponse struct {
	Foods []FoodView `json:"foods"`
}

type FoodResponse struct {
	Food FoodView `json:"food"`
}
