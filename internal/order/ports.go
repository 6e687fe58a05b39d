package order

import (
	"context"

	"radagast/internal/domain"
)

// Repository operations that take a scope apply it inside the query itself:
// a nil scope reads everything (admin), a non-nil scope restricts to one
// location (worker) so other locations' orders never leave the store.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string, scope *domain.Location) (*domain.Order, error)
	FindAll(ctx context.Context, scope *domain.Location) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, scope *domain.Location) (*domain.Order, error)
	Delete(ctx context.Context, id string, scope *domain.Location) error
}

// FoodResolver batch-reads catalog items so prices can be snapshotted into
// order lines.
type FoodResolver interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Food, error)
}

type Invalidator interface {
	InvalidateOrders(ctx context.Context)
}
