package food

import (
	"context"
	"io"

	"radagast/internal/domain"
)

// Repository is the single authority for catalog reads and stock writes.
// SetStock and SetStockAll recompute the derived in_stock flag from the
// per-location rows as written, inside the same transaction.
type Repository interface {
	FindAll(ctx context.Context) ([]domain.Food, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Food, error)
	FindByID(ctx context.Context, id string) (*domain.Food, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Food, error)
	Create(ctx context.Context, food *domain.Food) error
	UpdatePrice(ctx context.Context, id string, price float64) (*domain.Food, error)
	UpdateName(ctx context.Context, id string, name string) (*domain.Food, error)
	UpdateImage(ctx context.Context, id string, image string) (*domain.Food, error)
	SetStock(ctx context.Context, id string, loc domain.Location, value bool) (*domain.Food, error)
	SetStockAll(ctx context.Context, id string, value bool) (*domain.Food, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRegistry is the slice of the category module the catalog needs:
// foods may only reference existing categories.
type CategoryRegistry interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// Invalidator receives notifications after every successful catalog mutation.
type Invalidator interface {
	InvalidateFoods(ctx context.Context)
}

// ImageStore persists uploaded images and returns the public reference.
// Resizing and upload mechanics live behind this interface.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}
