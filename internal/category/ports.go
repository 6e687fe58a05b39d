package category

import (
	"context"

	"radagast/internal/domain"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, category *domain.Category) error
	// Rename updates the category and rewrites every food referencing the
	// old name, as one transaction.
	Rename(ctx context.Context, id string, newName string) (*domain.Category, error)
	CountFoodReferences(ctx context.Context, name string) (int, error)
	Delete(ctx context.Context, id string) error
}

type Invalidator interface {
	InvalidateCategories(ctx context.Context)
}
