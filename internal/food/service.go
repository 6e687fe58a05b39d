package food

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"radagast/internal/auth"
	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
)

// Service owns catalog mutations and the stock state model. Every successful
// mutation notifies the cache invalidator before returning.
type Service struct {
	repo       Repository
	categories CategoryRegistry
	cache      Invalidator
	logger     *zap.Logger
}

func NewService(repo Repository, categories CategoryRegistry, cache Invalidator, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

func (s *Service) List(ctx context.Context, viewer Viewer) ([]FoodView, error) {
	foods, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ProjectAll(foods, viewer), nil
}

func (s *Service) ListByCategory(ctx context.Context, viewer Viewer, category string) ([]FoodView, error) {
	foods, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return ProjectAll(foods, viewer), nil
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, input CreateFoodInput, image string) (*domain.Food, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("name is required")
	}
	if input.Price <= 0 {
		return nil, apperrors.NewBadRequestError("price must be a positive number")
	}
	if len(input.Locations) == 0 {
		return nil, apperrors.NewBadRequestError("at least one location is required")
	}

	category := strings.TrimSpace(input.Category)
	exists, err := s.categories.ExistsByName(ctx, category)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewBadRequestError("category does not exist")
	}

	stock := make(map[domain.Location]bool, len(input.Locations))
	for _, loc := range input.Locations {
		stock[loc] = input.InStock
	}

	food := &domain.Food{
		Name:            name,
		Price:           input.Price,
		Category:        category,
		Image:           image,
		Locations:       input.Locations,
		StockByLocation: stock,
		InStock:         input.InStock,
	}

	if err := s.repo.Create(ctx, food); err != nil {
		return nil, err
	}

	s.cache.InvalidateFoods(ctx)
	s.logger.Info("food created", zap.String("foodId", food.ID), zap.String("name", food.Name))
	return food, nil
}

func (s *Service) UpdatePrice(ctx context.Context, actor domain.Actor, id string, price float64) (*domain.Food, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, apperrors.NewBadRequestError("price must be a positive number")
	}

	food, err := s.repo.UpdatePrice(ctx, id, price)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateFoods(ctx)
	return food, nil
}

func (s *Service) UpdateName(ctx context.Context, actor domain.Actor, id string, name string) (*domain.Food, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("name must be a non-empty string")
	}

	food, err := s.repo.UpdateName(ctx, id, name)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateFoods(ctx)
	return food, nil
}

func (s *Service) UpdateImage(ctx context.Context, actor domain.Actor, id string, image string) (*domain.Food, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	food, err := s.repo.UpdateImage(ctx, id, image)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateFoods(ctx)
	return food, nil
}

// SetStock toggles availability. Workers are pinned to their own location: a
// request naming any other location is Forbidden, and the write always
// targets the worker's location regardless of the request body. Admins may
// target one location, or all eligible ones when target is nil.
func (s *Service) SetStock(ctx context.Context, actor domain.Actor, id string, value bool, target *domain.Location) (*domain.Food, error) {
	if err := auth.RequireAdminOrWorker(actor); err != nil {
		return nil, err
	}

	var food *domain.Food
	var err error

	switch {
	case actor.IsWorker():
		if target != nil && *target != actor.Location {
			return nil, apperrors.NewForbiddenError("workers may only change stock for their own location")
		}
		food, err = s.repo.SetStock(ctx, id, actor.Location, value)
	case target != nil:
		food, err = s.repo.SetStock(ctx, id, *target, value)
	default:
		food, err = s.repo.SetStockAll(ctx, id, value)
	}
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateFoods(ctx)
	s.logger.Info("stock updated",
		zap.String("foodId", id),
		zap.Bool("value", value),
		zap.String("role", string(actor.Role)),
		zap.Bool("inStock", food.InStock),
	)
	return food, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.InvalidateFoods(ctx)
	s.logger.Info("food deleted", zap.String("foodId", id))
	return nil
}

// ResolveByIDs batch-reads catalog items for the order transaction. Orders
// keep their own price snapshots, so this is a plain read.
func (s *Service) ResolveByIDs(ctx context.Context, ids []string) ([]domain.Food, error) {
	return s.repo.FindByIDs(ctx, ids)
}
