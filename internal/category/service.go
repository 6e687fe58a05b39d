package category

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"radagast/internal/auth"
	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
)

type Service struct {
	repo   Repository
	cache  Invalidator
	logger *zap.Logger
}

func NewService(repo Repository, cache Invalidator, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, CategoryView{ID: c.ID, Name: c.Name})
	}
	return views, nil
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, name string) (*domain.Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("category name is required")
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("category with this name already exists")
	}

	category := &domain.Category{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.cache.InvalidateCategories(ctx)
	s.logger.Info("category created", zap.String("categoryId", category.ID), zap.String("name", name))
	return category, nil
}

// Rename cascades into every food referencing the old name and invalidates
// both category and catalog reads.
func (s *Service) Rename(ctx context.Context, actor domain.Actor, id string, name string) (*domain.Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("category name is required")
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("category with this name already exists")
	}

	category, err := s.repo.Rename(ctx, id, name)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateCategories(ctx)
	s.logger.Info("category renamed", zap.String("categoryId", id), zap.String("name", name))
	return category, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	refs, err := s.repo.CountFoodReferences(ctx, category.Name)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperrors.NewBadRequestError("category is still referenced by foods")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.InvalidateCategories(ctx)
	s.logger.Info("category deleted", zap.String("categoryId", id), zap.String("name", category.Name))
	return nil
}
