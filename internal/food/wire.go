package food

import (
	"database/sql"

	"go.uber.org/zap"

	"radagast/internal/food/repository"
)

func NewModule(db *sql.DB, categories CategoryRegistry, cache Invalidator, images ImageStore, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLFoodRepository(db)
	svc := NewService(repo, categories, cache, logger)
	return NewController(svc, images, logger)
}
