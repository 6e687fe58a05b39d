package category

import (
	"database/sql"

	"go.uber.org/zap"

	"radagast/internal/category/repository"
)

// NewModule wires the registry. The repository is returned alongside the
// controller because the food module validates category references against it.
func NewModule(db *sql.DB, cache Invalidator, logger *zap.Logger) (*Controller, *repository.MySQLCategoryRepository) {
	repo := repository.NewMySQLCategoryRepository(db)
	svc := NewService(repo, cache, logger)
	return NewController(svc, logger), repo
}
