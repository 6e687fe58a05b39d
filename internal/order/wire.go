package order

import (
	"database/sql"

	"go.uber.org/zap"

	foodrepo "radagast/internal/food/repository"
	"radagast/internal/order/repository"
)

func NewModule(db *sql.DB, cache Invalidator, logger *zap.Logger) *Controller {
	orderRepo := repository.NewMySQLOrderRepository(db)
	foodRepo := foodrepo.NewMySQLFoodRepository(db)
	svc := NewService(orderRepo, foodRepo, cache, logger)
	return NewController(svc, logger)
}
