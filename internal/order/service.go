package order

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"radagast/internal/auth"
	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
)

// Service implements the order transaction. The server keeps no cart state:
// the request carries the whole cart, and the only persisted artifact is the
// immutable order with its price snapshots.
type Service struct {
	repo   Repository
	foods  FoodResolver
	cache  Invalidator
	logger *zap.Logger
}

func NewService(repo Repository, foods FoodResolver, cache Invalidator, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		foods:  foods,
		cache:  cache,
		logger: logger,
	}
}

// Place validates the request, snapshots prices from the live catalog and
// persists the order. Any failure aborts before persistence; a partial order
// is never written.
func (s *Service) Place(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	phone := domain.NormalizePhone(req.PhoneNumber)
	if !domain.ValidPhone(phone) {
		return nil, apperrors.NewBadRequestError("phone number must contain 11 digits and start with 8")
	}

	if len(req.Items) == 0 {
		return nil, apperrors.NewBadRequestError("cart is empty")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, apperrors.NewBadRequestError("quantity must be at least 1")
		}
	}

	deliveryMethod, ok := domain.ParseDeliveryMethod(req.DeliveryMethod)
	if !ok {
		return nil, apperrors.NewBadRequestError("delivery method is required")
	}

	address := strings.TrimSpace(req.Address)
	if deliveryMethod == domain.DeliveryCourier && len([]rune(address)) < 5 {
		return nil, apperrors.NewBadRequestError("address is required for delivery and must be at least 5 characters")
	}
	if deliveryMethod == domain.DeliveryPickup {
		address = ""
	}

	paymentMethod, ok := domain.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, apperrors.NewBadRequestError("payment method is required")
	}

	location, ok := domain.ParseLocation(req.Location)
	if !ok {
		return nil, apperrors.NewBadRequestError("location is required")
	}

	ids := make([]string, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.Food
	}

	foods, err := s.foods.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	foodByID := make(map[string]domain.Food, len(foods))
	for _, f := range foods {
		foodByID[f.ID] = f
	}

	// Prices are read once, here. A catalog price change after this point
	// does not affect the order.
	lines := make([]domain.OrderLine, len(req.Items))
	for i, item := range req.Items {
		f, ok := foodByID[item.Food]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("food with id %s not found", item.Food))
		}
		lines[i] = domain.OrderLine{
			FoodID:   f.ID,
			Quantity: item.Quantity,
			Price:    f.Price,
		}
	}

	order := &domain.Order{
		PhoneNumber:    phone,
		Items:          lines,
		Total:          domain.ComputeTotal(lines),
		DeliveryMethod: deliveryMethod,
		Address:        address,
		PaymentMethod:  paymentMethod,
		Location:       location,
		Status:         domain.OrderStatusPending,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.cache.InvalidateOrders(ctx)
	s.logger.Info("order placed",
		zap.String("orderId", order.ID),
		zap.String("location", string(order.Location)),
		zap.Int("itemCount", len(order.Items)),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

func (s *Service) List(ctx context.Context, actor domain.Actor) ([]OrderView, error) {
	if err := auth.RequireAdminOrWorker(actor); err != nil {
		return nil, err
	}

	orders, err := s.repo.FindAll(ctx, scopeFor(actor))
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toView(o))
	}
	return views, nil
}

func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, id string, rawStatus string) (*domain.Order, error) {
	if err := auth.RequireAdminOrWorker(actor); err != nil {
		return nil, err
	}

	status, ok := domain.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, apperrors.NewBadRequestError("invalid order status")
	}

	order, err := s.repo.UpdateStatus(ctx, id, status, scopeFor(actor))
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateOrders(ctx)
	s.logger.Info("order status updated", zap.String("orderId", id), zap.String("status", rawStatus))
	return order, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := auth.RequireAdminOrWorker(actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, scopeFor(actor)); err != nil {
		return err
	}

	s.cache.InvalidateOrders(ctx)
	s.logger.Info("order deleted", zap.String("orderId", id))
	return nil
}

// scopeFor pins workers to their own location. The scope travels into the
// query, so a worker never learns whether an order exists elsewhere.
func scopeFor(actor domain.Actor) *domain.Location {
	if actor.IsWorker() {
		loc := actor.Location
		return &loc
	}
	return nil
}
