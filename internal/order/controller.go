package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"radagast/internal/auth"
	apperrors "radagast/internal/errors"
	"radagast/internal/respond"
)

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandlePlace(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("request body must be valid JSON"))
		return
	}

	order, err := c.service.Place(r.Context(), req)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusCreated, OrderResponse{
		Message: "order placed",
		Order:   toView(*order),
	})
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.List(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, ListOrdersResponse{Orders: orders})
}

func (c *Controller) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("request body must be valid JSON"))
		return
	}

	order, err := c.service.UpdateStatus(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, OrderResponse{Order: toView(*order)})
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, map[string]string{"message": "order deleted"})
}
