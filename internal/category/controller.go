package category

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

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.List(r.Context())
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, ListCategoriesResponse{Categories: categories})
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("request body must be valid JSON"))
		return
	}

	category, err := c.service.Create(r.Context(), auth.ActorFrom(r.Context()), req.Name)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusCreated, CategoryResponse{
		Message:  "category created",
		Category: CategoryView{ID: category.ID, Name: category.Name},
	})
}

func (c *Controller) HandleRename(w http.ResponseWriter, r *http.Request) {
	var req RenameCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("request body must be valid JSON"))
		return
	}

	category, err := c.service.Rename(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, CategoryResponse{
		Message:  "category renamed",
		Category: CategoryView{ID: category.ID, Name: category.Name},
	})
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, map[string]string{"message": "category deleted"})
}
