package food

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"radagast/internal/auth"
	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
	"radagast/internal/respond"
)

const maxImageUploadBytes = 10 << 20

type Controller struct {
	service *Service
	images  ImageStore
	logger  *zap.Logger
}

func NewController(service *Service, images ImageStore, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		images:  images,
		logger:  logger,
	}
}

// viewerFrom derives the projection context: identity from the gate, plus the
// customer's declared (untrusted) location from the query string.
func viewerFrom(r *http.Request) (Viewer, error) {
	viewer := Viewer{Actor: auth.ActorFrom(r.Context())}

	if raw := r.URL.Query().Get("location"); raw != "" {
		loc, ok := domain.ParseLocation(raw)
		if !ok {
			return Viewer{}, apperrors.NewBadRequestError("unknown location")
		}
		viewer.CustomerLocation = &loc
	}
	return viewer, nil
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFrom(r)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	foods, err := c.service.List(r.Context(), viewer)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, ListFoodsResponse{Foods: foods})
}

func (c *Controller) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFrom(r)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	foods, err := c.service.ListByCategory(r.Context(), viewer, chi.URLParam(r, "category"))
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, ListFoodsResponse{Foods: foods})
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("request must be multipart form data"))
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("price must be a positive number"))
		return
	}

	inStock := true
	if raw := r.FormValue("inStock"); raw != "" {
		inStock = raw == "true"
	}

	locations, err := parseLocations(r.Form["locations"])
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("image is required"))
		return
	}
	defer file.Close()

	imagePath, err := c.images.Save(r.Context(), header.Filename, file)
	if err != nil {
		respond.Error(c.logger, w, apperrors.NewInternalError("saving image", err))
		return
	}

	input := CreateFoodInput{
		Name:      r.FormValue("name"),
		Price:     price,
		Category:  r.FormValue("category"),
		Locations: locations,
		InStock:   inStock,
	}

	food, err := c.service.Create(r.Context(), actor, input, imagePath)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusCreated, FoodResponse{Food: adminView(*food)})
}

func (c *Controller) HandleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req UpdatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("request body must be valid JSON"))
		return
	}

	food, err := c.service.UpdatePrice(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"), req.Price)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, FoodResponse{Food: adminView(*food)})
}

func (c *Controller) HandleUpdateName(w http.ResponseWriter, r *http.Request) {
	var req UpdateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("request body must be valid JSON"))
		return
	}

	food, err := c.service.UpdateName(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, FoodResponse{Food: adminView(*food)})
}

func (c *Controller) HandleUpdateImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("request must be multipart form data"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("image is required"))
		return
	}
	defer file.Close()

	imagePath, err := c.images.Save(r.Context(), header.Filename, file)
	if err != nil {
		respond.Error(c.logger, w, apperrors.NewInternalError("saving image", err))
		return
	}

	food, err := c.service.UpdateImage(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"), imagePath)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, FoodResponse{Food: adminView(*food)})
}

func (c *Controller) HandleUpdateStock(w http.ResponseWriter, r *http.Request) {
	var req UpdateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("request body must be valid JSON"))
		return
	}
	if req.InStock == nil {
		respond.Error(c.logger, w, apperrors.NewBadRequestError("inStock must be a boolean"))
		return
	}

	var target *domain.Location
	if req.Location != "" {
		loc, ok := domain.ParseLocation(req.Location)
		if !ok {
			respond.Error(c.logger, w, apperrors.NewBadRequestError("unknown location"))
			return
		}
		target = &loc
	}

	food, err := c.service.SetStock(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"), *req.InStock, target)
	if err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, FoodResponse{Food: adminView(*food)})
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		respond.Error(c.logger, w, err)
		return
	}

	respond.JSON(c.logger, w, http.StatusOK, map[string]string{"message": "food deleted"})
}

func parseLocations(raw []string) ([]domain.Location, error) {
	// Accept both repeated form fields and a single comma-separated value.
	var values []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}

	locations := make([]domain.Location, 0, len(values))
	seen := make(map[domain.Location]bool)
	for _, v := range values {
		loc, ok := domain.ParseLocation(v)
		if !ok {
			return nil, apperrors.NewBadRequestError("unknown location: " + v)
		}
		if !seen[loc] {
			seen[loc] = true
			locations = append(locations, loc)
		}
	}
	return locations, nil
}

// adminView renders the mutation result without role filtering: every
// mutating endpoint is admin- or worker-gated and returns the full item.
func adminView(f domain.Food) FoodView {
	view, _ := Project(f, Viewer{Actor: domain.Admin()})
	return view
}
