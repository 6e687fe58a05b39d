package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"radagast/internal/auth"
	"radagast/internal/cache"
	"radagast/internal/category"
	"radagast/internal/food"
	"radagast/internal/order"
)

// NewRouter assembles the HTTP surface. Every request passes the role gate;
// cached GET reads sit behind the read-through middleware, which keys on the
// gated actor, so the gate must run first.
func NewRouter(
	foodCtrl *food.Controller,
	categoryCtrl *category.Controller,
	orderCtrl *order.Controller,
	c *cache.Cache,
	uploadsDir string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(auth.Middleware(logger))

	r.Route("/foods", func(r chi.Router) {
		r.With(c.Middleware).Get("/", foodCtrl.HandleList)
		r.With(c.Middleware).Get("/{category}", foodCtrl.HandleListByCategory)
		r.Post("/", foodCtrl.HandleCreate)
		r.Patch("/{id}/price", foodCtrl.HandleUpdatePrice)
		r.Patch("/{id}/name", foodCtrl.HandleUpdateName)
		r.Patch("/{id}/stock", foodCtrl.HandleUpdateStock)
		r.Patch("/{id}/image", foodCtrl.HandleUpdateImage)
		r.Delete("/{id}", foodCtrl.HandleDelete)
	})

	r.Route("/categories", func(r chi.Router) {
		r.With(c.Middleware).Get("/", categoryCtrl.HandleList)
		r.Post("/", categoryCtrl.HandleCreate)
		r.Patch("/{id}", categoryCtrl.HandleRename)
		r.Put("/{id}", categoryCtrl.HandleRename)
		r.Delete("/{id}", categoryCtrl.HandleDelete)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderCtrl.HandlePlace)
		r.With(c.Middleware).Get("/", orderCtrl.HandleList)
		r.Patch("/{id}/status", orderCtrl.HandleUpdateStatus)
		r.Delete("/{id}", orderCtrl.HandleDelete)
	})

	fileServer := http.StripPrefix("/uploads/images/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/images/*", fileServer.ServeHTTP)

	return r
}
