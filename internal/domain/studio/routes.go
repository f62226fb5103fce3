package studio

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studiora/studiora-api/internal/middleware"
)

// Routes returns studio router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public browsing
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	// Owner management
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireOwner())

		r.Get("/mine", h.Mine)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Deactivate)
		r.Post("/{id}/photos", h.UploadPhoto)
		r.Delete("/{id}/photos/{photoID}", h.DeletePhoto)
	})

	return r
}
