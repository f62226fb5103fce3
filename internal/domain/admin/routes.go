package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studiora/studiora-api/internal/middleware"
)

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireAdmin())

	r.Get("/users", h.ListUsers)
	r.Patch("/users/{userID}/ban", h.SetBanned)
	r.Get("/analytics", h.Analytics)
	r.Get("/security-events", h.SecurityEvents)
	r.Get("/settings", h.ListSettings)
	r.Put("/settings/{key}", h.SetSetting)

	return r
}
