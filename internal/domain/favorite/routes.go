package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Post("/{studioID}", h.Add)
	r.Delete("/{studioID}", h.Remove)
	return r
}
