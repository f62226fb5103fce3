package payment

import "github.com/go-chi/chi/v5"

// Routes mounts the checkout webhook. No auth middleware: the processor
// authenticates with the signature header, not a bearer token.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/checkout/result", h.Callback)
	return r
}
