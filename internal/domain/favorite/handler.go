package favorite

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/studiora/studiora-api/internal/domain/studio"
	"github.com/studiora/studiora-api/internal/middleware"
	"github.com/studiora/studiora-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	studioID, err := uuid.Parse(chi.URLParam(r, "studioID"))
	if err != nil {
		response.BadRequest(w, "Invalid studio id")
		return
	}

	if err := h.service.Add(r.Context(), userID, studioID); err != nil {
		switch {
		case errors.Is(err, studio.ErrNotFound):
			response.NotFound(w, "Studio not found")
		case errors.Is(err, ErrAlreadyFavorited):
			response.Conflict(w, "Studio is already in favorites")
		default:
			log.Error().Err(err).Msg("failed to add favorite")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]string{"status": "added"})
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	studioID, err := uuid.Parse(chi.URLParam(r, "studioID"))
	if err != nil {
		response.BadRequest(w, "Invalid studio id")
		return
	}

	if err := h.service.Remove(r.Context(), userID, studioID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Favorite not found")
		default:
			log.Error().Err(err).Msg("failed to remove favorite")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	rows, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list favorites")
		response.InternalError(w)
		return
	}

	response.OK(w, rows)
}
