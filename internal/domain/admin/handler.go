package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/studiora/studiora-api/internal/pkg/response"
	"github.com/studiora/studiora-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type userRow struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsBanned bool      `json:"is_banned"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := paging(r, 50)

	users, total, err := h.service.ListUsers(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		response.InternalError(w)
		return
	}

	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{
			ID:       u.ID,
			Email:    u.Email,
			Name:     u.Name,
			Role:     string(u.Role),
			IsBanned: u.IsBanned,
		})
	}

	page := offset/limit + 1
	pages := (total + limit - 1) / limit
	response.WithMeta(w, rows, response.Meta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	})
}

type banRequest struct {
	Banned bool `json:"banned"`
}

func (h *Handler) SetBanned(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	var req banRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.SetUserBanned(r.Context(), id, req.Banned); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Msg("failed to update ban state")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"banned": req.Banned})
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Analytics(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to build analytics summary")
		response.InternalError(w)
		return
	}
	response.OK(w, summary)
}

func (h *Handler) SecurityEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := paging(r, 100)

	events, err := h.service.SecurityEvents(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list security events")
		response.InternalError(w)
		return
	}
	response.OK(w, events)
}

func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Settings(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list settings")
		response.InternalError(w)
		return
	}
	response.OK(w, settings)
}

type settingRequest struct {
	Value string `json:"value" validate:"required"`
}

func (h *Handler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		response.BadRequest(w, "Setting key is required")
		return
	}

	var req settingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.SetSetting(r.Context(), key, req.Value); err != nil {
		log.Error().Err(err).Msg("failed to save setting")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"key": key, "value": req.Value})
}

func paging(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
