package studio

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/studiora/studiora-api/internal/middleware"
	"github.com/studiora/studiora-api/internal/pkg/imaging"
	"github.com/studiora/studiora-api/internal/pkg/response"
	"github.com/studiora/studiora-api/internal/pkg/validator"
)

// Handler handles studio HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates studio handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /studios
// Public endpoint - no authentication required.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		City:     r.URL.Query().Get("city"),
		Category: r.URL.Query().Get("category"),
	}

	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if filter.Page <= 0 {
		filter.Page = 1
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	studios, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list studios")
		response.InternalError(w)
		return
	}

	out := make([]StudioResponse, len(studios))
	for i, st := range studios {
		out[i] = NewStudioResponse(st)
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	response.WithMeta(w, out, response.Meta{
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
		Pages:   pages,
		HasNext: filter.Page < pages,
		HasPrev: filter.Page > 1,
	})
}

// Get handles GET /studios/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio id")
		return
	}

	st, err := h.service.Get(r.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Studio not found")
			return
		}
		response.InternalError(w)
		return
	}

	resp := NewStudioResponse(st)
	if photos, err := h.service.PhotoResponses(r.Context(), st.ID); err == nil {
		resp.Photos = photos
	}

	response.OK(w, resp)
}

// Create handles POST /studios (owner only)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateStudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	st, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		log.Error().Err(err).Msg("failed to create studio")
		response.InternalError(w)
		return
	}

	response.Created(w, NewStudioResponse(st))
}

// Update handles PATCH /studios/{id} (owner only)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio id")
		return
	}

	var req UpdateStudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	st, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Studio not found")
		case ErrNotOwner:
			response.Forbidden(w, "You do not own this studio")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewStudioResponse(st))
}

// Deactivate handles DELETE /studios/{id} (owner only)
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio id")
		return
	}

	if err := h.service.Deactivate(r.Context(), userID, id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Studio not found")
		case ErrNotOwner:
			response.Forbidden(w, "You do not own this studio")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// UploadPhoto handles POST /studios/{id}/photos (owner only, multipart)
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio id")
		return
	}

	if err := r.ParseMultipartForm(imaging.MaxFileSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "Missing photo file")
		return
	}
	defer file.Close()

	if header.Size > imaging.MaxFileSize {
		response.BadRequest(w, "File too large (max 10MB)")
		return
	}

	photo, err := h.service.UploadPhoto(r.Context(), userID, id, header.Filename, file)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Studio not found")
		case ErrNotOwner:
			response.Forbidden(w, "You do not own this studio")
		case ErrInvalidImage:
			response.BadRequest(w, "Invalid image file")
		default:
			log.Error().Err(err).Msg("photo upload failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]interface{}{
		"id":        photo.ID,
		"url":       h.service.storage.GetURL(photo.StorageKey),
		"thumbnail": h.service.storage.GetURL(photo.ThumbnailKey),
	})
}

// DeletePhoto handles DELETE /studios/{id}/photos/{photoID} (owner only)
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio id")
		return
	}
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		response.BadRequest(w, "Invalid photo id")
		return
	}

	if err := h.service.DeletePhoto(r.Context(), userID, id, photoID); err != nil {
		switch err {
		case ErrNotFound, ErrPhotoNotFound:
			response.NotFound(w, err.Error())
		case ErrNotOwner:
			response.Forbidden(w, "You do not own this studio")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// Mine handles GET /studios/mine (owner only)
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	studios, err := h.service.ListByOwner(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]StudioResponse, len(studios))
	for i, st := range studios {
		out[i] = NewStudioResponse(st)
	}

	response.OK(w, out)
}
