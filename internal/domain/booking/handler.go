package booking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/studiora/studiora-api/internal/middleware"
	"github.com/studiora/studiora-api/internal/pkg/response"
	"github.com/studiora/studiora-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
// Requires authentication - extracts UserID from context.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	b, price, err := h.service.Reserve(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrUnauthenticated:
			response.Unauthorized(w, "User not authenticated")
		case ErrInvalidStartTime:
			response.BadRequest(w, err.Error())
		case ErrStudioNotFound:
			response.NotFound(w, "Studio not found")
		case ErrStudioInactive:
			response.BadRequest(w, "Studio is not accepting bookings")
		case ErrSlotConflict:
			response.Conflict(w, "This slot is already booked, please pick another time")
		case ErrAvailabilityCheckFailed, ErrPersistenceFailed:
			response.Error(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Could not complete the booking, please try again")
		default:
			log.Error().Err(err).Msg("reserve failed")
			response.InternalError(w)
		}
		return
	}

	resp := NewBookingResponse(b)
	resp.Price = price
	response.Created(w, resp)
}

// Get handles GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking id")
		return
	}

	b, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalError(w)
		return
	}

	if b.UserID != userID && middleware.GetRole(r.Context()) != "admin" {
		response.Forbidden(w, "Not your booking")
		return
	}

	response.OK(w, NewBookingResponse(b))
}

// ListMine handles GET /bookings
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 20
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	bookings, err := h.service.ListUserBookings(r.Context(), userID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = NewBookingResponse(b)
	}

	response.OK(w, out)
}

// Availability handles GET /studios/{id}/availability?date=YYYY-MM-DD
// Public endpoint - no authentication required.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	studioID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio id")
		return
	}

	date := r.URL.Query().Get("date")
	if err := validator.ValidateVar(date, "required,calendar_date"); err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		return
	}

	slots, err := h.service.OccupiedSlots(r.Context(), studioID, date)
	if err != nil {
		response.Error(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Could not load availability, please try again")
		return
	}

	response.OK(w, AvailabilityResponse{
		StudioID:      studioID,
		Date:          date,
		OccupiedSlots: slots,
	})
}

// Routes returns booking router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/", h.ListMine)
		r.Get("/{id}", h.Get)
	})

	return r
}
