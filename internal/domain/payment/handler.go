package payment

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/studiora/studiora-api/internal/domain/booking"
	"github.com/studiora/studiora-api/internal/pkg/response"
)

const maxCallbackBody = 64 * 1024

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Callback handles POST /webhooks/checkout/result. The endpoint is
// unauthenticated;
// integrity comes from the optional HMAC signature header.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCallbackBody))
	if err != nil {
		response.BadRequest(w, "Failed to read callback body")
		return
	}

	if err := h.service.VerifySignature(body, r.Header.Get("X-Checkout-Signature")); err != nil {
		log.Warn().Msg("checkout callback rejected: bad signature")
		response.Unauthorized(w, "Invalid callback signature")
		return
	}

	outcome, err := ParseOutcome(body)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownOutcome):
			response.BadRequest(w, "Unrecognized callback outcome")
		case errors.Is(err, ErrMissingPaymentID):
			response.BadRequest(w, "Success callback requires a payment id")
		default:
			response.BadRequest(w, "Malformed callback payload")
		}
		return
	}

	if err := h.service.Apply(r.Context(), outcome); err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, booking.ErrAlreadyConfirmed):
			response.Conflict(w, "Booking is already confirmed")
		default:
			log.Error().Err(err).
				Str("booking_id", outcome.BookingID.String()).
				Msg("failed to apply checkout callback")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "processed"})
}
