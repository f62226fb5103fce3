package booking

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest represents booking creation request from frontend.
// DurationHours is bounded 1-8 here to match the booking form; the workflow
// itself does not re-check the bound.
type CreateBookingRequest struct {
	StudioID      uuid.UUID `json:"studio_id" validate:"required"`
	Date          string    `json:"date" validate:"required,calendar_date"`
	StartTime     string    `json:"start_time" validate:"required,slot_time"`
	DurationHours int       `json:"duration_hours" validate:"required,min=1,max=8"`
	GuestCount    int       `json:"guest_count" validate:"required,min=1"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID            uuid.UUID       `json:"id"`
	StudioID      uuid.UUID       `json:"studio_id"`
	Date          string          `json:"date"`
	StartTime     string          `json:"start_time"`
	DurationHours int             `json:"duration_hours"`
	GuestCount    int             `json:"guest_count"`
	TotalPrice    int64           `json:"total_price"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	PaymentID     string          `json:"payment_id,omitempty"`
	Price         *PriceBreakdown `json:"price,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AvailabilityResponse lists occupied slots for a studio day
type AvailabilityResponse struct {
	StudioID      uuid.UUID `json:"studio_id"`
	Date          string    `json:"date"`
	OccupiedSlots []string  `json:"occupied_slots"`
}

// NewBookingResponse converts an entity to its API shape
func NewBookingResponse(b *Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID,
		StudioID:      b.StudioID,
		Date:          b.BookingDate,
		StartTime:     b.StartTime(),
		DurationHours: b.DurationHours,
		GuestCount:    b.GuestCount,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
	}
	if b.PaymentID.Valid {
		resp.PaymentID = b.PaymentID.String
	}
	return resp
}
