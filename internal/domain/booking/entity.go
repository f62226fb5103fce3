package booking

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents booking status. pending and confirmed hold the slot;
// there is no transition out of confirmed. Failed or dismissed payments
// delete the record instead of cancelling it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus tracks the payment side of a booking
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Booking represents a studio reservation.
// BookingDate is an opaque calendar day (YYYY-MM-DD, no timezone handling);
// StartHour is the whole-hour slot start in 24-hour time.
type Booking struct {
	ID            uuid.UUID      `db:"id"`
	StudioID      uuid.UUID      `db:"studio_id"`
	UserID        uuid.UUID      `db:"user_id"`
	BookingDate   string         `db:"booking_date"`
	StartHour     int            `db:"start_hour"`
	DurationHours int            `db:"duration_hours"`
	GuestCount    int            `db:"guest_count"`
	TotalPrice    int64          `db:"total_price"`
	Status        Status         `db:"status"`
	PaymentStatus PaymentStatus  `db:"payment_status"`
	PaymentID     sql.NullString `db:"payment_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// StartTime returns the slot start as "HH:MM"
func (b *Booking) StartTime() string {
	return SlotLabel(b.StartHour)
}

// IsActive reports whether the booking currently holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// SlotLabel formats an hour as a "HH:MM" slot label
func SlotLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
