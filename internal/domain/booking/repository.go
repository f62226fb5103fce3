package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines booking data access
type Repository interface {
	// FindActiveAt returns the active (pending or confirmed) booking whose
	// occupied hour range contains the given slot, or nil if the slot is free.
	FindActiveAt(ctx context.Context, studioID uuid.UUID, date string, hour int) (*Booking, error)

	// CreateIfSlotFree inserts the booking only if no active booking occupies
	// its start slot. The check and the insert run as one statement, so two
	// concurrent reservations for the same slot cannot both succeed.
	// Returns false with a nil error when the slot was taken.
	CreateIfSlotFree(ctx context.Context, b *Booking) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListActiveByStudioDate(ctx context.Context, studioID uuid.UUID, date string) ([]*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Booking, error)
	ConfirmPayment(ctx context.Context, id uuid.UUID, paymentID string) error

	// DeleteIfNotConfirmed removes the booking unless it has reached the
	// confirmed status. The status guard runs inside the delete statement,
	// so a payment confirmation committing concurrently cannot lose the row.
	// Returns ErrAlreadyConfirmed for a confirmed booking and ErrNotFound
	// for a missing one.
	DeleteIfNotConfirmed(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status Status) (int, error)
	SumPaidRevenue(ctx context.Context) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const activeStatuses = `('pending', 'confirmed')`

func (r *repository) FindActiveAt(ctx context.Context, studioID uuid.UUID, date string, hour int) (*Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE studio_id = $1
		  AND booking_date = $2
		  AND status IN ` + activeStatuses + `
		  AND start_hour <= $3
		  AND $3 < start_hour + duration_hours
		LIMIT 1
	`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, studioID, date, hour)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) CreateIfSlotFree(ctx context.Context, b *Booking) (bool, error) {
	query := `
		INSERT INTO bookings (id, studio_id, user_id, booking_date, start_hour, duration_hours,
		                      guest_count, total_price, status, payment_status, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE studio_id = $2
			  AND booking_date = $4
			  AND status IN ` + activeStatuses + `
			  AND start_hour <= $5
			  AND $5 < start_hour + duration_hours
		)
		RETURNING id
	`
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query,
		b.ID,
		b.StudioID,
		b.UserID,
		b.BookingDate,
		b.StartHour,
		b.DurationHours,
		b.GuestCount,
		b.TotalPrice,
		b.Status,
		b.PaymentStatus,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil // slot taken
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListActiveByStudioDate(ctx context.Context, studioID uuid.UUID, date string) ([]*Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE studio_id = $1 AND booking_date = $2 AND status IN ` + activeStatuses + `
		ORDER BY start_hour ASC
	`
	var bookings []*Booking
	err := r.db.SelectContext(ctx, &bookings, query, studioID, date)
	return bookings, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var bookings []*Booking
	err := r.db.SelectContext(ctx, &bookings, query, userID, limit, offset)
	return bookings, err
}

func (r *repository) ConfirmPayment(ctx context.Context, id uuid.UUID, paymentID string) error {
	query := `
		UPDATE bookings
		SET status = 'confirmed', payment_status = 'paid', payment_id = $2, updated_at = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, paymentID, time.Now())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteIfNotConfirmed(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1 AND status <> 'confirmed'`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// Zero rows: either the booking is confirmed or it does not exist
	var status Status
	err = r.db.GetContext(ctx, &status, `SELECT status FROM bookings WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyConfirmed
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status)
	return count, err
}

func (r *repository) SumPaidRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE payment_status = 'paid'`)
	return total, err
}
