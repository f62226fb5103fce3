package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/studiora/studiora-api/internal/domain/studio"
)

// StudioSource provides the studio state the workflow needs. The hourly rate
// is read exactly once, at reservation time, and carried through the rest of
// the workflow as a plain value.
type StudioSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*studio.Studio, error)
}

// Notifier pushes booking status changes to the owning user. Best effort;
// implementations must not block.
type Notifier interface {
	NotifyBookingStatus(userID, bookingID uuid.UUID, status string)
}

// Config tunes availability behavior
type Config struct {
	// FailClosed surfaces store errors from the occupied-slot query instead
	// of treating the day as free. Off by default: the shipped behavior is
	// fail-open.
	FailClosed bool
	CacheTTL   time.Duration
}

// Service orchestrates the reservation workflow: conflict check, record
// creation, and the payment-outcome state transitions.
type Service struct {
	repo     Repository
	studios  StudioSource
	redis    *redis.Client // nil disables the availability cache
	notifier Notifier      // nil disables push
	cfg      Config
}

// NewService creates booking service
func NewService(repo Repository, studios StudioSource, redisClient *redis.Client, notifier Notifier, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &Service{
		repo:     repo,
		studios:  studios,
		redis:    redisClient,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Reserve creates a provisional booking for the requested slot.
//
// The slot check and the insert are a single conditional statement in the
// store, so two concurrent reservations cannot both take the slot. The
// separate pre-check exists to distinguish SlotConflict from a store error
// before anything is written.
func (s *Service) Reserve(ctx context.Context, userID uuid.UUID, req *CreateBookingRequest) (*Booking, *PriceBreakdown, error) {
	if userID == uuid.Nil {
		return nil, nil, ErrUnauthenticated
	}

	startHour, err := ParseSlotTime(req.StartTime)
	if err != nil {
		return nil, nil, err
	}

	st, err := s.studios.GetByID(ctx, req.StudioID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load studio: %w", err)
	}
	if st == nil {
		return nil, nil, ErrStudioNotFound
	}
	if !st.IsActive {
		return nil, nil, ErrStudioInactive
	}
	// Rate captured once, never re-read mid-workflow
	hourlyRate := st.HourlyRate

	existing, err := s.repo.FindActiveAt(ctx, req.StudioID, req.Date, startHour)
	if err != nil {
		return nil, nil, ErrAvailabilityCheckFailed
	}
	if existing != nil {
		return nil, nil, ErrSlotConflict
	}

	price := CalculatePrice(hourlyRate, req.DurationHours)

	now := time.Now()
	b := &Booking{
		ID:            uuid.New(),
		StudioID:      req.StudioID,
		UserID:        userID,
		BookingDate:   req.Date,
		StartHour:     startHour,
		DurationHours: req.DurationHours,
		GuestCount:    req.GuestCount,
		TotalPrice:    price.Total,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.CreateIfSlotFree(ctx, b)
	if err != nil {
		return nil, nil, ErrPersistenceFailed
	}
	if !created {
		// Lost the race to a concurrent reservation after the pre-check
		return nil, nil, ErrSlotConflict
	}

	s.invalidateAvailability(ctx, req.StudioID, req.Date)

	return b, &price, nil
}

// ConfirmPayment transitions a booking to confirmed/paid and records the
// processor-assigned transaction id. A repeated call re-applies the same
// update, which is harmless.
func (s *Service) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, externalPaymentID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrPersistenceFailed
	}
	if b == nil {
		return nil, ErrNotFound
	}

	if err := s.repo.ConfirmPayment(ctx, bookingID, externalPaymentID); err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, ErrPersistenceFailed
	}

	s.notify(b.UserID, b.ID, string(StatusConfirmed))

	return s.repo.GetByID(ctx, bookingID)
}

// Abandon deletes a booking whose payment failed or was dismissed. The record
// is removed entirely, not soft-cancelled. A confirmed booking is never
// deleted through this path: the status guard lives inside the delete
// statement, so a confirmation committing between the read and the delete
// cannot lose a paid booking. The read only supplies the fields for cache
// invalidation and push.
func (s *Service) Abandon(ctx context.Context, bookingID uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return ErrPersistenceFailed
	}
	if b == nil {
		return ErrNotFound
	}

	if err := s.repo.DeleteIfNotConfirmed(ctx, bookingID); err != nil {
		switch err {
		case ErrNotFound, ErrAlreadyConfirmed:
			return err
		default:
			return ErrPersistenceFailed
		}
	}

	s.invalidateAvailability(ctx, b.StudioID, b.BookingDate)
	s.notify(b.UserID, b.ID, "removed")

	return nil
}

// OccupiedSlots returns the occupied hour-slot labels for a studio day.
//
// On a store error the default is to report the day as free (fail-open,
// matching the shipped behavior); Config.FailClosed turns the error into a
// failure instead.
func (s *Service) OccupiedSlots(ctx context.Context, studioID uuid.UUID, date string) ([]string, error) {
	if cached, ok := s.cachedAvailability(ctx, studioID, date); ok {
		return cached, nil
	}

	bookings, err := s.repo.ListActiveByStudioDate(ctx, studioID, date)
	if err != nil {
		if s.cfg.FailClosed {
			return nil, ErrAvailabilityCheckFailed
		}
		log.Warn().Err(err).Str("studio_id", studioID.String()).Str("date", date).
			Msg("availability query failed, reporting no conflicts")
		return []string{}, nil
	}

	slots := OccupiedSlots(bookings)
	if slots == nil {
		slots = []string{}
	}

	s.storeAvailability(ctx, studioID, date, slots)

	return slots, nil
}

// GetBooking returns a booking by id
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// ListUserBookings returns a user's bookings, newest first
func (s *Service) ListUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// Availability cache helpers (nil-safe)

func availabilityKey(studioID uuid.UUID, date string) string {
	return fmt.Sprintf("avail:%s:%s", studioID, date)
}

func (s *Service) cachedAvailability(ctx context.Context, studioID uuid.UUID, date string) ([]string, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, availabilityKey(studioID, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *Service) storeAvailability(ctx context.Context, studioID uuid.UUID, date string, slots []string) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	_ = s.redis.Set(ctx, availabilityKey(studioID, date), raw, s.cfg.CacheTTL).Err()
}

func (s *Service) invalidateAvailability(ctx context.Context, studioID uuid.UUID, date string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, availabilityKey(studioID, date)).Err()
}

func (s *Service) notify(userID, bookingID uuid.UUID, status string) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyBookingStatus(userID, bookingID, status)
}
