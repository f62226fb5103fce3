package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/studiora/studiora-api/internal/domain/booking"
	"github.com/studiora/studiora-api/internal/domain/user"
)

// StudioCounter is the slice of the studio repository analytics needs
type StudioCounter interface {
	Counts(ctx context.Context) (total int, active int, err error)
}

// AnalyticsSummary is the back-office dashboard snapshot
type AnalyticsSummary struct {
	TotalUsers        int   `json:"total_users"`
	TotalStudios      int   `json:"total_studios"`
	ActiveStudios     int   `json:"active_studios"`
	PendingBookings   int   `json:"pending_bookings"`
	ConfirmedBookings int   `json:"confirmed_bookings"`
	PaidRevenue       int64 `json:"paid_revenue"`
}

type Service struct {
	users    user.Repository
	bookings booking.Repository
	studios  StudioCounter
	security *SecurityRepository
	settings *SettingsRepository
}

func NewService(
	users user.Repository,
	bookings booking.Repository,
	studios StudioCounter,
	security *SecurityRepository,
	settings *SettingsRepository,
) *Service {
	return &Service{
		users:    users,
		bookings: bookings,
		studios:  studios,
		security: security,
		settings: settings,
	}
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*user.User, int, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *Service) SetUserBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if err := s.users.SetBanned(ctx, id, banned); err != nil {
		return err
	}
	event := "user_banned"
	if !banned {
		event = "user_unbanned"
	}
	s.security.Record(ctx, event, id, "", "moderation action")
	return nil
}

func (s *Service) Analytics(ctx context.Context) (*AnalyticsSummary, error) {
	summary := &AnalyticsSummary{}

	var err error
	if summary.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalStudios, summary.ActiveStudios, err = s.studios.Counts(ctx); err != nil {
		return nil, err
	}
	if summary.PendingBookings, err = s.bookings.CountByStatus(ctx, booking.StatusPending); err != nil {
		return nil, err
	}
	if summary.ConfirmedBookings, err = s.bookings.CountByStatus(ctx, booking.StatusConfirmed); err != nil {
		return nil, err
	}
	if summary.PaidRevenue, err = s.bookings.SumPaidRevenue(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *Service) SecurityEvents(ctx context.Context, limit, offset int) ([]SecurityEvent, error) {
	return s.security.List(ctx, limit, offset)
}

func (s *Service) Settings(ctx context.Context) ([]Setting, error) {
	return s.settings.List(ctx)
}

func (s *Service) SetSetting(ctx context.Context, key, value string) error {
	return s.settings.Set(ctx, key, value)
}
