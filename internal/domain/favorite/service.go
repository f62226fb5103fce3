package favorite

import (
	"context"

	"github.com/google/uuid"

	"github.com/studiora/studiora-api/internal/domain/studio"
)

// StudioSource resolves studios so we can refuse favoriting unknown ones
type StudioSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*studio.Studio, error)
}

type Service struct {
	repo    Repository
	studios StudioSource
}

func NewService(repo Repository, studios StudioSource) *Service {
	return &Service{repo: repo, studios: studios}
}

func (s *Service) Add(ctx context.Context, userID, studioID uuid.UUID) error {
	st, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		return err
	}
	if st == nil {
		return studio.ErrNotFound
	}
	return s.repo.Add(ctx, userID, studioID)
}

func (s *Service) Remove(ctx context.Context, userID, studioID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, studioID)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]StudioRow, error) {
	return s.repo.ListByUser(ctx, userID)
}
