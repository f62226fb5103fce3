package studio

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/studiora/studiora-api/internal/pkg/imaging"
	"github.com/studiora/studiora-api/internal/pkg/storage"
)

// Service handles studio business logic
type Service struct {
	repo      *Repository
	storage   storage.Storage
	processor *imaging.Processor
}

// NewService creates studio service
func NewService(repo *Repository, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{
		repo:      repo,
		storage:   store,
		processor: processor,
	}
}

// Create creates a new studio owned by ownerID
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateStudioRequest) (*Studio, error) {
	now := time.Now()
	st := &Studio{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Category:   Category(req.Category),
		HourlyRate: req.HourlyRate,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Description != "" {
		st.Description = sql.NullString{String: req.Description, Valid: true}
	}
	if req.Latitude != nil {
		st.Latitude = sql.NullFloat64{Float64: *req.Latitude, Valid: true}
	}
	if req.Longitude != nil {
		st.Longitude = sql.NullFloat64{Float64: *req.Longitude, Valid: true}
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Get returns a studio by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Studio, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

// List returns active studios matching the filter plus the total count
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Studio, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

// ListByOwner returns studios owned by a user
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Studio, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update applies a partial update after an ownership check
func (s *Service) Update(ctx context.Context, userID, studioID uuid.UUID, req *UpdateStudioRequest) (*Studio, error) {
	st, err := s.ownedStudio(ctx, userID, studioID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Description != nil {
		st.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.Address != nil {
		st.Address = *req.Address
	}
	if req.City != nil {
		st.City = *req.City
	}
	if req.Category != nil {
		st.Category = Category(*req.Category)
	}
	if req.HourlyRate != nil {
		st.HourlyRate = *req.HourlyRate
	}
	if req.Latitude != nil {
		st.Latitude = sql.NullFloat64{Float64: *req.Latitude, Valid: true}
	}
	if req.Longitude != nil {
		st.Longitude = sql.NullFloat64{Float64: *req.Longitude, Valid: true}
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Deactivate hides a studio from browsing without deleting its bookings
func (s *Service) Deactivate(ctx context.Context, userID, studioID uuid.UUID) error {
	st, err := s.ownedStudio(ctx, userID, studioID)
	if err != nil {
		return err
	}
	st.IsActive = false
	return s.repo.Update(ctx, st)
}

// UploadPhoto processes and stores a studio gallery image
func (s *Service) UploadPhoto(ctx context.Context, userID, studioID uuid.UUID, filename string, file io.Reader) (*Photo, error) {
	st, err := s.ownedStudio(ctx, userID, studioID)
	if err != nil {
		return nil, err
	}

	if !imaging.ValidateType(filename) {
		return nil, ErrInvalidImage
	}

	processed, err := s.processor.Process(file)
	if err != nil {
		return nil, ErrInvalidImage
	}

	position, err := s.repo.CountPhotos(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	photoID := uuid.New()
	originalKey, thumbKey := imaging.GeneratePaths(st.ID.String(), fmt.Sprintf("%s%s", photoID, extension(processed.ContentType)))

	if err := s.storage.Put(ctx, originalKey, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return nil, err
	}
	if err := s.storage.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		// Best effort cleanup of the original before failing
		_ = s.storage.Delete(ctx, originalKey)
		return nil, err
	}

	photo := &Photo{
		ID:           photoID,
		StudioID:     st.ID,
		StorageKey:   originalKey,
		ThumbnailKey: thumbKey,
		ContentType:  processed.ContentType,
		Width:        processed.Width,
		Height:       processed.Height,
		Position:     position,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreatePhoto(ctx, photo); err != nil {
		_ = s.storage.Delete(ctx, originalKey)
		_ = s.storage.Delete(ctx, thumbKey)
		return nil, err
	}

	return photo, nil
}

// DeletePhoto removes a gallery image and its stored files
func (s *Service) DeletePhoto(ctx context.Context, userID, studioID, photoID uuid.UUID) error {
	if _, err := s.ownedStudio(ctx, userID, studioID); err != nil {
		return err
	}

	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo == nil || photo.StudioID != studioID {
		return ErrPhotoNotFound
	}

	if err := s.repo.DeletePhoto(ctx, photoID); err != nil {
		return err
	}

	_ = s.storage.Delete(ctx, photo.StorageKey)
	_ = s.storage.Delete(ctx, photo.ThumbnailKey)
	return nil
}

// PhotoResponses resolves storage URLs for a studio's photos
func (s *Service) PhotoResponses(ctx context.Context, studioID uuid.UUID) ([]PhotoResponse, error) {
	photos, err := s.repo.ListPhotos(ctx, studioID)
	if err != nil {
		return nil, err
	}

	out := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		out[i] = PhotoResponse{
			ID:           p.ID,
			URL:          s.storage.GetURL(p.StorageKey),
			ThumbnailURL: s.storage.GetURL(p.ThumbnailKey),
			Position:     p.Position,
		}
	}
	return out, nil
}

func (s *Service) ownedStudio(ctx context.Context, userID, studioID uuid.UUID) (*Studio, error) {
	st, err := s.repo.GetByID(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	if st.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return st, nil
}

func extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
