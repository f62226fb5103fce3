package studio

import (
	"time"

	"github.com/google/uuid"
)

// CreateStudioRequest for POST /studios
type CreateStudioRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Address     string   `json:"address" validate:"required,max=300"`
	City        string   `json:"city" validate:"required,max=100"`
	Category    string   `json:"category" validate:"required,studio_category"`
	HourlyRate  int64    `json:"hourly_rate" validate:"required,gt=0"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// UpdateStudioRequest for PATCH /studios/{id}
type UpdateStudioRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Address     *string  `json:"address" validate:"omitempty,max=300"`
	City        *string  `json:"city" validate:"omitempty,max=100"`
	Category    *string  `json:"category" validate:"omitempty,studio_category"`
	HourlyRate  *int64   `json:"hourly_rate" validate:"omitempty,gt=0"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsActive    *bool    `json:"is_active"`
}

// ListFilter holds browse filters
type ListFilter struct {
	City     string
	Category string
	Page     int
	Limit    int
}

// StudioResponse represents studio in API responses
type StudioResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	Category    string          `json:"category"`
	HourlyRate  int64           `json:"hourly_rate"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
	Rating      float64         `json:"rating"`
	IsActive    bool            `json:"is_active"`
	Photos      []PhotoResponse `json:"photos,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PhotoResponse represents a studio photo in API responses
type PhotoResponse struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Position     int       `json:"position"`
}

// NewStudioResponse converts an entity to its API shape
func NewStudioResponse(s *Studio) StudioResponse {
	resp := StudioResponse{
		ID:         s.ID,
		Name:       s.Name,
		Address:    s.Address,
		City:       s.City,
		Category:   string(s.Category),
		HourlyRate: s.HourlyRate,
		Rating:     s.Rating,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
	}
	if s.Description.Valid {
		resp.Description = s.Description.String
	}
	if s.Latitude.Valid {
		lat := s.Latitude.Float64
		resp.Latitude = &lat
	}
	if s.Longitude.Valid {
		lon := s.Longitude.Float64
		resp.Longitude = &lon
	}
	return resp
}
