package studio

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Category represents studio category (matches studio_category enum)
type Category string

const (
	CategoryPhoto   Category = "photo"
	CategoryVideo   Category = "video"
	CategoryMusic   Category = "music"
	CategoryDance   Category = "dance"
	CategoryPodcast Category = "podcast"
	CategoryOther   Category = "other"
)

// Studio represents a bookable studio listing.
// HourlyRate is stored in the smallest currency unit.
type Studio struct {
	ID          uuid.UUID       `db:"id"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	Name        string          `db:"name"`
	Description sql.NullString  `db:"description"`
	Address     string          `db:"address"`
	City        string          `db:"city"`
	Category    Category        `db:"category"`
	HourlyRate  int64           `db:"hourly_rate"`
	Latitude    sql.NullFloat64 `db:"latitude"`
	Longitude   sql.NullFloat64 `db:"longitude"`
	Rating      float64         `db:"rating"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Photo represents an uploaded studio gallery image
type Photo struct {
	ID           uuid.UUID `db:"id"`
	StudioID     uuid.UUID `db:"studio_id"`
	StorageKey   string    `db:"storage_key"`
	ThumbnailKey string    `db:"thumbnail_key"`
	ContentType  string    `db:"content_type"`
	Width        int       `db:"width"`
	Height       int       `db:"height"`
	Position     int       `db:"position"`
	CreatedAt    time.Time `db:"created_at"`
}
