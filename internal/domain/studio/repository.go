package studio

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles studio database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new studio repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new studio
func (r *Repository) Create(ctx context.Context, s *Studio) error {
	query := `
		INSERT INTO studios (id, owner_id, name, description, address, city, category, hourly_rate, latitude, longitude, rating, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.OwnerID,
		s.Name,
		s.Description,
		s.Address,
		s.City,
		s.Category,
		s.HourlyRate,
		s.Latitude,
		s.Longitude,
		s.Rating,
		s.IsActive,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

// GetByID returns a studio by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Studio, error) {
	query := `SELECT * FROM studios WHERE id = $1`
	var s Studio
	err := r.db.GetContext(ctx, &s, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &s, err
}

// List returns active studios matching the filter
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Studio, int, error) {
	conditions := []string{"is_active = true"}
	args := []interface{}{}
	idx := 1

	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(city) = LOWER($%d)", idx))
		args = append(args, filter.City)
		idx++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", idx))
		args = append(args, filter.Category)
		idx++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM studios WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM studios
		WHERE %s
		ORDER BY rating DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, idx, idx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	var studios []*Studio
	err := r.db.SelectContext(ctx, &studios, query, args...)
	return studios, total, err
}

// ListByOwner returns all studios owned by a user, active or not
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Studio, error) {
	query := `SELECT * FROM studios WHERE owner_id = $1 ORDER BY created_at DESC`
	var studios []*Studio
	err := r.db.SelectContext(ctx, &studios, query, ownerID)
	return studios, err
}

// Update persists mutable studio fields
func (r *Repository) Update(ctx context.Context, s *Studio) error {
	query := `
		UPDATE studios
		SET name = $2, description = $3, address = $4, city = $5, category = $6,
		    hourly_rate = $7, latitude = $8, longitude = $9, is_active = $10, updated_at = $11
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Description,
		s.Address,
		s.City,
		s.Category,
		s.HourlyRate,
		s.Latitude,
		s.Longitude,
		s.IsActive,
		time.Now(),
	)
	return err
}

// CreatePhoto inserts a studio photo row
func (r *Repository) CreatePhoto(ctx context.Context, p *Photo) error {
	query := `
		INSERT INTO studio_photos (id, studio_id, storage_key, thumbnail_key, content_type, width, height, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.StudioID,
		p.StorageKey,
		p.ThumbnailKey,
		p.ContentType,
		p.Width,
		p.Height,
		p.Position,
		p.CreatedAt,
	)
	return err
}

// ListPhotos returns photos for a studio ordered by position
func (r *Repository) ListPhotos(ctx context.Context, studioID uuid.UUID) ([]Photo, error) {
	query := `SELECT * FROM studio_photos WHERE studio_id = $1 ORDER BY position ASC, created_at ASC`
	var photos []Photo
	err := r.db.SelectContext(ctx, &photos, query, studioID)
	return photos, err
}

// GetPhoto returns a single photo
func (r *Repository) GetPhoto(ctx context.Context, id uuid.UUID) (*Photo, error) {
	query := `SELECT * FROM studio_photos WHERE id = $1`
	var p Photo
	err := r.db.GetContext(ctx, &p, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &p, err
}

// DeletePhoto removes a photo row
func (r *Repository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM studio_photos WHERE id = $1`, id)
	return err
}

// CountPhotos returns the number of photos for a studio
func (r *Repository) CountPhotos(ctx context.Context, studioID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM studio_photos WHERE studio_id = $1`, studioID)
	return count, err
}

// Counts returns total and active studio counts
func (r *Repository) Counts(ctx context.Context) (total int, active int, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM studios`,
	).Scan(&total, &active)
	return total, active, err
}
