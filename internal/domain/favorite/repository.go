package favorite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// StudioRow is a favorite joined with the studio it points at,
// enough for a list card without a second query.
type StudioRow struct {
	StudioID   uuid.UUID `db:"studio_id" json:"studio_id"`
	Name       string    `db:"name" json:"name"`
	City       string    `db:"city" json:"city"`
	Category   string    `db:"category" json:"category"`
	HourlyRate int64     `db:"hourly_rate" json:"hourly_rate"`
	Rating     float64   `db:"rating" json:"rating"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	AddedAt    time.Time `db:"added_at" json:"added_at"`
}

type Repository interface {
	Add(ctx context.Context, userID, studioID uuid.UUID) error
	Remove(ctx context.Context, userID, studioID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]StudioRow, error)
	Exists(ctx context.Context, userID, studioID uuid.UUID) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, userID, studioID uuid.UUID) error {
	query := `
		INSERT INTO favorites (id, user_id, studio_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, studio_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, uuid.New(), userID, studioID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAlreadyFavorited
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, userID, studioID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND studio_id = $2`,
		userID, studioID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]StudioRow, error) {
	query := `
		SELECT s.id AS studio_id, s.name, s.city, s.category,
		       s.hourly_rate, s.rating, s.is_active, f.created_at AS added_at
		FROM favorites f
		JOIN studios s ON s.id = f.studio_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	rows := []StudioRow{}
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Exists(ctx context.Context, userID, studioID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND studio_id = $2)`,
		userID, studioID)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return exists, nil
}
