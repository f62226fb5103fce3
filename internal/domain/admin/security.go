package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// SecurityEvent is an audit line for authentication activity
type SecurityEvent struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	Event     string        `db:"event" json:"event"`
	UserID    uuid.NullUUID `db:"user_id" json:"user_id"`
	IP        string        `db:"ip" json:"ip"`
	Detail    string        `db:"detail" json:"detail"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// SecurityRepository persists audit events and serves the admin feed
type SecurityRepository struct {
	db *sqlx.DB
}

func NewSecurityRepository(db *sqlx.DB) *SecurityRepository {
	return &SecurityRepository{db: db}
}

// Record writes an audit event. Failures are logged and swallowed:
// an audit insert must never break the request it describes.
func (r *SecurityRepository) Record(ctx context.Context, event string, userID uuid.UUID, ip, detail string) {
	var nullable uuid.NullUUID
	if userID != uuid.Nil {
		nullable = uuid.NullUUID{UUID: userID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO security_events (id, event, user_id, ip, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`,
		uuid.New(), event, nullable, ip, detail)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to record security event")
	}
}

func (r *SecurityRepository) List(ctx context.Context, limit, offset int) ([]SecurityEvent, error) {
	events := []SecurityEvent{}
	err := r.db.SelectContext(ctx, &events, `
		SELECT * FROM security_events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	return events, err
}
