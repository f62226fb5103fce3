package favorite

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	StudioID  uuid.UUID `db:"studio_id" json:"studio_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
