package models

import (
	"time"

	"github.com/google/uuid"
)

// InviteRecord is one (insurer, email) invitation. The pair is unique and the
// record is immutable; it is kept after a successful registration so the
// insurer can audit who was admitted.
type InviteRecord struct {
	ID        uuid.UUID `db:"id"`
	InsurerID uuid.UUID `db:"insurer_id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// InviteRow is one entry of a bulk invite submission, already parsed by the
// caller. CSV handling happens upstream of this service.
type InviteRow struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
