package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

// InviteRepository persists insurer invitations. Uniqueness of
// (insurer_id, email) is enforced by the storage constraint, not by a
// check-then-insert in application code.
type InviteRepository interface {
	// Create inserts one invite; a duplicate pair surfaces as
	// errors.ErrDuplicateInvite.
	Create(ctx context.Context, invite *models.InviteRecord) error

	// Exists reports whether the insurer has invited the email.
	Exists(ctx context.Context, insurerID uuid.UUID, email string) (bool, error)

	// ListByInsurer returns every invite the insurer has issued, newest
	// first. Records are retained after registration for audit.
	ListByInsurer(ctx context.Context, insurerID uuid.UUID) ([]models.InviteRecord, error)
}
