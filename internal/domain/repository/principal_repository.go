package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

// PrincipalRepository is the persistence boundary for principals and their
// credential state. OTP mutations are deliberately single statements so that
// issue and verify+invalidate cannot interleave around a stale read.
type PrincipalRepository interface {
	Create(ctx context.Context, p *models.Principal) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Principal, error)
	FindByEmail(ctx context.Context, email string) (*models.Principal, error)
	FindByBusinessID(ctx context.Context, businessID string) (*models.Principal, error)

	// SetOTP atomically stores a fresh passcode and its issuance time,
	// replacing any pending one.
	SetOTP(ctx context.Context, id uuid.UUID, code string, issuedAt time.Time) error

	// ClearOTP clears the pending passcode only if it still equals code.
	// Returns models-level not-found when another issue already rotated it,
	// which makes verify+invalidate a compare-and-clear.
	ClearOTP(ctx context.Context, id uuid.UUID, code string) error

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
}
