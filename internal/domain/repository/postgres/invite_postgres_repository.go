package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/repository"
)

// InviteRepositoryPostgres implements repository.InviteRepository on the
// "invites" table. The (insurer_id, email) pair carries a unique constraint;
// concurrent duplicate submissions resolve there, not in application code.
type InviteRepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewInviteRepositoryPostgres(pool *pgxpool.Pool) *InviteRepositoryPostgres {
	return &InviteRepositoryPostgres{pool: pool}
}

func (r *InviteRepositoryPostgres) Create(ctx context.Context, invite *models.InviteRecord) error {
	query := `
		INSERT INTO invites (id, insurer_id, email, name)
		VALUES ($1, $2, lower($3), $4)
	`
	_, err := r.pool.Exec(ctx, query, invite.ID, invite.InsurerID, invite.Email, invite.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return domainErrors.ErrDuplicateInvite
			case "23503":
				return domainErrors.ErrInsurerNotFound
			}
		}
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

func (r *InviteRepositoryPostgres) Exists(ctx context.Context, insurerID uuid.UUID, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invites
			WHERE insurer_id = $1 AND email = lower($2)
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, insurerID, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check invite existence: %w", err)
	}
	return exists, nil
}

func (r *InviteRepositoryPostgres) ListByInsurer(ctx context.Context, insurerID uuid.UUID) ([]models.InviteRecord, error) {
	query := `
		SELECT id, insurer_id, email, name, created_at
		FROM invites
		WHERE insurer_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, insurerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var invites []models.InviteRecord
	for rows.Next() {
		var inv models.InviteRecord
		if err := rows.Scan(&inv.ID, &inv.InsurerID, &inv.Email, &inv.Name, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}
	return invites, nil
}

var _ repository.InviteRepository = (*InviteRepositoryPostgres)(nil)
