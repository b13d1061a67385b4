package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/repository"
)

const uniqueViolation = "23505"

// PrincipalRepositoryPostgres implements repository.PrincipalRepository on
// the "principals" table.
type PrincipalRepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewPrincipalRepositoryPostgres(pool *pgxpool.Pool) *PrincipalRepositoryPostgres {
	return &PrincipalRepositoryPostgres{pool: pool}
}

const principalColumns = `
	id, email, password_hash, role, first_name, last_name, business_name,
	business_id, sponsor_id, active, verified, otp, otp_issued_at,
	created_at, updated_at`

// Create inserts a principal. Unique violations are mapped per constraint so
// an email clash and a business-identifier clash stay distinguishable.
func (r *PrincipalRepositoryPostgres) Create(ctx context.Context, p *models.Principal) error {
	query := `
		INSERT INTO principals (
			id, email, password_hash, role, first_name, last_name,
			business_name, business_id, sponsor_id, active, verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Email, p.PasswordHash, p.Role, p.FirstName, p.LastName,
		p.BusinessName, p.BusinessID, p.SponsorID, p.Active, p.Verified,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "principals_email_key":
				return domainErrors.ErrEmailExists
			case "principals_business_id_key":
				return domainErrors.ErrIdentifierTaken
			}
			return domainErrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create principal: %w", err)
	}
	return nil
}

func (r *PrincipalRepositoryPostgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM principals WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PrincipalRepositoryPostgres) FindByEmail(ctx context.Context, email string) (*models.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM principals WHERE lower(email) = lower($1)`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *PrincipalRepositoryPostgres) FindByBusinessID(ctx context.Context, businessID string) (*models.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM principals WHERE business_id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, businessID))
}

// SetOTP stores the fresh passcode and issuance time in one statement,
// replacing any pending challenge.
func (r *PrincipalRepositoryPostgres) SetOTP(ctx context.Context, id uuid.UUID, code string, issuedAt time.Time) error {
	query := `
		UPDATE principals
		SET otp = $1, otp_issued_at = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.pool.Exec(ctx, query, code, issuedAt, id)
	if err != nil {
		return fmt.Errorf("failed to set otp: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrPrincipalNotFound
	}
	return nil
}

// ClearOTP is a compare-and-clear: it only clears the challenge if the
// stored code still equals the one that was just verified. A zero row count
// means the code was rotated or cleared concurrently, which the caller must
// treat as a failed challenge.
func (r *PrincipalRepositoryPostgres) ClearOTP(ctx context.Context, id uuid.UUID, code string) error {
	query := `
		UPDATE principals
		SET otp = NULL, otp_issued_at = NULL, updated_at = NOW()
		WHERE id = $1 AND otp = $2
	`
	result, err := r.pool.Exec(ctx, query, id, code)
	if err != nil {
		return fmt.Errorf("failed to clear otp: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrNoPendingChallenge
	}
	return nil
}

func (r *PrincipalRepositoryPostgres) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE principals
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrPrincipalNotFound
	}
	return nil
}

func (r *PrincipalRepositoryPostgres) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE principals
		SET verified = TRUE, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark principal verified: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrPrincipalNotFound
	}
	return nil
}

func (r *PrincipalRepositoryPostgres) scanOne(row pgx.Row) (*models.Principal, error) {
	p := &models.Principal{}
	var role string
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &role, &p.FirstName, &p.LastName,
		&p.BusinessName, &p.BusinessID, &p.SponsorID, &p.Active, &p.Verified,
		&p.Credential.OTP, &p.Credential.OTPIssuedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("failed to scan principal: %w", err)
	}
	p.Role, err = models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("corrupt principal row %s: %w", p.ID, err)
	}
	return p, nil
}

var _ repository.PrincipalRepository = (*PrincipalRepositoryPostgres)(nil)
