package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role identifies which kind of principal an account represents. It is
// decided once at account creation and never changes, so a single
// discriminant replaces the mutually exclusive boolean flags found in older
// schemas and removes the possibility of an ambiguous account.
type Role string

const (
	RoleAgent    Role = "agent"
	RoleInsurer  Role = "insurer"
	RoleMerchant Role = "merchant"
)

// ParseRole validates a role string coming from storage or a request.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAgent, RoleInsurer, RoleMerchant:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CredentialAccount is the mutable OTP state attached to every principal.
// Invariant: OTP and OTPIssuedAt are both nil (no pending challenge) or both
// set. A full timestamp is stored rather than a time of day, so an OTP issued
// before midnight and verified after it computes a correct elapsed duration.
type CredentialAccount struct {
	OTP         *string    `db:"otp"`
	OTPIssuedAt *time.Time `db:"otp_issued_at"`
}

// Pending reports whether a verification challenge is outstanding.
func (c CredentialAccount) Pending() bool {
	return c.OTP != nil && c.OTPIssuedAt != nil
}

// Principal is any authenticable entity: an agent, an insurer or a merchant.
// Each is backed 1:1 by the account fields below.
type Principal struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`

	// FirstName/LastName are set for agents, BusinessName for insurers and
	// merchants.
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	BusinessName string `db:"business_name"`

	// BusinessID is the external-facing identifier: the insurer unique id,
	// the merchant short code or the agent unique id. Immutable after
	// creation; collisions are a creation failure.
	BusinessID string `db:"business_id"`

	// SponsorID links an agent to the insurer whose invite admitted them.
	SponsorID *uuid.UUID `db:"sponsor_id"`

	Active   bool `db:"active"`
	Verified bool `db:"verified"`

	Credential CredentialAccount

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DisplayName returns the human-facing name for mail templates.
func (p *Principal) DisplayName() string {
	if p.Role == RoleAgent {
		return p.FirstName + " " + p.LastName
	}
	return p.BusinessName
}

// PrincipalResponse is the outward shape of a principal; the password hash
// and OTP state never leave the service.
type PrincipalResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Name       string    `json:"name"`
	BusinessID string    `json:"business_id"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *Principal) ToResponse() PrincipalResponse {
	return PrincipalResponse{
		ID:         p.ID,
		Email:      p.Email,
		Role:       p.Role,
		Name:       p.DisplayName(),
		BusinessID: p.BusinessID,
		Verified:   p.Verified,
		CreatedAt:  p.CreatedAt,
	}
}
