package models

import "time"

// Event types published to Kafka as CloudEvents.
const (
	EventPrincipalRegisteredV1 = "com.unyte.backoffice.principal.registered.v1"
	EventLoginSucceededV1      = "com.unyte.backoffice.auth.login_succeeded.v1"
	EventLoginFailedV1         = "com.unyte.backoffice.auth.login_failed.v1"
	EventOTPIssuedV1           = "com.unyte.backoffice.auth.otp_issued.v1"
	EventAgentInvitedV1        = "com.unyte.backoffice.invite.agent_invited.v1"
	EventPasswordResetV1       = "com.unyte.backoffice.auth.password_reset.v1"
)

// PrincipalRegisteredPayload announces a new principal of any role.
type PrincipalRegisteredPayload struct {
	PrincipalID  string    `json:"principal_id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	BusinessID   string    `json:"business_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// LoginPayload covers both successful and failed login attempts.
type LoginPayload struct {
	PrincipalID string    `json:"principal_id,omitempty"`
	Email       string    `json:"email"`
	Reason      string    `json:"reason,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// AgentInvitedPayload announces one accepted invite row.
type AgentInvitedPayload struct {
	InsurerID string    `json:"insurer_id"`
	Email     string    `json:"email"`
	InvitedAt time.Time `json:"invited_at"`
}

// PasswordResetPayload announces a completed password reset.
type PasswordResetPayload struct {
	PrincipalID string    `json:"principal_id"`
	ResetAt     time.Time `json:"reset_at"`
}
