package models

// LoginRequest starts the password step of the login state machine.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPRequest completes a pending verification challenge.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// ResendOTPRequest re-issues a challenge, replacing any pending code.
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordRequest begins the stateless reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the reset flow. UID is the reversible
// base64 encoding of the principal id; Token carries the authorization.
type ResetPasswordRequest struct {
	UID         string `json:"uid" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// RegisterAgentRequest is agent self-registration; Invite is the sponsoring
// insurer's business identifier from the invite link.
type RegisterAgentRequest struct {
	Invite      string `json:"invite" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	BankAccount string `json:"bank_account" binding:"required"`
}

// RegisterMerchantRequest is merchant self-registration; merchants need no
// invite.
type RegisterMerchantRequest struct {
	BusinessName       string `json:"business_name" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
}

// RegisterInsurerRequest onboards an insurer.
type RegisterInsurerRequest struct {
	BusinessName       string `json:"business_name" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
}

// InviteAgentRequest is a single invitation from an insurer.
type InviteAgentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
}

// BulkInviteRequest carries parsed rows of a bulk invitation. Rows are
// processed best-effort; the response reports how many succeeded.
type BulkInviteRequest struct {
	Rows []InviteRow `json:"rows" binding:"required,min=1"`
}

// TokenPair is the session material issued once the state machine reaches
// Authenticated.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
