package errors

import (
	"errors"
	"fmt"
)

var (
	// General errors.
	ErrInternal       = errors.New("internal server error")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrForbidden      = errors.New("access denied")
	ErrUnauthorized   = errors.New("not authorized")

	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoPendingChallenge = errors.New("no pending verification challenge")
	ErrIncorrectCode      = errors.New("incorrect verification code")
	ErrOTPExpired         = errors.New("verification code expired")
	ErrInvalidResetToken  = errors.New("invalid password reset token")
	ErrTokenDecode        = errors.New("malformed token encoding")

	// Principal errors.
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrEmailExists       = errors.New("email already in use")
	ErrAccountInactive   = errors.New("account is not active")

	// Authorization errors.
	ErrUnauthorizedEmail = errors.New("email is not on the insurer's invite list")
	ErrRoleMismatch      = errors.New("operation not permitted for this role")

	// Integrity errors.
	ErrDuplicateInvite = errors.New("invite already exists for this email")
	ErrIdentifierTaken = errors.New("business identifier already in use")
	ErrInsurerNotFound = errors.New("insurer not found")

	// Dependency errors.
	ErrMailDelivery    = errors.New("failed to deliver mail")
	ErrPricingUpstream = errors.New("pricing service request failed")
)

// AppError carries an application error together with the HTTP status and API
// code the transport layer should surface.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, statusCode int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
	}
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPrincipalNotFound) ||
		errors.Is(err, ErrInsurerNotFound)
}

// IsAuthentication reports whether err is an authentication failure. The HTTP
// layer collapses all of these into one generic rejection so callers cannot
// probe which check failed.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrNoPendingChallenge) ||
		errors.Is(err, ErrIncorrectCode) ||
		errors.Is(err, ErrOTPExpired) ||
		errors.Is(err, ErrInvalidResetToken) ||
		errors.Is(err, ErrTokenDecode)
}

// IsAuthorization reports whether err is an authorization failure.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrUnauthorizedEmail) ||
		errors.Is(err, ErrRoleMismatch)
}

// IsConflict reports whether err is an integrity conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrDuplicateInvite) ||
		errors.Is(err, ErrIdentifierTaken)
}

// IsDependency reports whether err originated in an external collaborator.
func IsDependency(err error) bool {
	return errors.Is(err, ErrMailDelivery) ||
		errors.Is(err, ErrPricingUpstream)
}
