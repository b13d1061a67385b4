package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/UnyteAfrica/unyte-backoffice/internal/config"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/interfaces"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/repository"
	domainService "github.com/UnyteAfrica/unyte-backoffice/internal/domain/service"
	"github.com/UnyteAfrica/unyte-backoffice/internal/events/kafka"
	"github.com/UnyteAfrica/unyte-backoffice/internal/infrastructure/security"
)

// RateLimiter throttles credential operations per identity key.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, period time.Duration) (bool, error)
}

// AuthService carries every login, OTP, reset, registration and invite flow.
// All collaborators are injected at startup; there is no ambient global
// state.
type AuthService struct {
	cfg           *config.Config
	logger        *zap.Logger
	principalRepo repository.PrincipalRepository
	inviteRepo    repository.InviteRepository
	otp           *domainService.OTPService
	resetTokens   *domainService.ResetTokenService
	passwords     domainService.PasswordService
	tokens        *security.TokenManager
	mailer        interfaces.Mailer
	publisher     kafka.Publisher
	rateLimiter   RateLimiter
	clock         domainService.Clock
}

// AuthServiceDeps lists the collaborators AuthService needs.
type AuthServiceDeps struct {
	Config        *config.Config
	Logger        *zap.Logger
	PrincipalRepo repository.PrincipalRepository
	InviteRepo    repository.InviteRepository
	OTP           *domainService.OTPService
	ResetTokens   *domainService.ResetTokenService
	Passwords     domainService.PasswordService
	Tokens        *security.TokenManager
	Mailer        interfaces.Mailer
	Publisher     kafka.Publisher
	RateLimiter   RateLimiter
	Clock         domainService.Clock
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	clock := deps.Clock
	if clock == nil {
		clock = domainService.SystemClock()
	}
	return &AuthService{
		cfg:           deps.Config,
		logger:        deps.Logger.Named("auth_service"),
		principalRepo: deps.PrincipalRepo,
		inviteRepo:    deps.InviteRepo,
		otp:           deps.OTP,
		resetTokens:   deps.ResetTokens,
		passwords:     deps.Passwords,
		tokens:        deps.Tokens,
		mailer:        deps.Mailer,
		publisher:     deps.Publisher,
		rateLimiter:   deps.RateLimiter,
		clock:         clock,
	}
}

// Login flows move through four states: Unauthenticated, PasswordVerified
// (credentials matched), OtpPending (challenge stored and mailed) and
// Authenticated (challenge consumed, session token issued). Progress is
// strictly forward and any failed step returns the caller to
// Unauthenticated; no partial session material survives a failure.

// publish sends an event and logs failures without affecting the calling
// flow; event delivery is observability, not correctness.
func (s *AuthService) publish(ctx context.Context, eventType, subject string, payload any) {
	if err := s.publisher.Publish(ctx, eventType, subject, payload); err != nil {
		s.logger.Error("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

// otpMailSubject picks the role-specific wording of the verification mail.
func otpMailSubject(role models.Role) string {
	switch role {
	case models.RoleInsurer:
		return "Unyte: your insurer portal verification code"
	case models.RoleMerchant:
		return "Unyte: your merchant portal verification code"
	default:
		return "Unyte: your agent verification code"
	}
}
