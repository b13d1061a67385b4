package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/utils/metrics"
)

// Login runs the password step of the state machine. On success the account
// moves to OtpPending: a fresh passcode is stored atomically and mailed to
// the principal. The response never distinguishes a wrong password from an
// unknown email.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) error {
	allowed, rlErr := s.rateLimiter.Allow(ctx, "login:"+req.Email,
		s.cfg.Security.RateLimiting.LoginPerKey.Limit,
		s.cfg.Security.RateLimiting.LoginPerKey.Period)
	if rlErr != nil {
		s.logger.Error("rate limiter error", zap.Error(rlErr))
	}
	if !allowed {
		metrics.LoginAttemptsTotal.WithLabelValues("failure_rate_limit").Inc()
		return domainErrors.ErrForbidden
	}

	principal, err := s.principalRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPrincipalNotFound) {
			s.logger.Warn("login attempt for unknown email", zap.String("email", req.Email))
			s.publish(ctx, models.EventLoginFailedV1, "", models.LoginPayload{
				Email:     req.Email,
				Reason:    "principal_not_found",
				Timestamp: s.clock.Now().UTC(),
			})
			metrics.LoginAttemptsTotal.WithLabelValues("failure_not_found").Inc()
			return domainErrors.ErrInvalidCredentials
		}
		return err
	}

	if !principal.Active {
		metrics.LoginAttemptsTotal.WithLabelValues("failure_inactive").Inc()
		return domainErrors.ErrAccountInactive
	}

	ok, err := s.passwords.CheckPasswordHash(req.Password, principal.PasswordHash)
	if err != nil {
		return fmt.Errorf("password check failed: %w", err)
	}
	if !ok {
		s.publish(ctx, models.EventLoginFailedV1, principal.ID.String(), models.LoginPayload{
			PrincipalID: principal.ID.String(),
			Email:       principal.Email,
			Reason:      "invalid_password",
			Timestamp:   s.clock.Now().UTC(),
		})
		metrics.LoginAttemptsTotal.WithLabelValues("failure_invalid_password").Inc()
		return domainErrors.ErrInvalidCredentials
	}
	if err := s.issueOTP(ctx, principal); err != nil {
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("otp_pending").Inc()
	return nil
}

// issueOTP generates and persists a passcode in one atomic write, then mails
// it. The store write happens before the mail send: a code the principal
// never received is harmless, a mailed code that was never stored is a
// locked-out user.
func (s *AuthService) issueOTP(ctx context.Context, principal *models.Principal) error {
	code, issuedAt, err := s.otp.Generate()
	if err != nil {
		return err
	}

	if err := s.principalRepo.SetOTP(ctx, principal.ID, code, issuedAt); err != nil {
		return err
	}

	body := fmt.Sprintf("Hello %s,\n\nYour verification code is %s. It expires in 2 minutes.\n",
		principal.DisplayName(), code)
	if err := s.mailer.Send(ctx, otpMailSubject(principal.Role), body, []string{principal.Email}); err != nil {
		return err
	}

	s.publish(ctx, models.EventOTPIssuedV1, principal.ID.String(), models.LoginPayload{
		PrincipalID: principal.ID.String(),
		Email:       principal.Email,
		Timestamp:   issuedAt.UTC(),
	})
	metrics.OTPIssuedTotal.WithLabelValues(string(principal.Role)).Inc()
	return nil
}

// VerifyOTP completes a pending challenge. The pending code is cleared with
// a compare-and-clear store call before any session material is issued, so a
// verified code can never be replayed and a concurrent re-issue wins over a
// stale verification.
func (s *AuthService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.TokenPair, *models.Principal, error) {
	allowed, rlErr := s.rateLimiter.Allow(ctx, "otp:"+req.Email,
		s.cfg.Security.RateLimiting.OTPPerKey.Limit,
		s.cfg.Security.RateLimiting.OTPPerKey.Period)
	if rlErr != nil {
		s.logger.Error("rate limiter error", zap.Error(rlErr))
	}
	if !allowed {
		metrics.OTPVerificationsTotal.WithLabelValues("failure_rate_limit").Inc()
		return nil, nil, domainErrors.ErrForbidden
	}

	principal, err := s.principalRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPrincipalNotFound) {
			metrics.OTPVerificationsTotal.WithLabelValues("failure_not_found").Inc()
			return nil, nil, domainErrors.ErrNoPendingChallenge
		}
		return nil, nil, err
	}

	if err := s.otp.Verify(principal.Credential, req.Code, s.clock.Now()); err != nil {
		if errors.Is(err, domainErrors.ErrOTPExpired) {
			// The challenge is dead either way; drop it now instead of
			// leaving the stale code in the row until the next issue.
			if clearErr := s.principalRepo.ClearOTP(ctx, principal.ID, req.Code); clearErr != nil &&
				!errors.Is(clearErr, domainErrors.ErrNoPendingChallenge) {
				s.logger.Error("failed to clear expired otp", zap.Error(clearErr),
					zap.String("principal_id", principal.ID.String()))
			}
		}
		metrics.OTPVerificationsTotal.WithLabelValues("failure").Inc()
		return nil, nil, err
	}

	if err := s.principalRepo.ClearOTP(ctx, principal.ID, req.Code); err != nil {
		// The code was rotated or consumed between read and clear; the
		// challenge this request verified no longer exists.
		metrics.OTPVerificationsTotal.WithLabelValues("failure_raced").Inc()
		return nil, nil, err
	}

	if !principal.Verified {
		if err := s.principalRepo.MarkVerified(ctx, principal.ID); err != nil {
			s.logger.Error("failed to mark principal verified", zap.Error(err))
		}
	}

	accessToken, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.publish(ctx, models.EventLoginSucceededV1, principal.ID.String(), models.LoginPayload{
		PrincipalID: principal.ID.String(),
		Email:       principal.Email,
		Timestamp:   s.clock.Now().UTC(),
	})
	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()

	return &models.TokenPair{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL() / time.Second),
	}, principal, nil
}

// ResendOTP replaces any pending challenge with a fresh one. Unknown emails
// are acknowledged without action so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) ResendOTP(ctx context.Context, req models.ResendOTPRequest) error {
	allowed, rlErr := s.rateLimiter.Allow(ctx, "otp:"+req.Email,
		s.cfg.Security.RateLimiting.OTPPerKey.Limit,
		s.cfg.Security.RateLimiting.OTPPerKey.Period)
	if rlErr != nil {
		s.logger.Error("rate limiter error", zap.Error(rlErr))
	}
	if !allowed {
		return domainErrors.ErrForbidden
	}

	principal, err := s.principalRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPrincipalNotFound) {
			return nil
		}
		return err
	}
	return s.issueOTP(ctx, principal)
}
