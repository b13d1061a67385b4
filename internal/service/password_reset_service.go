package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/utils/metrics"
)

// ForgotPassword issues a stateless reset token and mails the reset link.
// Nothing is persisted: the token is a digest over the principal's current
// password hash, so completing a reset (or any password change) invalidates
// every outstanding token. Unknown emails are acknowledged without action.
func (s *AuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	principal, err := s.principalRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPrincipalNotFound) {
			metrics.PasswordResetRequestsTotal.WithLabelValues("request", "unknown_email").Inc()
			return nil
		}
		return err
	}

	token := s.resetTokens.Issue(principal.ID, principal.PasswordHash)
	uid := s.resetTokens.EncodeID(principal.ID)

	body := fmt.Sprintf(
		"Hello %s,\n\nUse the link below to choose a new password:\n\n"+
			"https://backoffice.unyte.africa/reset-password?uid=%s&token=%s\n\n"+
			"If you did not request this, no action is needed.\n",
		principal.DisplayName(), uid, token)

	if err := s.mailer.Send(ctx, "Unyte: reset your password", body, []string{principal.Email}); err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("request", "mail_failure").Inc()
		return err
	}

	metrics.PasswordResetRequestsTotal.WithLabelValues("request", "success").Inc()
	return nil
}

// ResetPassword verifies the (uid, token) pair against the principal's
// current password hash and installs the new password. The token is bound to
// the old hash, so it is spent the moment the update lands.
func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	id, err := s.resetTokens.DecodeID(req.UID)
	if err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("reset", "decode_failure").Inc()
		return err
	}

	principal, err := s.principalRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPrincipalNotFound) {
			metrics.PasswordResetRequestsTotal.WithLabelValues("reset", "not_found").Inc()
		}
		return err
	}

	if err := s.resetTokens.Verify(principal.ID, principal.PasswordHash, req.Token); err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("reset", "invalid_token").Inc()
		return err
	}

	newHash, err := s.passwords.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.principalRepo.UpdatePassword(ctx, principal.ID, newHash); err != nil {
		return err
	}

	s.publish(ctx, models.EventPasswordResetV1, principal.ID.String(), models.PasswordResetPayload{
		PrincipalID: principal.ID.String(),
		ResetAt:     s.clock.Now().UTC(),
	})
	s.logger.Info("password reset completed", zap.String("principal_id", principal.ID.String()))
	metrics.PasswordResetRequestsTotal.WithLabelValues("reset", "success").Inc()
	return nil
}
