package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

func (s *AuthServiceTestSuite) TestForgotPassword_MailsResetLink() {
	ctx := context.Background()
	principal := s.activePrincipal(models.RoleAgent)

	s.principalRepo.On("FindByEmail", ctx, principal.Email).Return(principal, nil).Once()
	s.mailer.On("Send", ctx, "Unyte: reset your password", mock.AnythingOfType("string"), []string{principal.Email}).Return(nil).Once()

	err := s.authService.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: principal.Email})

	s.Require().NoError(err)
	body := s.mailer.Calls[0].Arguments.String(2)
	s.Contains(body, "uid="+s.resetTokens.EncodeID(principal.ID))
	s.Contains(body, "token="+s.resetTokens.Issue(principal.ID, principal.PasswordHash))
}

func (s *AuthServiceTestSuite) TestForgotPassword_UnknownEmailIsSilent() {
	ctx := context.Background()

	s.principalRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, domainErrors.ErrPrincipalNotFound).Once()

	err := s.authService.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "ghost@example.com"})

	s.NoError(err)
	s.mailer.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestResetPassword_FullFlow() {
	ctx := context.Background()
	principal := s.activePrincipal(models.RoleMerchant)
	token := s.resetTokens.Issue(principal.ID, principal.PasswordHash)
	uid := s.resetTokens.EncodeID(principal.ID)

	s.principalRepo.On("FindByID", ctx, principal.ID).Return(principal, nil).Once()
	s.passwords.On("HashPassword", "new-password-123").Return("new-hash", nil).Once()
	s.principalRepo.On("UpdatePassword", ctx, principal.ID, "new-hash").Return(nil).Once()
	s.publisher.On("Publish", ctx, models.EventPasswordResetV1, principal.ID.String(), mock.Anything).Return(nil).Once()

	err := s.authService.ResetPassword(ctx, models.ResetPasswordRequest{
		UID:         uid,
		Token:       token,
		NewPassword: "new-password-123",
	})

	s.NoError(err)
	s.principalRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestResetPassword_TokenSpentByPasswordChange() {
	// The token digests the old hash; once the stored hash moved on, the
	// same token must not verify again.
	ctx := context.Background()
	principal := s.activePrincipal(models.RoleMerchant)
	token := s.resetTokens.Issue(principal.ID, principal.PasswordHash)
	uid := s.resetTokens.EncodeID(principal.ID)

	changed := *principal
	changed.PasswordHash = "already-rotated-hash"
	s.principalRepo.On("FindByID", ctx, principal.ID).Return(&changed, nil).Once()

	err := s.authService.ResetPassword(ctx, models.ResetPasswordRequest{
		UID:         uid,
		Token:       token,
		NewPassword: "new-password-123",
	})

	s.ErrorIs(err, domainErrors.ErrInvalidResetToken)
	s.principalRepo.AssertNotCalled(s.T(), "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestResetPassword_ExpiredToken() {
	ctx := context.Background()
	principal := s.activePrincipal(models.RoleAgent)
	token := s.resetTokens.Issue(principal.ID, principal.PasswordHash)
	uid := s.resetTokens.EncodeID(principal.ID)

	// Two full buckets later neither the current nor the previous bucket
	// matches the issue-time digest.
	s.clock.now = s.clock.now.Add(31 * time.Minute)
	s.principalRepo.On("FindByID", ctx, principal.ID).Return(principal, nil).Once()

	err := s.authService.ResetPassword(ctx, models.ResetPasswordRequest{
		UID:         uid,
		Token:       token,
		NewPassword: "new-password-123",
	})

	s.ErrorIs(err, domainErrors.ErrInvalidResetToken)
}

func (s *AuthServiceTestSuite) TestResetPassword_MalformedUID() {
	ctx := context.Background()

	err := s.authService.ResetPassword(ctx, models.ResetPasswordRequest{
		UID:         "%%not-base64%%",
		Token:       "whatever",
		NewPassword: "new-password-123",
	})

	s.ErrorIs(err, domainErrors.ErrTokenDecode)
	s.principalRepo.AssertNotCalled(s.T(), "FindByID", mock.Anything, mock.Anything)
}
