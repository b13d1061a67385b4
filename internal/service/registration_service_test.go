package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

func (s *AuthServiceTestSuite) expectWelcomeOTP(email string) {
	s.principalRepo.On("SetOTP", mock.Anything, mock.Anything, mock.AnythingOfType("string"), s.clock.now).Return(nil).Once()
	s.mailer.On("Send", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), []string{email}).Return(nil).Once()
	s.publisher.On("Publish", mock.Anything, models.EventOTPIssuedV1, mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()
}

func (s *AuthServiceTestSuite) TestRegisterAgent_InvitedEmail() {
	ctx := context.Background()
	insurer := s.activePrincipal(models.RoleInsurer)
	insurer.BusinessID = "UNYTE-INS-ACME-RC1"

	req := models.RegisterAgentRequest{
		Invite:      insurer.BusinessID,
		FirstName:   "Chidi",
		LastName:    "Okafor",
		Email:       "chidi@example.com",
		Password:    "s3cret-password",
		BankAccount: "0123456789",
	}

	s.principalRepo.On("FindByBusinessID", ctx, insurer.BusinessID).Return(insurer, nil).Once()
	s.inviteRepo.On("Exists", ctx, insurer.ID, req.Email).Return(true, nil).Once()
	s.passwords.On("HashPassword", req.Password).Return("hashed", nil).Once()
	s.principalRepo.On("Create", ctx, mock.AnythingOfType("*models.Principal")).Return(nil).Once()
	s.publisher.On("Publish", ctx, models.EventPrincipalRegisteredV1, mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()
	s.expectWelcomeOTP(req.Email)

	principal, err := s.authService.RegisterAgent(ctx, req)

	s.Require().NoError(err)
	s.Equal(models.RoleAgent, principal.Role)
	s.Equal("hashed", principal.PasswordHash)
	s.Equal("UNYTE-AGT-CHIDIOKAFOR-0123456789", principal.BusinessID)
	s.Require().NotNil(principal.SponsorID)
	s.Equal(insurer.ID, *principal.SponsorID)
	s.True(principal.Active)
	s.principalRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestRegisterAgent_UninvitedEmail() {
	ctx := context.Background()
	insurer := s.activePrincipal(models.RoleInsurer)

	s.principalRepo.On("FindByBusinessID", ctx, insurer.BusinessID).Return(insurer, nil).Once()
	s.inviteRepo.On("Exists", ctx, insurer.ID, "stranger@example.com").Return(false, nil).Once()

	_, err := s.authService.RegisterAgent(ctx, models.RegisterAgentRequest{
		Invite: insurer.BusinessID,
		Email:  "stranger@example.com",
	})

	s.ErrorIs(err, domainErrors.ErrUnauthorizedEmail)
	s.principalRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestRegisterAgent_UnknownInviteCode() {
	ctx := context.Background()

	s.principalRepo.On("FindByBusinessID", ctx, "UNYTE-INS-NOSUCH").Return(nil, domainErrors.ErrPrincipalNotFound).Once()

	_, err := s.authService.RegisterAgent(ctx, models.RegisterAgentRequest{Invite: "UNYTE-INS-NOSUCH", Email: "a@example.com"})

	s.ErrorIs(err, domainErrors.ErrInsurerNotFound)
}

func (s *AuthServiceTestSuite) TestRegisterAgent_InviteCodeBelongsToMerchant() {
	// A merchant's identifier must not work as an invite routing key.
	ctx := context.Background()
	merchant := s.activePrincipal(models.RoleMerchant)

	s.principalRepo.On("FindByBusinessID", ctx, merchant.BusinessID).Return(merchant, nil).Once()

	_, err := s.authService.RegisterAgent(ctx, models.RegisterAgentRequest{Invite: merchant.BusinessID, Email: "a@example.com"})

	s.ErrorIs(err, domainErrors.ErrInsurerNotFound)
	s.inviteRepo.AssertNotCalled(s.T(), "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestRegisterInsurer_IdentifierCollisionRetried() {
	ctx := context.Background()
	req := models.RegisterInsurerRequest{
		Email:              "ops@acme.example.com",
		Password:           "s3cret-password",
		BusinessName:       "Acme Insurance",
		RegistrationNumber: "RC123",
	}

	s.passwords.On("HashPassword", req.Password).Return("hashed", nil).Once()
	s.principalRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Principal) bool {
		return p.BusinessID == "UNYTE-INS-ACMEINSURANCE-RC123"
	})).Return(domainErrors.ErrIdentifierTaken).Once()
	s.principalRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Principal) bool {
		return p.BusinessID == "UNYTE-INS-ACMEINSURANCE-RC123-1"
	})).Return(nil).Once()
	s.publisher.On("Publish", ctx, models.EventPrincipalRegisteredV1, mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()
	s.expectWelcomeOTP(req.Email)

	principal, err := s.authService.RegisterInsurer(ctx, req)

	s.Require().NoError(err)
	s.Equal("UNYTE-INS-ACMEINSURANCE-RC123-1", principal.BusinessID)
	s.principalRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestRegisterMerchant_DuplicateEmailIsFinal() {
	ctx := context.Background()
	req := models.RegisterMerchantRequest{
		Email:              "shop@example.com",
		Password:           "s3cret-password",
		BusinessName:       "Corner Shop",
		RegistrationNumber: "BN42",
	}

	s.passwords.On("HashPassword", req.Password).Return("hashed", nil).Once()
	s.principalRepo.On("Create", ctx, mock.Anything).Return(domainErrors.ErrEmailExists).Once()

	_, err := s.authService.RegisterMerchant(ctx, req)

	s.ErrorIs(err, domainErrors.ErrEmailExists)
	// No retry loop for an email conflict: exactly one insert attempt.
	s.principalRepo.AssertNumberOfCalls(s.T(), "Create", 1)
	s.publisher.AssertNotCalled(s.T(), "Publish", mock.Anything, models.EventPrincipalRegisteredV1, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestRegisterMerchant_StoresNormalizedEmail() {
	// The lookups and the unique index are case-insensitive; the stored row
	// must carry the canonical form so Shop@Example.COM and shop@example.com
	// can never become two accounts.
	ctx := context.Background()
	req := models.RegisterMerchantRequest{
		Email:              " Shop@Example.COM ",
		Password:           "s3cret-password",
		BusinessName:       "Corner Shop",
		RegistrationNumber: "BN42",
	}

	s.passwords.On("HashPassword", req.Password).Return("hashed", nil).Once()
	s.principalRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Principal) bool {
		return p.Email == "shop@example.com"
	})).Return(nil).Once()
	s.publisher.On("Publish", ctx, models.EventPrincipalRegisteredV1, mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()
	s.expectWelcomeOTP("shop@example.com")

	principal, err := s.authService.RegisterMerchant(ctx, req)

	s.Require().NoError(err)
	s.Equal("shop@example.com", principal.Email)
	s.principalRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestRegisterMerchant_OTPFailureDoesNotFailRegistration() {
	ctx := context.Background()
	req := models.RegisterMerchantRequest{
		Email:              "shop@example.com",
		Password:           "s3cret-password",
		BusinessName:       "Corner Shop",
		RegistrationNumber: "BN42",
	}

	s.passwords.On("HashPassword", req.Password).Return("hashed", nil).Once()
	s.principalRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	s.publisher.On("Publish", ctx, models.EventPrincipalRegisteredV1, mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()
	s.principalRepo.On("SetOTP", mock.Anything, mock.Anything, mock.AnythingOfType("string"), s.clock.now).Return(nil).Once()
	s.mailer.On("Send", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), []string{req.Email}).Return(domainErrors.ErrMailDelivery).Once()

	principal, err := s.authService.RegisterMerchant(ctx, req)

	s.Require().NoError(err)
	s.Equal("UNYTE-MCH-CORNERSHOP-BN42", principal.BusinessID)
}
