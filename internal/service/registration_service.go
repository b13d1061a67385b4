package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	domainService "github.com/UnyteAfrica/unyte-backoffice/internal/domain/service"
	"github.com/UnyteAfrica/unyte-backoffice/internal/utils/metrics"
)

// How many disambiguation suffixes to try before giving up on a business
// identifier.
const maxIdentifierAttempts = 5

// RegisterAgent completes invite-gated agent self-registration. The invite
// parameter is the sponsoring insurer's business identifier from the invite
// link; the submitted email must appear on that insurer's invite list before
// any account is created.
func (s *AuthService) RegisterAgent(ctx context.Context, req models.RegisterAgentRequest) (*models.Principal, error) {
	insurer, err := s.principalRepo.FindByBusinessID(ctx, req.Invite)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPrincipalNotFound) {
			metrics.RegistrationAttemptsTotal.WithLabelValues(string(models.RoleAgent), "failure_unknown_insurer").Inc()
			return nil, domainErrors.ErrInsurerNotFound
		}
		return nil, err
	}
	if insurer.Role != models.RoleInsurer {
		metrics.RegistrationAttemptsTotal.WithLabelValues(string(models.RoleAgent), "failure_not_insurer").Inc()
		return nil, domainErrors.ErrInsurerNotFound
	}

	invited, err := s.inviteRepo.Exists(ctx, insurer.ID, req.Email)
	if err != nil {
		return nil, err
	}
	if !invited {
		s.logger.Warn("agent registration with uninvited email",
			zap.String("insurer_id", insurer.ID.String()),
			zap.String("email", req.Email),
		)
		metrics.RegistrationAttemptsTotal.WithLabelValues(string(models.RoleAgent), "failure_uninvited").Inc()
		return nil, domainErrors.ErrUnauthorizedEmail
	}

	sponsorID := insurer.ID
	principal := &models.Principal{
		ID:        uuid.New(),
		Email:     req.Email,
		Role:      models.RoleAgent,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		SponsorID: &sponsorID,
		Active:    true,
	}
	baseID := domainService.GenerateBusinessID(domainService.AgentIDPrefix,
		req.FirstName+req.LastName, req.BankAccount)

	if err := s.createPrincipal(ctx, principal, req.Password, baseID); err != nil {
		metrics.RegistrationAttemptsTotal.WithLabelValues(string(models.RoleAgent), "failure").Inc()
		return nil, err
	}

	if err := s.issueOTP(ctx, principal); err != nil {
		// The account exists; the agent can request a fresh code.
		s.logger.Error("failed to issue post-registration otp", zap.Error(err),
			zap.String("principal_id", principal.ID.String()))
	}

	metrics.RegistrationAttemptsTotal.WithLabelValues(string(models.RoleAgent), "success").Inc()
	return principal, nil
}

// RegisterMerchant is merchant self-registration; no invite gate applies.
func (s *AuthService) RegisterMerchant(ctx context.Context, req models.RegisterMerchantRequest) (*models.Principal, error) {
	principal := &models.Principal{
		ID:           uuid.New(),
		Email:        req.Email,
		Role:         models.RoleMerchant,
		BusinessName: req.BusinessName,
		Active:       true,
	}
	baseID := domainService.GenerateBusinessID(domainService.MerchantIDPrefix,
		req.BusinessName, req.RegistrationNumber)

	if err := s.createPrincipal(ctx, principal, req.Password, baseID); err != nil {
		metrics.RegistrationAttemptsTotal.WithLabelValues(string(models.RoleMerchant), "failure").Inc()
		return nil, err
	}

	if err := s.issueOTP(ctx, principal); err != nil {
		s.logger.Error("failed to issue post-registration otp", zap.Error(err),
			zap.String("principal_id", principal.ID.String()))
	}

	metrics.RegistrationAttemptsTotal.WithLabelValues(string(models.RoleMerchant), "success").Inc()
	return principal, nil
}

// RegisterInsurer onboards an insurer; its business identifier becomes the
// invite-link routing key agents register through.
func (s *AuthService) RegisterInsurer(ctx context.Context, req models.RegisterInsurerRequest) (*models.Principal, error) {
	principal := &models.Principal{
		ID:           uuid.New(),
		Email:        req.Email,
		Role:         models.RoleInsurer,
		BusinessName: req.BusinessName,
		Active:       true,
	}
	baseID := domainService.GenerateBusinessID(domainService.InsurerIDPrefix,
		req.BusinessName, req.RegistrationNumber)

	if err := s.createPrincipal(ctx, principal, req.Password, baseID); err != nil {
		metrics.RegistrationAttemptsTotal.WithLabelValues(string(models.RoleInsurer), "failure").Inc()
		return nil, err
	}

	if err := s.issueOTP(ctx, principal); err != nil {
		s.logger.Error("failed to issue post-registration otp", zap.Error(err),
			zap.String("principal_id", principal.ID.String()))
	}

	metrics.RegistrationAttemptsTotal.WithLabelValues(string(models.RoleInsurer), "success").Inc()
	return principal, nil
}

// createPrincipal hashes the password, assigns the business identifier and
// inserts the row. The email is normalized before insert so the stored value
// is the same one the case-insensitive lookups and the lower(email) unique
// index operate on. Identifier collisions are detected by the storage unique
// constraint and retried with a disambiguating suffix; an email conflict is
// final.
func (s *AuthService) createPrincipal(ctx context.Context, principal *models.Principal, password, baseID string) error {
	principal.Email = normalizeEmail(principal.Email)

	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	principal.PasswordHash = hash

	principal.BusinessID = baseID
	for attempt := 1; ; attempt++ {
		err := s.principalRepo.Create(ctx, principal)
		if err == nil {
			break
		}
		if errors.Is(err, domainErrors.ErrIdentifierTaken) && attempt < maxIdentifierAttempts {
			principal.BusinessID = domainService.DisambiguateBusinessID(baseID, attempt)
			continue
		}
		return err
	}

	s.publish(ctx, models.EventPrincipalRegisteredV1, principal.ID.String(), models.PrincipalRegisteredPayload{
		PrincipalID:  principal.ID.String(),
		Email:        principal.Email,
		Role:         principal.Role,
		BusinessID:   principal.BusinessID,
		RegisteredAt: s.clock.Now().UTC(),
	})
	return nil
}
