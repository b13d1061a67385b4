package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/utils/metrics"
)

// InviteAgent records one invitation from an insurer. Duplicate pairs
// surface the storage conflict as ErrDuplicateInvite.
func (s *AuthService) InviteAgent(ctx context.Context, insurerID uuid.UUID, req models.InviteAgentRequest) error {
	email := normalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domainErrors.ErrInvalidRequest
	}

	invite := &models.InviteRecord{
		ID:        uuid.New(),
		InsurerID: insurerID,
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		metrics.InviteRegistrationsTotal.WithLabelValues("failure").Inc()
		return err
	}

	s.publish(ctx, models.EventAgentInvitedV1, insurerID.String(), models.AgentInvitedPayload{
		InsurerID: insurerID.String(),
		Email:     email,
		InvitedAt: s.clock.Now().UTC(),
	})
	metrics.InviteRegistrationsTotal.WithLabelValues("success").Inc()
	return nil
}

// BulkInviteAgents processes already-parsed rows best-effort: every row gets
// its own attempt and a failed row never stops the remaining ones. Only a
// dead context aborts the loop. Returns the number of rows that registered.
func (s *AuthService) BulkInviteAgents(ctx context.Context, insurerID uuid.UUID, rows []models.InviteRow) (int, error) {
	succeeded := 0
	for _, row := range rows {
		err := s.InviteAgent(ctx, insurerID, models.InviteAgentRequest{Name: row.Name, Email: row.Email})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return succeeded, err
			}
			s.logger.Warn("skipping invite row",
				zap.String("insurer_id", insurerID.String()),
				zap.String("email", row.Email),
				zap.Error(err),
			)
			continue
		}
		succeeded++
	}
	return succeeded, nil
}

// ListInvites returns the insurer's full invite history, retained for audit
// after agents register.
func (s *AuthService) ListInvites(ctx context.Context, insurerID uuid.UUID) ([]models.InviteRecord, error) {
	return s.inviteRepo.ListByInsurer(ctx, insurerID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
