package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

func (s *AuthServiceTestSuite) TestInviteAgent_NormalizesEmail() {
	ctx := context.Background()
	insurerID := uuid.New()

	s.inviteRepo.On("Create", ctx, mock.MatchedBy(func(inv *models.InviteRecord) bool {
		return inv.InsurerID == insurerID && inv.Email == "agent@example.com" && inv.Name == "Ngozi Eze"
	})).Return(nil).Once()
	s.publisher.On("Publish", ctx, models.EventAgentInvitedV1, insurerID.String(), mock.Anything).Return(nil).Once()

	err := s.authService.InviteAgent(ctx, insurerID, models.InviteAgentRequest{
		Name:  "  Ngozi Eze ",
		Email: " Agent@Example.COM ",
	})

	s.NoError(err)
	s.inviteRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestInviteAgent_MalformedEmail() {
	ctx := context.Background()

	err := s.authService.InviteAgent(ctx, uuid.New(), models.InviteAgentRequest{Email: "not-an-address"})

	s.ErrorIs(err, domainErrors.ErrInvalidRequest)
	s.inviteRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestInviteAgent_Duplicate() {
	ctx := context.Background()
	insurerID := uuid.New()

	s.inviteRepo.On("Create", ctx, mock.Anything).Return(domainErrors.ErrDuplicateInvite).Once()

	err := s.authService.InviteAgent(ctx, insurerID, models.InviteAgentRequest{Email: "agent@example.com"})

	s.ErrorIs(err, domainErrors.ErrDuplicateInvite)
	s.publisher.AssertNotCalled(s.T(), "Publish", mock.Anything, models.EventAgentInvitedV1, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestBulkInviteAgents_SkipsBadRows() {
	ctx := context.Background()
	insurerID := uuid.New()
	rows := []models.InviteRow{
		{Name: "A", Email: "a@example.com"},
		{Name: "B", Email: "broken-address"},
		{Name: "C", Email: "c@example.com"},
	}

	s.inviteRepo.On("Create", ctx, mock.Anything).Return(nil).Twice()
	s.publisher.On("Publish", ctx, models.EventAgentInvitedV1, insurerID.String(), mock.Anything).Return(nil).Twice()

	succeeded, err := s.authService.BulkInviteAgents(ctx, insurerID, rows)

	s.NoError(err)
	s.Equal(2, succeeded)
	s.inviteRepo.AssertNumberOfCalls(s.T(), "Create", 2)
}

func (s *AuthServiceTestSuite) TestBulkInviteAgents_RowFailureDoesNotAbort() {
	// A storage failure on one row is that row's problem; the rows after it
	// still get their own attempt.
	ctx := context.Background()
	insurerID := uuid.New()
	rows := []models.InviteRow{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
		{Email: "c@example.com"},
	}

	s.inviteRepo.On("Create", ctx, mock.MatchedBy(func(inv *models.InviteRecord) bool {
		return inv.Email == "b@example.com"
	})).Return(errors.New("value too long for column")).Once()
	s.inviteRepo.On("Create", ctx, mock.Anything).Return(nil).Twice()
	s.publisher.On("Publish", ctx, models.EventAgentInvitedV1, insurerID.String(), mock.Anything).Return(nil).Twice()

	succeeded, err := s.authService.BulkInviteAgents(ctx, insurerID, rows)

	s.NoError(err)
	s.Equal(2, succeeded)
	s.inviteRepo.AssertNumberOfCalls(s.T(), "Create", 3)
}

func (s *AuthServiceTestSuite) TestBulkInviteAgents_CancelledContextAborts() {
	ctx := context.Background()
	insurerID := uuid.New()
	rows := []models.InviteRow{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
	}

	s.inviteRepo.On("Create", ctx, mock.Anything).Return(context.Canceled).Once()

	succeeded, err := s.authService.BulkInviteAgents(ctx, insurerID, rows)

	s.ErrorIs(err, context.Canceled)
	s.Equal(0, succeeded)
	s.inviteRepo.AssertNumberOfCalls(s.T(), "Create", 1)
}

func (s *AuthServiceTestSuite) TestListInvites() {
	ctx := context.Background()
	insurerID := uuid.New()
	records := []models.InviteRecord{
		{ID: uuid.New(), InsurerID: insurerID, Email: "a@example.com"},
		{ID: uuid.New(), InsurerID: insurerID, Email: "b@example.com"},
	}

	s.inviteRepo.On("ListByInsurer", ctx, insurerID).Return(records, nil).Once()

	got, err := s.authService.ListInvites(ctx, insurerID)

	s.NoError(err)
	s.Equal(records, got)
}
