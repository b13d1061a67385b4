package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

type MockPrincipalRepository struct {
	mock.Mock
}

func (m *MockPrincipalRepository) Create(ctx context.Context, p *models.Principal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPrincipalRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Principal, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPrincipalRepository) FindByEmail(ctx context.Context, email string) (*models.Principal, error) {
	args := m.Called(ctx, email)
	if p := args.Get(0); p != nil {
		return p.(*models.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPrincipalRepository) FindByBusinessID(ctx context.Context, businessID string) (*models.Principal, error) {
	args := m.Called(ctx, businessID)
	if p := args.Get(0); p != nil {
		return p.(*models.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPrincipalRepository) SetOTP(ctx context.Context, id uuid.UUID, code string, issuedAt time.Time) error {
	args := m.Called(ctx, id, code, issuedAt)
	return args.Error(0)
}

func (m *MockPrincipalRepository) ClearOTP(ctx context.Context, id uuid.UUID, code string) error {
	args := m.Called(ctx, id, code)
	return args.Error(0)
}

func (m *MockPrincipalRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockPrincipalRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) Create(ctx context.Context, invite *models.InviteRecord) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

func (m *MockInviteRepository) Exists(ctx context.Context, insurerID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, insurerID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockInviteRepository) ListByInsurer(ctx context.Context, insurerID uuid.UUID) ([]models.InviteRecord, error) {
	args := m.Called(ctx, insurerID)
	if invites := args.Get(0); invites != nil {
		return invites.([]models.InviteRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	args := m.Called(ctx, subject, body, recipients)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, subject string, payload any) error {
	args := m.Called(ctx, eventType, subject, payload)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string, limit int, period time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, period)
	return args.Bool(0), args.Error(1)
}

type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) CheckPasswordHash(password, encodedHash string) (bool, error) {
	args := m.Called(password, encodedHash)
	return args.Bool(0), args.Error(1)
}
