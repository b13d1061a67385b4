package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
)

const testResetSecret = "test-reset-secret"

func newResetService(t *testing.T, now time.Time) *ResetTokenService {
	t.Helper()
	svc, err := NewResetTokenService(testResetSecret, 15*time.Minute, fixedClock{now: now})
	require.NoError(t, err)
	return svc
}

func TestNewResetTokenService_MissingSecret(t *testing.T) {
	_, err := NewResetTokenService("", 15*time.Minute, nil)
	assert.Error(t, err)
}

func TestResetToken_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newResetService(t, now)
	id := uuid.New()

	token := svc.Issue(id, "hash-v1")
	assert.NoError(t, svc.Verify(id, "hash-v1", token))
}

func TestResetToken_InvalidatedByPasswordChange(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newResetService(t, now)
	id := uuid.New()

	token := svc.Issue(id, "hash-v1")
	err := svc.Verify(id, "hash-v2", token)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidResetToken)
}

func TestResetToken_WrongPrincipal(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newResetService(t, now)

	token := svc.Issue(uuid.New(), "hash-v1")
	err := svc.Verify(uuid.New(), "hash-v1", token)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidResetToken)
}

func TestResetToken_PreviousBucketAccepted(t *testing.T) {
	issueTime := time.Date(2025, 3, 1, 10, 14, 59, 0, time.UTC)
	verifyTime := time.Date(2025, 3, 1, 10, 16, 0, 0, time.UTC)
	id := uuid.New()

	token := newResetService(t, issueTime).Issue(id, "hash-v1")
	assert.NoError(t, newResetService(t, verifyTime).Verify(id, "hash-v1", token))
}

func TestResetToken_ExpiredAfterTwoBuckets(t *testing.T) {
	issueTime := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	verifyTime := issueTime.Add(31 * time.Minute)
	id := uuid.New()

	token := newResetService(t, issueTime).Issue(id, "hash-v1")
	err := newResetService(t, verifyTime).Verify(id, "hash-v1", token)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidResetToken)
}

func TestEncodeDecodeID_RoundTrip(t *testing.T) {
	svc := newResetService(t, time.Now())
	id := uuid.New()

	decoded, err := svc.DecodeID(svc.EncodeID(id))
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestDecodeID_Malformed(t *testing.T) {
	svc := newResetService(t, time.Now())

	tests := []struct {
		name    string
		encoded string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"base64 but not a uuid", "bm90LWEtdXVpZA"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DecodeID(tt.encoded)
			assert.ErrorIs(t, err, domainErrors.ErrTokenDecode)
		})
	}
}
