package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
)

// ResetTokenService issues and checks stateless password-reset tokens. A
// token is a keyed digest over (principal id, current password hash, coarse
// time bucket); nothing is persisted. Changing the password changes the hash
// and thereby invalidates every outstanding token, which is the single-use
// mechanism.
type ResetTokenService struct {
	secret []byte
	bucket time.Duration
	clock  Clock
}

// NewResetTokenService fails fast on a missing secret; running without one is
// a misconfiguration, not a per-request error.
func NewResetTokenService(secret string, bucket time.Duration, clock Clock) (*ResetTokenService, error) {
	if secret == "" {
		return nil, errors.New("reset token secret is not configured")
	}
	if bucket <= 0 {
		bucket = 15 * time.Minute
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &ResetTokenService{secret: []byte(secret), bucket: bucket, clock: clock}, nil
}

// EncodeID returns the reversible uid companion carried alongside the token.
// It is addressing, not authorization.
func (s *ResetTokenService) EncodeID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

// DecodeID reverses EncodeID.
func (s *ResetTokenService) DecodeID(encoded string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return uuid.Nil, domainErrors.ErrTokenDecode
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, domainErrors.ErrTokenDecode
	}
	return id, nil
}

// Issue produces a token bound to the principal's current password hash and
// the current time bucket.
func (s *ResetTokenService) Issue(id uuid.UUID, passwordHash string) string {
	return s.digest(id, passwordHash, s.currentBucket())
}

// Verify recomputes the digest for the current and the previous bucket, so a
// token issued just before a boundary stays usable for at least one full
// bucket. A password change between issue and verify makes every recompute
// miss.
func (s *ResetTokenService) Verify(id uuid.UUID, passwordHash, token string) error {
	current := s.currentBucket()
	for _, b := range []uint64{current, current - 1} {
		if hmac.Equal([]byte(token), []byte(s.digest(id, passwordHash, b))) {
			return nil
		}
	}
	return domainErrors.ErrInvalidResetToken
}

func (s *ResetTokenService) currentBucket() uint64 {
	return uint64(s.clock.Now().Unix()) / uint64(s.bucket/time.Second)
}

func (s *ResetTokenService) digest(id uuid.UUID, passwordHash string, bucket uint64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id.String()))
	mac.Write([]byte{0})
	mac.Write([]byte(passwordHash))
	mac.Write([]byte{0})
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], bucket)
	mac.Write(buf[:])
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
