package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
)

// AccessClaims is the payload of an issued session token. The single Role
// claim mirrors the account discriminant so downstream authorization checks
// never re-derive the role from flags.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// TokenManager issues and parses HS256 session tokens after a completed OTP
// challenge.
type TokenManager struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

func NewTokenManager(secret, issuer string, tokenTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret is not configured")
	}
	return &TokenManager{secret: []byte(secret), issuer: issuer, tokenTTL: tokenTTL}, nil
}

// TTL returns the configured access-token lifetime.
func (tm *TokenManager) TTL() time.Duration { return tm.tokenTTL }

// Issue signs a session token for an authenticated principal.
func (tm *TokenManager) Issue(p *models.Principal) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID.String(),
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.tokenTTL)),
			ID:        uuid.NewString(),
		},
		Email: p.Email,
		Role:  p.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Parse validates a session token and returns its claims.
func (tm *TokenManager) Parse(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := models.ParseRole(string(claims.Role)); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
