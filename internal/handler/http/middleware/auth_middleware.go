package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/infrastructure/security"
)

const (
	authHeaderKey  = "Authorization"
	authTypeBearer = "bearer"

	// GinContextClaimsKey holds the parsed AccessClaims for downstream
	// handlers.
	GinContextClaimsKey = "claims"
)

// Auth validates the bearer token and stores its claims in the request
// context.
func Auth(tokens *security.TokenManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != authTypeBearer {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header format must be Bearer <token>"})
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			logger.Warn("invalid access token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(GinContextClaimsKey, claims)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. The role comes from
// the single discriminant claim, the same check the auth core uses.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "operation not permitted for this role"})
	}
}

// Claims retrieves the AccessClaims stored by Auth.
func Claims(c *gin.Context) (*security.AccessClaims, bool) {
	value, exists := c.Get(GinContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*security.AccessClaims)
	return claims, ok
}
