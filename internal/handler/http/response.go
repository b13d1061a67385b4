package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
)

// ResponseError is the error body of every failed API call.
type ResponseError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RespondWithError logs and sends an error response.
func RespondWithError(c *gin.Context, statusCode int, message string, errorCode string, logger *zap.Logger) {
	logger.Warn("api error response",
		zap.Int("status_code", statusCode),
		zap.String("error_code", errorCode),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	)
	c.JSON(statusCode, ResponseError{Error: message, Code: errorCode})
}

// RespondWithValidationError sends a 400 for a failed request binding. When
// the failure comes from the validator, the body names each rejected field
// and the rule it broke; anything else (malformed JSON, wrong types) gets the
// generic payload message.
func RespondWithValidationError(c *gin.Context, err error, logger *zap.Logger) {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		RespondWithError(c, http.StatusBadRequest, "invalid request payload", "invalid_request", logger)
		return
	}

	fields := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
	}
	logger.Warn("request validation failed",
		zap.String("path", c.Request.URL.Path),
		zap.Any("fields", fields),
	)
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "invalid request payload",
		"code":   "invalid_request",
		"fields": fields,
	})
}

// RespondWithData sends a successful response with data only.
func RespondWithData(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// RespondWithMessage sends a successful response with a message only.
func RespondWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// respondDomainError maps a service error onto the wire using the taxonomy
// helpers. Every authentication failure collapses to the same generic 401 so
// the API cannot be used as an oracle for which check failed.
func respondDomainError(c *gin.Context, err error, logger *zap.Logger) {
	switch {
	case domainErrors.IsAuthentication(err):
		RespondWithError(c, http.StatusUnauthorized, "authentication failed", "authentication_failed", logger)
	case domainErrors.IsAuthorization(err):
		RespondWithError(c, http.StatusForbidden, err.Error(), "forbidden", logger)
	case domainErrors.IsNotFound(err):
		RespondWithError(c, http.StatusNotFound, err.Error(), "not_found", logger)
	case domainErrors.IsConflict(err):
		RespondWithError(c, http.StatusConflict, err.Error(), "conflict", logger)
	case errors.Is(err, domainErrors.ErrInvalidRequest):
		RespondWithError(c, http.StatusBadRequest, err.Error(), "invalid_request", logger)
	case errors.Is(err, domainErrors.ErrAccountInactive):
		RespondWithError(c, http.StatusForbidden, err.Error(), "account_inactive", logger)
	case domainErrors.IsDependency(err):
		logger.Error("dependency failure", zap.Error(err))
		RespondWithError(c, http.StatusBadGateway, "upstream dependency failed", "dependency_failed", logger)
	default:
		logger.Error("internal error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "internal server error", "internal", logger)
	}
}
