package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/service"
)

// AuthHandler exposes login, OTP, reset and registration over HTTP.
type AuthHandler struct {
	logger      *zap.Logger
	authService *service.AuthService
}

func NewAuthHandler(logger *zap.Logger, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:      logger.Named("auth_handler"),
		authService: authService,
	}
}

// Login starts the password step; on success an OTP is mailed and the caller
// must follow up on /verify-otp.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	if err := h.authService.Login(c.Request.Context(), req); err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithMessage(c, http.StatusAccepted, "verification code sent")
}

// VerifyOTP completes the pending challenge and returns session tokens.
// POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	tokens, principal, err := h.authService.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{
		"tokens":    tokens,
		"principal": principal.ToResponse(),
	})
}

// ResendOTP re-issues a challenge, replacing any pending code.
// POST /api/v1/auth/resend-otp
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req models.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	if err := h.authService.ResendOTP(c.Request.Context(), req); err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithMessage(c, http.StatusAccepted, "verification code sent")
}

// ForgotPassword mails a reset link. Always 202 regardless of whether the
// email exists.
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req); err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithMessage(c, http.StatusAccepted, "if the account exists, a reset link has been sent")
}

// ResetPassword completes the stateless reset flow.
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req); err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithMessage(c, http.StatusOK, "password updated")
}

// RegisterAgent is invite-gated agent self-registration.
// POST /api/v1/auth/register/agent
func (h *AuthHandler) RegisterAgent(c *gin.Context) {
	var req models.RegisterAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	principal, err := h.authService.RegisterAgent(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusCreated, gin.H{
		"message":   "account created; check your email for a verification code",
		"principal": principal.ToResponse(),
	})
}

// RegisterMerchant is open merchant self-registration.
// POST /api/v1/auth/register/merchant
func (h *AuthHandler) RegisterMerchant(c *gin.Context) {
	var req models.RegisterMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	principal, err := h.authService.RegisterMerchant(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusCreated, gin.H{
		"message":   "account created; check your email for a verification code",
		"principal": principal.ToResponse(),
	})
}

// RegisterInsurer onboards an insurer.
// POST /api/v1/auth/register/insurer
func (h *AuthHandler) RegisterInsurer(c *gin.Context) {
	var req models.RegisterInsurerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	principal, err := h.authService.RegisterInsurer(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusCreated, gin.H{
		"message":   "account created; check your email for a verification code",
		"principal": principal.ToResponse(),
	})
}
