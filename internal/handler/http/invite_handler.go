package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/handler/http/middleware"
	"github.com/UnyteAfrica/unyte-backoffice/internal/service"
)

// InviteHandler exposes the insurer's invite operations. Routes using it sit
// behind the insurer role guard; the insurer id comes from the token, never
// from the request body.
type InviteHandler struct {
	logger      *zap.Logger
	authService *service.AuthService
}

func NewInviteHandler(logger *zap.Logger, authService *service.AuthService) *InviteHandler {
	return &InviteHandler{
		logger:      logger.Named("invite_handler"),
		authService: authService,
	}
}

func (h *InviteHandler) insurerID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := middleware.Claims(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "not authenticated", "unauthorized", h.logger)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		RespondWithError(c, http.StatusUnauthorized, "invalid token subject", "unauthorized", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// InviteAgent records a single invitation.
// POST /api/v1/invites
func (h *InviteHandler) InviteAgent(c *gin.Context) {
	insurerID, ok := h.insurerID(c)
	if !ok {
		return
	}

	var req models.InviteAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	if err := h.authService.InviteAgent(c.Request.Context(), insurerID, req); err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithMessage(c, http.StatusCreated, "invite recorded")
}

// BulkInvite records many invitations best-effort and reports the count of
// rows that landed.
// POST /api/v1/invites/bulk
func (h *InviteHandler) BulkInvite(c *gin.Context) {
	insurerID, ok := h.insurerID(c)
	if !ok {
		return
	}

	var req models.BulkInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	succeeded, err := h.authService.BulkInviteAgents(c.Request.Context(), insurerID, req.Rows)
	if err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{
		"submitted": len(req.Rows),
		"succeeded": succeeded,
	})
}

// ListInvites returns the insurer's invite history.
// GET /api/v1/invites
func (h *InviteHandler) ListInvites(c *gin.Context) {
	insurerID, ok := h.insurerID(c)
	if !ok {
		return
	}

	invites, err := h.authService.ListInvites(c.Request.Context(), insurerID)
	if err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{"invites": invites})
}
