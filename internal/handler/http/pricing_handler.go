package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/interfaces"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

// PricingHandler is the thin proxy to the external pricing service. It adds
// nothing but the same role checks the auth core applies.
type PricingHandler struct {
	logger  *zap.Logger
	pricing interfaces.PricingService
}

func NewPricingHandler(logger *zap.Logger, pricing interfaces.PricingService) *PricingHandler {
	return &PricingHandler{
		logger:  logger.Named("pricing_handler"),
		pricing: pricing,
	}
}

// ListProducts forwards the catalog request.
// GET /api/v1/products
func (h *PricingHandler) ListProducts(c *gin.Context) {
	products, err := h.pricing.ListProducts(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{"products": products})
}

// GetQuote forwards a quote request.
// POST /api/v1/quotes
func (h *PricingHandler) GetQuote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	quotes, err := h.pricing.GetQuote(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{"quotes": quotes})
}

// SellPolicy forwards a policy sale.
// POST /api/v1/policies
func (h *PricingHandler) SellPolicy(c *gin.Context) {
	var req models.SellPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err, h.logger)
		return
	}

	confirmation, err := h.pricing.SellPolicy(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusCreated, confirmation)
}
