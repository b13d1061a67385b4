package interfaces

import (
	"context"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

// PricingService is the external quote/claims collaborator (the superpool).
// Calls carry bounded timeouts and are never retried here.
type PricingService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetQuote(ctx context.Context, req models.QuoteRequest) ([]models.Quote, error)
	SellPolicy(ctx context.Context, req models.SellPolicyRequest) (*models.PolicyConfirmation, error)
}
