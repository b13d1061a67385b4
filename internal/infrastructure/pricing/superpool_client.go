package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/UnyteAfrica/unyte-backoffice/internal/config"
	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/interfaces"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/utils/metrics"
)

// Client is the thin proxy to the external pricing service. Requests carry a
// bounded timeout and are never retried; upstream failures surface as
// ErrPricingUpstream.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(cfg *config.PricingConfig, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Named("pricing_client"),
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/v1/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetQuote(ctx context.Context, req models.QuoteRequest) ([]models.Quote, error) {
	var quotes []models.Quote
	if err := c.do(ctx, http.MethodPost, "/api/v1/quotes", req, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (c *Client) SellPolicy(ctx context.Context, req models.SellPolicyRequest) (*models.PolicyConfirmation, error) {
	confirmation := &models.PolicyConfirmation{}
	if err := c.do(ctx, http.MethodPost, "/api/v1/policies", req, confirmation); err != nil {
		return nil, err
	}
	return confirmation, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	start := time.Now()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode pricing request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build pricing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.PricingRequestDuration.WithLabelValues(path, "error").Observe(time.Since(start).Seconds())
		c.logger.Error("pricing request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", domainErrors.ErrPricingUpstream, err)
	}
	defer resp.Body.Close()

	metrics.PricingRequestDuration.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("pricing request rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return fmt.Errorf("%w: upstream returned %d", domainErrors.ErrPricingUpstream, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", domainErrors.ErrPricingUpstream, err)
		}
	}
	return nil
}

var _ interfaces.PricingService = (*Client)(nil)
