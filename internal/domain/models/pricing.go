package models

// Product is one insurance product in the upstream catalog.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	InsurerName string `json:"insurer_name"`
}

// QuoteRequest is forwarded verbatim to the pricing service; the back office
// only performs role gating on it.
type QuoteRequest struct {
	ProductID        string         `json:"product_id" binding:"required"`
	CustomerMetadata map[string]any `json:"customer_metadata" binding:"required"`
	InsuranceDetails map[string]any `json:"insurance_details" binding:"required"`
	CoveragePrefs    map[string]any `json:"coverage_preferences"`
}

// Quote is one priced option returned by the upstream.
type Quote struct {
	QuoteID  string  `json:"quote_id"`
	Premium  float64 `json:"premium"`
	Currency string  `json:"currency"`
	Insurer  string  `json:"insurer"`
}

// SellPolicyRequest commits a previously obtained quote.
type SellPolicyRequest struct {
	QuoteID          string         `json:"quote_id" binding:"required"`
	CustomerMetadata map[string]any `json:"customer_metadata" binding:"required"`
}

// PolicyConfirmation acknowledges a sold policy.
type PolicyConfirmation struct {
	PolicyNumber string `json:"policy_number"`
	Status       string `json:"status"`
}
