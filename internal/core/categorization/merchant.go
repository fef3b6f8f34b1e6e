package categorization

import (
	"context"
	"strings"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// MerchantStrategy matches the transaction's merchant name exactly
// (case-insensitively) against a known merchant table.
type MerchantStrategy struct {
	merchants map[string]string // lower-cased merchant -> category id
}

// NewMerchantStrategy creates an empty merchant strategy.
func NewMerchantStrategy() *MerchantStrategy {
	return &MerchantStrategy{merchants: make(map[string]string)}
}

// Name implements Strategy.
func (s *MerchantStrategy) Name() string { return "merchant" }

// Add registers a merchant-to-category mapping.
func (s *MerchantStrategy) Add(merchant, categoryID string) {
	m := strings.ToLower(strings.TrimSpace(merchant))
	if m == "" {
		return
	}
	s.merchants[m] = categoryID
}

// Categorize implements Strategy. Exact matches yield High confidence;
// transactions without a merchant name always decline.
func (s *MerchantStrategy) Categorize(_ context.Context, txn *domain.Transaction) *Result {
	if txn.MerchantName == "" {
		return nil
	}
	categoryID, ok := s.merchants[strings.ToLower(txn.MerchantName)]
	if !ok {
		return nil
	}
	return &Result{
		CategoryID: categoryID,
		Confidence: domain.ConfidenceHigh,
		Method:     domain.MethodRule,
	}
}
