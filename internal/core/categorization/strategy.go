// Package categorization implements the multi-strategy, multi-stage pipeline
// that assigns a spending category to incoming transactions. Individual
// strategies attempt a categorization or explicitly decline; the chain
// composes them into an ordered fallback (rules -> AI -> manual) whose result
// is always total.
package categorization

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// Result is one categorization decision. A nil *Result from a strategy or
// handler means "no opinion": an explicit refusal to guess, distinct from a
// low-confidence guess.
type Result struct {
	CategoryID     string
	Confidence     domain.Confidence
	Method         domain.CategorizationMethod
	RequiresManual bool
}

// Strategy is the capability shared by all categorization approaches. Each
// call is independent; strategies hold configuration, not per-transaction
// state.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Categorize attempts to categorize the transaction. It returns nil to
	// decline. Strategies never fail: infrastructure errors (e.g. an
	// unreachable classification service) degrade to a declined attempt.
	Categorize(ctx context.Context, txn *domain.Transaction) *Result
}
