package categorization

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// Handler is one stage of the categorization chain. Process returns nil to
// delegate to the next stage.
type Handler interface {
	// Name identifies the handler in logs.
	Name() string

	// Process attempts to categorize the transaction, or returns nil to pass
	// the transaction to the next handler.
	Process(ctx context.Context, txn *domain.Transaction) *Result
}

// RuleBasedHandler is the first chain stage. It tries its strategies in the
// fixed order they were supplied (rule set, then keywords, then merchants in
// the default chain) and returns the first non-declined result.
type RuleBasedHandler struct {
	strategies []Strategy
}

// NewRuleBasedHandler creates a rule-based handler over the given strategies.
func NewRuleBasedHandler(strategies ...Strategy) *RuleBasedHandler {
	return &RuleBasedHandler{strategies: strategies}
}

// Name implements Handler.
func (h *RuleBasedHandler) Name() string { return "rule_based" }

// Process implements Handler.
func (h *RuleBasedHandler) Process(ctx context.Context, txn *domain.Transaction) *Result {
	for _, s := range h.strategies {
		if result := s.Categorize(ctx, txn); result != nil {
			return result
		}
	}
	return nil
}

// AIHandler is the second chain stage, wrapping the AI strategy.
type AIHandler struct {
	strategy Strategy
}

// NewAIHandler creates an AI handler over the given strategy.
func NewAIHandler(strategy Strategy) *AIHandler {
	return &AIHandler{strategy: strategy}
}

// Name implements Handler.
func (h *AIHandler) Name() string { return "ai" }

// Process implements Handler.
func (h *AIHandler) Process(ctx context.Context, txn *domain.Transaction) *Result {
	if h.strategy == nil {
		return nil
	}
	return h.strategy.Categorize(ctx, txn)
}

// ManualHandler is the terminal stage. It never declines: transactions no
// earlier stage could categorize come back uncategorized at Low confidence
// with the manual flag set, so imports never block on categorization.
type ManualHandler struct{}

// Name implements Handler.
func (h *ManualHandler) Name() string { return "manual" }

// Process implements Handler.
func (h *ManualHandler) Process(_ context.Context, _ *domain.Transaction) *Result {
	return manualResult()
}

func manualResult() *Result {
	return &Result{
		Confidence:     domain.ConfidenceLow,
		Method:         domain.MethodManual,
		RequiresManual: true,
	}
}

// Chain is the ordered fallback composition of handlers. It is deliberately a
// flat list evaluated in a loop rather than a linked next-pointer structure.
type Chain struct {
	handlers []Handler
}

// NewChain composes handlers in the given order.
func NewChain(handlers ...Handler) *Chain {
	return &Chain{handlers: handlers}
}

// NewDefaultChain builds the standard rules -> AI -> manual chain.
func NewDefaultChain(ruleStrategies []Strategy, ai Strategy) *Chain {
	return NewChain(
		NewRuleBasedHandler(ruleStrategies...),
		NewAIHandler(ai),
		&ManualHandler{},
	)
}

// Handle resolves exactly one categorization decision for the transaction.
// It is total: if every handler declines (which cannot happen when the chain
// ends with ManualHandler, but could with a custom composition) it still
// returns the manual-required result.
func (c *Chain) Handle(ctx context.Context, txn *domain.Transaction) *Result {
	for _, h := range c.handlers {
		if result := h.Process(ctx, txn); result != nil {
			return result
		}
	}
	return manualResult()
}
