package categorization

import (
	"context"
	"sort"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// RuleStrategy evaluates the owner's user-defined categorization rules in
// ascending priority order. The first active rule whose pattern matches wins.
// The strategy is built per pipeline invocation from the owner's current rule
// set; it never caches across calls.
type RuleStrategy struct {
	rules []domain.CategorizationRule
}

// NewRuleStrategy creates a rule strategy over the given rule set. Inactive
// rules are discarded; the rest are ordered by priority (lower first).
func NewRuleStrategy(rules []domain.CategorizationRule) *RuleStrategy {
	active := make([]domain.CategorizationRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority < active[j].Priority
	})
	return &RuleStrategy{rules: active}
}

// Name implements Strategy.
func (s *RuleStrategy) Name() string { return "rules" }

// Categorize implements Strategy. A rule match yields High confidence.
func (s *RuleStrategy) Categorize(_ context.Context, txn *domain.Transaction) *Result {
	for _, rule := range s.rules {
		if rule.Matches(txn) {
			return &Result{
				CategoryID: rule.CategoryID,
				Confidence: domain.ConfidenceHigh,
				Method:     domain.MethodRule,
			}
		}
	}
	return nil
}
