package repositories

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// RuleReader defines read operations for categorization rule data
type RuleReader interface {
	// FindRuleByID retrieves a specific rule.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.CategorizationRule, error)

	// ListRulesByUser retrieves all of a user's rules ordered by priority.
	ListRulesByUser(ctx context.Context, userID string) ([]domain.CategorizationRule, error)

	// ListActiveRulesByUser retrieves a user's active rules ordered by priority.
	// This is what the rule strategy is built from on each pipeline run.
	ListActiveRulesByUser(ctx context.Context, userID string) ([]domain.CategorizationRule, error)

	// FindRuleByPriority retrieves the rule holding a priority slot for a user,
	// used to enforce priority uniqueness per owner.
	FindRuleByPriority(ctx context.Context, userID string, priority int) (*domain.CategorizationRule, error)
}

// RuleWriter defines write operations for categorization rule data
type RuleWriter interface {
	// SaveRule persists a new rule.
	SaveRule(ctx context.Context, rule domain.CategorizationRule) error

	// UpdateRule updates an existing rule.
	UpdateRule(ctx context.Context, rule domain.CategorizationRule) error

	// DeleteRule removes a rule.
	DeleteRule(ctx context.Context, ruleID string) error
}

// RuleRepositoryFacade combines all rule-related repository interfaces
type RuleRepositoryFacade interface {
	RuleReader
	RuleWriter
}
