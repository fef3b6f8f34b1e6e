package services

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// RuleSvcFacade manages user-defined categorization rules.
type RuleSvcFacade interface {
	// CreateRule validates and persists a new rule. Priorities are unique per
	// owner; a taken slot is rejected as a duplicate.
	CreateRule(ctx context.Context, userID string, req dto.CreateRuleRequest) (*domain.CategorizationRule, error)

	// UpdateRule validates and applies changes to an existing rule.
	UpdateRule(ctx context.Context, userID string, ruleID string, req dto.UpdateRuleRequest) (*domain.CategorizationRule, error)

	// DeleteRule removes a rule.
	DeleteRule(ctx context.Context, userID string, ruleID string) error

	// ListRules retrieves all of the user's rules ordered by priority.
	ListRules(ctx context.Context, userID string) ([]domain.CategorizationRule, error)
}
