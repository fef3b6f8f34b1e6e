package dto

import (
	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// CreateRuleRequest defines the data needed to create a categorization rule.
// Pattern is interpreted per kind: a description substring for KEYWORD, an
// exact merchant name for MERCHANT, or "min:max" bounds for AMOUNT_RANGE.
type CreateRuleRequest struct {
	Name       string          `json:"name" binding:"required"`
	Kind       domain.RuleKind `json:"kind" binding:"required,oneof=KEYWORD MERCHANT AMOUNT_RANGE"`
	Pattern    string          `json:"pattern" binding:"required"`
	CategoryID string          `json:"categoryID" binding:"required"`
	Priority   int             `json:"priority" binding:"required"`
	IsActive   *bool           `json:"isActive"` // Defaults to true
}

// UpdateRuleRequest defines the fields that may change on a rule.
type UpdateRuleRequest struct {
	Name     *string `json:"name"`
	Pattern  *string `json:"pattern"`
	Priority *int    `json:"priority"`
	IsActive *bool   `json:"isActive"`
}

// RuleResponse defines the data returned for a rule.
type RuleResponse struct {
	RuleID     string          `json:"ruleID"`
	Name       string          `json:"name"`
	Kind       domain.RuleKind `json:"kind"`
	Pattern    string          `json:"pattern"`
	CategoryID string          `json:"categoryID"`
	Priority   int             `json:"priority"`
	IsActive   bool            `json:"isActive"`
}

// ToRuleResponse converts a domain.CategorizationRule to its response DTO
func ToRuleResponse(r *domain.CategorizationRule) RuleResponse {
	return RuleResponse{
		RuleID:     r.RuleID,
		Name:       r.Name,
		Kind:       r.Kind,
		Pattern:    r.Pattern,
		CategoryID: r.CategoryID,
		Priority:   r.Priority,
		IsActive:   r.IsActive,
	}
}

// ToListRuleResponse converts a slice of rules to response DTOs
func ToListRuleResponse(rules []domain.CategorizationRule) []RuleResponse {
	res := make([]RuleResponse, len(rules))
	for i, r := range rules {
		res[i] = ToRuleResponse(&r)
	}
	return res
}
