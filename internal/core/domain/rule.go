package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
)

// RuleKind selects how a categorization rule's pattern is interpreted.
type RuleKind string

const (
	RuleKeyword     RuleKind = "KEYWORD"      // Pattern is a case-insensitive description substring
	RuleMerchant    RuleKind = "MERCHANT"     // Pattern is a case-insensitive exact merchant name
	RuleAmountRange RuleKind = "AMOUNT_RANGE" // Pattern is "min:max", inclusive decimal bounds
)

// CategorizationRule is a user-defined pattern rule feeding the rule
// strategy. Rules are evaluated in ascending priority order (lower value
// first); priority is unique per owner.
type CategorizationRule struct {
	RuleID     string   `json:"ruleID"` // Primary Key (UUID)
	UserID     string   `json:"userID"` // FK -> users.user_id (Not Null)
	Name       string   `json:"name"`
	Kind       RuleKind `json:"kind"`
	Pattern    string   `json:"pattern"`
	CategoryID string   `json:"categoryID"` // Target category
	Priority   int      `json:"priority"`   // Lower value = evaluated first
	IsActive   bool     `json:"isActive"`
	AuditFields
}

// Validate checks the rule pattern is well formed for its kind.
func (r *CategorizationRule) Validate() error {
	if r.Pattern == "" {
		return fmt.Errorf("%w: rule pattern must not be empty", apperrors.ErrValidation)
	}
	if r.CategoryID == "" {
		return fmt.Errorf("%w: rule must reference a target category", apperrors.ErrValidation)
	}
	switch r.Kind {
	case RuleKeyword, RuleMerchant:
		return nil
	case RuleAmountRange:
		_, _, err := r.AmountBounds()
		return err
	default:
		return fmt.Errorf("%w: unknown rule kind %q", apperrors.ErrValidation, r.Kind)
	}
}

// AmountBounds parses the inclusive bounds of an amount-range pattern.
func (r *CategorizationRule) AmountBounds() (decimal.Decimal, decimal.Decimal, error) {
	parts := strings.SplitN(r.Pattern, ":", 2)
	if len(parts) != 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: amount range pattern must be \"min:max\", got %q", apperrors.ErrValidation, r.Pattern)
	}
	min, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: invalid range minimum %q", apperrors.ErrValidation, parts[0])
	}
	max, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: invalid range maximum %q", apperrors.ErrValidation, parts[1])
	}
	if max.LessThan(min) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: range maximum %s below minimum %s", apperrors.ErrValidation, max, min)
	}
	return min, max, nil
}

// Matches reports whether the rule's pattern matches the transaction.
func (r *CategorizationRule) Matches(txn *Transaction) bool {
	switch r.Kind {
	case RuleKeyword:
		return strings.Contains(strings.ToLower(txn.Description), strings.ToLower(r.Pattern))
	case RuleMerchant:
		return txn.MerchantName != "" && strings.EqualFold(txn.MerchantName, r.Pattern)
	case RuleAmountRange:
		min, max, err := r.AmountBounds()
		if err != nil {
			return false
		}
		amount := txn.Magnitude()
		return amount.GreaterThanOrEqual(min) && amount.LessThanOrEqual(max)
	default:
		return false
	}
}
