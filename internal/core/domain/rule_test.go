package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

func expenseTxn(description, merchant, amount string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: "txn_test",
		AccountID:     "acc_test",
		Amount:        decimal.RequireFromString(amount),
		Description:   description,
		MerchantName:  merchant,
	}
}

func TestCategorizationRule_Matches(t *testing.T) {
	tests := []struct {
		name string
		rule domain.CategorizationRule
		txn  *domain.Transaction
		want bool
	}{
		{
			name: "keyword substring match is case-insensitive",
			rule: domain.CategorizationRule{Kind: domain.RuleKeyword, Pattern: "starbucks"},
			txn:  expenseTxn("STARBUCKS #4521", "", "-4.50"),
			want: true,
		},
		{
			name: "keyword no match",
			rule: domain.CategorizationRule{Kind: domain.RuleKeyword, Pattern: "uber"},
			txn:  expenseTxn("STARBUCKS #4521", "", "-4.50"),
			want: false,
		},
		{
			name: "merchant exact match ignores case",
			rule: domain.CategorizationRule{Kind: domain.RuleMerchant, Pattern: "Whole Foods"},
			txn:  expenseTxn("groceries", "WHOLE FOODS", "-82.10"),
			want: true,
		},
		{
			name: "merchant substring does not match",
			rule: domain.CategorizationRule{Kind: domain.RuleMerchant, Pattern: "Whole"},
			txn:  expenseTxn("groceries", "WHOLE FOODS", "-82.10"),
			want: false,
		},
		{
			name: "merchant rule skips transactions without a merchant",
			rule: domain.CategorizationRule{Kind: domain.RuleMerchant, Pattern: "Whole Foods"},
			txn:  expenseTxn("groceries", "", "-82.10"),
			want: false,
		},
		{
			name: "amount range matches on magnitude, inclusive bounds",
			rule: domain.CategorizationRule{Kind: domain.RuleAmountRange, Pattern: "10.00:50.00"},
			txn:  expenseTxn("misc", "", "-50.00"),
			want: true,
		},
		{
			name: "amount range excludes outside values",
			rule: domain.CategorizationRule{Kind: domain.RuleAmountRange, Pattern: "10.00:50.00"},
			txn:  expenseTxn("misc", "", "-50.01"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Matches(tt.txn))
		})
	}
}

func TestCategorizationRule_Validate(t *testing.T) {
	valid := domain.CategorizationRule{Kind: domain.RuleAmountRange, Pattern: "1:100", CategoryID: "cat_1"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		rule domain.CategorizationRule
	}{
		{"empty pattern", domain.CategorizationRule{Kind: domain.RuleKeyword, CategoryID: "cat_1"}},
		{"missing category", domain.CategorizationRule{Kind: domain.RuleKeyword, Pattern: "coffee"}},
		{"unknown kind", domain.CategorizationRule{Kind: domain.RuleKind("REGEX"), Pattern: "x", CategoryID: "cat_1"}},
		{"malformed range", domain.CategorizationRule{Kind: domain.RuleAmountRange, Pattern: "100", CategoryID: "cat_1"}},
		{"inverted range", domain.CategorizationRule{Kind: domain.RuleAmountRange, Pattern: "100:1", CategoryID: "cat_1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.rule.Validate(), apperrors.ErrValidation)
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	txn := expenseTxn("coffee", "", "-4.50")
	assert.NoError(t, txn.Validate())

	zero := expenseTxn("nothing", "", "0")
	assert.ErrorIs(t, zero.Validate(), apperrors.ErrInvalidAmount)

	orphan := &domain.Transaction{Amount: decimal.RequireFromString("10")}
	assert.ErrorIs(t, orphan.Validate(), apperrors.ErrValidation)
}
