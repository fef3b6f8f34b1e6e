package categorization_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens_backend/internal/core/categorization"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

func txnWith(description, merchant, amount string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: "txn_test",
		AccountID:     "acc_test",
		Amount:        decimal.RequireFromString(amount),
		Description:   description,
		MerchantName:  merchant,
	}
}

// stubClassifier is a canned Classifier for AI strategy tests.
type stubClassifier struct {
	categoryID string
	score      float64
	err        error
	calls      int
}

func (c *stubClassifier) Classify(_ context.Context, _ string) (string, float64, error) {
	c.calls++
	return c.categoryID, c.score, c.err
}

func TestKeywordStrategy(t *testing.T) {
	s := categorization.NewKeywordStrategy()
	s.Add("starbucks", "cat_coffee")
	s.Add("uber", "cat_transport")

	t.Run("substring match in upper-cased description", func(t *testing.T) {
		result := s.Categorize(context.Background(), txnWith("STARBUCKS #4521", "", "-4.50"))
		require.NotNil(t, result)
		assert.Equal(t, "cat_coffee", result.CategoryID)
		assert.Equal(t, domain.ConfidenceHigh, result.Confidence)
		assert.Equal(t, domain.MethodRule, result.Method)
	})

	t.Run("no match declines", func(t *testing.T) {
		assert.Nil(t, s.Categorize(context.Background(), txnWith("gym membership", "", "-30.00")))
	})

	t.Run("first-registered keyword wins on ties", func(t *testing.T) {
		tied := categorization.NewKeywordStrategy()
		tied.Add("coffee", "cat_coffee")
		tied.Add("shop", "cat_shopping")

		result := tied.Categorize(context.Background(), txnWith("coffee shop corner", "", "-3.00"))
		require.NotNil(t, result)
		assert.Equal(t, "cat_coffee", result.CategoryID)
	})

	t.Run("re-registering keeps the original position", func(t *testing.T) {
		tied := categorization.NewKeywordStrategy()
		tied.Add("coffee", "cat_coffee")
		tied.Add("shop", "cat_shopping")
		tied.Add("coffee", "cat_drinks") // retarget, still first

		result := tied.Categorize(context.Background(), txnWith("coffee shop corner", "", "-3.00"))
		require.NotNil(t, result)
		assert.Equal(t, "cat_drinks", result.CategoryID)
	})
}

func TestMerchantStrategy(t *testing.T) {
	s := categorization.NewMerchantStrategy()
	s.Add("Whole Foods", "cat_groceries")

	t.Run("case-insensitive exact match", func(t *testing.T) {
		result := s.Categorize(context.Background(), txnWith("weekly shop", "WHOLE FOODS", "-82.10"))
		require.NotNil(t, result)
		assert.Equal(t, "cat_groceries", result.CategoryID)
		assert.Equal(t, domain.ConfidenceHigh, result.Confidence)
	})

	t.Run("unknown merchant declines", func(t *testing.T) {
		assert.Nil(t, s.Categorize(context.Background(), txnWith("weekly shop", "Trader Joes", "-40.00")))
	})

	t.Run("missing merchant declines", func(t *testing.T) {
		assert.Nil(t, s.Categorize(context.Background(), txnWith("weekly shop", "", "-40.00")))
	})
}

func TestRuleStrategy(t *testing.T) {
	rules := []domain.CategorizationRule{
		{RuleID: "r3", Kind: domain.RuleAmountRange, Pattern: "1:10", CategoryID: "cat_small", Priority: 30, IsActive: true},
		{RuleID: "r1", Kind: domain.RuleKeyword, Pattern: "netflix", CategoryID: "cat_streaming", Priority: 10, IsActive: true},
		{RuleID: "r2", Kind: domain.RuleKeyword, Pattern: "net", CategoryID: "cat_internet", Priority: 20, IsActive: true},
		{RuleID: "r0", Kind: domain.RuleKeyword, Pattern: "netflix", CategoryID: "cat_disabled", Priority: 5, IsActive: false},
	}
	s := categorization.NewRuleStrategy(rules)

	t.Run("lowest priority active rule wins", func(t *testing.T) {
		result := s.Categorize(context.Background(), txnWith("NETFLIX.COM subscription", "", "-15.99"))
		require.NotNil(t, result)
		assert.Equal(t, "cat_streaming", result.CategoryID)
		assert.Equal(t, domain.MethodRule, result.Method)
	})

	t.Run("falls through to later rules", func(t *testing.T) {
		result := s.Categorize(context.Background(), txnWith("phone top-up", "", "-5.00"))
		require.NotNil(t, result)
		assert.Equal(t, "cat_small", result.CategoryID)
	})

	t.Run("no rule matches declines", func(t *testing.T) {
		assert.Nil(t, s.Categorize(context.Background(), txnWith("car repair", "", "-450.00")))
	})
}

func TestAIStrategy(t *testing.T) {
	t.Run("confident guess accepted at medium confidence", func(t *testing.T) {
		s := categorization.NewAIStrategy(&stubClassifier{categoryID: "cat_dining", score: 0.91}, nil)
		result := s.Categorize(context.Background(), txnWith("thai place downtown", "", "-28.00"))
		require.NotNil(t, result)
		assert.Equal(t, "cat_dining", result.CategoryID)
		assert.Equal(t, domain.ConfidenceMedium, result.Confidence)
		assert.Equal(t, domain.MethodAI, result.Method)
	})

	t.Run("low-scoring guess is discarded, not downgraded", func(t *testing.T) {
		s := categorization.NewAIStrategy(&stubClassifier{categoryID: "cat_dining", score: 0.55}, nil)
		assert.Nil(t, s.Categorize(context.Background(), txnWith("thai place downtown", "", "-28.00")))
	})

	t.Run("score exactly at the cutoff is accepted", func(t *testing.T) {
		s := categorization.NewAIStrategy(&stubClassifier{categoryID: "cat_dining", score: 0.7}, nil)
		assert.NotNil(t, s.Categorize(context.Background(), txnWith("thai place downtown", "", "-28.00")))
	})

	t.Run("collaborator failure declines", func(t *testing.T) {
		s := categorization.NewAIStrategy(&stubClassifier{err: errors.New("timeout")}, nil)
		assert.Nil(t, s.Categorize(context.Background(), txnWith("thai place downtown", "", "-28.00")))
	})

	t.Run("nil classifier declines", func(t *testing.T) {
		s := categorization.NewAIStrategy(nil, nil)
		assert.Nil(t, s.Categorize(context.Background(), txnWith("thai place downtown", "", "-28.00")))
	})
}
