package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
)

// Confidence grades how trustworthy a categorization decision is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// CategorizationMethod records which stage of the pipeline assigned the
// category.
type CategorizationMethod string

const (
	MethodRule   CategorizationMethod = "rule"
	MethodAI     CategorizationMethod = "ai"
	MethodManual CategorizationMethod = "manual"
)

// Transaction represents a single financial transaction against one account.
// Amount is signed: negative for expenses, positive for income. A transaction
// carries at most one category at any time.
type Transaction struct {
	TransactionID   string               `json:"transactionID"` // Primary Key (UUID)
	AccountID       string               `json:"accountID"`     // FK -> accounts.account_id (Not Null)
	Amount          decimal.Decimal      `json:"amount"`        // Signed, never zero
	Description     string               `json:"description"`
	MerchantName    string               `json:"merchantName"` // Optional
	CategoryID      *string              `json:"categoryID"`   // Nullable until categorized
	TransactionDate time.Time            `json:"transactionDate"`
	IsRecurring     bool                 `json:"isRecurring"`
	Confidence      Confidence           `json:"confidence"`
	Method          CategorizationMethod `json:"categorizationMethod"`
	RequiresManual  bool                 `json:"requiresManual"` // Set when the chain falls through to the manual handler
	AuditFields
}

// Validate checks the structural invariants of a transaction.
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return fmt.Errorf("%w: transaction must reference an account", apperrors.ErrValidation)
	}
	if t.Amount.IsZero() {
		return fmt.Errorf("%w: transaction amount must be non-zero", apperrors.ErrInvalidAmount)
	}
	return nil
}

// Categorize assigns a category, confidence and method in one step. The
// pipeline calls this exactly once per transaction, immediately after the
// categorization chain resolves.
func (t *Transaction) Categorize(categoryID *string, confidence Confidence, method CategorizationMethod, requiresManual bool) {
	t.CategoryID = categoryID
	t.Confidence = confidence
	t.Method = method
	t.RequiresManual = requiresManual
}

// IsExpense reports whether the transaction represents money going out.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsIncome reports whether the transaction represents money coming in.
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// Magnitude returns the unsigned size of the transaction, which is what
// budget spend accumulation works with.
func (t *Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}
