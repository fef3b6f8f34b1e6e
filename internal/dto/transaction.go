package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// ImportTransactionRequest is one raw transaction tuple from the import/entry
// collaborator. Amount is signed: negative for expenses, positive for income.
type ImportTransactionRequest struct {
	AccountID       string          `json:"accountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	MerchantName    string          `json:"merchantName"`
	TransactionDate *time.Time      `json:"transactionDate"` // Defaults to now
	IsRecurring     bool            `json:"isRecurring"`
}

// RecategorizeTransactionRequest carries a user's manual category override.
type RecategorizeTransactionRequest struct {
	CategoryID string `json:"categoryID" binding:"required"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                      `json:"transactionID"`
	AccountID       string                      `json:"accountID"`
	Amount          decimal.Decimal             `json:"amount"`
	Description     string                      `json:"description"`
	MerchantName    string                      `json:"merchantName,omitempty"`
	CategoryID      *string                     `json:"categoryID"`
	TransactionDate time.Time                   `json:"transactionDate"`
	IsRecurring     bool                        `json:"isRecurring"`
	Confidence      domain.Confidence           `json:"confidence"`
	Method          domain.CategorizationMethod `json:"categorizationMethod"`
	RequiresManual  bool                        `json:"requiresManual"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		Description:     txn.Description,
		MerchantName:    txn.MerchantName,
		CategoryID:      txn.CategoryID,
		TransactionDate: txn.TransactionDate,
		IsRecurring:     txn.IsRecurring,
		Confidence:      txn.Confidence,
		Method:          txn.Method,
		RequiresManual:  txn.RequiresManual,
	}
}

// ToListTransactionResponse converts a slice of transactions to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
