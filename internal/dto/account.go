package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to provision a new account.
// New accounts always start in Pending status.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS CREDIT INVESTMENT"`
}

// UpdateAccountRequest defines the editable account fields. Balance and
// status are never edited directly; they move through lifecycle operations.
type UpdateAccountRequest struct {
	Name *string `json:"name"`
}

// AmountRequest carries the amount for deposit and withdrawal operations.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string               `json:"accountID"`
	Name        string               `json:"name"`
	AccountType domain.AccountType   `json:"accountType"`
	Balance     decimal.Decimal      `json:"balance"`
	Status      domain.AccountStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Balance:     acc.Balance,
		Status:      acc.Status,
		CreatedAt:   acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
