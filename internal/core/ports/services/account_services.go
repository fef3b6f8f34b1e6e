package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account owned by the user.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of the user's accounts.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines creation and editing of account data
type AccountWriterSvc interface {
	// CreateAccount provisions a new account in Pending status.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount edits non-lifecycle fields such as the display name.
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
}

// AccountLifecycleSvc defines the state-machine operations on an account.
// Balance-mutating operations run with the account row locked, so concurrent
// mutations against the same account serialize.
type AccountLifecycleSvc interface {
	// ActivateAccount moves a pending account into service.
	ActivateAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// Deposit credits the account.
	Deposit(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error)

	// Withdraw debits the account, transitioning to Overdrawn if the balance
	// goes negative.
	Withdraw(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error)

	// FreezeAccount suspends the account.
	FreezeAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// UnfreezeAccount resumes a frozen account in Active.
	UnfreezeAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// CloseAccount soft-deletes the account.
	CloseAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountLifecycleSvc
}
