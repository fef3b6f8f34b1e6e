package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves a paginated list of a user's accounts.
	ListAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountLockingSupport defines operations used by services that mutate
// balance and lifecycle status atomically. Same-account mutations serialize
// on the row lock taken here.
type AccountLockingSupport interface {
	// FindAccountByIDForUpdate selects an account and locks its row within a transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// UpdateAccountStateInTx writes the account's balance and status within a given transaction.
	UpdateAccountStateInTx(ctx context.Context, tx pgx.Tx, account domain.Account, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLockingSupport
	TransactionManager
}
