package services

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// TransactionSvcFacade is the entry point of the categorization pipeline.
type TransactionSvcFacade interface {
	// ImportTransaction runs the full pipeline for one raw transaction:
	// account operability check and balance application, categorization chain,
	// persistence, then synchronous broadcast to attached budget monitors.
	ImportTransaction(ctx context.Context, userID string, req dto.ImportTransactionRequest) (*domain.Transaction, error)

	// RecategorizeTransaction applies a user-initiated manual category
	// override and re-notifies observers.
	RecategorizeTransaction(ctx context.Context, userID string, transactionID string, categoryID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction, reverses its effect on the
	// account balance under the account row lock, and re-notifies observers so
	// budget spend is recomputed without it.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error

	// GetTransactionByID retrieves a specific transaction owned by the user.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a paginated list of an account's
	// transactions, newest first.
	ListTransactionsByAccount(ctx context.Context, userID string, accountID string, limit int, offset int) ([]domain.Transaction, error)
}
