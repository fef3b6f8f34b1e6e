package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a paginated list of an account's transactions,
	// newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error)

	// FindTransactionsInWindow retrieves a user's transactions with timestamps in
	// [start, end). A non-empty categoryID restricts to that category; an empty
	// one matches any categorized transaction. This is the authoritative set the
	// budget monitor recomputes spend from on every notification.
	FindTransactionsInWindow(ctx context.Context, userID string, categoryID string, start, end time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransactionInTx persists a new transaction within a database transaction,
	// so the categorized transaction and the account balance commit together.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction (manual re-categorization,
	// recurring flag edits).
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransactionInTx removes a transaction within a database transaction,
	// so the row removal and the reversed account balance commit together.
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
