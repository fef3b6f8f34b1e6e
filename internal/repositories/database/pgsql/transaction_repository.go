package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	"github.com/spendlens/spendlens_backend/internal/models"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	var categoryID sql.NullString
	if d.CategoryID != nil {
		categoryID = sql.NullString{String: *d.CategoryID, Valid: true}
	}
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		Description:     d.Description,
		MerchantName:    d.MerchantName,
		CategoryID:      categoryID,
		TransactionDate: d.TransactionDate,
		IsRecurring:     d.IsRecurring,
		Confidence:      string(d.Confidence),
		Method:          string(d.Method),
		RequiresManual:  d.RequiresManual,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	var categoryID *string
	if m.CategoryID.Valid {
		v := m.CategoryID.String
		categoryID = &v
	}
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		Description:     m.Description,
		MerchantName:    m.MerchantName,
		CategoryID:      categoryID,
		TransactionDate: m.TransactionDate,
		IsRecurring:     m.IsRecurring,
		Confidence:      domain.Confidence(m.Confidence),
		Method:          domain.CategorizationMethod(m.Method),
		RequiresManual:  m.RequiresManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, account_id, amount, description, merchant_name, category_id, transaction_date, is_recurring, confidence, categorization_method, requires_manual, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionRow(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Amount,
		&m.Description,
		&m.MerchantName,
		&m.CategoryID,
		&m.TransactionDate,
		&m.IsRecurring,
		&m.Confidence,
		&m.Method,
		&m.RequiresManual,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	txn := toDomainTransaction(m)
	return &txn, nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

func insertTransactionArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID,
		m.AccountID,
		m.Amount,
		m.Description,
		m.MerchantName,
		m.CategoryID,
		m.TransactionDate,
		m.IsRecurring,
		m.Confidence,
		m.Method,
		m.RequiresManual,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func wrapTransactionInsertError(err error, transactionID string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, transactionID)
	}
	return fmt.Errorf("failed to save transaction %s: %w", transactionID, err)
}

// SaveTransactionInTx inserts a new transaction within a database transaction,
// so the row and the account balance it moved commit together.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	if _, err := tx.Exec(ctx, insertTransactionQuery, insertTransactionArgs(m)...); err != nil {
		return wrapTransactionInsertError(err, m.TransactionID)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransactionRow(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactionsByAccount retrieves a paginated list of an account's
// transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY transaction_date DESC, transaction_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountID, err)
		}
		txns = append(txns, *txn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountID, rows.Err())
	}
	return txns, nil
}

// FindTransactionsInWindow retrieves a user's transactions with dates in
// [start, end). A non-empty categoryID restricts to that category; an empty
// one matches any categorized transaction. User scope goes through the
// accounts table since transactions don't carry user_id themselves.
func (r *PgxTransactionRepository) FindTransactionsInWindow(ctx context.Context, userID string, categoryID string, start, end time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + qualifiedTransactionColumns + `
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.user_id = $1
		  AND t.transaction_date >= $2 AND t.transaction_date < $3
		  AND ($4 = '' OR t.category_id = $4)
		  AND t.category_id IS NOT NULL
		ORDER BY t.transaction_date, t.transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, userID, start, end, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction window for user %s: %w", userID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction window row for user %s: %w", userID, err)
		}
		txns = append(txns, *txn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction window rows for user %s: %w", userID, rows.Err())
	}
	return txns, nil
}

const qualifiedTransactionColumns = `t.transaction_id, t.account_id, t.amount, t.description, t.merchant_name, t.category_id, t.transaction_date, t.is_recurring, t.confidence, t.categorization_method, t.requires_manual, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

// UpdateTransaction rewrites a transaction's mutable fields (category
// assignment, confidence, method, recurring flag).
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		UPDATE transactions
		SET category_id = $2, confidence = $3, categorization_method = $4, requires_manual = $5,
		    is_recurring = $6, description = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.TransactionID,
		m.CategoryID,
		m.Confidence,
		m.Method,
		m.RequiresManual,
		m.IsRecurring,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransactionInTx removes a transaction within a database transaction,
// so the row removal and the reversed account balance commit together.
func (r *PgxTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
