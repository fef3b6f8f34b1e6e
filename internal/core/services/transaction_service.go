package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/budgetwatch"
	"github.com/spendlens/spendlens_backend/internal/core/categorization"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// transactionServiceImpl implements the TransactionSvcFacade interface. It
// orchestrates the import pipeline: operability check, categorization chain,
// atomic balance-plus-transaction persistence, then observer broadcast.
type transactionServiceImpl struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	ruleRepo    portsrepo.RuleReader
	catRepo     portsrepo.CategoryReader

	// baseStrategies are the shared rule-based strategies (keyword table,
	// merchant table) tried after the owner's rule set.
	baseStrategies []categorization.Strategy
	ai             categorization.Strategy
	broadcaster    *budgetwatch.Broadcaster
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	ruleRepo portsrepo.RuleReader,
	catRepo portsrepo.CategoryReader,
	baseStrategies []categorization.Strategy,
	ai categorization.Strategy,
	broadcaster *budgetwatch.Broadcaster,
) portssvc.TransactionSvcFacade {
	return &transactionServiceImpl{
		txnRepo:        txnRepo,
		accountRepo:    accountRepo,
		ruleRepo:       ruleRepo,
		catRepo:        catRepo,
		baseStrategies: baseStrategies,
		ai:             ai,
		broadcaster:    broadcaster,
	}
}

// Ensure transactionServiceImpl implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

func (s *transactionServiceImpl) ImportTransaction(ctx context.Context, userID string, req dto.ImportTransactionRequest) (*domain.Transaction, error) {
	now := time.Now()
	txnDate := now
	if req.TransactionDate != nil {
		txnDate = *req.TransactionDate
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.AccountID,
		Amount:          req.Amount,
		Description:     req.Description,
		MerchantName:    req.MerchantName,
		TransactionDate: txnDate,
		IsRecurring:     req.IsRecurring,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	// Pre-flight operability check against the unlocked row. The check is
	// repeated under lock before the balance is applied; this one exists to
	// reject obviously dead imports before paying for categorization.
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for import",
				slog.String("account_id", req.AccountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if !account.IsOperable() {
		return nil, fmt.Errorf("%w: cannot import transaction into account in status %s", apperrors.ErrAccountNotOperable, account.Status)
	}

	// Resolve the categorization chain outside the database transaction: the
	// AI stage can be slow and must never hold a row lock.
	result := s.categorize(ctx, userID, &txn)
	var categoryID *string
	if result.CategoryID != "" {
		categoryID = &result.CategoryID
	}
	txn.Categorize(categoryID, result.Confidence, result.Method, result.RequiresManual)

	if err := s.persistWithBalance(ctx, userID, &txn); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction imported",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("method", string(txn.Method)),
		slog.String("confidence", string(txn.Confidence)),
		slog.Bool("requires_manual", txn.RequiresManual))

	if s.broadcaster != nil {
		s.broadcaster.NotifyCreated(ctx, userID, &txn)
	}
	return &txn, nil
}

// categorize runs the rules -> AI -> manual chain for one transaction. The
// owner's rule strategy is rebuilt from the current rule set on every call.
func (s *transactionServiceImpl) categorize(ctx context.Context, userID string, txn *domain.Transaction) *categorization.Result {
	rules, err := s.ruleRepo.ListActiveRulesByUser(ctx, userID)
	if err != nil {
		// A rule lookup failure degrades the chain, it does not block the
		// import.
		s.LogError(ctx, err, "Failed to load categorization rules, continuing without them")
		rules = nil
	}

	strategies := make([]categorization.Strategy, 0, len(s.baseStrategies)+1)
	strategies = append(strategies, categorization.NewRuleStrategy(rules))
	strategies = append(strategies, s.baseStrategies...)

	chain := categorization.NewDefaultChain(strategies, s.ai)
	return chain.Handle(ctx, txn)
}

// persistWithBalance applies the transaction's amount to the account balance
// and saves the transaction in one database transaction, with the account row
// locked so concurrent imports into the same account serialize.
func (s *transactionServiceImpl) persistWithBalance(ctx context.Context, userID string, txn *domain.Transaction) error {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction",
			slog.String("account_id", txn.AccountID))
		return err
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, txn.AccountID)
	if err != nil {
		return err
	}
	if account.UserID != userID {
		return apperrors.ErrNotFound
	}

	if txn.IsExpense() {
		err = account.Withdraw(txn.Magnitude())
	} else {
		err = account.Deposit(txn.Magnitude())
	}
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.accountRepo.UpdateAccountStateInTx(ctx, tx, *account, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update account balance",
			slog.String("account_id", txn.AccountID))
		return err
	}
	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID))
		return err
	}

	return s.accountRepo.Commit(ctx, tx)
}

func (s *transactionServiceImpl) RecategorizeTransaction(ctx context.Context, userID string, transactionID string, categoryID string) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	category, err := s.catRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category for recategorization",
				slog.String("category_id", categoryID))
		}
		return nil, err
	}
	if !category.IsSystem && category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	// A user override is definitive: High confidence, manual method, and the
	// review flag cleared.
	txn.Categorize(&category.CategoryID, domain.ConfidenceHigh, domain.MethodManual, false)
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recategorized",
		slog.String("transaction_id", transactionID),
		slog.String("category_id", categoryID))

	if s.broadcaster != nil {
		s.broadcaster.NotifyUpdated(ctx, userID, txn)
	}
	return txn, nil
}

func (s *transactionServiceImpl) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction",
			slog.String("account_id", txn.AccountID))
		return err
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, txn.AccountID)
	if err != nil {
		return err
	}
	if account.UserID != userID {
		return apperrors.ErrNotFound
	}

	// Undo the balance move the import applied: a deleted expense credits the
	// account back, a deleted income debits it. The state machine enforces the
	// same operability rules as the original import did.
	if txn.IsExpense() {
		err = account.Deposit(txn.Magnitude())
	} else {
		err = account.Withdraw(txn.Magnitude())
	}
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.accountRepo.UpdateAccountStateInTx(ctx, tx, *account, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to reverse account balance",
			slog.String("account_id", txn.AccountID))
		return err
	}
	if err := s.txnRepo.DeleteTransactionInTx(ctx, tx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction deletion",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("account_id", txn.AccountID))

	if s.broadcaster != nil {
		s.broadcaster.NotifyDeleted(ctx, userID, txn)
	}
	return nil
}

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	// Ownership is established through the account.
	account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	return txn, nil
}

func (s *transactionServiceImpl) ListTransactionsByAccount(ctx context.Context, userID string, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	txns, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions",
			slog.String("account_id", accountID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}
