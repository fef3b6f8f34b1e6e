package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// accountServiceImpl implements the AccountSvcFacade interface
type accountServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountServiceImpl{
		accountRepo: repo,
	}
}

// Ensure accountServiceImpl implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

func (s *accountServiceImpl) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Balance:     decimal.Zero,
		Status:      domain.AccountPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name == nil {
		return account, nil
	}
	account.Name = *req.Name
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountServiceImpl) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	// Return NotFound to obscure existence from other users.
	if account.UserID != userID {
		s.LogDebug(ctx, "Account found but belongs to different user",
			slog.String("account_id", accountID))
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, err
	}

	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountServiceImpl) ActivateAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.mutateLocked(ctx, userID, accountID, func(a *domain.Account) error {
		return a.Activate()
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Account activated",
		slog.String("account_id", accountID))
	return account, nil
}

func (s *accountServiceImpl) Deposit(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	account, err := s.mutateLocked(ctx, userID, accountID, func(a *domain.Account) error {
		return a.Deposit(amount)
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Deposit applied",
		slog.String("account_id", accountID),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("balance", account.Balance.StringFixed(2)))
	return account, nil
}

func (s *accountServiceImpl) Withdraw(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	account, err := s.mutateLocked(ctx, userID, accountID, func(a *domain.Account) error {
		return a.Withdraw(amount)
	})
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountOverdrawn {
		s.LogInfo(ctx, "Account overdrawn by withdrawal",
			slog.String("account_id", accountID),
			slog.String("balance", account.Balance.StringFixed(2)))
	}
	return account, nil
}

func (s *accountServiceImpl) FreezeAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.mutateLocked(ctx, userID, accountID, func(a *domain.Account) error {
		return a.Freeze()
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Account frozen",
		slog.String("account_id", accountID))
	return account, nil
}

func (s *accountServiceImpl) UnfreezeAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.mutateLocked(ctx, userID, accountID, func(a *domain.Account) error {
		return a.Unfreeze()
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Account unfrozen",
		slog.String("account_id", accountID),
		slog.String("balance", account.Balance.StringFixed(2)))
	return account, nil
}

func (s *accountServiceImpl) CloseAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.mutateLocked(ctx, userID, accountID, func(a *domain.Account) error {
		return a.Close()
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Account closed",
		slog.String("account_id", accountID))
	return account, nil
}

// mutateLocked runs one lifecycle mutation with the account row locked, so
// concurrent mutations of the same account serialize on the database lock.
func (s *accountServiceImpl) mutateLocked(ctx context.Context, userID string, accountID string, mutate func(*domain.Account) error) (*domain.Account, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction",
			slog.String("account_id", accountID))
		return nil, err
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock account",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	if err := mutate(account); err != nil {
		return nil, err
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	if err := s.accountRepo.UpdateAccountStateInTx(ctx, tx, *account, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update account state",
			slog.String("account_id", accountID))
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit account mutation",
			slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}
