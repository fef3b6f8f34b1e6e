package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/core/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountStateInTx(ctx context.Context, tx pgx.Tx, account domain.Account, userID string, now time.Time) error {
	args := m.Called(ctx, tx, account, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.userID = "user-1"
}

// expectLockedMutation arranges the Begin/lock/update/commit sequence around
// the given stored account and returns it.
func (suite *AccountServiceTestSuite) expectLockedMutation(account *domain.Account) {
	ctx := mock.Anything
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindAccountByIDForUpdate", ctx, nil, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("UpdateAccountStateInTx", ctx, nil, mock.AnythingOfType("domain.Account"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Maybe()
}

func (suite *AccountServiceTestSuite) storedAccount(status domain.AccountStatus, balance string) *domain.Account {
	return &domain.Account{
		AccountID:   "acc-1",
		UserID:      suite.userID,
		Name:        "Everyday checking",
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString(balance),
		Status:      status,
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_StartsPending() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Everyday checking", AccountType: domain.Checking}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Status == domain.AccountPending && a.Balance.IsZero() && a.UserID == suite.userID
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountPending, account.Status)
	suite.NotEmpty(account.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherUsersAccountIsNotFound() {
	ctx := context.Background()
	account := suite.storedAccount(domain.AccountActive, "100")
	account.UserID = "someone-else"

	suite.mockRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()

	got, err := suite.service.GetAccountByID(ctx, suite.userID, "acc-1")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func (suite *AccountServiceTestSuite) TestActivateAccount_FromPending() {
	ctx := context.Background()
	account := suite.storedAccount(domain.AccountPending, "0")
	suite.expectLockedMutation(account)

	got, err := suite.service.ActivateAccount(ctx, suite.userID, "acc-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AccountActive, got.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestWithdraw_OverdrawsInsteadOfRejecting() {
	ctx := context.Background()
	account := suite.storedAccount(domain.AccountActive, "50")
	suite.expectLockedMutation(account)

	got, err := suite.service.Withdraw(ctx, suite.userID, "acc-1", decimal.RequireFromString("80"))

	suite.Require().NoError(err)
	suite.Equal(domain.AccountOverdrawn, got.Status)
	suite.True(got.Balance.Equal(decimal.RequireFromString("-30")))
}

func (suite *AccountServiceTestSuite) TestDeposit_ClearsOverdrawnAtZero() {
	ctx := context.Background()
	account := suite.storedAccount(domain.AccountOverdrawn, "-30")
	suite.expectLockedMutation(account)

	got, err := suite.service.Deposit(ctx, suite.userID, "acc-1", decimal.RequireFromString("30"))

	suite.Require().NoError(err)
	suite.Equal(domain.AccountActive, got.Status)
	suite.True(got.Balance.IsZero())
}

func (suite *AccountServiceTestSuite) TestDeposit_RejectedWhileFrozen() {
	ctx := context.Background()
	account := suite.storedAccount(domain.AccountFrozen, "100")
	suite.mockRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepo.On("FindAccountByIDForUpdate", mock.Anything, nil, "acc-1").Return(account, nil).Once()
	suite.mockRepo.On("Rollback", mock.Anything, nil).Return(nil).Once()

	got, err := suite.service.Deposit(ctx, suite.userID, "acc-1", decimal.RequireFromString("10"))

	suite.Require().ErrorIs(err, apperrors.ErrAccountNotOperable)
	suite.Nil(got)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestFreezeAccount_IsIdempotent() {
	ctx := context.Background()
	account := suite.storedAccount(domain.AccountFrozen, "100")
	suite.expectLockedMutation(account)

	got, err := suite.service.FreezeAccount(ctx, suite.userID, "acc-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AccountFrozen, got.Status)
}

func (suite *AccountServiceTestSuite) TestUnfreezeAccount_NegativeBalanceStillActive() {
	ctx := context.Background()
	account := suite.storedAccount(domain.AccountFrozen, "-12.50")
	suite.expectLockedMutation(account)

	got, err := suite.service.UnfreezeAccount(ctx, suite.userID, "acc-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AccountActive, got.Status)
	suite.True(got.Balance.IsNegative())
}

func (suite *AccountServiceTestSuite) TestCloseAccount_NonZeroBalanceRejected() {
	ctx := context.Background()
	account := suite.storedAccount(domain.AccountActive, "5")
	suite.mockRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepo.On("FindAccountByIDForUpdate", mock.Anything, nil, "acc-1").Return(account, nil).Once()
	suite.mockRepo.On("Rollback", mock.Anything, nil).Return(nil).Once()

	got, err := suite.service.CloseAccount(ctx, suite.userID, "acc-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(got)
}

func (suite *AccountServiceTestSuite) TestCloseAccount_FrozenAlwaysCloses() {
	ctx := context.Background()
	account := suite.storedAccount(domain.AccountFrozen, "250")
	suite.expectLockedMutation(account)

	got, err := suite.service.CloseAccount(ctx, suite.userID, "acc-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AccountClosed, got.Status)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
