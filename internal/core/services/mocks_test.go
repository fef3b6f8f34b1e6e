package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// Shared repository mocks for the service test suites.

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsInWindow(ctx context.Context, userID string, categoryID string, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, categoryID, start, end)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	args := m.Called(ctx, tx, transactionID)
	return args.Error(0)
}

// --- Mock RuleRepository ---

type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.CategorizationRule, error) {
	args := m.Called(ctx, ruleID)
	var rule *domain.CategorizationRule
	if args.Get(0) != nil {
		rule = args.Get(0).(*domain.CategorizationRule)
	}
	return rule, args.Error(1)
}

func (m *MockRuleRepository) ListRulesByUser(ctx context.Context, userID string) ([]domain.CategorizationRule, error) {
	args := m.Called(ctx, userID)
	var rules []domain.CategorizationRule
	if args.Get(0) != nil {
		rules = args.Get(0).([]domain.CategorizationRule)
	}
	return rules, args.Error(1)
}

func (m *MockRuleRepository) ListActiveRulesByUser(ctx context.Context, userID string) ([]domain.CategorizationRule, error) {
	args := m.Called(ctx, userID)
	var rules []domain.CategorizationRule
	if args.Get(0) != nil {
		rules = args.Get(0).([]domain.CategorizationRule)
	}
	return rules, args.Error(1)
}

func (m *MockRuleRepository) FindRuleByPriority(ctx context.Context, userID string, priority int) (*domain.CategorizationRule, error) {
	args := m.Called(ctx, userID, priority)
	var rule *domain.CategorizationRule
	if args.Get(0) != nil {
		rule = args.Get(0).(*domain.CategorizationRule)
	}
	return rule, args.Error(1)
}

func (m *MockRuleRepository) SaveRule(ctx context.Context, rule domain.CategorizationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) UpdateRule(ctx context.Context, rule domain.CategorizationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) DeleteRule(ctx context.Context, ruleID string) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error) {
	args := m.Called(ctx, userID, name)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	var budget *domain.Budget
	if args.Get(0) != nil {
		budget = args.Get(0).(*domain.Budget)
	}
	return budget, args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID)
	var budgets []domain.Budget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]domain.Budget)
	}
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetsForCategory(ctx context.Context, userID string, categoryID string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, categoryID)
	var budgets []domain.Budget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]domain.Budget)
	}
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

// --- Mock AlertRepository ---

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) FindAlertByID(ctx context.Context, alertID string) (*domain.BudgetAlert, error) {
	args := m.Called(ctx, alertID)
	var alert *domain.BudgetAlert
	if args.Get(0) != nil {
		alert = args.Get(0).(*domain.BudgetAlert)
	}
	return alert, args.Error(1)
}

func (m *MockAlertRepository) ListAlertsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.BudgetAlert, error) {
	args := m.Called(ctx, userID, limit, offset)
	var alerts []domain.BudgetAlert
	if args.Get(0) != nil {
		alerts = args.Get(0).([]domain.BudgetAlert)
	}
	return alerts, args.Error(1)
}

func (m *MockAlertRepository) ListAlertsByBudget(ctx context.Context, budgetID string) ([]domain.BudgetAlert, error) {
	args := m.Called(ctx, budgetID)
	var alerts []domain.BudgetAlert
	if args.Get(0) != nil {
		alerts = args.Get(0).([]domain.BudgetAlert)
	}
	return alerts, args.Error(1)
}

func (m *MockAlertRepository) HighestTierForPeriod(ctx context.Context, budgetID string, periodStart time.Time) (domain.AlertTier, error) {
	args := m.Called(ctx, budgetID, periodStart)
	return args.Get(0).(domain.AlertTier), args.Error(1)
}

func (m *MockAlertRepository) SaveAlert(ctx context.Context, alert domain.BudgetAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) MarkAlertRead(ctx context.Context, alertID string) error {
	args := m.Called(ctx, alertID)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
