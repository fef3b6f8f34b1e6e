package budgetwatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
)

// tierLatch records the highest tier already alerted for one budget period.
type tierLatch struct {
	periodStart time.Time
	tier        domain.AlertTier
}

// Monitor reacts to categorized transactions: it resolves the budgets
// monitoring the transaction's category, recomputes period spend from the
// authoritative transaction set (never a cached running total), and asks the
// alert factory for an alert when a new tier is crossed.
//
// The per-(budget, period) latch guarantees at most one alert per tier per
// period: an alert fires only when the computed tier strictly exceeds the
// highest tier already alerted for that period. The latch resets when the
// period window rolls over, and survives restarts by falling back to the
// persisted alerts.
type Monitor struct {
	budgetRepo portsrepo.BudgetReader
	txnRepo    portsrepo.TransactionReader
	alertRepo  portsrepo.AlertRepositoryFacade
	factory    *AlertFactory
	notifier   portssvc.NotifierSvc
	logger     *slog.Logger

	mu      sync.Mutex
	latches map[string]tierLatch // keyed by budget id
}

// NewMonitor creates a budget monitor.
func NewMonitor(
	budgetRepo portsrepo.BudgetReader,
	txnRepo portsrepo.TransactionReader,
	alertRepo portsrepo.AlertRepositoryFacade,
	factory *AlertFactory,
	notifier portssvc.NotifierSvc,
	logger *slog.Logger,
) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		budgetRepo: budgetRepo,
		txnRepo:    txnRepo,
		alertRepo:  alertRepo,
		factory:    factory,
		notifier:   notifier,
		logger:     logger,
		latches:    make(map[string]tierLatch),
	}
}

// Name implements Observer.
func (m *Monitor) Name() string { return "budget_monitor" }

// OnTransactionCreated implements Observer.
func (m *Monitor) OnTransactionCreated(ctx context.Context, ownerUserID string, txn *domain.Transaction) {
	m.checkBudgets(ctx, ownerUserID, txn)
}

// OnTransactionUpdated implements Observer. Re-categorization can move spend
// between budgets, so updates re-run the same check.
func (m *Monitor) OnTransactionUpdated(ctx context.Context, ownerUserID string, txn *domain.Transaction) {
	m.checkBudgets(ctx, ownerUserID, txn)
}

// OnTransactionDeleted implements Observer. A deletion lowers period spend,
// so the re-check never crosses a new tier; it exists so the recomputed spend
// is what any later crossing in the same period is measured against.
func (m *Monitor) OnTransactionDeleted(ctx context.Context, ownerUserID string, txn *domain.Transaction) {
	m.checkBudgets(ctx, ownerUserID, txn)
}

func (m *Monitor) checkBudgets(ctx context.Context, ownerUserID string, txn *domain.Transaction) {
	if txn.CategoryID == nil || !txn.IsExpense() {
		// Uncategorized or income transactions never move budget spend.
		return
	}

	budgets, err := m.budgetRepo.FindBudgetsForCategory(ctx, ownerUserID, *txn.CategoryID)
	if err != nil {
		m.logger.Error("Failed to resolve budgets for transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
		return
	}

	for i := range budgets {
		m.checkOne(ctx, ownerUserID, &budgets[i], txn)
	}
}

func (m *Monitor) checkOne(ctx context.Context, ownerUserID string, budget *domain.Budget, txn *domain.Transaction) {
	if !budget.Contains(txn.TransactionDate) {
		return
	}
	periodStart, periodEnd := budget.PeriodWindow(txn.TransactionDate)

	spend, err := m.periodSpend(ctx, ownerUserID, budget, periodStart, periodEnd)
	if err != nil {
		m.logger.Error("Failed to recompute period spend",
			slog.String("budget_id", budget.BudgetID),
			slog.String("error", err.Error()))
		return
	}

	tier := budget.TierFor(spend)
	if tier == domain.TierNone {
		return
	}

	previous, err := m.alertedTier(ctx, budget.BudgetID, periodStart)
	if err != nil {
		m.logger.Error("Failed to load alerted tier",
			slog.String("budget_id", budget.BudgetID),
			slog.String("error", err.Error()))
		return
	}
	if tier <= previous {
		// Already alerted at this tier (or higher) for this period; the
		// crossing is silently suppressed.
		return
	}

	alert := m.factory.CreateAlert(budget, spend, tier, periodStart)
	if err := m.alertRepo.SaveAlert(ctx, alert); err != nil {
		// Leave the latch untouched so a later notification can retry.
		m.logger.Error("Failed to persist budget alert",
			slog.String("budget_id", budget.BudgetID),
			slog.String("tier", tier.String()),
			slog.String("error", err.Error()))
		return
	}

	m.mu.Lock()
	m.latches[budget.BudgetID] = tierLatch{periodStart: periodStart, tier: tier}
	m.mu.Unlock()

	m.logger.Info("Budget alert generated",
		slog.String("budget_id", budget.BudgetID),
		slog.String("tier", tier.String()),
		slog.String("spend", spend.StringFixed(2)),
		slog.String("limit", budget.LimitAmount.StringFixed(2)))

	if m.notifier != nil {
		m.notifier.SendAlert(ctx, ownerUserID, alert)
	}
}

// periodSpend sums the magnitudes of the owner's expense transactions inside
// the window. The sum is recomputed from storage on every call to avoid
// drift.
func (m *Monitor) periodSpend(ctx context.Context, ownerUserID string, budget *domain.Budget, start, end time.Time) (decimal.Decimal, error) {
	txns, err := m.txnRepo.FindTransactionsInWindow(ctx, ownerUserID, budget.CategoryID, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	spend := decimal.Zero
	for i := range txns {
		if txns[i].IsExpense() {
			spend = spend.Add(txns[i].Magnitude())
		}
	}
	return spend, nil
}

// alertedTier returns the highest tier already alerted for the budget's
// current period, preferring the in-memory latch and falling back to the
// alert store after restarts or period rollover.
func (m *Monitor) alertedTier(ctx context.Context, budgetID string, periodStart time.Time) (domain.AlertTier, error) {
	m.mu.Lock()
	latch, ok := m.latches[budgetID]
	m.mu.Unlock()
	if ok && latch.periodStart.Equal(periodStart) {
		return latch.tier, nil
	}

	tier, err := m.alertRepo.HighestTierForPeriod(ctx, budgetID, periodStart)
	if err != nil {
		return domain.TierNone, err
	}
	m.mu.Lock()
	m.latches[budgetID] = tierLatch{periodStart: periodStart, tier: tier}
	m.mu.Unlock()
	return tier, nil
}
