package services

import (
	"log/slog"

	"github.com/spendlens/spendlens_backend/internal/core/budgetwatch"
	"github.com/spendlens/spendlens_backend/internal/core/categorization"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. classifier may be nil, in which case the AI stage of the
// categorization chain is skipped and unmatched transactions fall through to
// manual review. notifier may be nil to disable outbound alert delivery.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	classifier categorization.Classifier,
	notifier portssvc.NotifierSvc,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, container.User)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Rule = NewRuleService(repos.RuleRepo, repos.CategoryRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.CategoryRepo, repos.TransactionRepo)
	container.Alert = NewAlertService(repos.AlertRepo, repos.BudgetRepo)

	var ai categorization.Strategy
	if classifier != nil {
		ai = categorization.NewAIStrategy(classifier, logger)
	}

	// The budget monitor observes every imported or recategorized transaction
	// through the broadcaster.
	broadcaster := budgetwatch.NewBroadcaster()
	monitor := budgetwatch.NewMonitor(
		repos.BudgetRepo,
		repos.TransactionRepo,
		repos.AlertRepo,
		budgetwatch.NewAlertFactory(),
		notifier,
		logger,
	)
	broadcaster.Attach(monitor)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.RuleRepo,
		repos.CategoryRepo,
		defaultBaseStrategies(),
		ai,
		broadcaster,
	)

	return container
}

// defaultBaseStrategies builds the built-in keyword and merchant tables tried
// after the owner's rule set. Targets are the seeded system categories.
func defaultBaseStrategies() []categorization.Strategy {
	keywords := categorization.NewKeywordStrategy()
	keywords.Add("grocery", "sys_groceries")
	keywords.Add("supermarket", "sys_groceries")
	keywords.Add("coffee", "sys_coffee")
	keywords.Add("restaurant", "sys_dining")
	keywords.Add("uber", "sys_transport")
	keywords.Add("taxi", "sys_transport")
	keywords.Add("fuel", "sys_transport")
	keywords.Add("electric", "sys_utilities")
	keywords.Add("internet", "sys_utilities")
	keywords.Add("rent", "sys_housing")
	keywords.Add("pharmacy", "sys_health")
	keywords.Add("cinema", "sys_entertainment")
	keywords.Add("flight", "sys_travel")
	keywords.Add("hotel", "sys_travel")
	keywords.Add("salary", "sys_income")
	keywords.Add("payroll", "sys_income")

	merchants := categorization.NewMerchantStrategy()
	merchants.Add("Starbucks", "sys_coffee")
	merchants.Add("Whole Foods", "sys_groceries")
	merchants.Add("Trader Joe's", "sys_groceries")
	merchants.Add("McDonald's", "sys_dining")
	merchants.Add("Shell", "sys_transport")
	merchants.Add("Netflix", "sys_entertainment")
	merchants.Add("Spotify", "sys_entertainment")
	merchants.Add("Amazon", "sys_shopping")
	merchants.Add("IKEA", "sys_shopping")
	merchants.Add("Airbnb", "sys_travel")

	return []categorization.Strategy{keywords, merchants}
}
