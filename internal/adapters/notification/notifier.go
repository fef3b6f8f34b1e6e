// Package notification delivers budget alerts to outbound channels. The core
// treats delivery as fire-and-forget; adapters here absorb their own failures.
package notification

import (
	"context"
	"log/slog"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/middleware"
	"github.com/spendlens/spendlens_backend/internal/utils"
)

// LogNotifier writes alerts to the structured log. It is the default channel
// when no external delivery is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

var _ portssvc.NotifierSvc = (*LogNotifier)(nil)

func (n *LogNotifier) SendAlert(ctx context.Context, ownerUserID string, alert domain.BudgetAlert) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == slog.Default() {
		logger = n.logger
	}
	logger.Info("Budget alert",
		slog.String("user_id", ownerUserID),
		slog.String("budget_id", alert.BudgetID),
		slog.String("tier", alert.Tier.String()),
		slog.String("message", alert.Message),
		slog.String("current_spending", alert.CurrentSpending.String()),
		slog.String("budget_limit", alert.BudgetLimit.String()))
}

// PosthogNotifier mirrors alerts into product analytics on top of another
// notifier, so alert delivery shows up alongside the rest of the event stream.
type PosthogNotifier struct {
	next    portssvc.NotifierSvc
	posthog *utils.PosthogClientWrapper
}

func NewPosthogNotifier(next portssvc.NotifierSvc, posthog *utils.PosthogClientWrapper) *PosthogNotifier {
	return &PosthogNotifier{next: next, posthog: posthog}
}

var _ portssvc.NotifierSvc = (*PosthogNotifier)(nil)

func (n *PosthogNotifier) SendAlert(ctx context.Context, ownerUserID string, alert domain.BudgetAlert) {
	if n.next != nil {
		n.next.SendAlert(ctx, ownerUserID, alert)
	}
	if n.posthog == nil || !n.posthog.IsInitialized() {
		return
	}
	n.posthog.Enqueue(ownerUserID, "budget_alert_sent", map[string]any{
		"budget_id": alert.BudgetID,
		"tier":      alert.Tier.String(),
		"is_read":   alert.IsRead,
	})
}
