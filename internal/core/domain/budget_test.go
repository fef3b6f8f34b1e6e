package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

func newBudget(limit, threshold string, period domain.BudgetPeriod, start time.Time) *domain.Budget {
	return &domain.Budget{
		BudgetID:       "bud_test",
		UserID:         "user_test",
		CategoryID:     "cat_test",
		LimitAmount:    decimal.RequireFromString(limit),
		Period:         period,
		AlertThreshold: decimal.RequireFromString(threshold),
		StartDate:      start,
	}
}

func TestBudget_Validate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		budget  *domain.Budget
		wantErr bool
	}{
		{"valid monthly budget", newBudget("500.00", "0.8", domain.PeriodMonthly, start), false},
		{"threshold of exactly 1 is allowed", newBudget("500.00", "1", domain.PeriodWeekly, start), false},
		{"zero limit rejected", newBudget("0", "0.8", domain.PeriodMonthly, start), true},
		{"negative limit rejected", newBudget("-10", "0.8", domain.PeriodMonthly, start), true},
		{"zero threshold rejected", newBudget("500.00", "0", domain.PeriodMonthly, start), true},
		{"threshold above 1 rejected", newBudget("500.00", "1.2", domain.PeriodMonthly, start), true},
		{"unknown period rejected", newBudget("500.00", "0.8", domain.BudgetPeriod("DAILY"), start), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidBudgetConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBudget_TierFor(t *testing.T) {
	b := newBudget("500.00", "0.8", domain.PeriodMonthly, time.Now())

	tests := []struct {
		name  string
		spend string
		want  domain.AlertTier
	}{
		{"well under threshold", "100.00", domain.TierNone},
		{"just below threshold", "385.00", domain.TierNone},
		{"82 percent crosses warning-80", "410.00", domain.TierWarning80},
		{"83 percent still warning-80", "415.00", domain.TierWarning80},
		{"90 percent crosses warning-90", "450.00", domain.TierWarning90},
		{"exactly at the limit", "500.00", domain.TierExceeded},
		{"over the limit", "612.34", domain.TierExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.TierFor(decimal.RequireFromString(tt.spend))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBudget_TierFor_ThresholdGatesEngagement(t *testing.T) {
	// With a threshold of 0.95 the monitor stays silent through 80% and 90%;
	// the first crossing it can report is warning-90 at 95%.
	strict := newBudget("100.00", "0.95", domain.PeriodMonthly, time.Now())
	assert.Equal(t, domain.TierNone, strict.TierFor(decimal.RequireFromString("85.00")))
	assert.Equal(t, domain.TierNone, strict.TierFor(decimal.RequireFromString("94.00")))
	assert.Equal(t, domain.TierWarning90, strict.TierFor(decimal.RequireFromString("96.00")))
	assert.Equal(t, domain.TierExceeded, strict.TierFor(decimal.RequireFromString("101.00")))

	// A threshold below 0.8 does not move the fixed tiers down: 60% spend is
	// past the threshold but below every tier.
	loose := newBudget("100.00", "0.5", domain.PeriodMonthly, time.Now())
	assert.Equal(t, domain.TierNone, loose.TierFor(decimal.RequireFromString("60.00")))
	assert.Equal(t, domain.TierWarning80, loose.TierFor(decimal.RequireFromString("80.00")))
}

func TestBudget_PeriodWindow(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("monthly windows track month lengths", func(t *testing.T) {
		b := newBudget("500.00", "0.8", domain.PeriodMonthly, start)

		ws, we := b.PeriodWindow(time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC))
		assert.Equal(t, start, ws)
		assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), we)

		ws, we = b.PeriodWindow(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), ws)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), we)
	})

	t.Run("weekly window rollover", func(t *testing.T) {
		b := newBudget("100.00", "0.8", domain.PeriodWeekly, start)

		ws, we := b.PeriodWindow(start.AddDate(0, 0, 9))
		assert.Equal(t, start.AddDate(0, 0, 7), ws)
		assert.Equal(t, start.AddDate(0, 0, 14), we)
	})

	t.Run("yearly window", func(t *testing.T) {
		b := newBudget("1000.00", "0.8", domain.PeriodYearly, start)

		ws, we := b.PeriodWindow(time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, start, ws)
		assert.Equal(t, start.AddDate(1, 0, 0), we)
	})

	t.Run("window end is exclusive", func(t *testing.T) {
		b := newBudget("100.00", "0.8", domain.PeriodWeekly, start)

		ws, _ := b.PeriodWindow(start.AddDate(0, 0, 7))
		assert.Equal(t, start.AddDate(0, 0, 7), ws)
	})
}
