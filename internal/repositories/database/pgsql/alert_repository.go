package pgsql

import (
	"context"
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

type PgxAlertRepository struct {
	pool *pgxpool.Pool
}

// newPgxAlertRepository creates a new repository for budget alert data.
func newPgxAlertRepository(pool *pgxpool.Pool) portsrepo.AlertRepositoryFacade {
	return &PgxAlertRepository{pool: pool}
}

var _ portsrepo.AlertRepositoryFacade = (*PgxAlertRepository)(nil)

func toModelAlert(d domain.BudgetAlert) models.BudgetAlert {
	return models.BudgetAlert{
		AlertID:         d.AlertID,
		BudgetID:        d.BudgetID,
		Tier:            d.Tier.String(),
		Message:         d.Message,
		CurrentSpending: d.CurrentSpending,
		BudgetLimit:     d.BudgetLimit,
		PeriodStart:     d.PeriodStart,
		CreatedAt:       d.CreatedAt,
		IsRead:          d.IsRead,
	}
}

func toDomainAlert(m models.BudgetAlert) domain.BudgetAlert {
	return domain.BudgetAlert{
		AlertID:         m.AlertID,
		BudgetID:        m.BudgetID,
		Tier:            domain.ParseAlertTier(m.Tier),
		Message:         m.Message,
		CurrentSpending: m.CurrentSpending,
		BudgetLimit:     m.BudgetLimit,
		PeriodStart:     m.PeriodStart,
		CreatedAt:       m.CreatedAt,
		IsRead:          m.IsRead,
	}
}

const alertColumns = `alert_id, budget_id, tier, message, current_spending, budget_limit, period_start, created_at, is_read`

func scanAlertRow(row pgx.Row) (*domain.BudgetAlert, error) {
	var m models.BudgetAlert
	err := row.Scan(
		&m.AlertID,
		&m.BudgetID,
		&m.Tier,
		&m.Message,
		&m.CurrentSpending,
		&m.BudgetLimit,
		&m.PeriodStart,
		&m.CreatedAt,
		&m.IsRead,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	alert := toDomainAlert(m)
	return &alert, nil
}

// SaveAlert inserts a new alert. The unique index on
// (budget_id, period_start, tier) makes a duplicate crossing a hard error, so
// two monitor instances racing on the same tier cannot both persist.
func (r *PgxAlertRepository) SaveAlert(ctx context.Context, alert domain.BudgetAlert) error {
	m := toModelAlert(alert)

	query := `
		INSERT INTO budget_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AlertID,
		m.BudgetID,
		m.Tier,
		m.Message,
		m.CurrentSpending,
		m.BudgetLimit,
		m.PeriodStart,
		m.CreatedAt,
		m.IsRead,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: alert for budget %s tier %s already recorded", apperrors.ErrDuplicate, m.BudgetID, m.Tier)
		}
		return fmt.Errorf("failed to save alert %s: %w", m.AlertID, err)
	}
	return nil
}

// FindAlertByID retrieves an alert by ID.
func (r *PgxAlertRepository) FindAlertByID(ctx context.Context, alertID string) (*domain.BudgetAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM budget_alerts WHERE alert_id = $1;`
	alert, err := scanAlertRow(r.pool.QueryRow(ctx, query, alertID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find alert by ID %s: %w", alertID, err)
	}
	return alert, nil
}

// ListAlertsByUser retrieves a user's alerts, newest first. Ownership flows
// through the budgets table.
func (r *PgxAlertRepository) ListAlertsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.BudgetAlert, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT al.alert_id, al.budget_id, al.tier, al.message, al.current_spending, al.budget_limit, al.period_start, al.created_at, al.is_read
		FROM budget_alerts al
		JOIN budgets b ON b.budget_id = al.budget_id
		WHERE b.user_id = $1
		ORDER BY al.created_at DESC, al.alert_id
		LIMIT $2 OFFSET $3;
	`
	return r.queryAlerts(ctx, query, userID, limit, offset)
}

// ListAlertsByBudget retrieves a budget's alerts, newest first.
func (r *PgxAlertRepository) ListAlertsByBudget(ctx context.Context, budgetID string) ([]domain.BudgetAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM budget_alerts
		WHERE budget_id = $1
		ORDER BY created_at DESC, alert_id;
	`
	return r.queryAlerts(ctx, query, budgetID)
}

func (r *PgxAlertRepository) queryAlerts(ctx context.Context, query string, args ...any) ([]domain.BudgetAlert, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []domain.BudgetAlert{}
	for rows.Next() {
		alert, err := scanAlertRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, *alert)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating alert rows: %w", rows.Err())
	}
	return alerts, nil
}

// HighestTierForPeriod returns the most severe tier already alerted for a
// budget period, or TierNone when the period has no alerts yet. Tier
// comparison happens in Go since the tier ordering lives in the domain, not
// in the storage representation.
func (r *PgxAlertRepository) HighestTierForPeriod(ctx context.Context, budgetID string, periodStart time.Time) (domain.AlertTier, error) {
	query := `
		SELECT tier
		FROM budget_alerts
		WHERE budget_id = $1 AND period_start = $2;
	`
	rows, err := r.pool.Query(ctx, query, budgetID, periodStart)
	if err != nil {
		return domain.TierNone, fmt.Errorf("failed to query alert tiers for budget %s: %w", budgetID, err)
	}
	defer rows.Close()

	highest := domain.TierNone
	for rows.Next() {
		var tier string
		if err := rows.Scan(&tier); err != nil {
			return domain.TierNone, fmt.Errorf("failed to scan alert tier for budget %s: %w", budgetID, err)
		}
		if parsed := domain.ParseAlertTier(tier); parsed > highest {
			highest = parsed
		}
	}
	if rows.Err() != nil {
		return domain.TierNone, fmt.Errorf("error iterating alert tiers for budget %s: %w", budgetID, rows.Err())
	}
	return highest, nil
}

// MarkAlertRead sets the read flag, the only mutation alerts permit.
func (r *PgxAlertRepository) MarkAlertRead(ctx context.Context, alertID string) error {
	cmdTag, err := r.pool.Exec(ctx, `UPDATE budget_alerts SET is_read = TRUE WHERE alert_id = $1;`, alertID)
	if err != nil {
		return fmt.Errorf("failed to mark alert %s read: %w", alertID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
