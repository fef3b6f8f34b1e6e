package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	"github.com/spendlens/spendlens_backend/internal/models"
)

type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func toModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:       d.BudgetID,
		UserID:         d.UserID,
		CategoryID:     d.CategoryID,
		LimitAmount:    d.LimitAmount,
		Period:         string(d.Period),
		AlertThreshold: d.AlertThreshold,
		StartDate:      d.StartDate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:       m.BudgetID,
		UserID:         m.UserID,
		CategoryID:     m.CategoryID,
		LimitAmount:    m.LimitAmount,
		Period:         domain.BudgetPeriod(m.Period),
		AlertThreshold: m.AlertThreshold,
		StartDate:      m.StartDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const budgetColumns = `budget_id, user_id, category_id, limit_amount, period, alert_threshold, start_date, created_at, created_by, last_updated_at, last_updated_by`

func scanBudgetRow(row pgx.Row) (*domain.Budget, error) {
	var m models.Budget
	var categoryID sql.NullString
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&categoryID,
		&m.LimitAmount,
		&m.Period,
		&m.AlertThreshold,
		&m.StartDate,
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
	m.CategoryID = categoryID.String
	budget := toDomainBudget(m)
	return &budget, nil
}

// SaveBudget inserts a new budget. Overall budgets carry a NULL category_id.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := toModelBudget(budget)

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.BudgetID,
		m.UserID,
		nullableString(m.CategoryID),
		m.LimitAmount,
		m.Period,
		m.AlertThreshold,
		m.StartDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: budget with ID %s already exists", apperrors.ErrDuplicate, m.BudgetID)
		}
		return fmt.Errorf("failed to save budget %s: %w", m.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	budget, err := scanBudgetRow(r.pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}
	return budget, nil
}

// ListBudgetsByUser retrieves all budgets owned by a user.
func (r *PgxBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY start_date DESC, budget_id;
	`
	return r.queryBudgets(ctx, query, userID)
}

// FindBudgetsForCategory retrieves a user's budgets monitoring the given
// category. Overall budgets (NULL category_id) match every category.
func (r *PgxBudgetRepository) FindBudgetsForCategory(ctx context.Context, userID string, categoryID string) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND (category_id = $2 OR category_id IS NULL)
		ORDER BY budget_id;
	`
	return r.queryBudgets(ctx, query, userID, categoryID)
}

func (r *PgxBudgetRepository) queryBudgets(ctx context.Context, query string, args ...any) ([]domain.Budget, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		budget, err := scanBudgetRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, *budget)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", rows.Err())
	}
	return budgets, nil
}

// UpdateBudget updates a budget's editable fields.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := toModelBudget(budget)

	query := `
		UPDATE budgets
		SET limit_amount = $2, period = $3, alert_threshold = $4, last_updated_at = $5, last_updated_by = $6
		WHERE budget_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.BudgetID,
		m.LimitAmount,
		m.Period,
		m.AlertThreshold,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update budget %s: %w", m.BudgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget. Its alerts cascade at the schema level.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
