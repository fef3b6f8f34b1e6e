package pgsql

import (
	"context"
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

type PgxRuleRepository struct {
	pool *pgxpool.Pool
}

// newPgxRuleRepository creates a new repository for categorization rule data.
func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepositoryFacade {
	return &PgxRuleRepository{pool: pool}
}

var _ portsrepo.RuleRepositoryFacade = (*PgxRuleRepository)(nil)

func toModelRule(d domain.CategorizationRule) models.CategorizationRule {
	return models.CategorizationRule{
		RuleID:     d.RuleID,
		UserID:     d.UserID,
		Name:       d.Name,
		Kind:       string(d.Kind),
		Pattern:    d.Pattern,
		CategoryID: d.CategoryID,
		Priority:   d.Priority,
		IsActive:   d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainRule(m models.CategorizationRule) domain.CategorizationRule {
	return domain.CategorizationRule{
		RuleID:     m.RuleID,
		UserID:     m.UserID,
		Name:       m.Name,
		Kind:       domain.RuleKind(m.Kind),
		Pattern:    m.Pattern,
		CategoryID: m.CategoryID,
		Priority:   m.Priority,
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const ruleColumns = `rule_id, user_id, name, kind, pattern, category_id, priority, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanRuleRow(row pgx.Row) (*domain.CategorizationRule, error) {
	var m models.CategorizationRule
	err := row.Scan(
		&m.RuleID,
		&m.UserID,
		&m.Name,
		&m.Kind,
		&m.Pattern,
		&m.CategoryID,
		&m.Priority,
		&m.IsActive,
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
	rule := toDomainRule(m)
	return &rule, nil
}

// SaveRule inserts a new rule. The unique index on (user_id, priority) backs
// the per-owner priority uniqueness the service enforces.
func (r *PgxRuleRepository) SaveRule(ctx context.Context, rule domain.CategorizationRule) error {
	m := toModelRule(rule)

	query := `
		INSERT INTO categorization_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.RuleID,
		m.UserID,
		m.Name,
		m.Kind,
		m.Pattern,
		m.CategoryID,
		m.Priority,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: priority %d already taken", apperrors.ErrDuplicate, m.Priority)
		}
		return fmt.Errorf("failed to save rule %s: %w", m.RuleID, err)
	}
	return nil
}

// FindRuleByID retrieves a rule by ID.
func (r *PgxRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.CategorizationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM categorization_rules WHERE rule_id = $1;`
	rule, err := scanRuleRow(r.pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find rule by ID %s: %w", ruleID, err)
	}
	return rule, nil
}

// FindRuleByPriority retrieves the rule holding a priority slot for a user.
func (r *PgxRuleRepository) FindRuleByPriority(ctx context.Context, userID string, priority int) (*domain.CategorizationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM categorization_rules WHERE user_id = $1 AND priority = $2;`
	rule, err := scanRuleRow(r.pool.QueryRow(ctx, query, userID, priority))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find rule by priority %d for user %s: %w", priority, userID, err)
	}
	return rule, nil
}

// ListRulesByUser retrieves all of a user's rules ordered by priority.
func (r *PgxRuleRepository) ListRulesByUser(ctx context.Context, userID string) ([]domain.CategorizationRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM categorization_rules
		WHERE user_id = $1
		ORDER BY priority;
	`
	return r.queryRules(ctx, query, userID)
}

// ListActiveRulesByUser retrieves a user's active rules ordered by priority.
func (r *PgxRuleRepository) ListActiveRulesByUser(ctx context.Context, userID string) ([]domain.CategorizationRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM categorization_rules
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY priority;
	`
	return r.queryRules(ctx, query, userID)
}

func (r *PgxRuleRepository) queryRules(ctx context.Context, query string, args ...any) ([]domain.CategorizationRule, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	rules := []domain.CategorizationRule{}
	for rows.Next() {
		rule, err := scanRuleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}
		rules = append(rules, *rule)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating rule rows: %w", rows.Err())
	}
	return rules, nil
}

// UpdateRule updates a rule's editable fields.
func (r *PgxRuleRepository) UpdateRule(ctx context.Context, rule domain.CategorizationRule) error {
	m := toModelRule(rule)

	query := `
		UPDATE categorization_rules
		SET name = $2, kind = $3, pattern = $4, category_id = $5, priority = $6, is_active = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE rule_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.RuleID,
		m.Name,
		m.Kind,
		m.Pattern,
		m.CategoryID,
		m.Priority,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: priority %d already taken", apperrors.ErrDuplicate, m.Priority)
		}
		return fmt.Errorf("failed to execute update rule %s: %w", m.RuleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRule removes a rule.
func (r *PgxRuleRepository) DeleteRule(ctx context.Context, ruleID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM categorization_rules WHERE rule_id = $1;`, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete rule %s: %w", ruleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
