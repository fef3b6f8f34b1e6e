package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// ruleServiceImpl implements the RuleSvcFacade interface
type ruleServiceImpl struct {
	BaseService
	ruleRepo portsrepo.RuleRepositoryFacade
	catRepo  portsrepo.CategoryReader
}

// NewRuleService creates a new rule service
func NewRuleService(ruleRepo portsrepo.RuleRepositoryFacade, catRepo portsrepo.CategoryReader) portssvc.RuleSvcFacade {
	return &ruleServiceImpl{
		ruleRepo: ruleRepo,
		catRepo:  catRepo,
	}
}

// Ensure ruleServiceImpl implements the RuleSvcFacade interface
var _ portssvc.RuleSvcFacade = (*ruleServiceImpl)(nil)

func (s *ruleServiceImpl) CreateRule(ctx context.Context, userID string, req dto.CreateRuleRequest) (*domain.CategorizationRule, error) {
	if err := s.ensureCategoryVisible(ctx, userID, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.ensurePriorityFree(ctx, userID, req.Priority, ""); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	rule := domain.CategorizationRule{
		RuleID:     uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Kind:       req.Kind,
		Pattern:    req.Pattern,
		CategoryID: req.CategoryID,
		Priority:   req.Priority,
		IsActive:   isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save rule",
			slog.String("rule_id", rule.RuleID))
		return nil, err
	}

	s.LogInfo(ctx, "Rule created",
		slog.String("rule_id", rule.RuleID),
		slog.String("kind", string(rule.Kind)),
		slog.Int("priority", rule.Priority))
	return &rule, nil
}

func (s *ruleServiceImpl) UpdateRule(ctx context.Context, userID string, ruleID string, req dto.UpdateRuleRequest) (*domain.CategorizationRule, error) {
	rule, err := s.findOwnedRule(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		rule.Name = *req.Name
		updated = true
	}
	if req.Pattern != nil {
		rule.Pattern = *req.Pattern
		updated = true
	}
	if req.Priority != nil && *req.Priority != rule.Priority {
		if err := s.ensurePriorityFree(ctx, userID, *req.Priority, ruleID); err != nil {
			return nil, err
		}
		rule.Priority = *req.Priority
		updated = true
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return rule, nil
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	rule.LastUpdatedAt = now
	rule.LastUpdatedBy = userID

	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to update rule",
			slog.String("rule_id", ruleID))
		return nil, err
	}

	return rule, nil
}

func (s *ruleServiceImpl) DeleteRule(ctx context.Context, userID string, ruleID string) error {
	if _, err := s.findOwnedRule(ctx, userID, ruleID); err != nil {
		return err
	}

	if err := s.ruleRepo.DeleteRule(ctx, ruleID); err != nil {
		s.LogError(ctx, err, "Failed to delete rule",
			slog.String("rule_id", ruleID))
		return err
	}

	s.LogInfo(ctx, "Rule deleted",
		slog.String("rule_id", ruleID))
	return nil
}

func (s *ruleServiceImpl) ListRules(ctx context.Context, userID string) ([]domain.CategorizationRule, error) {
	rules, err := s.ruleRepo.ListRulesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rules")
		return nil, err
	}
	if rules == nil {
		return []domain.CategorizationRule{}, nil
	}
	return rules, nil
}

func (s *ruleServiceImpl) findOwnedRule(ctx context.Context, userID string, ruleID string) (*domain.CategorizationRule, error) {
	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find rule by ID",
				slog.String("rule_id", ruleID))
		}
		return nil, err
	}
	if rule.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return rule, nil
}

func (s *ruleServiceImpl) ensureCategoryVisible(ctx context.Context, userID string, categoryID string) error {
	category, err := s.catRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: target category %s does not exist", apperrors.ErrValidation, categoryID)
		}
		return err
	}
	if !category.IsSystem && category.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}

// ensurePriorityFree enforces per-owner priority uniqueness. excludeRuleID
// lets an update keep its own slot.
func (s *ruleServiceImpl) ensurePriorityFree(ctx context.Context, userID string, priority int, excludeRuleID string) error {
	existing, err := s.ruleRepo.FindRuleByPriority(ctx, userID, priority)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.RuleID == excludeRuleID {
		return nil
	}
	return fmt.Errorf("%w: priority %d already taken by rule %s", apperrors.ErrDuplicate, priority, existing.RuleID)
}
