package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/core/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

type RuleServiceTestSuite struct {
	suite.Suite
	mockRuleRepo *MockRuleRepository
	mockCatRepo  *MockCategoryRepository
	service      portssvc.RuleSvcFacade
	userID       string
}

func (suite *RuleServiceTestSuite) SetupTest() {
	suite.mockRuleRepo = new(MockRuleRepository)
	suite.mockCatRepo = new(MockCategoryRepository)
	suite.service = services.NewRuleService(suite.mockRuleRepo, suite.mockCatRepo)
	suite.userID = "user-1"
}

func (suite *RuleServiceTestSuite) TestCreateRule_Success() {
	ctx := context.Background()
	suite.mockCatRepo.On("FindCategoryByID", ctx, "sys_coffee").Return(&domain.Category{
		CategoryID: "sys_coffee", IsSystem: true,
	}, nil).Once()
	suite.mockRuleRepo.On("FindRuleByPriority", ctx, suite.userID, 1).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRuleRepo.On("SaveRule", ctx, mock.MatchedBy(func(r domain.CategorizationRule) bool {
		return r.Kind == domain.RuleMerchant && r.IsActive && r.UserID == suite.userID
	})).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, suite.userID, dto.CreateRuleRequest{
		Name:       "Coffee runs",
		Kind:       domain.RuleMerchant,
		Pattern:    "Starbucks",
		CategoryID: "sys_coffee",
		Priority:   1,
	})

	suite.Require().NoError(err)
	suite.True(rule.IsActive)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func (suite *RuleServiceTestSuite) TestCreateRule_TakenPriorityIsDuplicate() {
	ctx := context.Background()
	suite.mockCatRepo.On("FindCategoryByID", ctx, "sys_coffee").Return(&domain.Category{
		CategoryID: "sys_coffee", IsSystem: true,
	}, nil).Once()
	suite.mockRuleRepo.On("FindRuleByPriority", ctx, suite.userID, 1).Return(&domain.CategorizationRule{
		RuleID: "rule-existing", UserID: suite.userID, Priority: 1,
	}, nil).Once()

	rule, err := suite.service.CreateRule(ctx, suite.userID, dto.CreateRuleRequest{
		Name:       "Coffee runs",
		Kind:       domain.RuleMerchant,
		Pattern:    "Starbucks",
		CategoryID: "sys_coffee",
		Priority:   1,
	})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(rule)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *RuleServiceTestSuite) TestCreateRule_MalformedAmountRangeRejected() {
	ctx := context.Background()
	suite.mockCatRepo.On("FindCategoryByID", ctx, "sys_other").Return(&domain.Category{
		CategoryID: "sys_other", IsSystem: true,
	}, nil).Once()
	suite.mockRuleRepo.On("FindRuleByPriority", ctx, suite.userID, 2).Return(nil, apperrors.ErrNotFound).Once()

	rule, err := suite.service.CreateRule(ctx, suite.userID, dto.CreateRuleRequest{
		Name:       "Mid-size payments",
		Kind:       domain.RuleAmountRange,
		Pattern:    "100:50", // max below min
		CategoryID: "sys_other",
		Priority:   2,
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(rule)
}

func (suite *RuleServiceTestSuite) TestUpdateRule_PriorityMoveChecksNewSlot() {
	ctx := context.Background()
	stored := &domain.CategorizationRule{
		RuleID: "rule-1", UserID: suite.userID, Name: "Coffee runs",
		Kind: domain.RuleMerchant, Pattern: "Starbucks", CategoryID: "sys_coffee",
		Priority: 1, IsActive: true,
	}
	suite.mockRuleRepo.On("FindRuleByID", ctx, "rule-1").Return(stored, nil).Once()
	suite.mockRuleRepo.On("FindRuleByPriority", ctx, suite.userID, 5).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRuleRepo.On("UpdateRule", ctx, mock.MatchedBy(func(r domain.CategorizationRule) bool {
		return r.Priority == 5
	})).Return(nil).Once()

	newPriority := 5
	rule, err := suite.service.UpdateRule(ctx, suite.userID, "rule-1", dto.UpdateRuleRequest{Priority: &newPriority})

	suite.Require().NoError(err)
	suite.Equal(5, rule.Priority)
}

func (suite *RuleServiceTestSuite) TestUpdateRule_KeepingOwnPrioritySlotIsFine() {
	ctx := context.Background()
	stored := &domain.CategorizationRule{
		RuleID: "rule-1", UserID: suite.userID, Name: "Coffee runs",
		Kind: domain.RuleMerchant, Pattern: "Starbucks", CategoryID: "sys_coffee",
		Priority: 1, IsActive: true,
	}
	suite.mockRuleRepo.On("FindRuleByID", ctx, "rule-1").Return(stored, nil).Once()
	suite.mockRuleRepo.On("UpdateRule", ctx, mock.AnythingOfType("domain.CategorizationRule")).Return(nil).Once()

	newName := "Morning coffee"
	rule, err := suite.service.UpdateRule(ctx, suite.userID, "rule-1", dto.UpdateRuleRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal("Morning coffee", rule.Name)
	// Name-only updates never consult the priority index.
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "FindRuleByPriority", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RuleServiceTestSuite) TestDeleteRule_OtherUsersRuleIsNotFound() {
	ctx := context.Background()
	suite.mockRuleRepo.On("FindRuleByID", ctx, "rule-1").Return(&domain.CategorizationRule{
		RuleID: "rule-1", UserID: "someone-else",
	}, nil).Once()

	err := suite.service.DeleteRule(ctx, suite.userID, "rule-1")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "DeleteRule", mock.Anything, mock.Anything)
}

func TestRuleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RuleServiceTestSuite))
}
