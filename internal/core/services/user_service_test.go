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
	"github.com/spendlens/spendlens_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "sam@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		// The password never reaches the repository in the clear.
		return u.Email == "sam@example.com" && u.PasswordHash != "hunter22secret"
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:    "sam@example.com",
		Name:     "Sam",
		Password: "hunter22secret",
	})

	suite.Require().NoError(err)
	suite.Equal("sam@example.com", user.Email)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmailRejected() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "sam@example.com").Return(&domain.User{
		UserID: "user-existing", Email: "sam@example.com",
	}, nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:    "sam@example.com",
		Name:     "Sam",
		Password: "hunter22secret",
	})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter22secret")
	suite.Require().NoError(err)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "sam@example.com").Return(&domain.User{
		UserID: "user-1", Email: "sam@example.com", PasswordHash: hash,
	}, nil).Once()

	user, err := suite.service.VerifyCredentials(ctx, "sam@example.com", "hunter22secret")

	suite.Require().NoError(err)
	suite.Equal("user-1", user.UserID)
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_WrongPasswordIsUnauthorized() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter22secret")
	suite.Require().NoError(err)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "sam@example.com").Return(&domain.User{
		UserID: "user-1", Email: "sam@example.com", PasswordHash: hash,
	}, nil).Once()

	user, err := suite.service.VerifyCredentials(ctx, "sam@example.com", "not-the-password")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_UnknownEmailLooksLikeWrongPassword() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.VerifyCredentials(ctx, "nobody@example.com", "whatever")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestUpdateUser_PasswordIsRehashed() {
	ctx := context.Background()
	oldHash, err := utils.HashPassword("old-password-1")
	suite.Require().NoError(err)

	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(&domain.User{
		UserID: "user-1", Email: "sam@example.com", Name: "Sam", PasswordHash: oldHash,
	}, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.PasswordHash != oldHash && u.PasswordHash != "new-password-1" &&
			utils.CheckPasswordHash("new-password-1", u.PasswordHash)
	})).Return(nil).Once()

	newPassword := "new-password-1"
	user, err := suite.service.UpdateUser(ctx, "user-1", dto.UpdateUserRequest{Password: &newPassword})

	suite.Require().NoError(err)
	suite.Equal("Sam", user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NoChangesSkipsRepository() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(&domain.User{
		UserID: "user-1", Name: "Sam",
	}, nil).Once()

	user, err := suite.service.UpdateUser(ctx, "user-1", dto.UpdateUserRequest{})

	suite.Require().NoError(err)
	suite.Equal("Sam", user.Name)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
