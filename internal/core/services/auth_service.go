package services

import (
	"context"

	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
	"github.com/spendlens/spendlens_backend/internal/platform/config"
	"github.com/spendlens/spendlens_backend/internal/utils"
)

// authServiceImpl implements the AuthSvcFacade interface. It verifies
// credentials through the user service and issues signed JWTs from the
// application configuration.
type authServiceImpl struct {
	BaseService
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.AuthSvcFacade {
	return &authServiceImpl{
		cfg:         cfg,
		userService: userService,
	}
}

// Ensure authServiceImpl implements the AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authServiceImpl)(nil)

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userService.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token")
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.cfg.JWTExpiryDuration.Seconds()),
		User:      dto.ToUserResponse(user),
	}, nil
}
