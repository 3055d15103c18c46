package services

import (
	"context"
	"fmt"
	"time"

	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/dto"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/choretrack/chore_tracker_app/internal/platform/config"
	"github.com/golang-jwt/jwt/v5"
)

// authService checks credentials and issues signed access tokens.
type authService struct {
	userSvc portssvc.UserSvcFacade
	cfg     *config.Config
}

// NewAuthService creates the auth facade.
func NewAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade) portssvc.AuthSvcFacade {
	return &authService{userSvc: userSvc, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userSvc.VerifyCredentials(ctx, req.Name, req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		Issuer:    s.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiryDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	logger.Info("user logged in", "userID", user.UserID)
	return &dto.LoginResponse{
		UserID:      user.UserID,
		Name:        user.Name,
		AccessToken: signed,
	}, nil
}
