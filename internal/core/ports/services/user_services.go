package services

import (
	"context"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	"github.com/choretrack/chore_tracker_app/internal/dto"
)

// UserSvcFacade owns household members.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// VerifyCredentials returns the user when name/password match.
	VerifyCredentials(ctx context.Context, name, password string) (*domain.User, error)
}

// AuthSvcFacade issues access tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
