package repositories

import (
	"context"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
)

// UserRepository persists household members.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByName(ctx context.Context, name string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}
