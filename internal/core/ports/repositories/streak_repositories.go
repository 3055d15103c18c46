package repositories

import (
	"context"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
)

// StreakRepository persists per (user, routine) streak counters.
type StreakRepository interface {
	// FindStreak returns ErrNotFound when no row exists yet; callers decide
	// whether to lazily create.
	FindStreak(ctx context.Context, userID, routineID string) (*domain.Streak, error)

	// UpsertStreak inserts or overwrites the counters for the pair.
	UpsertStreak(ctx context.Context, streak domain.Streak) error

	ListStreaksByUser(ctx context.Context, userID string) ([]domain.Streak, error)

	// ListTrackedPairs returns every pair that has a streak row.
	ListTrackedPairs(ctx context.Context) ([]domain.StreakKey, error)
}

// MilestoneRepository reads the static milestone configuration.
type MilestoneRepository interface {
	ListMilestones(ctx context.Context) ([]domain.Milestone, error)
}
