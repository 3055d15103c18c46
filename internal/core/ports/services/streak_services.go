package services

import (
	"context"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
)

// StreakSvcFacade maintains per (user, routine) consecutive-day counters.
type StreakSvcFacade interface {
	// GetStreak lazily returns a zero streak for unknown pairs.
	GetStreak(ctx context.Context, userID, routineID string) (*domain.Streak, error)

	// AdviseRoutineCompleted is the live incremental path, called when all
	// of a routine's tasks for date are complete. Idempotent for repeated
	// same-day triggers. Never awards milestones.
	AdviseRoutineCompleted(ctx context.Context, userID, routineID string, date time.Time) (*domain.Streak, error)

	// TotalStreakAcrossRoutines sums currentCount over the user's streaks.
	TotalStreakAcrossRoutines(ctx context.Context, userID string) (int, error)
}

// RecalculationSvcFacade is the nightly authoritative recompute.
type RecalculationSvcFacade interface {
	// RecalculateAll recomputes every tracked pair from completion
	// history, detects breaks and pays milestone bonuses exactly once per
	// crossing. Per-pair failures are collected, not fatal.
	RecalculateAll(ctx context.Context) (*domain.RecalculationResult, error)
}
