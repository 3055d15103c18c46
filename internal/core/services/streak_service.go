package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/apperrors"
	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	portsrepo "github.com/choretrack/chore_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/choretrack/chore_tracker_app/internal/utils/dates"
)

// streakService maintains per (user, routine) consecutive-day counters on
// the live path. It only ever moves a streak forward; the nightly
// recalculation is the authority that detects breaks and pays milestones.
type streakService struct {
	streakRepo portsrepo.StreakRepository
	notifier   portssvc.NotificationSink
}

// NewStreakService creates the streak facade.
func NewStreakService(streakRepo portsrepo.StreakRepository, notifier portssvc.NotificationSink) portssvc.StreakSvcFacade {
	return &streakService{streakRepo: streakRepo, notifier: notifier}
}

var _ portssvc.StreakSvcFacade = (*streakService)(nil)

// GetStreak returns a zero streak for pairs that have never completed a
// routine; no row is created until the first advance.
func (s *streakService) GetStreak(ctx context.Context, userID, routineID string) (*domain.Streak, error) {
	streak, err := s.streakRepo.FindStreak(ctx, userID, routineID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.Streak{UserID: userID, RoutineID: routineID}, nil
		}
		return nil, fmt.Errorf("failed to get streak for user %s routine %s: %w", userID, routineID, err)
	}
	return streak, nil
}

// AdviseRoutineCompleted applies the incremental streak rule for date:
// yesterday extends, same day is a no-op, anything older restarts at 1.
func (s *streakService) AdviseRoutineCompleted(ctx context.Context, userID, routineID string, date time.Time) (*domain.Streak, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	streak, err := s.GetStreak(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	last := streak.LastCompletionDate
	switch {
	case last != nil && dates.SameDay(*last, date):
		// Re-trigger for the same day, nothing to do.
		return streak, nil
	case last != nil && date.Before(*last):
		// Backfill older than the last counted day; the nightly
		// recalculation will recount it.
		return streak, nil
	case last != nil && dates.SameDay(*last, dates.PrevDay(date)):
		streak.CurrentCount++
	default:
		streak.CurrentCount = 1
	}

	if streak.CurrentCount > streak.BestCount {
		streak.BestCount = streak.CurrentCount
	}
	d := date
	streak.LastCompletionDate = &d
	if streak.CreatedAt.IsZero() {
		streak.CreatedAt = now
		streak.CreatedBy = userID
	}
	streak.LastUpdatedAt = now
	streak.LastUpdatedBy = userID

	if err := s.streakRepo.UpsertStreak(ctx, *streak); err != nil {
		return nil, fmt.Errorf("failed to persist streak for user %s routine %s: %w", userID, routineID, err)
	}

	logger.Info("streak advanced",
		"userID", userID,
		"routineID", routineID,
		"currentCount", streak.CurrentCount,
	)
	s.notifier.Emit(userID, portssvc.EventStreakAdvanced,
		fmt.Sprintf("Streak at %d day(s)", streak.CurrentCount))

	return streak, nil
}

// TotalStreakAcrossRoutines sums the user's current counts.
func (s *streakService) TotalStreakAcrossRoutines(ctx context.Context, userID string) (int, error) {
	streaks, err := s.streakRepo.ListStreaksByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list streaks for user %s: %w", userID, err)
	}
	total := 0
	for _, st := range streaks {
		total += st.CurrentCount
	}
	return total, nil
}
