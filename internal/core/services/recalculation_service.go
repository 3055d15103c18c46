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

// recalculationService is the nightly authority on streak counts. It
// recomputes every tracked pair from completion history, so whatever undo
// or backfill did to the live counters gets corrected here. It is also the
// only place milestone bonuses are paid.
type recalculationService struct {
	completionRepo portsrepo.CompletionRepository
	streakRepo     portsrepo.StreakRepository
	milestoneRepo  portsrepo.MilestoneRepository
	ledgerSvc      portssvc.LedgerSvcFacade
	notifier       portssvc.NotificationSink
	loc            *time.Location
}

// NewRecalculationService creates the nightly recalculation facade.
func NewRecalculationService(
	completionRepo portsrepo.CompletionRepository,
	streakRepo portsrepo.StreakRepository,
	milestoneRepo portsrepo.MilestoneRepository,
	ledgerSvc portssvc.LedgerSvcFacade,
	notifier portssvc.NotificationSink,
	loc *time.Location,
) portssvc.RecalculationSvcFacade {
	return &recalculationService{
		completionRepo: completionRepo,
		streakRepo:     streakRepo,
		milestoneRepo:  milestoneRepo,
		ledgerSvc:      ledgerSvc,
		notifier:       notifier,
		loc:            loc,
	}
}

var _ portssvc.RecalculationSvcFacade = (*recalculationService)(nil)

// RecalculateAll processes every tracked pair independently. A pair failure
// is collected into the result and never aborts the run; only failing to
// enumerate pairs or milestones at the start is fatal.
func (s *recalculationService) RecalculateAll(ctx context.Context) (*domain.RecalculationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	started := time.Now()

	milestones, err := s.milestoneRepo.ListMilestones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load milestones: %w", err)
	}

	pairs, err := s.trackedPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate tracked pairs: %w", err)
	}

	today := dates.Today(s.loc)
	result := &domain.RecalculationResult{}

	for _, key := range pairs {
		broken, paid, err := s.recalculatePair(ctx, key, today, milestones)
		result.PairsProcessed++
		if err != nil {
			result.FailedPairs++
			result.FailureMessages = append(result.FailureMessages,
				fmt.Sprintf("user %s routine %s: %v", key.UserID, key.RoutineID, err))
			logger.Error("streak recalculation failed for pair",
				"userID", key.UserID,
				"routineID", key.RoutineID,
				"error", err,
			)
			continue
		}
		if broken {
			result.StreaksBroken++
		}
		result.MilestonesPaid += paid
	}

	logger.Info("streak recalculation finished",
		"pairsProcessed", result.PairsProcessed,
		"streaksBroken", result.StreaksBroken,
		"milestonesPaid", result.MilestonesPaid,
		"failedPairs", result.FailedPairs,
		"duration", time.Since(started).String(),
	)
	return result, nil
}

// trackedPairs is the union of pairs with a streak row and pairs derivable
// from completion history, so a pair whose streak row was never created
// still gets counted.
func (s *recalculationService) trackedPairs(ctx context.Context) ([]domain.StreakKey, error) {
	fromStreaks, err := s.streakRepo.ListTrackedPairs(ctx)
	if err != nil {
		return nil, err
	}
	fromCompletions, err := s.completionRepo.ListTrackedPairs(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.StreakKey]bool, len(fromStreaks)+len(fromCompletions))
	pairs := make([]domain.StreakKey, 0, len(fromStreaks)+len(fromCompletions))
	for _, key := range append(fromStreaks, fromCompletions...) {
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, key)
	}
	return pairs, nil
}

func (s *recalculationService) recalculatePair(ctx context.Context, key domain.StreakKey, today time.Time, milestones []domain.Milestone) (bool, int, error) {
	history, err := s.completionRepo.FindCompletionDatesForRoutine(ctx, key.UserID, key.RoutineID)
	if err != nil {
		return false, 0, err
	}

	newCount := countBack(history, today)

	stored, err := s.streakRepo.FindStreak(ctx, key.UserID, key.RoutineID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return false, 0, err
		}
		stored = &domain.Streak{UserID: key.UserID, RoutineID: key.RoutineID}
	}

	broken := newCount < stored.CurrentCount
	if broken {
		s.notifier.Emit(key.UserID, portssvc.EventStreakBroken,
			fmt.Sprintf("Streak of %d day(s) ended", stored.CurrentCount))
	}

	paid := 0
	if newCount > stored.CurrentCount {
		for _, m := range milestones {
			if stored.CurrentCount < m.Days && newCount >= m.Days {
				if err := s.payMilestone(ctx, key.UserID, m); err != nil {
					return broken, paid, err
				}
				paid++
			}
		}
	}

	now := time.Now()
	stored.CurrentCount = newCount
	if newCount > stored.BestCount {
		stored.BestCount = newCount
	}
	if len(history) > 0 {
		last := history[0]
		stored.LastCompletionDate = &last
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
		stored.CreatedBy = key.UserID
	}
	stored.LastUpdatedAt = now
	stored.LastUpdatedBy = key.UserID

	if err := s.streakRepo.UpsertStreak(ctx, *stored); err != nil {
		return broken, paid, err
	}
	return broken, paid, nil
}

func (s *recalculationService) payMilestone(ctx context.Context, userID string, m domain.Milestone) error {
	description := fmt.Sprintf("Streak milestone: %s", m.Label)
	if _, err := s.ledgerSvc.Credit(ctx, userID, m.Amount, domain.KindBonus, description); err != nil {
		return fmt.Errorf("failed to pay %d-day milestone: %w", m.Days, err)
	}
	s.notifier.Emit(userID, portssvc.EventMilestoneReached,
		fmt.Sprintf("%s! Earned %s", m.Label, m.Amount.StringFixed(2)))
	return nil
}

// countBack counts consecutive calendar days with at least one completion,
// walking backward from the newest entry. The chain only counts when it is
// anchored at today or yesterday; anything older means the streak is over.
func countBack(newestFirst []time.Time, today time.Time) int {
	if len(newestFirst) == 0 {
		return 0
	}
	newest := newestFirst[0]
	if !dates.SameDay(newest, today) && !dates.SameDay(newest, dates.PrevDay(today)) {
		return 0
	}

	count := 1
	prev := newest
	for _, d := range newestFirst[1:] {
		if !dates.SameDay(d, dates.PrevDay(prev)) {
			break
		}
		count++
		prev = d
	}
	return count
}
