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
	"github.com/google/uuid"
)

// completionService records task completions and their monetary effect.
// The completion insert and the earnings credit share one DB transaction
// in the repository; the streak advice and event emission run after commit
// and are best-effort.
type completionService struct {
	completionRepo portsrepo.CompletionRepository
	taskSvc        portssvc.TaskSvcFacade
	ledgerSvc      portssvc.LedgerSvcFacade
	streakSvc      portssvc.StreakSvcFacade
	notifier       portssvc.NotificationSink
	undoWindow     time.Duration
	loc            *time.Location
}

// NewCompletionService creates the completion facade.
func NewCompletionService(
	completionRepo portsrepo.CompletionRepository,
	taskSvc portssvc.TaskSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	streakSvc portssvc.StreakSvcFacade,
	notifier portssvc.NotificationSink,
	undoWindow time.Duration,
	loc *time.Location,
) portssvc.CompletionSvcFacade {
	return &completionService{
		completionRepo: completionRepo,
		taskSvc:        taskSvc,
		ledgerSvc:      ledgerSvc,
		streakSvc:      streakSvc,
		notifier:       notifier,
		undoWindow:     undoWindow,
		loc:            loc,
	}
}

var _ portssvc.CompletionSvcFacade = (*completionService)(nil)

// Complete records that requestingUserID finished taskID. A nil date means
// today in the canonical timezone.
func (s *completionService) Complete(ctx context.Context, taskID, requestingUserID string, date *time.Time) (*domain.CompletionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	task, err := s.taskSvc.TaskValue(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task %s: %w", taskID, err)
	}
	if !task.IsActive {
		return nil, fmt.Errorf("%w: task %s is not active", apperrors.ErrValidation, taskID)
	}

	now := time.Now()
	day := dates.Today(s.loc)
	if date != nil {
		day = dates.DayOf(*date, s.loc)
		if day.After(dates.Today(s.loc)) {
			return nil, fmt.Errorf("%w: completion date cannot be in the future", apperrors.ErrValidation)
		}
	}

	completion := domain.Completion{
		CompletionID:   uuid.NewString(),
		TaskID:         taskID,
		UserID:         requestingUserID,
		CompletedAt:    now,
		CompletionDate: day,
	}

	var credit *domain.Transaction
	if task.Value.IsPositive() {
		credit = &domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        requestingUserID,
			Amount:        task.Value,
			Kind:          domain.KindEarned,
			Description:   "Completed: " + task.Name,
			CreatedAt:     now,
		}
	}

	account, err := s.completionRepo.SaveCompletion(ctx, completion, credit)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: task already completed today", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}
	if account == nil {
		// Zero-value task posts no credit; fetch the balance separately.
		account, err = s.ledgerSvc.GetBalance(ctx, requestingUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to read balance after completion: %w", err)
		}
	}

	logger.Info("completion recorded",
		"completionID", completion.CompletionID,
		"taskID", taskID,
		"userID", requestingUserID,
		"completionDate", day.Format("2006-01-02"),
	)

	s.notifier.Emit(requestingUserID, portssvc.EventTaskCompleted,
		fmt.Sprintf("Completed %q", task.Name))

	// Best-effort: a failed streak advice never fails the completion, the
	// nightly recalculation recounts from history anyway.
	if task.RoutineID != nil {
		if err := s.adviseIfRoutineDone(ctx, *task.RoutineID, requestingUserID, day); err != nil {
			logger.Warn("streak advice failed",
				"routineID", *task.RoutineID,
				"userID", requestingUserID,
				"error", err,
			)
		}
	}

	return &domain.CompletionResult{
		Completion: completion,
		Balance:    *account,
		CanUndo:    completion.CanUndoAt(time.Now(), s.undoWindow),
	}, nil
}

// adviseIfRoutineDone advances the streak when every active task of the
// routine is now complete for day.
func (s *completionService) adviseIfRoutineDone(ctx context.Context, routineID, userID string, day time.Time) error {
	routineTasks, err := s.taskSvc.RoutineTasksFor(ctx, routineID)
	if err != nil {
		return err
	}
	if len(routineTasks) == 0 {
		return nil
	}

	completions, err := s.completionRepo.FindCompletionsForUserOnDate(ctx, userID, day)
	if err != nil {
		return err
	}
	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		done[c.TaskID] = true
	}
	for _, t := range routineTasks {
		if !done[t.TaskID] {
			return nil
		}
	}

	_, err = s.streakSvc.AdviseRoutineCompleted(ctx, userID, routineID, day)
	return err
}

// Undo deletes the completion and reverses its monetary effect, both in
// one DB transaction.
func (s *completionService) Undo(ctx context.Context, completionID, requestingUserID string) (*domain.BalanceAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	completion, err := s.completionRepo.FindCompletionByID(ctx, completionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find completion %s: %w", completionID, err)
	}
	if completion.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: completion belongs to another user", apperrors.ErrForbidden)
	}
	if !completion.CanUndoAt(time.Now(), s.undoWindow) {
		return nil, fmt.Errorf("%w: completion %s is older than %s",
			apperrors.ErrUndoWindowExpired, completionID, s.undoWindow)
	}

	task, err := s.taskSvc.TaskValue(ctx, completion.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task %s: %w", completion.TaskID, err)
	}

	var reversal *domain.Transaction
	if task.Value.IsPositive() {
		reversal = &domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        requestingUserID,
			Amount:        task.Value.Neg(),
			Kind:          domain.KindAdjustment,
			Description:   "Undo: " + task.Name,
			CreatedAt:     time.Now(),
		}
	}

	account, err := s.completionRepo.DeleteCompletion(ctx, completionID, reversal)
	if err != nil {
		return nil, fmt.Errorf("failed to undo completion %s: %w", completionID, err)
	}
	if account == nil {
		account, err = s.ledgerSvc.GetBalance(ctx, requestingUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to read balance after undo: %w", err)
		}
	}

	logger.Info("completion undone",
		"completionID", completionID,
		"taskID", completion.TaskID,
		"userID", requestingUserID,
	)
	s.notifier.Emit(requestingUserID, portssvc.EventCompletionUndone,
		fmt.Sprintf("Undid %q", task.Name))

	return account, nil
}

// CanUndo reports whether the completion is still inside its undo window.
func (s *completionService) CanUndo(ctx context.Context, completionID string) (bool, error) {
	completion, err := s.completionRepo.FindCompletionByID(ctx, completionID)
	if err != nil {
		return false, fmt.Errorf("failed to find completion %s: %w", completionID, err)
	}
	return completion.CanUndoAt(time.Now(), s.undoWindow), nil
}
