package services

import (
	"context"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
)

// CompletionSvcFacade records and undoes task completions.
type CompletionSvcFacade interface {
	// Complete records that requestingUserID finished taskID on date (nil
	// means today in the canonical timezone). The completion insert and
	// the earnings credit are one atomic unit. A repeat call for the same
	// (task, user, day) fails with ErrConflict.
	Complete(ctx context.Context, taskID, requestingUserID string, date *time.Time) (*domain.CompletionResult, error)

	// Undo deletes the completion and reverses its monetary effect inside
	// the undo window. ErrNotFound / ErrForbidden / ErrUndoWindowExpired.
	Undo(ctx context.Context, completionID, requestingUserID string) (*domain.BalanceAccount, error)

	// CanUndo reports whether the completion is still inside its window.
	CanUndo(ctx context.Context, completionID string) (bool, error)
}
