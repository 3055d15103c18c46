package repositories

import (
	"context"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
)

// CompletionRepository persists task completions. The two mutating methods
// are units of work: the completion row and its ledger effect commit or
// roll back together, so no observable state ever shows a completion
// without its earnings or vice versa.
type CompletionRepository interface {
	// SaveCompletion inserts the completion and, when credit is non-nil,
	// appends the earnings transaction in the same DB transaction.
	// A duplicate (taskID, userID, completionDate) maps to ErrDuplicate.
	// The returned account reflects the committed balance.
	SaveCompletion(ctx context.Context, completion domain.Completion, credit *domain.Transaction) (*domain.BalanceAccount, error)

	// DeleteCompletion removes the completion and, when reversal is
	// non-nil, appends the compensating transaction atomically.
	DeleteCompletion(ctx context.Context, completionID string, reversal *domain.Transaction) (*domain.BalanceAccount, error)

	FindCompletionByID(ctx context.Context, completionID string) (*domain.Completion, error)

	// FindCompletionsForUserOnDate lists the user's completions on one
	// calendar day; the live path uses it to decide routine completeness.
	FindCompletionsForUserOnDate(ctx context.Context, userID string, date time.Time) ([]domain.Completion, error)

	// FindCompletionDatesForRoutine returns the distinct calendar days on
	// which the user completed at least one task of the routine, newest
	// first. The recalculation job scans these.
	FindCompletionDatesForRoutine(ctx context.Context, userID, routineID string) ([]time.Time, error)

	// ListTrackedPairs returns every (user, routine) pair that has at least
	// one completion against a routine task.
	ListTrackedPairs(ctx context.Context) ([]domain.StreakKey, error)
}
