package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/apperrors"
	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	portsrepo "github.com/choretrack/chore_tracker_app/internal/core/ports/repositories"
	"github.com/choretrack/chore_tracker_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompletionRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerRepository
}

// newPgxCompletionRepository creates a new repository for completions.
// It takes the ledger repository so a completion and its monetary effect
// can share one DB transaction.
func newPgxCompletionRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerRepository) *PgxCompletionRepository {
	return &PgxCompletionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

// Ensure PgxCompletionRepository implements portsrepo.CompletionRepository
var _ portsrepo.CompletionRepository = (*PgxCompletionRepository)(nil)

func toDomainCompletion(m models.Completion) domain.Completion {
	return domain.Completion{
		CompletionID:   m.CompletionID,
		TaskID:         m.TaskID,
		UserID:         m.UserID,
		CompletedAt:    m.CompletedAt,
		CompletionDate: m.CompletionDate,
	}
}

// SaveCompletion inserts the completion row and, when credit is non-nil,
// appends the earnings transaction in the same DB transaction. The unique
// index on (task_id, user_id, completion_date) makes the existence check
// and the insert one atomic step; a violation maps to ErrDuplicate.
// The returned account is nil when no credit was requested.
func (r *PgxCompletionRepository) SaveCompletion(ctx context.Context, completion domain.Completion, credit *domain.Transaction) (*domain.BalanceAccount, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	insert := `
		INSERT INTO completions (completion_id, task_id, user_id, completed_at, completion_date)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = tx.Exec(ctx, insert,
		completion.CompletionID,
		completion.TaskID,
		completion.UserID,
		completion.CompletedAt,
		completion.CompletionDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, fmt.Errorf("%w: task %s already completed by user %s on %s",
				apperrors.ErrDuplicate, completion.TaskID, completion.UserID,
				completion.CompletionDate.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to insert completion %s: %w", completion.CompletionID, err)
	}

	var account *domain.BalanceAccount
	if credit != nil {
		account, err = r.ledgerRepo.AppendTransactionInTx(ctx, tx, *credit, false)
		if err != nil {
			return nil, fmt.Errorf("failed to credit earnings for completion %s: %w", completion.CompletionID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteCompletion removes the completion and, when reversal is non-nil,
// posts the compensating transaction atomically.
func (r *PgxCompletionRepository) DeleteCompletion(ctx context.Context, completionID string, reversal *domain.Transaction) (*domain.BalanceAccount, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM completions WHERE completion_id = $1;`, completionID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete completion %s: %w", completionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	var account *domain.BalanceAccount
	if reversal != nil {
		account, err = r.ledgerRepo.AppendTransactionInTx(ctx, tx, *reversal, false)
		if err != nil {
			return nil, fmt.Errorf("failed to reverse earnings for completion %s: %w", completionID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return account, nil
}

// FindCompletionByID retrieves a completion by its ID.
func (r *PgxCompletionRepository) FindCompletionByID(ctx context.Context, completionID string) (*domain.Completion, error) {
	query := `
		SELECT completion_id, task_id, user_id, completed_at, completion_date
		FROM completions
		WHERE completion_id = $1;
	`
	var m models.Completion
	err := r.Pool.QueryRow(ctx, query, completionID).Scan(
		&m.CompletionID, &m.TaskID, &m.UserID, &m.CompletedAt, &m.CompletionDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find completion %s: %w", completionID, err)
	}
	c := toDomainCompletion(m)
	return &c, nil
}

// FindCompletionsForUserOnDate lists the user's completions on one day.
func (r *PgxCompletionRepository) FindCompletionsForUserOnDate(ctx context.Context, userID string, date time.Time) ([]domain.Completion, error) {
	query := `
		SELECT completion_id, task_id, user_id, completed_at, completion_date
		FROM completions
		WHERE user_id = $1 AND completion_date = $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions for user %s: %w", userID, err)
	}
	defer rows.Close()

	completions := []domain.Completion{}
	for rows.Next() {
		var m models.Completion
		if err := rows.Scan(&m.CompletionID, &m.TaskID, &m.UserID, &m.CompletedAt, &m.CompletionDate); err != nil {
			return nil, fmt.Errorf("failed to scan completion row: %w", err)
		}
		completions = append(completions, toDomainCompletion(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completion rows: %w", err)
	}
	return completions, nil
}

// FindCompletionDatesForRoutine returns the distinct days on which the
// user completed at least one task of the routine, newest first.
func (r *PgxCompletionRepository) FindCompletionDatesForRoutine(ctx context.Context, userID, routineID string) ([]time.Time, error) {
	query := `
		SELECT c.completion_date
		FROM completions c
		JOIN tasks t ON t.task_id = c.task_id
		WHERE c.user_id = $1 AND t.routine_id = $2
		GROUP BY c.completion_date
		ORDER BY c.completion_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, routineID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completion dates for routine %s: %w", routineID, err)
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan completion date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completion dates: %w", err)
	}
	return dates, nil
}

// ListTrackedPairs returns every (user, routine) pair with at least one
// completion against a routine task.
func (r *PgxCompletionRepository) ListTrackedPairs(ctx context.Context) ([]domain.StreakKey, error) {
	query := `
		SELECT DISTINCT c.user_id, t.routine_id
		FROM completions c
		JOIN tasks t ON t.task_id = c.task_id
		WHERE t.routine_id IS NOT NULL;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked pairs: %w", err)
	}
	defer rows.Close()

	pairs := []domain.StreakKey{}
	for rows.Next() {
		var key domain.StreakKey
		if err := rows.Scan(&key.UserID, &key.RoutineID); err != nil {
			return nil, fmt.Errorf("failed to scan tracked pair: %w", err)
		}
		pairs = append(pairs, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracked pairs: %w", err)
	}
	return pairs, nil
}
