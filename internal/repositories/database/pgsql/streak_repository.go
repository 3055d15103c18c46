package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/choretrack/chore_tracker_app/internal/apperrors"
	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	portsrepo "github.com/choretrack/chore_tracker_app/internal/core/ports/repositories"
	"github.com/choretrack/chore_tracker_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStreakRepository struct {
	BaseRepository
}

func newPgxStreakRepository(pool *pgxpool.Pool) *PgxStreakRepository {
	return &PgxStreakRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxStreakRepository implements the streak and milestone ports
var _ portsrepo.StreakRepository = (*PgxStreakRepository)(nil)
var _ portsrepo.MilestoneRepository = (*PgxStreakRepository)(nil)

func toDomainStreak(m models.Streak) domain.Streak {
	return domain.Streak{
		UserID:             m.UserID,
		RoutineID:          m.RoutineID,
		CurrentCount:       m.CurrentCount,
		BestCount:          m.BestCount,
		LastCompletionDate: m.LastCompletionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// FindStreak retrieves the counters for one (user, routine) pair.
func (r *PgxStreakRepository) FindStreak(ctx context.Context, userID, routineID string) (*domain.Streak, error) {
	query := `
		SELECT user_id, routine_id, current_count, best_count, last_completion_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM streaks
		WHERE user_id = $1 AND routine_id = $2;
	`
	var m models.Streak
	err := r.Pool.QueryRow(ctx, query, userID, routineID).Scan(
		&m.UserID, &m.RoutineID, &m.CurrentCount, &m.BestCount, &m.LastCompletionDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find streak for user %s routine %s: %w", userID, routineID, err)
	}
	s := toDomainStreak(m)
	return &s, nil
}

// UpsertStreak writes the counters, creating the row on first advance.
func (r *PgxStreakRepository) UpsertStreak(ctx context.Context, streak domain.Streak) error {
	query := `
		INSERT INTO streaks (user_id, routine_id, current_count, best_count, last_completion_date,
		                     created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, routine_id) DO UPDATE SET
			current_count = EXCLUDED.current_count,
			best_count = EXCLUDED.best_count,
			last_completion_date = EXCLUDED.last_completion_date,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		streak.UserID,
		streak.RoutineID,
		streak.CurrentCount,
		streak.BestCount,
		streak.LastCompletionDate,
		streak.CreatedAt,
		streak.CreatedBy,
		streak.LastUpdatedAt,
		streak.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert streak for user %s routine %s: %w", streak.UserID, streak.RoutineID, err)
	}
	return nil
}

// ListStreaksByUser returns every streak row for one user.
func (r *PgxStreakRepository) ListStreaksByUser(ctx context.Context, userID string) ([]domain.Streak, error) {
	query := `
		SELECT user_id, routine_id, current_count, best_count, last_completion_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM streaks
		WHERE user_id = $1
		ORDER BY routine_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query streaks for user %s: %w", userID, err)
	}
	defer rows.Close()

	streaks := []domain.Streak{}
	for rows.Next() {
		var m models.Streak
		if err := rows.Scan(&m.UserID, &m.RoutineID, &m.CurrentCount, &m.BestCount, &m.LastCompletionDate,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan streak row: %w", err)
		}
		streaks = append(streaks, toDomainStreak(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating streak rows: %w", err)
	}
	return streaks, nil
}

// ListTrackedPairs returns every pair that has a streak row.
func (r *PgxStreakRepository) ListTrackedPairs(ctx context.Context) ([]domain.StreakKey, error) {
	rows, err := r.Pool.Query(ctx, `SELECT user_id, routine_id FROM streaks;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query streak pairs: %w", err)
	}
	defer rows.Close()

	pairs := []domain.StreakKey{}
	for rows.Next() {
		var key domain.StreakKey
		if err := rows.Scan(&key.UserID, &key.RoutineID); err != nil {
			return nil, fmt.Errorf("failed to scan streak pair: %w", err)
		}
		pairs = append(pairs, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating streak pairs: %w", err)
	}
	return pairs, nil
}

// ListMilestones returns the bonus schedule sorted by ascending day count.
func (r *PgxStreakRepository) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	rows, err := r.Pool.Query(ctx, `SELECT days, amount, label FROM milestones ORDER BY days;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	milestones := []domain.Milestone{}
	for rows.Next() {
		var m domain.Milestone
		if err := rows.Scan(&m.Days, &m.Amount, &m.Label); err != nil {
			return nil, fmt.Errorf("failed to scan milestone row: %w", err)
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating milestone rows: %w", err)
	}
	return milestones, nil
}
