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

type PgxTaskRepository struct {
	BaseRepository
}

func newPgxTaskRepository(pool *pgxpool.Pool) *PgxTaskRepository {
	return &PgxTaskRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTaskRepository implements the task and routine ports
var _ portsrepo.TaskRepository = (*PgxTaskRepository)(nil)
var _ portsrepo.RoutineRepository = (*PgxTaskRepository)(nil)

func toDomainTask(m models.Task) domain.Task {
	return domain.Task{
		TaskID:    m.TaskID,
		RoutineID: m.RoutineID,
		Name:      m.Name,
		Value:     m.Value,
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainRoutine(m models.Routine) domain.Routine {
	return domain.Routine{
		RoutineID: m.RoutineID,
		UserID:    m.UserID,
		Name:      m.Name,
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveTask inserts or updates a task.
func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	query := `
		INSERT INTO tasks (task_id, routine_id, name, value, is_active,
		                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (task_id) DO UPDATE SET
			routine_id = EXCLUDED.routine_id,
			name = EXCLUDED.name,
			value = EXCLUDED.value,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		task.TaskID,
		task.RoutineID,
		task.Name,
		task.Value,
		task.IsActive,
		task.CreatedAt,
		task.CreatedBy,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save task %s: %w", task.TaskID, err)
	}
	return nil
}

// FindTaskByID retrieves a task by its ID.
func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `
		SELECT task_id, routine_id, name, value, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM tasks
		WHERE task_id = $1;
	`
	var m models.Task
	err := r.Pool.QueryRow(ctx, query, taskID).Scan(
		&m.TaskID, &m.RoutineID, &m.Name, &m.Value, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}
	t := toDomainTask(m)
	return &t, nil
}

// ListTasks returns a page of tasks ordered by name.
func (r *PgxTaskRepository) ListTasks(ctx context.Context, limit, offset int) ([]domain.Task, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT task_id, routine_id, name, value, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM tasks
		ORDER BY name, task_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListTasksByRoutineID returns the active tasks belonging to a routine.
func (r *PgxTaskRepository) ListTasksByRoutineID(ctx context.Context, routineID string) ([]domain.Task, error) {
	query := `
		SELECT task_id, routine_id, name, value, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM tasks
		WHERE routine_id = $1 AND is_active
		ORDER BY name, task_id;
	`
	rows, err := r.Pool.Query(ctx, query, routineID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks for routine %s: %w", routineID, err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func scanTasks(rows pgx.Rows) ([]domain.Task, error) {
	tasks := []domain.Task{}
	for rows.Next() {
		var m models.Task
		if err := rows.Scan(&m.TaskID, &m.RoutineID, &m.Name, &m.Value, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, toDomainTask(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// SaveRoutine inserts or updates a routine.
func (r *PgxTaskRepository) SaveRoutine(ctx context.Context, routine domain.Routine) error {
	query := `
		INSERT INTO routines (routine_id, user_id, name, is_active,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (routine_id) DO UPDATE SET
			name = EXCLUDED.name,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		routine.RoutineID,
		routine.UserID,
		routine.Name,
		routine.IsActive,
		routine.CreatedAt,
		routine.CreatedBy,
		routine.LastUpdatedAt,
		routine.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save routine %s: %w", routine.RoutineID, err)
	}
	return nil
}

// FindRoutineByID retrieves a routine by its ID.
func (r *PgxTaskRepository) FindRoutineByID(ctx context.Context, routineID string) (*domain.Routine, error) {
	query := `
		SELECT routine_id, user_id, name, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM routines
		WHERE routine_id = $1;
	`
	var m models.Routine
	err := r.Pool.QueryRow(ctx, query, routineID).Scan(
		&m.RoutineID, &m.UserID, &m.Name, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find routine %s: %w", routineID, err)
	}
	rt := toDomainRoutine(m)
	return &rt, nil
}

// ListRoutinesByUser returns the user's routines ordered by name.
func (r *PgxTaskRepository) ListRoutinesByUser(ctx context.Context, userID string) ([]domain.Routine, error) {
	query := `
		SELECT routine_id, user_id, name, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM routines
		WHERE user_id = $1
		ORDER BY name, routine_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query routines for user %s: %w", userID, err)
	}
	defer rows.Close()

	routines := []domain.Routine{}
	for rows.Next() {
		var m models.Routine
		if err := rows.Scan(&m.RoutineID, &m.UserID, &m.Name, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan routine row: %w", err)
		}
		routines = append(routines, toDomainRoutine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routine rows: %w", err)
	}
	return routines, nil
}
