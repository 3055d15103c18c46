package repositories

import (
	"context"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
)

// TaskRepository persists tasks and serves the read model the completion
// tracker and streak engine consume.
type TaskRepository interface {
	SaveTask(ctx context.Context, task domain.Task) error
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, limit, offset int) ([]domain.Task, error)
	ListTasksByRoutineID(ctx context.Context, routineID string) ([]domain.Task, error)
}

// RoutineRepository persists routines.
type RoutineRepository interface {
	SaveRoutine(ctx context.Context, routine domain.Routine) error
	FindRoutineByID(ctx context.Context, routineID string) (*domain.Routine, error)
	ListRoutinesByUser(ctx context.Context, userID string) ([]domain.Routine, error)
}
