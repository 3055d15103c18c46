package services

import (
	"context"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	"github.com/choretrack/chore_tracker_app/internal/dto"
)

// TaskSvcFacade owns task CRUD and the task read model.
type TaskSvcFacade interface {
	CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorUserID string) (*domain.Task, error)
	GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, limit, offset int) ([]domain.Task, error)

	// TaskValue resolves the read model used by the completion tracker.
	TaskValue(ctx context.Context, taskID string) (*domain.Task, error)

	// RoutineTasksFor lists the active tasks of a routine.
	RoutineTasksFor(ctx context.Context, routineID string) ([]domain.Task, error)
}

// RoutineSvcFacade owns routine CRUD.
type RoutineSvcFacade interface {
	CreateRoutine(ctx context.Context, req dto.CreateRoutineRequest, creatorUserID string) (*domain.Routine, error)
	GetRoutineByID(ctx context.Context, routineID string) (*domain.Routine, error)
	ListRoutinesByUser(ctx context.Context, userID string) ([]domain.Routine, error)
}
