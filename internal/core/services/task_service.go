package services

import (
	"context"
	"fmt"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/apperrors"
	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	portsrepo "github.com/choretrack/chore_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/dto"
	"github.com/google/uuid"
)

// taskService owns task CRUD and the read model the completion tracker
// consumes.
type taskService struct {
	taskRepo    portsrepo.TaskRepository
	routineRepo portsrepo.RoutineRepository
}

// NewTaskService creates the task facade.
func NewTaskService(taskRepo portsrepo.TaskRepository, routineRepo portsrepo.RoutineRepository) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo, routineRepo: routineRepo}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorUserID string) (*domain.Task, error) {
	if req.Value.IsNegative() {
		return nil, fmt.Errorf("%w: task value cannot be negative", apperrors.ErrValidation)
	}
	if req.RoutineID != nil {
		if _, err := s.routineRepo.FindRoutineByID(ctx, *req.RoutineID); err != nil {
			return nil, fmt.Errorf("failed to resolve routine %s: %w", *req.RoutineID, err)
		}
	}

	now := time.Now()
	task := domain.Task{
		TaskID:    uuid.NewString(),
		RoutineID: req.RoutineID,
		Name:      req.Name,
		Value:     req.Value,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", taskID, err)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, limit, offset int) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListTasks(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// TaskValue is the read-model lookup used by the completion path.
func (s *taskService) TaskValue(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.GetTaskByID(ctx, taskID)
}

func (s *taskService) RoutineTasksFor(ctx context.Context, routineID string) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListTasksByRoutineID(ctx, routineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for routine %s: %w", routineID, err)
	}
	return tasks, nil
}

// routineService owns routine CRUD.
type routineService struct {
	routineRepo portsrepo.RoutineRepository
}

// NewRoutineService creates the routine facade.
func NewRoutineService(routineRepo portsrepo.RoutineRepository) portssvc.RoutineSvcFacade {
	return &routineService{routineRepo: routineRepo}
}

var _ portssvc.RoutineSvcFacade = (*routineService)(nil)

func (s *routineService) CreateRoutine(ctx context.Context, req dto.CreateRoutineRequest, creatorUserID string) (*domain.Routine, error) {
	now := time.Now()
	routine := domain.Routine{
		RoutineID: uuid.NewString(),
		UserID:    creatorUserID,
		Name:      req.Name,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.routineRepo.SaveRoutine(ctx, routine); err != nil {
		return nil, fmt.Errorf("failed to create routine: %w", err)
	}
	return &routine, nil
}

func (s *routineService) GetRoutineByID(ctx context.Context, routineID string) (*domain.Routine, error) {
	routine, err := s.routineRepo.FindRoutineByID(ctx, routineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get routine %s: %w", routineID, err)
	}
	return routine, nil
}

func (s *routineService) ListRoutinesByUser(ctx context.Context, userID string) ([]domain.Routine, error) {
	routines, err := s.routineRepo.ListRoutinesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines for user %s: %w", userID, err)
	}
	return routines, nil
}
