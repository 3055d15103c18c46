package dto

import (
	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaskRequest defines the data needed to create a new task.
type CreateTaskRequest struct {
	Name      string          `json:"name" binding:"required"`
	Value     decimal.Decimal `json:"value"`
	RoutineID *string         `json:"routineID"`
}

// TaskResponse defines the data returned for a task.
type TaskResponse struct {
	TaskID    string  `json:"taskID"`
	RoutineID *string `json:"routineID,omitempty"`
	Name      string  `json:"name"`
	Value     string  `json:"value"`
	IsActive  bool    `json:"isActive"`
}

// ToTaskResponse converts a domain.Task to TaskResponse.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:    t.TaskID,
		RoutineID: t.RoutineID,
		Name:      t.Name,
		Value:     t.Value.StringFixed(2),
		IsActive:  t.IsActive,
	}
}

// ToTaskResponses converts a slice of tasks.
func ToTaskResponses(tasks []domain.Task) []TaskResponse {
	res := make([]TaskResponse, len(tasks))
	for i := range tasks {
		res[i] = ToTaskResponse(&tasks[i])
	}
	return res
}

// CreateRoutineRequest defines the data needed to create a new routine.
type CreateRoutineRequest struct {
	Name string `json:"name" binding:"required"`
}

// RoutineResponse defines the data returned for a routine.
type RoutineResponse struct {
	RoutineID string `json:"routineID"`
	UserID    string `json:"userID"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
}

// ToRoutineResponse converts a domain.Routine to RoutineResponse.
func ToRoutineResponse(r *domain.Routine) RoutineResponse {
	return RoutineResponse{
		RoutineID: r.RoutineID,
		UserID:    r.UserID,
		Name:      r.Name,
		IsActive:  r.IsActive,
	}
}

// ListParams defines common limit/offset query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}
