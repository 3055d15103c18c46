package dto

import (
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
)

// CompleteTaskRequest defines the optional body for completing a task.
// Date defaults to today in the canonical timezone when omitted.
type CompleteTaskRequest struct {
	Date *time.Time `json:"date" time_format:"2006-01-02"`
}

// CompletionResponse defines the data returned for a completion.
type CompletionResponse struct {
	CompletionID   string    `json:"completionID"`
	TaskID         string    `json:"taskID"`
	UserID         string    `json:"userID"`
	CompletedAt    time.Time `json:"completedAt"`
	CompletionDate string    `json:"completionDate"`
}

// CompleteTaskResponse is the full result of a successful Complete call.
type CompleteTaskResponse struct {
	Completion CompletionResponse `json:"completion"`
	Balance    BalanceResponse    `json:"balance"`
	CanUndo    bool               `json:"canUndo"`
}

// UndoResponse is returned after a successful undo.
type UndoResponse struct {
	Balance BalanceResponse `json:"balance"`
}

// ToCompletionResponse converts a domain.Completion to its DTO.
func ToCompletionResponse(c *domain.Completion) CompletionResponse {
	return CompletionResponse{
		CompletionID:   c.CompletionID,
		TaskID:         c.TaskID,
		UserID:         c.UserID,
		CompletedAt:    c.CompletedAt,
		CompletionDate: c.CompletionDate.Format("2006-01-02"),
	}
}

// ToCompleteTaskResponse converts a domain.CompletionResult to its DTO.
func ToCompleteTaskResponse(r *domain.CompletionResult) CompleteTaskResponse {
	return CompleteTaskResponse{
		Completion: ToCompletionResponse(&r.Completion),
		Balance:    ToBalanceResponse(&r.Balance),
		CanUndo:    r.CanUndo,
	}
}
