package domain

import "github.com/shopspring/decimal"

// Task is a chore worth Value when completed. A task may belong to a
// routine; routine membership is what feeds the streak engine.
type Task struct {
	TaskID    string          `json:"taskID"` // Primary Key (UUID)
	RoutineID *string         `json:"routineID,omitempty"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// Routine is an ordered group of tasks a user is expected to finish daily.
type Routine struct {
	RoutineID string `json:"routineID"` // Primary Key (UUID)
	UserID    string `json:"userID"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}
