package models

import "github.com/shopspring/decimal"

// Task mirrors the tasks table.
type Task struct {
	TaskID    string          `db:"task_id"`
	RoutineID *string         `db:"routine_id"`
	Name      string          `db:"name"`
	Value     decimal.Decimal `db:"value"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}

// Routine mirrors the routines table.
type Routine struct {
	RoutineID string `db:"routine_id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}
