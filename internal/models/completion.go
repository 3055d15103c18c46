package models

import "time"

// Completion mirrors the completions table. The unique index on
// (task_id, user_id, completion_date) is the conflict guard for the
// one-completion-per-day rule.
type Completion struct {
	CompletionID   string    `db:"completion_id"`
	TaskID         string    `db:"task_id"`
	UserID         string    `db:"user_id"`
	CompletedAt    time.Time `db:"completed_at"`
	CompletionDate time.Time `db:"completion_date"`
}
