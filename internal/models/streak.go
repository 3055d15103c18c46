package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Streak mirrors the streaks table, keyed by (user_id, routine_id).
type Streak struct {
	UserID             string     `db:"user_id"`
	RoutineID          string     `db:"routine_id"`
	CurrentCount       int        `db:"current_count"`
	BestCount          int        `db:"best_count"`
	LastCompletionDate *time.Time `db:"last_completion_date"`
	AuditFields
}

// Milestone mirrors the milestones reference table.
type Milestone struct {
	Days   int             `db:"days"`
	Amount decimal.Decimal `db:"amount"`
	Label  string          `db:"label"`
}
