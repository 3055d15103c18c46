package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Streak counts consecutive calendar days on which a user fully completed a
// routine. CurrentCount never exceeds BestCount. LastCompletionDate is nil
// until the first completed day.
type Streak struct {
	UserID             string     `json:"userID"`
	RoutineID          string     `json:"routineID"`
	CurrentCount       int        `json:"currentCount"`
	BestCount          int        `json:"bestCount"`
	LastCompletionDate *time.Time `json:"lastCompletionDate,omitempty"`
	AuditFields
}

// Milestone is static reference configuration: crossing Days consecutive
// streak days for the first time pays Amount once.
type Milestone struct {
	Days   int             `json:"days"`
	Amount decimal.Decimal `json:"amount"`
	Label  string          `json:"label"`
}

// StreakKey identifies one tracked (user, routine) pair.
type StreakKey struct {
	UserID    string `json:"userID"`
	RoutineID string `json:"routineID"`
}

// RecalculationResult summarizes one nightly recalculation run.
type RecalculationResult struct {
	PairsProcessed  int      `json:"pairsProcessed"`
	StreaksBroken   int      `json:"streaksBroken"`
	MilestonesPaid  int      `json:"milestonesPaid"`
	FailedPairs     int      `json:"failedPairs"`
	FailureMessages []string `json:"failureMessages,omitempty"`
}
