package domain

import "time"

// Completion records that a user completed a task on a calendar day.
// CompletionDate is the day in the canonical timezone; at most one
// completion may exist per (taskID, userID, completionDate).
// A completion is deletable only via Undo inside the undo window and is
// immutable afterward.
type Completion struct {
	CompletionID   string    `json:"completionID"` // Primary Key (UUID)
	TaskID         string    `json:"taskID"`
	UserID         string    `json:"userID"`
	CompletedAt    time.Time `json:"completedAt"`    // Precise instant
	CompletionDate time.Time `json:"completionDate"` // Midnight, canonical timezone
}

// CanUndoAt reports whether the completion is still inside its undo window
// at the given instant.
func (c Completion) CanUndoAt(now time.Time, window time.Duration) bool {
	return now.Sub(c.CompletedAt) <= window
}

// CompletionResult is what a successful Complete call returns to the caller.
type CompletionResult struct {
	Completion Completion     `json:"completion"`
	Balance    BalanceAccount `json:"balance"`
	CanUndo    bool           `json:"canUndo"`
}
