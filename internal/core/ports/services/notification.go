package services

// Event kinds emitted by the core. Consumers are best-effort; the core
// never waits on or fails with them.
const (
	EventTaskCompleted    = "task_completed"
	EventCompletionUndone = "completion_undone"
	EventStreakAdvanced   = "streak_advanced"
	EventStreakBroken     = "streak_broken"
	EventMilestoneReached = "milestone_reached"
)

// NotificationSink consumes completion/streak/milestone events.
// Emit must never block the caller and its failures must never propagate.
type NotificationSink interface {
	Emit(userID, kind, message string)
}
