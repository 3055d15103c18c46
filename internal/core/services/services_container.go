package services

import (
	portsrepo "github.com/choretrack/chore_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, notifier portssvc.NotificationSink) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Notifier: notifier}

	// Ledger first since the completion tracker and the recalculation job
	// both post through it.
	container.Ledger = NewLedgerService(repos.LedgerRepo, cfg.Location)

	container.Task = NewTaskService(repos.TaskRepo, repos.RoutineRepo)
	container.Routine = NewRoutineService(repos.RoutineRepo)
	container.Streak = NewStreakService(repos.StreakRepo, notifier)

	container.Completion = NewCompletionService(
		repos.CompletionRepo,
		container.Task,
		container.Ledger,
		container.Streak,
		notifier,
		cfg.UndoWindow,
		cfg.Location,
	)

	container.Recalculation = NewRecalculationService(
		repos.CompletionRepo,
		repos.StreakRepo,
		repos.MilestoneRepo,
		container.Ledger,
		notifier,
		cfg.Location,
	)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, container.User)

	return container
}
