package pgsql

import (
	portsrepo "github.com/choretrack/chore_tracker_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories. The completion
// repository shares the ledger repository so a completion and its credit
// commit or roll back together.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(dbPool)
	streakRepo := newPgxStreakRepository(dbPool)
	taskRepo := newPgxTaskRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		LedgerRepo:     ledgerRepo,
		CompletionRepo: newPgxCompletionRepository(dbPool, ledgerRepo),
		StreakRepo:     streakRepo,
		MilestoneRepo:  streakRepo,
		TaskRepo:       taskRepo,
		RoutineRepo:    taskRepo,
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
