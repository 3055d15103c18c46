// Package jobs drives the nightly streak recalculation on a cron schedule.
package jobs

import (
	"context"
	"log/slog"
	"sync"

	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/choretrack/chore_tracker_app/internal/platform/config"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Scheduler owns the cron instance. The recalculation entry is
// single-flight: a trigger that fires while the previous run is still
// going is skipped, never queued.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	recalc  portssvc.RecalculationSvcFacade
	running sync.Mutex
}

// NewScheduler builds the scheduler with the configured cron spec and the
// canonical timezone, so "00:30" means 00:30 on the same calendar the
// completion dates use.
func NewScheduler(cfg *config.Config, recalc portssvc.RecalculationSvcFacade, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(cfg.Location)),
		logger: logger,
		recalc: recalc,
	}

	if _, err := s.cron.AddFunc(cfg.RecalcCronSpec, s.runRecalculation); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins firing scheduled jobs in background goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("job scheduler started")
}

// Stop stops the schedule and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("job scheduler stopped")
}

func (s *Scheduler) runRecalculation() {
	if !s.running.TryLock() {
		s.logger.Warn("skipping streak recalculation, previous run still active")
		return
	}
	defer s.running.Unlock()

	runLogger := s.logger.With(slog.String("job", "streak_recalculation"), slog.String("run_id", uuid.NewString()))
	ctx := middleware.WithLogger(context.Background(), runLogger)

	result, err := s.recalc.RecalculateAll(ctx)
	if err != nil {
		runLogger.Error("streak recalculation aborted", "error", err)
		return
	}
	if result.FailedPairs > 0 {
		runLogger.Warn("streak recalculation completed with failures",
			"failedPairs", result.FailedPairs,
			"messages", result.FailureMessages,
		)
	}
}
