package contentsync

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/folio/core/logger"
)

// Job names.
const (
	JobResyncDrifted = "resync_drifted"
	JobResyncAll     = "resync_all"
	JobSweepSessions = "sweep_sessions"
)

// Repairer brings the mirror back in line with the primary store.
type Repairer interface {
	ResyncDrifted(ctx context.Context) error
	ResyncAll(ctx context.Context) ([]string, error)
}

// Sweeper removes expired sessions.
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int, error)
}

// Register adds the drift repair, full resync and session sweep jobs
// according to cfg.
func Register(s *Scheduler, cfg Config, repair Repairer, sweep Sweeper, log *slog.Logger) error {
	if log == nil {
		log = s.logger
	}
	if err := s.Add(JobResyncDrifted, cfg.DriftSchedule, repair.ResyncDrifted); err != nil {
		return err
	}

	if err := s.Add(JobResyncAll, cfg.FullSchedule, func(ctx context.Context) error {
		synced, err := repair.ResyncAll(ctx)
		log.Info("full resync finished", logger.Component("scheduler"), logger.Count("collections", len(synced)))
		return err
	}); err != nil {
		return err
	}

	return s.Add(JobSweepSessions, cfg.SessionSweepSchedule, func(ctx context.Context) error {
		n, err := sweep.DeleteExpired(ctx)
		if n > 0 {
			log.Info("expired sessions removed", logger.Component("scheduler"), logger.Count("sessions", n))
		}
		return err
	})
}
