package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

type SessionPurger interface {
	PurgeSessions(ctx context.Context) (int, error)
}

// Scheduler runs periodic housekeeping.
type Scheduler struct {
	sched  gocron.Scheduler
	logger zerolog.Logger
}

func New(purger SessionPurger, logger zerolog.Logger) (*Scheduler, error) {
	return newWithInterval(purger, constants.SessionPurgeEvery, logger)
}

func newWithInterval(purger SessionPurger, every time.Duration, logger zerolog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	logger = logger.With().Str("component", "scheduler").Logger()
	_, err = sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
			defer cancel()

			n, err := purger.PurgeSessions(ctx)
			if err != nil {
				logger.Error().Err(err).Msg("session purge failed")
				return
			}
			if n > 0 {
				logger.Info().Int("purged", n).Msg("expired sessions purged")
			}
		}),
		gocron.WithName("purge-sessions"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register purge job: %w", err)
	}

	return &Scheduler{sched: sched, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.Info().Msg("scheduler started")
}

func (s *Scheduler) Stop() error {
	return s.sched.Shutdown()
}
