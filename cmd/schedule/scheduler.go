// Package schedule implements recurring harvests driven by a cron expression.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs a Job on a standard 5-field cron schedule. A tick that fires while the
// previous run is still going is skipped.
type Scheduler struct {
	cron *cron.Cron
	spec string
	job  Job
	log  logger.Logger
	ctx  context.Context
}

// NewScheduler parses spec and prepares the scheduler. Nothing runs until Start.
func NewScheduler(spec string, job Job, log logger.Logger) (*Scheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(spec); err != nil {
		return nil, domain.ConfigError("parse schedule", fmt.Errorf("%q: %w", spec, err))
	}

	s := &Scheduler{spec: spec, job: job, log: log}
	s.cron = cron.New(
		cron.WithParser(parser),
		cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		),
	)
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, domain.ConfigError("schedule job", err)
	}
	return s, nil
}

// Start runs the schedule until ctx is cancelled, then waits for a running job to return.
// The job's context is derived from ctx, so cancellation also stops an in-flight run.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx = ctx
	s.cron.Start()

	if entries := s.cron.Entries(); len(entries) > 0 {
		s.log.Info("Scheduler started",
			logger.String("schedule", s.spec),
			logger.String("next_run", entries[0].Next.Format(time.RFC3339)),
		)
	}

	<-ctx.Done()
	s.log.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	return nil
}

func (s *Scheduler) tick() {
	start := time.Now()
	s.log.Info("Scheduled run starting")

	if err := s.job(s.ctx); err != nil {
		s.log.Error("Scheduled run failed",
			logger.Error(err),
			logger.Duration("duration", time.Since(start)),
		)
		return
	}
	s.log.Info("Scheduled run finished", logger.Duration("duration", time.Since(start)))
}
