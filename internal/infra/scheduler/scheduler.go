// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job represents a scheduled job.
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler manages background jobs.
type Scheduler struct {
	cron       *cron.Cron
	logger     *slog.Logger
	jobTimeout time.Duration
}

// New creates a new scheduler. Schedules use the standard five-field cron syntax
// evaluated in loc (UTC when nil). Each run is bounded by jobTimeout.
func New(logger *slog.Logger, loc *time.Location, jobTimeout time.Duration) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		logger:     logger.With("component", "scheduler"),
		jobTimeout: jobTimeout,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// AddJob registers a job with a cron schedule.
// Schedule examples:
//   - "0 8 * * MON"  - 8 AM every Monday
//   - "@daily"       - midnight
//   - "@every 1h"    - hourly, relative to start
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunNow(job); err != nil {
			s.logger.Error("Job failed", "job", job.Name(), "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.logger.Info("Job registered", "schedule", schedule, "job", job.Name())
	return nil
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	ctx := context.Background()
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Debug("Running job", "job", job.Name())
	if err := job.Run(ctx); err != nil {
		return err
	}
	s.logger.Debug("Job completed", "job", job.Name(), "duration", time.Since(start))
	return nil
}
