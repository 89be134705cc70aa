// Package schedule runs periodic jobs, such as re-checking nav links against
// a docs tree that changes without the nav changing.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// New creates a stopped scheduler.
func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create scheduler").Build()
	}
	return &Scheduler{scheduler: s}, nil
}

// Every schedules task to run each interval, first after one interval has
// passed. A run still busy when the next is due delays it instead of
// overlapping. It returns the job ID.
func (s *Scheduler) Every(ctx context.Context, name string, interval time.Duration, task Task) (string, error) {
	if interval <= 0 {
		return "", errors.ValidationError("schedule interval must be > 0").WithContext("job", name).Build()
	}
	if task == nil {
		return "", errors.ValidationError("task is required").WithContext("job", name).Build()
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { execute(ctx, name, task) }),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRuntime, "failed to schedule job").WithContext("job", name).Build()
	}
	slog.Info("Scheduled job", logfields.Job(name), logfields.Interval(interval))
	return job.ID().String(), nil
}

func execute(ctx context.Context, name string, task Task) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	err := task(ctx)
	ms := float64(time.Since(start).Milliseconds())
	if err != nil {
		slog.Warn("Scheduled job failed", logfields.Job(name), logfields.DurationMS(ms), logfields.Error(err))
		return
	}
	slog.Debug("Scheduled job finished", logfields.Job(name), logfields.DurationMS(ms))
}

// Start begins running scheduled jobs. Jobs may be added before or after.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to stop scheduler").Build()
	}
	return nil
}
