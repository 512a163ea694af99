// Package scheduler runs named background jobs on cron specs. A job never
// overlaps with itself: cron skips a tick while the previous run is still
// going, and a Locker keeps other replicas out.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/lock"
)

// ErrStopped is returned by Trigger once Stop has been called.
var ErrStopped = errors.New("scheduler: stopped")

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler owns the cron runner and the lifetime of running jobs.
type Scheduler struct {
	cron    *cron.Cron
	locker  lock.Locker
	lockTTL time.Duration
	logger  zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	jobs map[string]Job

	triggered sync.WaitGroup
}

// New creates a Scheduler evaluating specs in loc.
func New(loc *time.Location, locker lock.Locker, lockTTL time.Duration, logger zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	adapter := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		locker:  locker,
		lockTTL: lockTTL,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(map[string]Job),
	}
}

// Register schedules job under name with a standard five-field cron spec.
func (s *Scheduler) Register(name, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("scheduler: job %q already registered", name)
	}
	if _, err := s.cron.AddFunc(spec, func() { s.run(s.ctx, name, job) }); err != nil {
		return fmt.Errorf("scheduler: job %q: invalid spec %q: %w", name, spec, err)
	}
	s.jobs[name] = job
	s.logger.Info().Str("job", name).Str("spec", spec).Msg("Job scheduled")
	return nil
}

// Trigger runs a registered job immediately, under the same lock as scheduled runs.
// Stop cancels a triggered run and waits for it like a scheduled one.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	stopped := s.ctx.Err() != nil
	if ok && !stopped {
		s.triggered.Add(1)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("scheduler: unknown job %q", name)
	}
	if stopped {
		return ErrStopped
	}
	defer s.triggered.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	return s.run(ctx, name, job)
}

// run executes job while holding its lock. A held lock is not an error.
func (s *Scheduler) run(ctx context.Context, name string, job Job) error {
	unlock, err := s.locker.TryLock(ctx, "job:"+name, s.lockTTL)
	if errors.Is(err, lock.ErrNotAcquired) {
		s.logger.Info().Str("job", name).Msg("Job already running elsewhere, skipping")
		return nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("job", name).Msg("Could not acquire job lock")
		return err
	}
	defer func() {
		// Release even when ctx was cancelled by Stop.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := unlock(releaseCtx); err != nil {
			s.logger.Warn().Err(err).Str("job", name).Msg("Failed to release job lock")
		}
	}()

	started := time.Now()
	s.logger.Info().Str("job", name).Msg("Job started")
	if err := job(ctx); err != nil {
		s.logger.Error().Err(err).Str("job", name).Dur("elapsed", time.Since(started)).Msg("Job failed")
		return err
	}
	s.logger.Info().Str("job", name).Dur("elapsed", time.Since(started)).Msg("Job finished")
	return nil
}

// Start begins firing scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs, cancels running jobs and waits for them or ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	cronDone := s.cron.Stop()
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.triggered.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
