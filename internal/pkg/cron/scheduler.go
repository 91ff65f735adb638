package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name  string
	every time.Duration
	run   func(ctx context.Context) error
}

// Scheduler runs registered jobs on fixed intervals, one goroutine per
// job. There is no cron-expression parsing; a ticker per job is enough
// for the background work this app has.
type Scheduler struct {
	logger *slog.Logger

	mu   sync.Mutex
	jobs []job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job. Jobs added after Start are not picked up.
func (s *Scheduler) AddJob(name string, every time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, every: every, run: run})
	s.logger.Info("job registered", slog.String("job", name), slog.Duration("every", every))
}

// Start launches every registered job. Each job runs once immediately,
// then on its interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.jobs)))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.every)
	defer ticker.Stop()

	s.execute(j)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(j)
		}
	}
}

func (s *Scheduler) execute(j job) {
	start := time.Now()
	if err := j.run(s.ctx); err != nil {
		s.logger.Error("job failed",
			slog.String("job", j.name),
			slog.Any("error", err),
			slog.Duration("took", time.Since(start)),
		)
		return
	}
	s.logger.Debug("job done", slog.String("job", j.name), slog.Duration("took", time.Since(start)))
}

// RunOnce runs every registered job a single time on the caller's
// context, for tests and one-shot invocations.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if err := j.run(ctx); err != nil {
			s.logger.Error("job failed", slog.String("job", j.name), slog.Any("error", err))
		}
	}
}
