package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is one recurring task. Run errors are logged and the job keeps its
// schedule; there is no retry or backoff beyond the next tick.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler owns every interval job in the process, replacing scattered
// per-component timers. Stop cancels all jobs and waits for them to finish.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []Job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

func New() *Scheduler {
	return &Scheduler{}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		logrus.WithField("job", name).Error("Cannot register job on a started scheduler")
		return
	}

	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Run: run})
}

// Start launches every registered job. Each job runs once immediately, then
// on every interval tick until Stop.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, job)
	}

	logrus.WithField("jobs", len(s.jobs)).Info("Scheduler started")
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	defer s.wg.Done()

	s.execute(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.WithField("job", job.Name).Debug("Scheduler job stopped")
			return
		case <-ticker.C:
			s.execute(ctx, job)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job Job) {
	if err := job.Run(ctx); err != nil {
		logrus.WithError(err).WithField("job", job.Name).Warn("Scheduled job failed")
	}
}

// Stop cancels every job and blocks until all goroutines exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()

	logrus.Info("Scheduler stopped")
}
