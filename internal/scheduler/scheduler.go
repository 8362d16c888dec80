package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// Job is a unit of scheduled work.
type Job interface {
	Name() string
	Schedule() string // cron expression with seconds field
	Run(ctx context.Context) error
}

// Scheduler manages cron-scheduled jobs. Stop cancels the job context
// so a running job (and its retry waits) can exit instead of blocking
// shutdown.
type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger
	jobs   map[string]Job
	mu     sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	maxRetries int
	retryDelay time.Duration
}

// New creates a new scheduler.
func New(log *logger.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		logger:     log,
		jobs:       make(map[string]Job),
		ctx:        ctx,
		cancel:     cancel,
		maxRetries: 2,
		retryDelay: 30 * time.Second,
	}
}

// AddJob registers a job with the scheduler.
func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobName := job.Name()
	if _, exists := s.jobs[jobName]; exists {
		return fmt.Errorf("job %s already exists", jobName)
	}

	_, err := s.cron.AddFunc(job.Schedule(), func() {
		s.runJob(job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", jobName, err)
	}

	s.jobs[jobName] = job

	s.logger.WithFields(map[string]interface{}{
		"job":      jobName,
		"schedule": job.Schedule(),
	}).Info("Job added to scheduler")

	return nil
}

// Start begins executing scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.WithField("jobs", len(s.jobs)).Info("Scheduler started")
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// runJob executes one job with retries. The job context is cancelled
// by Stop, and the retry wait honours the same cancellation.
func (s *Scheduler) runJob(job Job) {
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if s.ctx.Err() != nil {
			s.logger.WithField("job", job.Name()).Info("Job skipped, scheduler stopping")
			return
		}

		startTime := time.Now()
		err := job.Run(s.ctx)
		if err == nil {
			s.logger.WithFields(map[string]interface{}{
				"job":         job.Name(),
				"duration_ms": time.Since(startTime).Milliseconds(),
			}).Info("Job completed")
			return
		}

		s.logger.WithFields(map[string]interface{}{
			"job":     job.Name(),
			"attempt": attempt + 1,
			"error":   err.Error(),
		}).Warn("Job failed")

		if attempt < s.maxRetries {
			select {
			case <-time.After(s.retryDelay):
			case <-s.ctx.Done():
				s.logger.WithField("job", job.Name()).Info("Retry abandoned, scheduler stopping")
				return
			}
		}
	}

	s.logger.WithField("job", job.Name()).Error("Job exhausted retries")
}
