package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"promopilot/internal/observability"
)

// Job is a unit of periodic work. Jobs run on a fixed interval and must
// tolerate overlapping runs across processes; every registered job is also
// started on every worker replica.
type Job interface {
	Name() string
	Run(ctx context.Context) error
	Schedule() time.Duration
}

// Scheduler drives registered jobs on their intervals until the context ends.
type Scheduler struct {
	jobs   []Job
	logger *observability.Logger
	wg     sync.WaitGroup
}

func New(logger *observability.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
	s.logger.Info(context.Background(),
		fmt.Sprintf("registered scheduled job %s, every %s", job.Name(), job.Schedule()))
}

// Start runs all registered jobs and blocks until ctx is cancelled. Each job
// fires once immediately so a freshly deployed worker sweeps right away.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info(ctx, fmt.Sprintf("scheduler starting %d jobs", len(s.jobs)))

	for _, job := range s.jobs {
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()
			s.loop(ctx, job)
		}(job)
	}

	<-ctx.Done()
	s.wg.Wait()
	s.logger.Info(ctx, "scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "scheduled_job", Value: job.Name()})

	s.fire(ctx, job)

	ticker := time.NewTicker(job.Schedule())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, job)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error(ctx, fmt.Sprintf("scheduled job %s failed after %s", job.Name(), time.Since(start)), err)
		return
	}
	s.logger.Info(ctx, fmt.Sprintf("scheduled job %s completed in %s", job.Name(), time.Since(start)))
}
