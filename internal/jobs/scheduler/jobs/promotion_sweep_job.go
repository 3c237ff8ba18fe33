package jobs

import (
	"context"
	"fmt"
	"time"

	promojobs "promopilot/internal/jobs"
	"promopilot/internal/observability"
)

// SweepEnqueuer kicks the promotion worker loop
type SweepEnqueuer interface {
	EnqueuePromotionProcess(ctx context.Context, payload promojobs.PromotionProcessPayload) error
}

// PromotionSweepJob periodically wakes the promotion worker loop so runs that
// lost their wake-up task (worker crash, dropped enqueue, elapsed crowd
// cooldown) are picked up again without operator action.
type PromotionSweepJob struct {
	enqueuer SweepEnqueuer
	logger   *observability.Logger
	interval time.Duration
}

// NewPromotionSweepJob creates a promotion sweep job
func NewPromotionSweepJob(enqueuer SweepEnqueuer, logger *observability.Logger, interval time.Duration) *PromotionSweepJob {
	if interval == 0 {
		interval = 1 * time.Minute
	}
	return &PromotionSweepJob{
		enqueuer: enqueuer,
		logger:   logger,
		interval: interval,
	}
}

// Name returns the job name
func (j *PromotionSweepJob) Name() string {
	return "promotion_sweep"
}

// Schedule returns how often the job should run
func (j *PromotionSweepJob) Schedule() time.Duration {
	return j.interval
}

// Run enqueues one worker-loop pass over the whole run queue
func (j *PromotionSweepJob) Run(ctx context.Context) error {
	if err := j.enqueuer.EnqueuePromotionProcess(ctx, promojobs.PromotionProcessPayload{}); err != nil {
		return fmt.Errorf("failed to enqueue promotion sweep: %w", err)
	}
	return nil
}
