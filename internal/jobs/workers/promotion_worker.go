package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promopilot/internal/config"
	"promopilot/internal/jobs"
	"promopilot/internal/observability"
	"promopilot/internal/store"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=promotion_worker.go -destination=mocks_test.go -package=workers

// WorkerStore is the run-queue view of the database the worker needs
type WorkerStore interface {
	ListRunnableRuns(ctx context.Context, limit int) ([]store.PromotionRun, error)
	CountActiveRunsByProject(ctx context.Context, projectID uuid.UUID) (int, error)
	MarkRunActive(ctx context.Context, runID uuid.UUID) (bool, error)
	GetRunByID(ctx context.Context, runID uuid.UUID) (store.PromotionRun, error)
}

// RunProcessor advances one run through its cascade stages
type RunProcessor interface {
	ProcessRun(ctx context.Context, run store.PromotionRun) error
}

// Throttler rate-limits repeated log lines and side effects
type Throttler interface {
	Throttle(ctx context.Context, key string, window time.Duration) (bool, error)
}

// candidateBatchSize bounds how many runnable runs one pick examines.
const candidateBatchSize = 50

// skipLogWindow is how often a capacity-skip for the same project is logged.
const skipLogWindow = time.Minute

// PromotionWorker drains the run queue: each invocation claims runnable runs
// one at a time, respecting the per-project concurrency cap, and advances
// each by one stage transition.
type PromotionWorker struct {
	store     WorkerStore
	processor RunProcessor
	throttler Throttler
	config    config.PromotionConfig
	logger    *observability.Logger
	sleep     func(time.Duration)
}

// NewPromotionWorker creates a promotion queue worker
func NewPromotionWorker(
	workerStore WorkerStore,
	processor RunProcessor,
	throttler Throttler,
	cfg config.PromotionConfig,
	logger *observability.Logger,
) *PromotionWorker {
	return &PromotionWorker{
		store:     workerStore,
		processor: processor,
		throttler: throttler,
		config:    cfg,
		logger:    logger,
		sleep:     time.Sleep,
	}
}

// ProcessPromotionTask is the asynq handler for the promotion worker loop.
// A payload naming a run processes that run first, then drains the queue.
func (w *PromotionWorker) ProcessPromotionTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.PromotionProcessPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.logger.Error(ctx, "failed to unmarshal promotion process payload", err)
		return fmt.Errorf("failed to unmarshal promotion process payload: %w", err)
	}

	if payload.RunID != nil {
		if err := w.processRunByID(ctx, *payload.RunID); err != nil {
			return err
		}
	}

	return w.Run(ctx)
}

// ProcessCrowdTask is the asynq handler waking the crowd evaluation for a run.
func (w *PromotionWorker) ProcessCrowdTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.CrowdExecutePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.logger.Error(ctx, "failed to unmarshal crowd execute payload", err)
		return fmt.Errorf("failed to unmarshal crowd execute payload: %w", err)
	}
	return w.processRunByID(ctx, payload.RunID)
}

func (w *PromotionWorker) processRunByID(ctx context.Context, runID uuid.UUID) error {
	run, err := w.store.GetRunByID(ctx, runID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			w.logger.Warn(ctx, fmt.Sprintf("run %s no longer exists, dropping task", runID))
			return nil
		}
		return err
	}
	if err := w.processor.ProcessRun(ctx, run); err != nil {
		// The run stays in the queue; the sweep retries it.
		w.logger.Error(ctx, "failed to process run", err)
	}
	return nil
}

// Run executes one bounded worker pass: it keeps claiming the next runnable
// run until the queue is empty or the iteration budget runs out. Bounding the
// loop keeps a single asynq task from monopolizing a worker slot.
func (w *PromotionWorker) Run(ctx context.Context) error {
	for i := 0; i < w.config.WorkerMaxIterations; i++ {
		run, ok, err := w.pickNextRun(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		rctx := observability.WithFields(ctx,
			observability.Field{Key: "run_id", Value: run.ID.String()},
			observability.Field{Key: "stage", Value: run.Stage},
		)
		if err := w.processor.ProcessRun(rctx, run); err != nil {
			w.logger.Error(rctx, "failed to process run, continuing with next", err)
		}

		w.sleep(w.config.WorkerSleep)
	}
	return nil
}

// pickNextRun returns the highest priority runnable run whose project still
// has concurrency headroom. Already-active runs always pass the cap check:
// the cap gates admission, not continuation.
func (w *PromotionWorker) pickNextRun(ctx context.Context) (store.PromotionRun, bool, error) {
	candidates, err := w.store.ListRunnableRuns(ctx, candidateBatchSize)
	if err != nil {
		return store.PromotionRun{}, false, err
	}

	for _, run := range candidates {
		if run.Status == store.RunStatusActive {
			return run, true, nil
		}

		active, err := w.store.CountActiveRunsByProject(ctx, run.ProjectID)
		if err != nil {
			return store.PromotionRun{}, false, err
		}
		if active >= w.config.MaxActiveRunsPerProject {
			w.logCapacitySkip(ctx, run)
			continue
		}

		claimed, err := w.store.MarkRunActive(ctx, run.ID)
		if err != nil {
			return store.PromotionRun{}, false, err
		}
		if !claimed {
			// Another worker claimed it between the list and the update.
			continue
		}
		run.Status = store.RunStatusActive
		return run, true, nil
	}

	return store.PromotionRun{}, false, nil
}

// logCapacitySkip logs a queued run waiting on its project's concurrency cap,
// at most once per project per window so a long queue does not flood the logs.
func (w *PromotionWorker) logCapacitySkip(ctx context.Context, run store.PromotionRun) {
	key := "worker:skip:" + run.ProjectID.String()
	first, err := w.throttler.Throttle(ctx, key, skipLogWindow)
	if err != nil {
		w.logger.Error(ctx, "failed to throttle skip log", err)
		return
	}
	if first {
		w.logger.Info(ctx, fmt.Sprintf("project %s at active-run cap (%d), run %s stays queued",
			run.ProjectID, w.config.MaxActiveRunsPerProject, run.ID))
	}
}
