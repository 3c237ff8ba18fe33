package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"promopilot/internal/jobs"
	"promopilot/internal/observability"
	"promopilot/internal/store"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// PublicationStore is the publication hand-off view of the database
type PublicationStore interface {
	GetPublicationByID(ctx context.Context, publicationID uuid.UUID) (store.Publication, error)
	MarkPublicationRunning(ctx context.Context, publicationID uuid.UUID) error
	MarkNodeRunning(ctx context.Context, nodeID uuid.UUID) error
}

// PublicationWorker hands publication jobs to the external publisher fleet.
// The fleet reports outcomes back through the publication callback endpoint;
// this worker only flips the job to running so stuck-node recovery can tell
// a dispatched job from one that never left the queue.
type PublicationWorker struct {
	store  PublicationStore
	logger *observability.Logger
}

// NewPublicationWorker creates a publication hand-off worker
func NewPublicationWorker(publicationStore PublicationStore, logger *observability.Logger) *PublicationWorker {
	return &PublicationWorker{store: publicationStore, logger: logger}
}

// ProcessPublicationTask is the asynq handler for publication hand-off
func (w *PublicationWorker) ProcessPublicationTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.PublicationExecutePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.logger.Error(ctx, "failed to unmarshal publication execute payload", err)
		return fmt.Errorf("failed to unmarshal publication execute payload: %w", err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "publication_id", Value: payload.PublicationID.String()},
		observability.Field{Key: "run_id", Value: payload.RunID.String()},
		observability.Field{Key: "network_slug", Value: payload.NetworkSlug},
	)

	pub, err := w.store.GetPublicationByID(ctx, payload.PublicationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			w.logger.Warn(ctx, "publication no longer exists, dropping task")
			return nil
		}
		return err
	}
	if pub.Status != store.PublicationStatusQueued {
		w.logger.Info(ctx, fmt.Sprintf("publication already %s, nothing to dispatch", pub.Status))
		return nil
	}
	if pub.CancelRequested {
		w.logger.Info(ctx, "publication cancel requested before dispatch, dropping")
		return nil
	}

	if err := w.store.MarkPublicationRunning(ctx, pub.ID); err != nil {
		return err
	}
	if err := w.store.MarkNodeRunning(ctx, payload.NodeID); err != nil {
		return err
	}

	w.logger.Info(ctx, fmt.Sprintf("publication dispatched to %s publisher", payload.NetworkSlug))
	return nil
}
