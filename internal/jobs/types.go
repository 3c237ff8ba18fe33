package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Job type constants
const (
	// High priority queue
	TypePromotionProcess = "promotion:process"

	// Medium priority queue
	TypePublicationExecute = "publication:execute"
	TypeCrowdExecute       = "crowd:execute"
)

// Queue names
const (
	QueueHigh   = "high"
	QueueMedium = "medium"
	QueueLow    = "low"
)

// PromotionProcessPayload asks a worker process to run the cascade loop,
// starting from a specific run when set.
type PromotionProcessPayload struct {
	RunID *uuid.UUID `json:"run_id,omitempty"`
}

// NewPromotionProcessTask creates a promotion worker-loop task
func NewPromotionProcessTask(payload PromotionProcessPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePromotionProcess, data, asynq.Queue(QueueHigh), asynq.MaxRetry(3)), nil
}

// PublicationExecutePayload hands a publication job to the publisher fleet
type PublicationExecutePayload struct {
	PublicationID uuid.UUID `json:"publication_id"`
	NodeID        uuid.UUID `json:"node_id"`
	RunID         uuid.UUID `json:"run_id"`
	NetworkSlug   string    `json:"network_slug"`
}

// NewPublicationExecuteTask creates a publication execution task
func NewPublicationExecuteTask(payload PublicationExecutePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePublicationExecute, data, asynq.Queue(QueueMedium), asynq.MaxRetry(5)), nil
}

// CrowdExecutePayload wakes the crowd-posting worker for a run
type CrowdExecutePayload struct {
	RunID uuid.UUID `json:"run_id"`
}

// NewCrowdExecuteTask creates a crowd worker trigger task
func NewCrowdExecuteTask(payload CrowdExecutePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCrowdExecute, data, asynq.Queue(QueueMedium), asynq.MaxRetry(5)), nil
}
