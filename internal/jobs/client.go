package jobs

import (
	"context"
	"fmt"

	"promopilot/internal/observability"

	"github.com/hibiken/asynq"
)

// Client handles enqueueing background jobs
type Client struct {
	client *asynq.Client
	logger *observability.Logger
}

// NewClient creates a new job client
func NewClient(redisAddr string, logger *observability.Logger) *Client {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	return &Client{
		client: client,
		logger: logger,
	}
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueuePromotionProcess enqueues a worker-loop invocation
func (c *Client) EnqueuePromotionProcess(ctx context.Context, payload PromotionProcessPayload) error {
	task, err := NewPromotionProcessTask(payload)
	if err != nil {
		c.logger.Error(ctx, "failed to create promotion process task", err)
		return fmt.Errorf("failed to create promotion process task: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		c.logger.Error(ctx, "failed to enqueue promotion process task", err)
		return fmt.Errorf("failed to enqueue promotion process task: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued promotion process task: %s (queue: %s)", info.ID, info.Queue))
	return nil
}

// EnqueuePublicationExecute enqueues a publication job for the publisher fleet
func (c *Client) EnqueuePublicationExecute(ctx context.Context, payload PublicationExecutePayload) error {
	task, err := NewPublicationExecuteTask(payload)
	if err != nil {
		c.logger.Error(ctx, "failed to create publication execute task", err)
		return fmt.Errorf("failed to create publication execute task: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		c.logger.Error(ctx, "failed to enqueue publication execute task", err)
		return fmt.Errorf("failed to enqueue publication execute task: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued publication execute task: %s", info.ID))
	return nil
}

// EnqueueCrowdExecute enqueues a crowd worker trigger
func (c *Client) EnqueueCrowdExecute(ctx context.Context, payload CrowdExecutePayload) error {
	task, err := NewCrowdExecuteTask(payload)
	if err != nil {
		c.logger.Error(ctx, "failed to create crowd execute task", err)
		return fmt.Errorf("failed to create crowd execute task: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		c.logger.Error(ctx, "failed to enqueue crowd execute task", err)
		return fmt.Errorf("failed to enqueue crowd execute task: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued crowd execute task: %s", info.ID))
	return nil
}
