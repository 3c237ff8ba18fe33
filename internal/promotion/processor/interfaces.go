package processor

import (
	"context"
	"time"

	"promopilot/internal/clients/kafka"
	"promopilot/internal/clients/redis"
	"promopilot/internal/jobs"
	"promopilot/internal/store"

	"github.com/google/uuid"
)

// PromotionStore defines the database operations required by the Processor
type PromotionStore interface {
	GetProjectByID(ctx context.Context, projectID uuid.UUID) (store.Project, error)
	GetProjectLinkByID(ctx context.Context, linkID uuid.UUID) (store.ProjectLink, error)

	StartRun(ctx context.Context, params store.StartRunParams) (store.StartRunResult, error)
	GetRunByID(ctx context.Context, runID uuid.UUID) (store.PromotionRun, error)
	GetActiveRunByLink(ctx context.Context, projectID, linkID uuid.UUID) (store.PromotionRun, error)
	CancelRunCascade(ctx context.Context, runID uuid.UUID, code string) (bool, error)
	GetRunQueuePosition(ctx context.Context, runID uuid.UUID) (store.QueuePosition, error)
	UpdateRunStage(ctx context.Context, runID uuid.UUID, stage string) error
	SetRunWaiting(ctx context.Context, runID uuid.UUID, stage string, nextRetryAt time.Time) error
	FailRun(ctx context.Context, runID uuid.UUID, code string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, reportJSON []byte) (bool, error)
	SaveRunReport(ctx context.Context, runID uuid.UUID, reportJSON []byte) error
	UpdateRunProgress(ctx context.Context, runID uuid.UUID, done int) error

	CreateNodes(ctx context.Context, params []store.CreateNodeParams) ([]store.PromotionNode, error)
	GetNodesByRun(ctx context.Context, runID uuid.UUID) ([]store.PromotionNode, error)
	GetNodesByRunAndLevel(ctx context.Context, runID uuid.UUID, level int) ([]store.PromotionNode, error)
	CountNodeStatuses(ctx context.Context, runID uuid.UUID, level int) (store.NodeStatusCounts, error)
	GetOpenNodesOlderThan(ctx context.Context, runID uuid.UUID, cutoff time.Time) ([]store.PromotionNode, error)
	MarkNodeQueued(ctx context.Context, nodeID, publicationID uuid.UUID) error
	FinishNode(ctx context.Context, nodeID uuid.UUID, status string, resultURL, errMsg *string) (bool, error)
	CountSuccessfulNodesByRun(ctx context.Context, runID uuid.UUID) (int, error)

	GetNetworksForLevel(ctx context.Context, level int, region, topic string) ([]store.Network, error)
	CountNetworkUsageByProject(ctx context.Context, projectID uuid.UUID) ([]store.NetworkUsage, error)

	GetActiveCrowdLinks(ctx context.Context, limit int, excludeIDs []uuid.UUID) ([]store.CrowdLink, error)
	GetCrowdStatsByNode(ctx context.Context, runID uuid.UUID) ([]store.CrowdNodeStats, error)
	GetAssignedCrowdLinkIDs(ctx context.Context, nodeID uuid.UUID) ([]uuid.UUID, error)
	CreateCrowdTasks(ctx context.Context, params []store.CreateCrowdTaskParams) ([]store.PromotionCrowdTask, error)
	GetCrowdTasksByRun(ctx context.Context, runID uuid.UUID) ([]store.PromotionCrowdTask, error)
	CountCompletedCrowdTasksByRun(ctx context.Context, runID uuid.UUID) (int, error)

	CreatePublication(ctx context.Context, params store.CreatePublicationParams) (store.Publication, error)
	GetPublicationByID(ctx context.Context, publicationID uuid.UUID) (store.Publication, error)
	UpdatePublicationResult(ctx context.Context, publicationID uuid.UUID, status string, resultURL, errMsg *string) (bool, error)
}

// SettingsProvider resolves effective promotion settings for a project
type SettingsProvider interface {
	ForProject(ctx context.Context, project store.Project) store.PromotionSettings
}

// JobEnqueuer dispatches background work to the worker fleet
type JobEnqueuer interface {
	EnqueuePromotionProcess(ctx context.Context, payload jobs.PromotionProcessPayload) error
	EnqueuePublicationExecute(ctx context.Context, payload jobs.PublicationExecutePayload) error
	EnqueueCrowdExecute(ctx context.Context, payload jobs.CrowdExecutePayload) error
}

// ArticleCache stores published article payloads keyed by node id for reuse by
// deeper cascade levels
type ArticleCache interface {
	SetArticle(ctx context.Context, nodeID string, article redis.Article) error
	GetArticle(ctx context.Context, nodeID string) (redis.Article, bool, error)
}

// Notifier publishes lifecycle events to the event bus
type Notifier interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

// CommissionAwarder pays referral commission on a successful charge
type CommissionAwarder interface {
	AwardCommission(ctx context.Context, userID, runID uuid.UUID, amount float64) error
}
