package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const nodeColumns = `
id, run_id, level, parent_id, target_url, result_url, network_slug, publication_id, status,
anchor_text, initiated_by, error, queued_at, started_at, finished_at, created_at, updated_at
`

// CreateNodeParams represents parameters for creating one promotion node
type CreateNodeParams struct {
	RunID       uuid.UUID
	Level       int
	ParentID    *uuid.UUID
	TargetURL   string
	NetworkSlug string
	AnchorText  string
	InitiatedBy string
}

const sqlCreateNode = `
INSERT INTO promotion_nodes (run_id, level, parent_id, target_url, network_slug, anchor_text, initiated_by, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
RETURNING ` + nodeColumns + `
`

// CreateNodes inserts a batch of pending nodes in one transaction
func (s *Store) CreateNodes(ctx context.Context, params []CreateNodeParams) ([]PromotionNode, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	nodes := make([]PromotionNode, 0, len(params))
	for _, p := range params {
		var node PromotionNode
		err := tx.GetContext(ctx, &node, sqlCreateNode,
			p.RunID, p.Level, p.ParentID, p.TargetURL, p.NetworkSlug, p.AnchorText, p.InitiatedBy)
		if err != nil {
			s.logger.Error(ctx, "failed to create promotion node", err)
			return nil, fmt.Errorf("failed to create promotion node: %w", err)
		}
		nodes = append(nodes, node)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nodes, nil
}

const sqlGetNodesByRun = `
SELECT ` + nodeColumns + `
FROM promotion_nodes
WHERE run_id = $1
ORDER BY level ASC, created_at ASC
`

// GetNodesByRun retrieves all nodes of a run, shallow levels first
func (s *Store) GetNodesByRun(ctx context.Context, runID uuid.UUID) ([]PromotionNode, error) {
	var nodes []PromotionNode
	err := s.db.SelectContext(ctx, &nodes, sqlGetNodesByRun, runID)
	if err != nil {
		s.logger.Error(ctx, "failed to get nodes by run", err)
		return nil, fmt.Errorf("failed to get nodes by run: %w", err)
	}
	return nodes, nil
}

const sqlGetNodesByRunAndLevel = `
SELECT ` + nodeColumns + `
FROM promotion_nodes
WHERE run_id = $1 AND level = $2
ORDER BY created_at ASC
`

// GetNodesByRunAndLevel retrieves the nodes of one cascade level
func (s *Store) GetNodesByRunAndLevel(ctx context.Context, runID uuid.UUID, level int) ([]PromotionNode, error) {
	var nodes []PromotionNode
	err := s.db.SelectContext(ctx, &nodes, sqlGetNodesByRunAndLevel, runID, level)
	if err != nil {
		s.logger.Error(ctx, "failed to get nodes by run and level", err)
		return nil, fmt.Errorf("failed to get nodes by run and level: %w", err)
	}
	return nodes, nil
}

const sqlCountNodeStatuses = `
SELECT
    COALESCE(COUNT(*) FILTER (WHERE status = 'pending'), 0)::int AS pending,
    COALESCE(COUNT(*) FILTER (WHERE status = 'queued'), 0)::int AS queued,
    COALESCE(COUNT(*) FILTER (WHERE status = 'running'), 0)::int AS running,
    COALESCE(COUNT(*) FILTER (WHERE status IN ('success', 'completed')), 0)::int AS success,
    COALESCE(COUNT(*) FILTER (WHERE status = 'failed'), 0)::int AS failed,
    COALESCE(COUNT(*) FILTER (WHERE status = 'cancelled'), 0)::int AS cancelled
FROM promotion_nodes
WHERE run_id = $1 AND level = $2
`

// CountNodeStatuses re-derives level state from the node rows. This is the
// crash-safety mechanism: no persisted counters, every stage check recounts.
func (s *Store) CountNodeStatuses(ctx context.Context, runID uuid.UUID, level int) (NodeStatusCounts, error) {
	var counts NodeStatusCounts
	err := s.db.GetContext(ctx, &counts, sqlCountNodeStatuses, runID, level)
	if err != nil {
		s.logger.Error(ctx, "failed to count node statuses", err)
		return NodeStatusCounts{}, fmt.Errorf("failed to count node statuses: %w", err)
	}
	return counts, nil
}

const sqlGetOpenNodesOlderThan = `
SELECT ` + nodeColumns + `
FROM promotion_nodes
WHERE run_id = $1 AND status IN ('pending', 'queued', 'running')
  AND COALESCE(updated_at, started_at, queued_at, created_at) < $2
ORDER BY created_at ASC
`

// GetOpenNodesOlderThan finds nodes whose freshest timestamp predates the
// cutoff. Input to stuck-node recovery.
func (s *Store) GetOpenNodesOlderThan(ctx context.Context, runID uuid.UUID, cutoff time.Time) ([]PromotionNode, error) {
	var nodes []PromotionNode
	err := s.db.SelectContext(ctx, &nodes, sqlGetOpenNodesOlderThan, runID, cutoff)
	if err != nil {
		s.logger.Error(ctx, "failed to get stale nodes", err)
		return nil, fmt.Errorf("failed to get stale nodes: %w", err)
	}
	return nodes, nil
}

const sqlMarkNodeQueued = `
UPDATE promotion_nodes
SET status = 'queued', publication_id = $2, queued_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status = 'pending'
`

// MarkNodeQueued attaches a publication job to a pending node
func (s *Store) MarkNodeQueued(ctx context.Context, nodeID, publicationID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, sqlMarkNodeQueued, nodeID, publicationID)
	if err != nil {
		s.logger.Error(ctx, "failed to mark node queued", err)
		return fmt.Errorf("failed to mark node queued: %w", err)
	}
	return nil
}

const sqlMarkNodeRunning = `
UPDATE promotion_nodes
SET status = 'running', started_at = COALESCE(started_at, NOW()), updated_at = NOW()
WHERE id = $1 AND status IN ('pending', 'queued')
`

// MarkNodeRunning flips a node to running when its publisher picks it up
func (s *Store) MarkNodeRunning(ctx context.Context, nodeID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, sqlMarkNodeRunning, nodeID)
	if err != nil {
		s.logger.Error(ctx, "failed to mark node running", err)
		return fmt.Errorf("failed to mark node running: %w", err)
	}
	return nil
}

const sqlFinishNode = `
UPDATE promotion_nodes
SET status = $2, result_url = $3, error = $4, finished_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status IN ('pending', 'queued', 'running')
`

// FinishNode moves an open node to a terminal state. Guarded so recovery and a
// late publisher callback cannot both claim the transition.
func (s *Store) FinishNode(ctx context.Context, nodeID uuid.UUID, status string, resultURL, errMsg *string) (bool, error) {
	result, err := s.db.ExecContext(ctx, sqlFinishNode, nodeID, status, resultURL, errMsg)
	if err != nil {
		s.logger.Error(ctx, "failed to finish node", err)
		return false, fmt.Errorf("failed to finish node: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

const sqlCountSuccessfulNodesByRun = `
SELECT COALESCE(COUNT(*), 0)::int
FROM promotion_nodes
WHERE run_id = $1 AND status IN ('success', 'completed')
`

// CountSuccessfulNodesByRun counts terminal-success nodes across all levels
func (s *Store) CountSuccessfulNodesByRun(ctx context.Context, runID uuid.UUID) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountSuccessfulNodesByRun, runID)
	if err != nil {
		s.logger.Error(ctx, "failed to count successful nodes", err)
		return 0, fmt.Errorf("failed to count successful nodes: %w", err)
	}
	return count, nil
}
