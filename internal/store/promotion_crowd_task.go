package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const crowdTaskColumns = `
id, run_id, node_id, crowd_link_id, target_url, status, result_url, payload, created_at, updated_at
`

// CreateCrowdTaskParams represents parameters for creating one crowd task
type CreateCrowdTaskParams struct {
	RunID       uuid.UUID
	NodeID      *uuid.UUID
	CrowdLinkID *uuid.UUID
	TargetURL   string
	Status      string
	Payload     CrowdTaskPayload
}

const sqlCreateCrowdTask = `
INSERT INTO promotion_crowd_tasks (run_id, node_id, crowd_link_id, target_url, status, payload)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + crowdTaskColumns + `
`

// CreateCrowdTasks inserts a batch of crowd tasks in one transaction
func (s *Store) CreateCrowdTasks(ctx context.Context, params []CreateCrowdTaskParams) ([]PromotionCrowdTask, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tasks := make([]PromotionCrowdTask, 0, len(params))
	for _, p := range params {
		var task PromotionCrowdTask
		err := tx.GetContext(ctx, &task, sqlCreateCrowdTask,
			p.RunID, p.NodeID, p.CrowdLinkID, p.TargetURL, p.Status, p.Payload)
		if err != nil {
			s.logger.Error(ctx, "failed to create crowd task", err)
			return nil, fmt.Errorf("failed to create crowd task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return tasks, nil
}

const sqlGetCrowdTasksByRun = `
SELECT ` + crowdTaskColumns + `
FROM promotion_crowd_tasks
WHERE run_id = $1
ORDER BY created_at ASC
`

// GetCrowdTasksByRun retrieves all crowd tasks of a run
func (s *Store) GetCrowdTasksByRun(ctx context.Context, runID uuid.UUID) ([]PromotionCrowdTask, error) {
	var tasks []PromotionCrowdTask
	err := s.db.SelectContext(ctx, &tasks, sqlGetCrowdTasksByRun, runID)
	if err != nil {
		s.logger.Error(ctx, "failed to get crowd tasks by run", err)
		return nil, fmt.Errorf("failed to get crowd tasks by run: %w", err)
	}
	return tasks, nil
}

const sqlGetCrowdStatsByNode = `
SELECT
    node_id,
    COALESCE(COUNT(*) FILTER (WHERE status = 'completed'), 0)::int AS success,
    COALESCE(COUNT(*) FILTER (WHERE status IN ('planned', 'queued', 'running')), 0)::int AS active,
    COALESCE(COUNT(*) FILTER (WHERE status = 'failed'), 0)::int AS failed,
    COALESCE(COUNT(*) FILTER (WHERE status = 'manual'), 0)::int AS manual,
    COALESCE(COUNT(*) FILTER (WHERE status = 'cancelled'), 0)::int AS cancelled,
    COALESCE(COUNT(*) FILTER (WHERE status != 'cancelled'), 0)::int AS attempts
FROM promotion_crowd_tasks
WHERE run_id = $1 AND node_id IS NOT NULL
GROUP BY node_id
`

// GetCrowdStatsByNode re-derives per-node crowd progress from task rows.
// Manual fallbacks count as attempts but never as success; cancelled tasks
// count as neither.
func (s *Store) GetCrowdStatsByNode(ctx context.Context, runID uuid.UUID) ([]CrowdNodeStats, error) {
	var stats []CrowdNodeStats
	err := s.db.SelectContext(ctx, &stats, sqlGetCrowdStatsByNode, runID)
	if err != nil {
		s.logger.Error(ctx, "failed to get crowd stats by node", err)
		return nil, fmt.Errorf("failed to get crowd stats by node: %w", err)
	}
	return stats, nil
}

const sqlGetAssignedCrowdLinkIDs = `
SELECT crowd_link_id
FROM promotion_crowd_tasks
WHERE node_id = $1 AND crowd_link_id IS NOT NULL AND status != 'cancelled'
`

// GetAssignedCrowdLinkIDs lists venues already assigned to a node. A crowd
// link, once used for a node, is never reassigned to it.
func (s *Store) GetAssignedCrowdLinkIDs(ctx context.Context, nodeID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.SelectContext(ctx, &ids, sqlGetAssignedCrowdLinkIDs, nodeID)
	if err != nil {
		s.logger.Error(ctx, "failed to get assigned crowd link ids", err)
		return nil, fmt.Errorf("failed to get assigned crowd link ids: %w", err)
	}
	return ids, nil
}

const sqlCountCompletedCrowdTasksByRun = `
SELECT COALESCE(COUNT(*), 0)::int
FROM promotion_crowd_tasks
WHERE run_id = $1 AND status = 'completed'
`

// CountCompletedCrowdTasksByRun counts successful crowd placements for a run
func (s *Store) CountCompletedCrowdTasksByRun(ctx context.Context, runID uuid.UUID) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountCompletedCrowdTasksByRun, runID)
	if err != nil {
		s.logger.Error(ctx, "failed to count completed crowd tasks", err)
		return 0, fmt.Errorf("failed to count completed crowd tasks: %w", err)
	}
	return count, nil
}
