package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const sqlGetNetworksForLevel = `
SELECT
    id, slug, title, levels, regions, topics, priority, enabled, created_at, updated_at,
    (CASE WHEN $2 = ANY(regions) THEN 1 ELSE 0 END +
     CASE WHEN $3 = ANY(topics) THEN 1 ELSE 0 END)::int AS match_rank
FROM networks
WHERE enabled = true AND $1 = ANY(levels)
ORDER BY match_rank DESC, priority DESC, slug ASC
`

// GetNetworksForLevel returns all enabled networks able to publish at the
// given level, best region/topic matches first. The caller layers
// usage-balanced selection on top; an empty result means the pool is
// exhausted, which is not an error here.
func (s *Store) GetNetworksForLevel(ctx context.Context, level int, region, topic string) ([]Network, error) {
	var networks []Network
	err := s.db.SelectContext(ctx, &networks, sqlGetNetworksForLevel, level, region, topic)
	if err != nil {
		s.logger.Error(ctx, "failed to get networks for level", err)
		return nil, fmt.Errorf("failed to get networks for level: %w", err)
	}
	return networks, nil
}

const sqlCountNetworkUsageByProject = `
SELECT n.network_slug, COUNT(*) AS uses
FROM promotion_nodes n
JOIN promotion_runs r ON r.id = n.run_id
WHERE r.project_id = $1
GROUP BY n.network_slug
`

// NetworkUsage is one row of historical slug usage for a project
type NetworkUsage struct {
	NetworkSlug string `db:"network_slug"`
	Uses        int    `db:"uses"`
}

// CountNetworkUsageByProject returns how often each network slug has been used
// across all runs of a project. Feeds the usage-balanced selector.
func (s *Store) CountNetworkUsageByProject(ctx context.Context, projectID uuid.UUID) ([]NetworkUsage, error) {
	var usage []NetworkUsage
	err := s.db.SelectContext(ctx, &usage, sqlCountNetworkUsageByProject, projectID)
	if err != nil {
		s.logger.Error(ctx, "failed to count network usage by project", err)
		return nil, fmt.Errorf("failed to count network usage by project: %w", err)
	}
	return usage, nil
}
