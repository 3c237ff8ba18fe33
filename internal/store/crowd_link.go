package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const sqlGetActiveCrowdLinks = `
SELECT id, url, language, status, created_at, updated_at
FROM crowd_links
WHERE status = 'active'
ORDER BY created_at ASC
LIMIT $1
`

const sqlGetActiveCrowdLinksExcluding = `
SELECT id, url, language, status, created_at, updated_at
FROM crowd_links
WHERE status = 'active' AND id NOT IN (?)
ORDER BY created_at ASC
LIMIT ?
`

// GetActiveCrowdLinks returns up to limit active crowd-posting venues,
// skipping the excluded IDs (venues already assigned to the same node).
// Fewer than limit rows means the inventory is short, not an error.
func (s *Store) GetActiveCrowdLinks(ctx context.Context, limit int, excludeIDs []uuid.UUID) ([]CrowdLink, error) {
	var links []CrowdLink

	if len(excludeIDs) == 0 {
		err := s.db.SelectContext(ctx, &links, sqlGetActiveCrowdLinks, limit)
		if err != nil {
			s.logger.Error(ctx, "failed to get active crowd links", err)
			return nil, fmt.Errorf("failed to get active crowd links: %w", err)
		}
		return links, nil
	}

	query, args, err := sqlx.In(sqlGetActiveCrowdLinksExcluding, excludeIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build crowd link query: %w", err)
	}
	query = s.db.Rebind(query)
	err = s.db.SelectContext(ctx, &links, query, args...)
	if err != nil {
		s.logger.Error(ctx, "failed to get active crowd links", err)
		return nil, fmt.Errorf("failed to get active crowd links: %w", err)
	}
	return links, nil
}
