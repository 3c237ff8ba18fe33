package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreatePublicationParams represents parameters for creating a publication job
type CreatePublicationParams struct {
	RunID       uuid.UUID
	NodeID      uuid.UUID
	NetworkSlug string
	TargetURL   string
	AnchorText  string
	MinLen      int
	MaxLen      int
}

const sqlCreatePublication = `
INSERT INTO publications (run_id, node_id, network_slug, target_url, anchor_text, min_len, max_len, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'queued')
RETURNING id, run_id, node_id, network_slug, target_url, anchor_text, min_len, max_len, status,
          result_url, error, cancel_requested, started_at, finished_at, created_at, updated_at
`

// CreatePublication creates a publication job row for an external publisher
func (s *Store) CreatePublication(ctx context.Context, params CreatePublicationParams) (Publication, error) {
	var publication Publication
	err := s.db.GetContext(ctx, &publication, sqlCreatePublication,
		params.RunID,
		params.NodeID,
		params.NetworkSlug,
		params.TargetURL,
		params.AnchorText,
		params.MinLen,
		params.MaxLen)
	if err != nil {
		s.logger.Error(ctx, "failed to create publication", err)
		return Publication{}, fmt.Errorf("failed to create publication: %w", err)
	}
	return publication, nil
}

const sqlGetPublicationByID = `
SELECT id, run_id, node_id, network_slug, target_url, anchor_text, min_len, max_len, status,
       result_url, error, cancel_requested, started_at, finished_at, created_at, updated_at
FROM publications
WHERE id = $1
`

// GetPublicationByID retrieves a publication job by ID
func (s *Store) GetPublicationByID(ctx context.Context, publicationID uuid.UUID) (Publication, error) {
	var publication Publication
	err := s.db.GetContext(ctx, &publication, sqlGetPublicationByID, publicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Publication{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get publication by id", err)
		return Publication{}, fmt.Errorf("failed to get publication by id: %w", err)
	}
	return publication, nil
}

const sqlUpdatePublicationResult = `
UPDATE publications
SET status = $2, result_url = $3, error = $4, finished_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status IN ('queued', 'running')
`

// UpdatePublicationResult records the external publisher's outcome. Guarded so
// a late callback cannot overwrite a cancelled or already-finished job.
func (s *Store) UpdatePublicationResult(ctx context.Context, publicationID uuid.UUID, status string, resultURL, errMsg *string) (bool, error) {
	result, err := s.db.ExecContext(ctx, sqlUpdatePublicationResult, publicationID, status, resultURL, errMsg)
	if err != nil {
		s.logger.Error(ctx, "failed to update publication result", err)
		return false, fmt.Errorf("failed to update publication result: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

const sqlMarkPublicationRunning = `
UPDATE publications
SET status = 'running', started_at = COALESCE(started_at, NOW()), updated_at = NOW()
WHERE id = $1 AND status = 'queued'
`

// MarkPublicationRunning flips a queued publication to running
func (s *Store) MarkPublicationRunning(ctx context.Context, publicationID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, sqlMarkPublicationRunning, publicationID)
	if err != nil {
		s.logger.Error(ctx, "failed to mark publication running", err)
		return fmt.Errorf("failed to mark publication running: %w", err)
	}
	return nil
}
