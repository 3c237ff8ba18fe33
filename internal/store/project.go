package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const sqlGetProjectByID = `
SELECT id, owner_user_id, name, region, topic, settings, created_at, updated_at
FROM projects
WHERE id = $1
`

// GetProjectByID retrieves a project by ID
func (s *Store) GetProjectByID(ctx context.Context, projectID uuid.UUID) (Project, error) {
	var project Project
	err := s.db.GetContext(ctx, &project, sqlGetProjectByID, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get project by id", err)
		return Project{}, fmt.Errorf("failed to get project by id: %w", err)
	}
	return project, nil
}

const sqlGetProjectLinkByID = `
SELECT id, project_id, url, anchor_text, created_at, updated_at
FROM project_links
WHERE id = $1
`

// GetProjectLinkByID retrieves a project link by ID
func (s *Store) GetProjectLinkByID(ctx context.Context, linkID uuid.UUID) (ProjectLink, error) {
	var link ProjectLink
	err := s.db.GetContext(ctx, &link, sqlGetProjectLinkByID, linkID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProjectLink{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get project link by id", err)
		return ProjectLink{}, fmt.Errorf("failed to get project link by id: %w", err)
	}
	return link, nil
}

const sqlLockProjectLink = `
SELECT id, project_id, url, anchor_text, created_at, updated_at
FROM project_links
WHERE id = $1 AND project_id = $2
FOR UPDATE
`

// lockProjectLink locks a link row inside a transaction. Serializes concurrent
// run starts against the same link.
func lockProjectLink(ctx context.Context, tx *sqlx.Tx, projectID, linkID uuid.UUID) (ProjectLink, error) {
	var link ProjectLink
	err := tx.GetContext(ctx, &link, sqlLockProjectLink, linkID, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProjectLink{}, ErrNotFound
		}
		return ProjectLink{}, fmt.Errorf("failed to lock project link: %w", err)
	}
	return link, nil
}
