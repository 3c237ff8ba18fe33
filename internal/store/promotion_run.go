package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const runColumns = `
id, project_id, link_id, owner_user_id, target_url, status, stage, initiated_by, settings,
charged_amount, discount_percent, progress_total, progress_done, error, report_json,
next_retry_at, created_at, started_at, finished_at, updated_at
`

// StartRunParams represents parameters for starting a promotion run
type StartRunParams struct {
	ProjectID   uuid.UUID
	LinkID      uuid.UUID
	OwnerUserID uuid.UUID
	InitiatedBy string
	Settings    PromotionSettings
}

// StartRunResult is the outcome of a start attempt. Already is true when an
// active run for the same (project, link) pair was found instead of created.
type StartRunResult struct {
	Run     PromotionRun
	Already bool
}

const sqlGetActiveRunByLinkTx = `
SELECT ` + runColumns + `
FROM promotion_runs
WHERE project_id = $1 AND link_id = $2 AND status IN ('queued', 'active')
LIMIT 1
`

const sqlInsertRun = `
INSERT INTO promotion_runs (project_id, link_id, owner_user_id, target_url, status, stage, initiated_by,
                            settings, charged_amount, discount_percent, progress_total, progress_done)
VALUES ($1, $2, $3, $4, 'queued', 'pending_level1', $5, $6, $7, $8, $9, 0)
RETURNING ` + runColumns + `

`

// StartRun creates a promotion run inside one transaction: it locks the target
// link row and the owner's balance row, re-checks the single-active-run
// invariant under the lock, debits the charge and records the ledger event.
// A concurrent second caller blocks on the link lock, then observes the
// just-created row and gets it back with Already set.
func (s *Store) StartRun(ctx context.Context, params StartRunParams) (StartRunResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return StartRunResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	link, err := lockProjectLink(ctx, tx, params.ProjectID, params.LinkID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return StartRunResult{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to lock project link", err)
		return StartRunResult{}, err
	}

	// Active-run check under the link lock: idempotent return.
	var existing PromotionRun
	err = tx.GetContext(ctx, &existing, sqlGetActiveRunByLinkTx, params.ProjectID, params.LinkID)
	if err == nil {
		return StartRunResult{Run: existing, Already: true}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Error(ctx, "failed to check for active run", err)
		return StartRunResult{}, fmt.Errorf("failed to check for active run: %w", err)
	}

	user, err := lockUser(ctx, tx, params.OwnerUserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return StartRunResult{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to lock user balance", err)
		return StartRunResult{}, err
	}

	charge := params.Settings.PricePerLink * (1 - params.Settings.DiscountPercent/100)
	if user.Balance < charge {
		return StartRunResult{}, &InsufficientFundsError{
			Required:  charge,
			Balance:   user.Balance,
			Shortfall: charge - user.Balance,
		}
	}
	params.Settings.ChargedAmount = charge

	progressTotal := plannedProgressTotal(params.Settings)

	var run PromotionRun
	err = tx.GetContext(ctx, &run, sqlInsertRun,
		params.ProjectID,
		params.LinkID,
		params.OwnerUserID,
		link.URL,
		params.InitiatedBy,
		params.Settings,
		charge,
		params.Settings.DiscountPercent,
		progressTotal)
	if err != nil {
		s.logger.Error(ctx, "failed to insert promotion run", err)
		return StartRunResult{}, fmt.Errorf("failed to insert promotion run: %w", err)
	}

	meta := JSONB{"run_id": run.ID.String(), "link_id": params.LinkID.String()}
	if err := adjustBalance(ctx, tx, user.ID, -charge, user.Balance, BalanceSourcePromotionCharge, meta); err != nil {
		s.logger.Error(ctx, "failed to debit balance for run", err)
		return StartRunResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return StartRunResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return StartRunResult{Run: run}, nil
}

// plannedProgressTotal derives the run's planned unit count from the frozen
// settings: every planned node plus every planned crowd task is one unit.
func plannedProgressTotal(settings PromotionSettings) int {
	total := 0
	finalCount := 0
	if settings.Level1Enabled {
		total += settings.Level1Count
		finalCount = settings.Level1Count
	}
	if settings.Level2Enabled {
		level2 := settings.Level1Count * settings.Level2PerLevel1
		total += level2
		finalCount = level2
		if settings.Level3Enabled {
			level3 := level2 * settings.Level3PerLevel2
			total += level3
			finalCount = level3
		}
	}
	if settings.CrowdEnabled && settings.CrowdPerArticle > 0 {
		total += finalCount * settings.CrowdPerArticle
	}
	return total
}

const sqlGetRunByID = `
SELECT ` + runColumns + `
FROM promotion_runs
WHERE id = $1
`

// GetRunByID retrieves a promotion run by ID
func (s *Store) GetRunByID(ctx context.Context, runID uuid.UUID) (PromotionRun, error) {
	var run PromotionRun
	err := s.db.GetContext(ctx, &run, sqlGetRunByID, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PromotionRun{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get run by id", err)
		return PromotionRun{}, fmt.Errorf("failed to get run by id: %w", err)
	}
	return run, nil
}

const sqlGetActiveRunByLink = `
SELECT ` + runColumns + `
FROM promotion_runs
WHERE project_id = $1 AND link_id = $2 AND status IN ('queued', 'active')
LIMIT 1
`

// GetActiveRunByLink finds the open run for a (project, link) pair, if any
func (s *Store) GetActiveRunByLink(ctx context.Context, projectID, linkID uuid.UUID) (PromotionRun, error) {
	var run PromotionRun
	err := s.db.GetContext(ctx, &run, sqlGetActiveRunByLink, projectID, linkID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PromotionRun{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get active run by link", err)
		return PromotionRun{}, fmt.Errorf("failed to get active run by link: %w", err)
	}
	return run, nil
}

const sqlListRunnableRuns = `
SELECT ` + runColumns + `
FROM promotion_runs
WHERE status IN ('queued', 'active')
  AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY CASE WHEN status = 'active' THEN 0 ELSE 1 END, created_at ASC
LIMIT $1
`

// ListRunnableRuns returns candidate runs in pick order: in-flight runs first
// so they advance before fresh queued ones, FIFO within each class. Runs in a
// crowd cooldown are excluded until the cooldown elapses.
func (s *Store) ListRunnableRuns(ctx context.Context, limit int) ([]PromotionRun, error) {
	var runs []PromotionRun
	err := s.db.SelectContext(ctx, &runs, sqlListRunnableRuns, limit)
	if err != nil {
		s.logger.Error(ctx, "failed to list runnable runs", err)
		return nil, fmt.Errorf("failed to list runnable runs: %w", err)
	}
	return runs, nil
}

const sqlCountActiveRunsByProject = `
SELECT COUNT(*)
FROM promotion_runs
WHERE project_id = $1 AND status = 'active'
`

// CountActiveRunsByProject counts runs already claimed by workers for a project
func (s *Store) CountActiveRunsByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountActiveRunsByProject, projectID)
	if err != nil {
		s.logger.Error(ctx, "failed to count active runs by project", err)
		return 0, fmt.Errorf("failed to count active runs by project: %w", err)
	}
	return count, nil
}

const sqlMarkRunActive = `
UPDATE promotion_runs
SET status = 'active', started_at = COALESCE(started_at, NOW()), updated_at = NOW()
WHERE id = $1 AND status IN ('queued', 'active')
`

// MarkRunActive claims a run for processing. A no-op on terminal runs.
func (s *Store) MarkRunActive(ctx context.Context, runID uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, sqlMarkRunActive, runID)
	if err != nil {
		s.logger.Error(ctx, "failed to mark run active", err)
		return false, fmt.Errorf("failed to mark run active: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

const sqlUpdateRunStage = `
UPDATE promotion_runs
SET stage = $2, next_retry_at = NULL, updated_at = NOW()
WHERE id = $1 AND status NOT IN ('completed', 'failed', 'cancelled')
`

// UpdateRunStage advances a run to the given stage. Guarded so a terminal run
// is never re-animated by a concurrent worker.
func (s *Store) UpdateRunStage(ctx context.Context, runID uuid.UUID, stage string) error {
	_, err := s.db.ExecContext(ctx, sqlUpdateRunStage, runID, stage)
	if err != nil {
		s.logger.Error(ctx, "failed to update run stage", err)
		return fmt.Errorf("failed to update run stage: %w", err)
	}
	return nil
}

const sqlSetRunWaiting = `
UPDATE promotion_runs
SET stage = $2, next_retry_at = $3, updated_at = NOW()
WHERE id = $1 AND status NOT IN ('completed', 'failed', 'cancelled')
`

// SetRunWaiting parks a run in a cooldown stage until nextRetryAt
func (s *Store) SetRunWaiting(ctx context.Context, runID uuid.UUID, stage string, nextRetryAt time.Time) error {
	_, err := s.db.ExecContext(ctx, sqlSetRunWaiting, runID, stage, nextRetryAt)
	if err != nil {
		s.logger.Error(ctx, "failed to set run waiting", err)
		return fmt.Errorf("failed to set run waiting: %w", err)
	}
	return nil
}

const sqlFailRun = `
UPDATE promotion_runs
SET status = 'failed', stage = 'failed', error = $2, finished_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status NOT IN ('completed', 'failed', 'cancelled')
`

// FailRun terminates a run with a failure code. A no-op on terminal runs.
func (s *Store) FailRun(ctx context.Context, runID uuid.UUID, code string) error {
	_, err := s.db.ExecContext(ctx, sqlFailRun, runID, code)
	if err != nil {
		s.logger.Error(ctx, "failed to fail run", err)
		return fmt.Errorf("failed to fail run: %w", err)
	}
	return nil
}

const sqlCompleteRun = `
UPDATE promotion_runs
SET status = 'completed', stage = 'completed', report_json = $2, finished_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status NOT IN ('completed', 'failed', 'cancelled')
`

// CompleteRun marks a run completed and persists its report. Returns whether
// this call performed the transition; the caller fires the completion
// notification only when true, which keeps it exactly-once.
func (s *Store) CompleteRun(ctx context.Context, runID uuid.UUID, reportJSON []byte) (bool, error) {
	result, err := s.db.ExecContext(ctx, sqlCompleteRun, runID, reportJSON)
	if err != nil {
		s.logger.Error(ctx, "failed to complete run", err)
		return false, fmt.Errorf("failed to complete run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

const sqlSaveRunReport = `
UPDATE promotion_runs
SET report_json = $2, updated_at = NOW()
WHERE id = $1
`

// SaveRunReport persists a rebuilt report without touching run status
func (s *Store) SaveRunReport(ctx context.Context, runID uuid.UUID, reportJSON []byte) error {
	_, err := s.db.ExecContext(ctx, sqlSaveRunReport, runID, reportJSON)
	if err != nil {
		s.logger.Error(ctx, "failed to save run report", err)
		return fmt.Errorf("failed to save run report: %w", err)
	}
	return nil
}

const sqlUpdateRunProgress = `
UPDATE promotion_runs
SET progress_done = LEAST($2, progress_total), updated_at = NOW()
WHERE id = $1
`

// UpdateRunProgress records completed work units, clamped to the planned total
func (s *Store) UpdateRunProgress(ctx context.Context, runID uuid.UUID, done int) error {
	if done < 0 {
		done = 0
	}
	_, err := s.db.ExecContext(ctx, sqlUpdateRunProgress, runID, done)
	if err != nil {
		s.logger.Error(ctx, "failed to update run progress", err)
		return fmt.Errorf("failed to update run progress: %w", err)
	}
	return nil
}

const sqlLockRun = `
SELECT ` + runColumns + `
FROM promotion_runs
WHERE id = $1
FOR UPDATE
`

const sqlCancelRun = `
UPDATE promotion_runs
SET status = 'cancelled', stage = 'cancelled', error = $2, finished_at = NOW(), updated_at = NOW()
WHERE id = $1
`

const sqlCancelOpenNodesByRunTx = `
UPDATE promotion_nodes
SET status = 'cancelled', finished_at = NOW(), updated_at = NOW()
WHERE run_id = $1 AND status IN ('pending', 'queued', 'running')
`

const sqlCancelOpenCrowdTasksByRunTx = `
UPDATE promotion_crowd_tasks
SET status = 'cancelled', updated_at = NOW()
WHERE run_id = $1 AND status IN ('planned', 'queued', 'running')
`

const sqlRequestCancelPublicationsByRunTx = `
UPDATE publications
SET cancel_requested = true,
    status = CASE WHEN status = 'queued' THEN 'cancelled' ELSE status END,
    updated_at = NOW()
WHERE run_id = $1 AND status IN ('queued', 'running')
`

// CancelRunCascade cancels a run and everything hanging off it in one
// transaction: publications get cancel_requested, open nodes and crowd tasks
// become cancelled, the run goes terminal. Returns false without mutating
// anything when the run is already terminal.
func (s *Store) CancelRunCascade(ctx context.Context, runID uuid.UUID, code string) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var run PromotionRun
	err = tx.GetContext(ctx, &run, sqlLockRun, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		s.logger.Error(ctx, "failed to lock run for cancel", err)
		return false, fmt.Errorf("failed to lock run for cancel: %w", err)
	}

	if run.Status == RunStatusCompleted || run.Status == RunStatusFailed || run.Status == RunStatusCancelled {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, sqlRequestCancelPublicationsByRunTx, runID); err != nil {
		s.logger.Error(ctx, "failed to cancel publications for run", err)
		return false, fmt.Errorf("failed to cancel publications for run: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlCancelOpenNodesByRunTx, runID); err != nil {
		s.logger.Error(ctx, "failed to cancel nodes for run", err)
		return false, fmt.Errorf("failed to cancel nodes for run: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlCancelOpenCrowdTasksByRunTx, runID); err != nil {
		s.logger.Error(ctx, "failed to cancel crowd tasks for run", err)
		return false, fmt.Errorf("failed to cancel crowd tasks for run: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlCancelRun, runID, code); err != nil {
		s.logger.Error(ctx, "failed to cancel run", err)
		return false, fmt.Errorf("failed to cancel run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

const sqlGetRunQueuePosition = `
SELECT
    (SELECT COUNT(*) FROM promotion_runs q
     WHERE q.status IN ('queued', 'active') AND q.created_at < r.created_at) + 1 AS global_position,
    (SELECT COUNT(*) FROM promotion_runs q
     WHERE q.status IN ('queued', 'active') AND q.owner_user_id = r.owner_user_id
       AND q.created_at < r.created_at) + 1 AS user_position
FROM promotion_runs r
WHERE r.id = $1
`

// GetRunQueuePosition ranks a run among all open runs, globally and scoped to
// its owner. Best-effort snapshot read, no locking.
func (s *Store) GetRunQueuePosition(ctx context.Context, runID uuid.UUID) (QueuePosition, error) {
	var position QueuePosition
	err := s.db.GetContext(ctx, &position, sqlGetRunQueuePosition, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QueuePosition{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get run queue position", err)
		return QueuePosition{}, fmt.Errorf("failed to get run queue position: %w", err)
	}
	return position, nil
}
