package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promopilot/internal/clients/kafka"
	"promopilot/internal/jobs"
	"promopilot/internal/observability"
	"promopilot/internal/store"

	"github.com/google/uuid"
)

// Sentinel errors surfaced to the HTTP layer
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrLinkNotFound    = errors.New("project link not found")
	ErrRunNotFound     = errors.New("promotion run not found")
)

// Config tunes the cascade engine timing knobs
type Config struct {
	// StuckNodeMaxAge is how long an open node may sit without movement
	// before recovery inspects its publication.
	StuckNodeMaxAge time.Duration
	// CrowdRetryDelay is the cooldown applied before re-checking crowd
	// sources after a shortage.
	CrowdRetryDelay time.Duration
}

// Processor drives the multi-level promotion cascade: it starts and cancels
// runs, advances them stage by stage, and assembles the final report.
type Processor struct {
	store    PromotionStore
	settings SettingsProvider
	jobs     JobEnqueuer
	articles ArticleCache
	notifier Notifier
	referral CommissionAwarder
	config   Config
	logger   *observability.Logger
	now      func() time.Time
}

// NewProcessor creates a cascade processor
func NewProcessor(
	promotionStore PromotionStore,
	settingsProvider SettingsProvider,
	jobEnqueuer JobEnqueuer,
	articleCache ArticleCache,
	notifier Notifier,
	referral CommissionAwarder,
	config Config,
	logger *observability.Logger,
) *Processor {
	return &Processor{
		store:    promotionStore,
		settings: settingsProvider,
		jobs:     jobEnqueuer,
		articles: articleCache,
		notifier: notifier,
		referral: referral,
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
}

// StartRunInput identifies the link to promote and who asked for it
type StartRunInput struct {
	ProjectID   uuid.UUID
	LinkID      uuid.UUID
	InitiatedBy string
}

// StartRunOutput reports the run that now covers the link. Already is true
// when the link was under an active run before this call.
type StartRunOutput struct {
	Run     store.PromotionRun
	Already bool
}

// StartRun charges the owner and creates a queued run for the link, or
// returns the existing active run. Side effects (referral commission, balance
// event, worker kick) happen only on a fresh start.
func (p *Processor) StartRun(ctx context.Context, input StartRunInput) (StartRunOutput, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "project_id", Value: input.ProjectID.String()},
		observability.Field{Key: "link_id", Value: input.LinkID.String()},
	)

	project, err := p.store.GetProjectByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StartRunOutput{}, ErrProjectNotFound
		}
		return StartRunOutput{}, fmt.Errorf("failed to load project: %w", err)
	}

	link, err := p.store.GetProjectLinkByID(ctx, input.LinkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StartRunOutput{}, ErrLinkNotFound
		}
		return StartRunOutput{}, fmt.Errorf("failed to load project link: %w", err)
	}
	if link.ProjectID != project.ID {
		return StartRunOutput{}, ErrLinkNotFound
	}

	settings := p.settings.ForProject(ctx, project)

	result, err := p.store.StartRun(ctx, store.StartRunParams{
		ProjectID:   project.ID,
		LinkID:      link.ID,
		OwnerUserID: project.OwnerUserID,
		InitiatedBy: input.InitiatedBy,
		Settings:    settings,
	})
	if err != nil {
		return StartRunOutput{}, err
	}
	if result.Already {
		p.logger.Info(ctx, "link already has an active run, returning it")
		return StartRunOutput{Run: result.Run, Already: true}, nil
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "run_id", Value: result.Run.ID.String()})
	p.logger.Info(ctx, fmt.Sprintf("started promotion run, charged %.2f", result.Run.ChargedAmount))

	// Commission and events are best-effort: the run is already committed.
	if err := p.referral.AwardCommission(ctx, project.OwnerUserID, result.Run.ID, result.Run.ChargedAmount); err != nil {
		p.logger.Error(ctx, "failed to award referral commission", err)
	}
	p.publishRunEvent(ctx, result.Run, kafka.EventBalanceDebited, map[string]interface{}{
		"amount": result.Run.ChargedAmount,
	})

	runID := result.Run.ID
	if err := p.jobs.EnqueuePromotionProcess(ctx, jobs.PromotionProcessPayload{RunID: &runID}); err != nil {
		// The periodic sweep will pick the run up anyway.
		p.logger.Error(ctx, "failed to enqueue promotion process task", err)
	}

	return StartRunOutput{Run: result.Run}, nil
}

// CancelRun cancels the active run covering the link, failing open children
// and requesting publisher-side cancellation. Idempotent: cancelling a run
// that already finished returns ErrRunNotFound.
func (p *Processor) CancelRun(ctx context.Context, projectID, linkID uuid.UUID) (store.PromotionRun, error) {
	run, err := p.store.GetActiveRunByLink(ctx, projectID, linkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.PromotionRun{}, ErrRunNotFound
		}
		return store.PromotionRun{}, fmt.Errorf("failed to find active run: %w", err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "run_id", Value: run.ID.String()})

	cancelled, err := p.store.CancelRunCascade(ctx, run.ID, store.FailCodeCancelledByUser)
	if err != nil {
		return store.PromotionRun{}, err
	}
	if !cancelled {
		// Lost the race with a terminal transition.
		return store.PromotionRun{}, ErrRunNotFound
	}

	p.logger.Info(ctx, "promotion run cancelled by user")
	p.publishRunEvent(ctx, run, kafka.EventRunCancelled, nil)

	return p.store.GetRunByID(ctx, run.ID)
}

// LevelStatus summarizes one cascade level for the status endpoint
type LevelStatus struct {
	Level     int  `json:"level"`
	Enabled   bool `json:"enabled"`
	Required  int  `json:"required"`
	Attempted int  `json:"attempted"`
	Success   int  `json:"success"`
	Failed    int  `json:"failed"`
	Open      int  `json:"open"`
}

// CrowdStatus summarizes the crowd sub-pipeline for the status endpoint
type CrowdStatus struct {
	Enabled   bool `json:"enabled"`
	Required  int  `json:"required"`
	Completed int  `json:"completed"`
	Active    int  `json:"active"`
	Manual    int  `json:"manual"`
}

// RunStatus is the full status payload for one run
type RunStatus struct {
	RunID         uuid.UUID           `json:"run_id"`
	Status        string              `json:"status"`
	Stage         string              `json:"stage"`
	TargetURL     string              `json:"target_url"`
	ChargedAmount float64             `json:"charged_amount"`
	ProgressTotal int                 `json:"progress_total"`
	ProgressDone  int                 `json:"progress_done"`
	Error         *string             `json:"error,omitempty"`
	Levels        []LevelStatus       `json:"levels"`
	Crowd         CrowdStatus         `json:"crowd"`
	Queue         store.QueuePosition `json:"queue"`
	CreatedAt     time.Time           `json:"created_at"`
}

// GetStatus reports live progress of the active run covering the link. All
// counts are derived from child rows, never cached counters.
func (p *Processor) GetStatus(ctx context.Context, projectID, linkID uuid.UUID) (RunStatus, error) {
	run, err := p.store.GetActiveRunByLink(ctx, projectID, linkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return RunStatus{}, ErrRunNotFound
		}
		return RunStatus{}, fmt.Errorf("failed to find active run: %w", err)
	}
	return p.statusForRun(ctx, run)
}

// GetRunStatus reports live progress of a run by id, terminal runs included.
func (p *Processor) GetRunStatus(ctx context.Context, runID uuid.UUID) (RunStatus, error) {
	run, err := p.store.GetRunByID(ctx, runID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return RunStatus{}, ErrRunNotFound
		}
		return RunStatus{}, fmt.Errorf("failed to load run: %w", err)
	}
	return p.statusForRun(ctx, run)
}

func (p *Processor) statusForRun(ctx context.Context, run store.PromotionRun) (RunStatus, error) {
	status := RunStatus{
		RunID:         run.ID,
		Status:        run.Status,
		Stage:         run.Stage,
		TargetURL:     run.TargetURL,
		ChargedAmount: run.ChargedAmount,
		ProgressTotal: run.ProgressTotal,
		ProgressDone:  run.ProgressDone,
		Error:         run.Error,
		CreatedAt:     run.CreatedAt,
	}

	settings := run.Settings
	plannedParents := 1
	for level := 1; level <= 3; level++ {
		enabled := settings.LevelEnabled(level)
		if level == 3 && !settings.Level2Enabled {
			// Level 3 hangs off level 2 parents and never plans nodes
			// when level 2 is disabled.
			enabled = false
		}
		required := 0
		if enabled {
			required = plannedParents * settings.PerParent(level)
		}
		counts, err := p.store.CountNodeStatuses(ctx, run.ID, level)
		if err != nil {
			return RunStatus{}, err
		}
		status.Levels = append(status.Levels, LevelStatus{
			Level:     level,
			Enabled:   enabled,
			Required:  required,
			Attempted: counts.Pending + counts.Queued + counts.Running + counts.Success + counts.Failed,
			Success:   counts.Success,
			Failed:    counts.Failed,
			Open:      counts.Open(),
		})
		if enabled {
			plannedParents = required
		}
	}

	if settings.CrowdEnabled && settings.CrowdPerArticle > 0 {
		stats, err := p.store.GetCrowdStatsByNode(ctx, run.ID)
		if err != nil {
			return RunStatus{}, err
		}
		crowd := CrowdStatus{Enabled: true}
		for _, s := range stats {
			crowd.Required += settings.CrowdPerArticle
			crowd.Completed += s.Success
			crowd.Active += s.Active
			crowd.Manual += s.Manual
		}
		status.Crowd = crowd
	}

	if run.Status == store.RunStatusQueued {
		pos, err := p.store.GetRunQueuePosition(ctx, run.ID)
		if err != nil {
			return RunStatus{}, err
		}
		status.Queue = pos
	}

	return status, nil
}

// GetReport returns the final report of a run. For terminal runs missing a
// stored report it rebuilds and persists one from the node and task rows.
func (p *Processor) GetReport(ctx context.Context, runID uuid.UUID) (Report, error) {
	run, err := p.store.GetRunByID(ctx, runID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Report{}, ErrRunNotFound
		}
		return Report{}, fmt.Errorf("failed to load run: %w", err)
	}

	if len(run.ReportJSON) > 0 {
		var report Report
		if err := json.Unmarshal(run.ReportJSON, &report); err == nil {
			return report, nil
		}
		p.logger.Warn(ctx, "stored report is unreadable, rebuilding")
	}

	report, err := p.buildReport(ctx, run)
	if err != nil {
		return Report{}, err
	}

	if run.Status == store.RunStatusCompleted {
		data, err := json.Marshal(report)
		if err == nil {
			if err := p.store.SaveRunReport(ctx, run.ID, data); err != nil {
				p.logger.Error(ctx, "failed to persist rebuilt report", err)
			}
		}
	}

	return report, nil
}

// PublicationResult is what the external publisher reports back
type PublicationResult struct {
	Status    string
	ResultURL *string
	Error     *string
	Article   *ArticleContent
}

// ArticleContent is the published article body attached to a success result
type ArticleContent struct {
	Title       string `json:"title"`
	HTMLContent string `json:"html_content"`
	PlainText   string `json:"plain_text"`
	Language    string `json:"language"`
}

// HandlePublicationResult applies a publisher callback to the owning node and
// wakes the cascade. Late or duplicate callbacks are absorbed: the publication
// update is guarded on open status and reports whether it took effect.
func (p *Processor) HandlePublicationResult(ctx context.Context, publicationID uuid.UUID, result PublicationResult) error {
	pub, err := p.store.GetPublicationByID(ctx, publicationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRunNotFound
		}
		return fmt.Errorf("failed to load publication: %w", err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "run_id", Value: pub.RunID.String()},
		observability.Field{Key: "publication_id", Value: pub.ID.String()},
	)

	updated, err := p.store.UpdatePublicationResult(ctx, pub.ID, result.Status, result.ResultURL, result.Error)
	if err != nil {
		return err
	}
	if !updated {
		p.logger.Info(ctx, "publication already settled, ignoring late callback")
		return nil
	}

	var nodeStatus string
	switch result.Status {
	case store.PublicationStatusSuccess, store.PublicationStatusPartial:
		nodeStatus = store.NodeStatusSuccess
	default:
		nodeStatus = store.NodeStatusFailed
	}

	if _, err := p.store.FinishNode(ctx, pub.NodeID, nodeStatus, result.ResultURL, result.Error); err != nil {
		return err
	}

	if nodeStatus == store.NodeStatusSuccess && result.Article != nil {
		article := articleFromContent(*result.Article)
		if err := p.articles.SetArticle(ctx, pub.NodeID.String(), article); err != nil {
			p.logger.Error(ctx, "failed to cache published article", err)
		}
	}

	p.logger.Info(ctx, fmt.Sprintf("publication settled as %s, node marked %s", result.Status, nodeStatus))

	run, err := p.store.GetRunByID(ctx, pub.RunID)
	if err == nil {
		p.updateProgress(ctx, run)
	}

	runID := pub.RunID
	if err := p.jobs.EnqueuePromotionProcess(ctx, jobs.PromotionProcessPayload{RunID: &runID}); err != nil {
		p.logger.Error(ctx, "failed to enqueue promotion process task", err)
	}
	return nil
}

// updateProgress re-derives progress_done from child rows and clamps it at
// progress_total.
func (p *Processor) updateProgress(ctx context.Context, run store.PromotionRun) {
	nodes, err := p.store.CountSuccessfulNodesByRun(ctx, run.ID)
	if err != nil {
		p.logger.Error(ctx, "failed to count successful nodes", err)
		return
	}
	tasks, err := p.store.CountCompletedCrowdTasksByRun(ctx, run.ID)
	if err != nil {
		p.logger.Error(ctx, "failed to count completed crowd tasks", err)
		return
	}
	if err := p.store.UpdateRunProgress(ctx, run.ID, nodes+tasks); err != nil {
		p.logger.Error(ctx, "failed to update run progress", err)
	}
}

func (p *Processor) publishRunEvent(ctx context.Context, run store.PromotionRun, eventType string, data map[string]interface{}) {
	runID := run.ID.String()
	event := kafka.EventMessage{
		ID:        uuid.New().String(),
		Type:      eventType,
		UserID:    run.OwnerUserID.String(),
		RunID:     &runID,
		Data:      data,
		Timestamp: p.now().UTC().Format(time.RFC3339),
	}
	if err := p.notifier.PublishEvent(ctx, event); err != nil {
		p.logger.Error(ctx, "failed to publish run event", err)
	}
}
