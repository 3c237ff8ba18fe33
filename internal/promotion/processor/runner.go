package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"promopilot/internal/clients/kafka"
	"promopilot/internal/clients/redis"
	"promopilot/internal/jobs"
	"promopilot/internal/observability"
	"promopilot/internal/store"

	"github.com/google/uuid"
)

// ProcessRun advances a run by at most one stage transition. It is safe to
// call repeatedly and concurrently with publisher callbacks: every state
// change goes through a conditional update, and all counts are re-derived
// from child rows on each invocation.
func (p *Processor) ProcessRun(ctx context.Context, run store.PromotionRun) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "run_id", Value: run.ID.String()},
		observability.Field{Key: "stage", Value: run.Stage},
	)

	switch run.Status {
	case store.RunStatusCompleted, store.RunStatusFailed, store.RunStatusCancelled:
		return nil
	}

	var err error
	switch run.Stage {
	case store.StagePendingLevel1:
		err = p.processPendingLevel1(ctx, run)
	case store.StageLevel1Active:
		err = p.processLevelActive(ctx, run, 1)
	case store.StagePendingLevel2:
		err = p.processPendingChildLevel(ctx, run, 2)
	case store.StageLevel2Active:
		err = p.processLevelActive(ctx, run, 2)
	case store.StagePendingLevel3:
		err = p.processPendingChildLevel(ctx, run, 3)
	case store.StageLevel3Active:
		err = p.processLevelActive(ctx, run, 3)
	case store.StagePendingCrowd:
		err = p.processPendingCrowd(ctx, run)
	case store.StageCrowdReady, store.StageCrowdWaiting:
		err = p.processCrowdStage(ctx, run)
	case store.StageReportReady:
		err = p.processReportReady(ctx, run)
	default:
		p.logger.Warn(ctx, fmt.Sprintf("run is in unknown stage %q, failing it", run.Stage))
		return p.failRun(ctx, run, store.FailCodeDB)
	}
	if err != nil {
		p.logger.Error(ctx, "stage processing failed", err)
		return fmt.Errorf("failed to process run stage %s: %w", run.Stage, err)
	}
	return nil
}

// processPendingLevel1 plans the first fan-out: pick networks for the link
// itself and hand each node to the publisher.
func (p *Processor) processPendingLevel1(ctx context.Context, run store.PromotionRun) error {
	settings := run.Settings
	required := 0
	if settings.Level1Enabled {
		required = settings.Level1Count
	}
	if required < 1 {
		return p.failRun(ctx, run, store.FailCodeNoNetworksL1)
	}

	project, err := p.store.GetProjectByID(ctx, run.ProjectID)
	if err != nil {
		return err
	}
	link, err := p.store.GetProjectLinkByID(ctx, run.LinkID)
	if err != nil {
		return err
	}

	usage, err := p.buildUsageMap(ctx, run)
	if err != nil {
		return err
	}

	networks, err := p.selectNetworks(ctx, selectRequest{
		Level:     1,
		Count:     required,
		Project:   project,
		Usage:     usage,
		TargetURL: run.TargetURL,
	})
	if err != nil {
		return err
	}
	if len(networks) == 0 {
		p.logger.Warn(ctx, "no eligible networks for level 1")
		return p.failRun(ctx, run, store.FailCodeNoNetworksL1)
	}

	params := make([]store.CreateNodeParams, 0, len(networks))
	for _, network := range networks {
		params = append(params, store.CreateNodeParams{
			RunID:       run.ID,
			Level:       1,
			TargetURL:   run.TargetURL,
			NetworkSlug: network.Slug,
			AnchorText:  link.AnchorText,
			InitiatedBy: run.InitiatedBy,
		})
	}
	nodes, err := p.store.CreateNodes(ctx, params)
	if err != nil {
		return err
	}
	if err := p.dispatchNodes(ctx, run, nodes); err != nil {
		return err
	}

	p.logger.Info(ctx, fmt.Sprintf("level 1 planned with %d nodes", len(nodes)))
	return p.store.UpdateRunStage(ctx, run.ID, store.StageLevel1Active)
}

// processPendingChildLevel plans a child fan-out off the previous level's
// successful articles.
func (p *Processor) processPendingChildLevel(ctx context.Context, run store.PromotionRun, level int) error {
	settings := run.Settings
	if !settings.LevelEnabled(level) || settings.PerParent(level) < 1 {
		// Planner stages are only entered for enabled levels; a disabled
		// level here means the snapshot is inconsistent.
		return p.advancePastLevel(ctx, run, level)
	}

	parents, err := p.successfulParents(ctx, run, level-1)
	if err != nil {
		return err
	}
	if len(parents) == 0 {
		code := store.FailCodeLevel1NoURL
		if level == 3 {
			code = store.FailCodeLevel2Failed
		}
		p.logger.Warn(ctx, fmt.Sprintf("no level %d parents carry a result url", level-1))
		return p.failRun(ctx, run, code)
	}

	project, err := p.store.GetProjectByID(ctx, run.ProjectID)
	if err != nil {
		return err
	}
	usage, err := p.buildUsageMap(ctx, run)
	if err != nil {
		return err
	}

	per := settings.PerParent(level)
	var params []store.CreateNodeParams
	for _, parent := range parents {
		networks, err := p.selectNetworks(ctx, selectRequest{
			Level:     level,
			Count:     per,
			Project:   project,
			Usage:     usage,
			TargetURL: *parent.ResultURL,
		})
		if err != nil {
			return err
		}
		anchor := p.anchorForParent(ctx, parent)
		for _, network := range networks {
			parentID := parent.ID
			params = append(params, store.CreateNodeParams{
				RunID:       run.ID,
				Level:       level,
				ParentID:    &parentID,
				TargetURL:   *parent.ResultURL,
				NetworkSlug: network.Slug,
				AnchorText:  anchor,
				InitiatedBy: run.InitiatedBy,
			})
			usage.Record(network.Slug, *parent.ResultURL)
		}
	}

	// Planning zero nodes is not terminal here: the active stage evaluates
	// deficits against the snapshot and fails with the right code.
	if len(params) > 0 {
		nodes, err := p.store.CreateNodes(ctx, params)
		if err != nil {
			return err
		}
		if err := p.dispatchNodes(ctx, run, nodes); err != nil {
			return err
		}
		p.logger.Info(ctx, fmt.Sprintf("level %d planned with %d nodes across %d parents", level, len(nodes), len(parents)))
	}

	return p.store.UpdateRunStage(ctx, run.ID, activeStageForLevel(level))
}

// processLevelActive waits out open nodes, tops up deficits with fresh
// networks, and decides whether the level passed.
func (p *Processor) processLevelActive(ctx context.Context, run store.PromotionRun, level int) error {
	if err := p.recoverStuckNodes(ctx, run); err != nil {
		return err
	}

	counts, err := p.store.CountNodeStatuses(ctx, run.ID, level)
	if err != nil {
		return err
	}
	if counts.Open() > 0 {
		return nil
	}

	if level == 1 {
		return p.settleLevel1(ctx, run, counts)
	}
	return p.settleChildLevel(ctx, run, level, counts)
}

func (p *Processor) settleLevel1(ctx context.Context, run store.PromotionRun, counts store.NodeStatusCounts) error {
	required := run.Settings.Level1Count
	if counts.Success >= required {
		return p.advancePastLevel(ctx, run, 1)
	}

	created, err := p.topUpLevel1(ctx, run, required-counts.Success)
	if err != nil {
		return err
	}
	if created > 0 {
		p.logger.Info(ctx, fmt.Sprintf("level 1 deficit of %d, created %d retry nodes", required-counts.Success, created))
		return nil
	}

	// Network pool exhausted for this target.
	code := store.FailCodeLevel1Insufficient
	if counts.Success == 0 {
		code = store.FailCodeLevel1Failed
	}
	return p.failRun(ctx, run, code)
}

func (p *Processor) topUpLevel1(ctx context.Context, run store.PromotionRun, deficit int) (int, error) {
	project, err := p.store.GetProjectByID(ctx, run.ProjectID)
	if err != nil {
		return 0, err
	}
	link, err := p.store.GetProjectLinkByID(ctx, run.LinkID)
	if err != nil {
		return 0, err
	}
	usage, err := p.buildUsageMap(ctx, run)
	if err != nil {
		return 0, err
	}

	networks, err := p.selectNetworks(ctx, selectRequest{
		Level:     1,
		Count:     deficit,
		Project:   project,
		Usage:     usage,
		TargetURL: run.TargetURL,
	})
	if err != nil {
		return 0, err
	}
	if len(networks) == 0 {
		return 0, nil
	}

	params := make([]store.CreateNodeParams, 0, len(networks))
	for _, network := range networks {
		params = append(params, store.CreateNodeParams{
			RunID:       run.ID,
			Level:       1,
			TargetURL:   run.TargetURL,
			NetworkSlug: network.Slug,
			AnchorText:  link.AnchorText,
			InitiatedBy: run.InitiatedBy,
		})
	}
	nodes, err := p.store.CreateNodes(ctx, params)
	if err != nil {
		return 0, err
	}
	if err := p.dispatchNodes(ctx, run, nodes); err != nil {
		return 0, err
	}
	return len(nodes), nil
}

func (p *Processor) settleChildLevel(ctx context.Context, run store.PromotionRun, level int, counts store.NodeStatusCounts) error {
	settings := run.Settings
	per := settings.PerParent(level)

	parents, err := p.successfulParents(ctx, run, level-1)
	if err != nil {
		return err
	}
	children, err := p.store.GetNodesByRunAndLevel(ctx, run.ID, level)
	if err != nil {
		return err
	}

	successByParent := make(map[uuid.UUID]int)
	for _, child := range children {
		if child.ParentID != nil && store.IsNodeSuccess(child.Status) {
			successByParent[*child.ParentID]++
		}
	}

	type parentDeficit struct {
		parent  store.PromotionNode
		deficit int
	}
	var deficits []parentDeficit
	for _, parent := range parents {
		if missing := per - successByParent[parent.ID]; missing > 0 {
			deficits = append(deficits, parentDeficit{parent: parent, deficit: missing})
		}
	}
	if len(deficits) == 0 {
		return p.advancePastLevel(ctx, run, level)
	}

	project, err := p.store.GetProjectByID(ctx, run.ProjectID)
	if err != nil {
		return err
	}
	usage, err := p.buildUsageMap(ctx, run)
	if err != nil {
		return err
	}

	var params []store.CreateNodeParams
	for _, d := range deficits {
		networks, err := p.selectNetworks(ctx, selectRequest{
			Level:     level,
			Count:     d.deficit,
			Project:   project,
			Usage:     usage,
			TargetURL: *d.parent.ResultURL,
		})
		if err != nil {
			return err
		}
		anchor := p.anchorForParent(ctx, d.parent)
		for _, network := range networks {
			parentID := d.parent.ID
			params = append(params, store.CreateNodeParams{
				RunID:       run.ID,
				Level:       level,
				ParentID:    &parentID,
				TargetURL:   *d.parent.ResultURL,
				NetworkSlug: network.Slug,
				AnchorText:  anchor,
				InitiatedBy: run.InitiatedBy,
			})
			usage.Record(network.Slug, *d.parent.ResultURL)
		}
	}

	if len(params) > 0 {
		nodes, err := p.store.CreateNodes(ctx, params)
		if err != nil {
			return err
		}
		if err := p.dispatchNodes(ctx, run, nodes); err != nil {
			return err
		}
		p.logger.Info(ctx, fmt.Sprintf("level %d retrying %d parents with %d nodes", level, len(deficits), len(nodes)))
		return nil
	}

	// No parent can get a fresh network anymore.
	var code string
	switch {
	case level == 2 && counts.Success == 0:
		code = store.FailCodeLevel2Failed
	case level == 2:
		code = store.FailCodeLevel2Insufficient
	case counts.Success == 0:
		code = store.FailCodeLevel3Failed
	default:
		code = store.FailCodeLevel3Insufficient
	}
	return p.failRun(ctx, run, code)
}

// advancePastLevel moves the run to the next enabled planner stage after the
// given level passed.
func (p *Processor) advancePastLevel(ctx context.Context, run store.PromotionRun, level int) error {
	settings := run.Settings
	next := store.StagePendingCrowd
	if level < 2 && settings.Level2Enabled && settings.Level2PerLevel1 > 0 {
		next = store.StagePendingLevel2
	} else if level == 2 && settings.Level3Enabled && settings.Level3PerLevel2 > 0 {
		// Level 3 only ever hangs off level 2 parents. With level 2 disabled
		// a settled level 1 goes straight to the crowd stage.
		next = store.StagePendingLevel3
	}
	p.logger.Info(ctx, fmt.Sprintf("level %d settled, advancing to %s", level, next))
	if err := p.store.UpdateRunStage(ctx, run.ID, next); err != nil {
		return err
	}
	p.updateProgress(ctx, run)
	return nil
}

// processReportReady assembles and stores the final report, completes the run
// and fires the completion notification exactly once.
func (p *Processor) processReportReady(ctx context.Context, run store.PromotionRun) error {
	report, err := p.buildReport(ctx, run)
	if err != nil {
		return err
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	completed, err := p.store.CompleteRun(ctx, run.ID, data)
	if err != nil {
		return err
	}
	if !completed {
		// Another worker or a cancellation got there first.
		return nil
	}

	p.updateProgress(ctx, run)
	p.logger.Info(ctx, "promotion run completed")
	p.publishRunEvent(ctx, run, kafka.EventRunCompleted, map[string]interface{}{
		"links_published": report.TotalPublished,
		"crowd_completed": report.Crowd.Completed,
	})
	return nil
}

// failRun marks the run failed with a machine-readable code and notifies.
func (p *Processor) failRun(ctx context.Context, run store.PromotionRun, code string) error {
	if err := p.store.FailRun(ctx, run.ID, code); err != nil {
		return err
	}
	p.logger.Warn(ctx, fmt.Sprintf("promotion run failed with code %s", code))
	p.publishRunEvent(ctx, run, kafka.EventRunFailed, map[string]interface{}{
		"code": code,
	})
	return nil
}

// dispatchNodes creates a publication per pending node and hands it to the
// publisher queue.
func (p *Processor) dispatchNodes(ctx context.Context, run store.PromotionRun, nodes []store.PromotionNode) error {
	for _, node := range nodes {
		minLen, maxLen := run.Settings.LengthBounds(node.Level)
		pub, err := p.store.CreatePublication(ctx, store.CreatePublicationParams{
			RunID:       run.ID,
			NodeID:      node.ID,
			NetworkSlug: node.NetworkSlug,
			TargetURL:   node.TargetURL,
			AnchorText:  node.AnchorText,
			MinLen:      minLen,
			MaxLen:      maxLen,
		})
		if err != nil {
			return err
		}
		if err := p.store.MarkNodeQueued(ctx, node.ID, pub.ID); err != nil {
			return err
		}
		if err := p.jobs.EnqueuePublicationExecute(ctx, jobs.PublicationExecutePayload{
			PublicationID: pub.ID,
			NodeID:        node.ID,
			RunID:         run.ID,
			NetworkSlug:   node.NetworkSlug,
		}); err != nil {
			// Node stays queued; stuck-node recovery settles it if the
			// publisher never picks it up.
			p.logger.Error(ctx, "failed to enqueue publication task", err)
		}
	}
	return nil
}

// successfulParents returns the level's successful nodes that carry a result
// url usable as a child target.
func (p *Processor) successfulParents(ctx context.Context, run store.PromotionRun, level int) ([]store.PromotionNode, error) {
	nodes, err := p.store.GetNodesByRunAndLevel(ctx, run.ID, level)
	if err != nil {
		return nil, err
	}
	parents := make([]store.PromotionNode, 0, len(nodes))
	for _, node := range nodes {
		if store.IsNodeSuccess(node.Status) && node.ResultURL != nil && *node.ResultURL != "" {
			parents = append(parents, node)
		}
	}
	return parents, nil
}

// anchorForParent derives a child anchor from the parent's cached article
// title, falling back to the parent's own anchor.
func (p *Processor) anchorForParent(ctx context.Context, parent store.PromotionNode) string {
	article, found, err := p.articles.GetArticle(ctx, parent.ID.String())
	if err != nil {
		p.logger.Error(ctx, "failed to read cached article", err)
	}
	if found && article.Title != "" {
		return article.Title
	}
	return parent.AnchorText
}

func activeStageForLevel(level int) string {
	switch level {
	case 2:
		return store.StageLevel2Active
	case 3:
		return store.StageLevel3Active
	}
	return store.StageLevel1Active
}

func articleFromContent(content ArticleContent) redis.Article {
	return redis.Article{
		Title:       content.Title,
		HTMLContent: content.HTMLContent,
		PlainText:   content.PlainText,
		Language:    content.Language,
	}
}
