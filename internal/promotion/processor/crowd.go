package processor

import (
	"context"
	"fmt"

	"promopilot/internal/jobs"
	"promopilot/internal/observability"
	"promopilot/internal/store"

	"github.com/google/uuid"
)

// Crowd exhaustion cap: a node stops receiving top-ups once its non-cancelled
// attempts reach max(perArticle*crowdCapMultiplier, perArticle+crowdCapSlack).
// The slack term keeps small per-article targets from capping out after a
// couple of source outages.
const (
	crowdCapMultiplier = 6
	crowdCapSlack      = 12
)

func crowdExhaustionCap(perArticle int) int {
	byMultiple := perArticle * crowdCapMultiplier
	bySlack := perArticle + crowdCapSlack
	if byMultiple > bySlack {
		return byMultiple
	}
	return bySlack
}

// crowdNeed is one node's outstanding crowd demand
type crowdNeed struct {
	node store.PromotionNode
	need int
}

// queueResult summarizes one top-up pass
type queueResult struct {
	Created  int // tasks bound to a live crowd source
	Fallback int // manual tasks created for lack of sources
	Shortage int // demand that found no source
}

// processPendingCrowd plans the first wave of crowd tasks against the final
// articles and moves the run into the crowd loop.
func (p *Processor) processPendingCrowd(ctx context.Context, run store.PromotionRun) error {
	settings := run.Settings
	if !settings.CrowdEnabled || settings.CrowdPerArticle < 1 {
		p.logger.Info(ctx, "crowd stage disabled, moving straight to report")
		return p.store.UpdateRunStage(ctx, run.ID, store.StageReportReady)
	}

	finals, err := p.collectFinalNodes(ctx, run)
	if err != nil {
		return err
	}
	if len(finals) == 0 {
		// Levels passed their thresholds, so this means no article kept a
		// usable url.
		p.logger.Warn(ctx, "no final articles available for crowd tasks")
		return p.failRun(ctx, run, store.FailCodeCrowdNoTasks)
	}

	needs := make([]crowdNeed, 0, len(finals))
	for _, node := range finals {
		needs = append(needs, crowdNeed{node: node, need: settings.CrowdPerArticle})
	}

	result, err := p.queueCrowdTasks(ctx, run, needs)
	if err != nil {
		return err
	}
	if result.Created == 0 && result.Fallback == 0 {
		code := store.FailCodeCrowdNoTasks
		if result.Shortage > 0 {
			code = store.FailCodeCrowdNoSources
		}
		return p.failRun(ctx, run, code)
	}

	p.logger.Info(ctx, fmt.Sprintf("crowd planned: %d live tasks, %d manual fallbacks", result.Created, result.Fallback))
	if err := p.store.UpdateRunStage(ctx, run.ID, store.StageCrowdReady); err != nil {
		return err
	}
	p.wakeCrowdWorker(ctx, run.ID)
	return nil
}

// processCrowdStage evaluates crowd deficits and either waits, tops up,
// cools down, or settles the stage. crowd_ready and crowd_waiting oscillate
// until every article meets its target or a deficient article exhausts its
// attempt cap.
func (p *Processor) processCrowdStage(ctx context.Context, run store.PromotionRun) error {
	if run.Stage == store.StageCrowdWaiting && run.NextRetryAt != nil && p.now().Before(*run.NextRetryAt) {
		return nil
	}

	settings := run.Settings
	perArticle := settings.CrowdPerArticle
	attemptCap := crowdExhaustionCap(perArticle)

	finals, err := p.collectFinalNodes(ctx, run)
	if err != nil {
		return err
	}
	stats, err := p.store.GetCrowdStatsByNode(ctx, run.ID)
	if err != nil {
		return err
	}
	statsByNode := make(map[uuid.UUID]store.CrowdNodeStats, len(stats))
	for _, s := range stats {
		statsByNode[s.NodeID] = s
	}

	var (
		needs     []crowdNeed
		active    int
		exhausted int
	)
	allMet := true
	for _, node := range finals {
		s := statsByNode[node.ID]
		active += s.Active
		deficit := perArticle - s.Success
		if deficit <= 0 {
			continue
		}
		allMet = false
		if s.Attempts >= attemptCap {
			exhausted++
			continue
		}
		// Live attempts still count toward the target; only top up the
		// remainder.
		if outstanding := deficit - s.Active; outstanding > 0 {
			needs = append(needs, crowdNeed{node: node, need: outstanding})
		}
	}

	if allMet {
		p.logger.Info(ctx, "crowd targets met, moving to report")
		return p.store.UpdateRunStage(ctx, run.ID, store.StageReportReady)
	}

	if exhausted > 0 && len(needs) == 0 && active == 0 {
		p.logger.Warn(ctx, fmt.Sprintf("%d articles exhausted their crowd attempt cap of %d", exhausted, attemptCap))
		return p.failRun(ctx, run, store.FailCodeCrowdInsufficient)
	}

	if len(needs) > 0 {
		result, err := p.queueCrowdTasks(ctx, run, needs)
		if err != nil {
			return err
		}
		if result.Created > 0 {
			if run.Stage == store.StageCrowdWaiting {
				if err := p.store.UpdateRunStage(ctx, run.ID, store.StageCrowdReady); err != nil {
					return err
				}
			}
			p.wakeCrowdWorker(ctx, run.ID)
			return nil
		}
		// Nothing live could be created. Cool down before the next look so
		// a depleted source pool is not hammered.
		p.logger.Info(ctx, fmt.Sprintf("crowd sources short by %d, cooling down", result.Shortage))
		return p.store.SetRunWaiting(ctx, run.ID, store.StageCrowdWaiting, p.now().Add(p.config.CrowdRetryDelay))
	}

	if active > 0 {
		// Work in flight; nothing to decide yet.
		p.wakeCrowdWorker(ctx, run.ID)
		return nil
	}

	return p.store.SetRunWaiting(ctx, run.ID, store.StageCrowdWaiting, p.now().Add(p.config.CrowdRetryDelay))
}

// collectFinalNodes returns the successful articles of the deepest level that
// produced any, which is the layer crowd tasks point at.
func (p *Processor) collectFinalNodes(ctx context.Context, run store.PromotionRun) ([]store.PromotionNode, error) {
	for level := 3; level >= 1; level-- {
		if !run.Settings.LevelEnabled(level) {
			continue
		}
		nodes, err := p.successfulParents(ctx, run, level)
		if err != nil {
			return nil, err
		}
		if len(nodes) > 0 {
			return nodes, nil
		}
	}
	return nil, nil
}

// queueCrowdTasks creates up to need tasks per node, binding each to a crowd
// source not yet assigned to that node. Demand that outruns the source pool
// becomes a manual-fallback task so an operator can place it by hand.
func (p *Processor) queueCrowdTasks(ctx context.Context, run store.PromotionRun, needs []crowdNeed) (queueResult, error) {
	var result queueResult
	var params []store.CreateCrowdTaskParams

	for _, n := range needs {
		if n.need < 1 || n.node.ResultURL == nil {
			continue
		}
		nodeID := n.node.ID
		targetURL := *n.node.ResultURL

		assigned, err := p.store.GetAssignedCrowdLinkIDs(ctx, nodeID)
		if err != nil {
			return queueResult{}, err
		}
		links, err := p.store.GetActiveCrowdLinks(ctx, n.need, assigned)
		if err != nil {
			return queueResult{}, err
		}

		message := fmt.Sprintf("Check out %s via %s", n.node.AnchorText, targetURL)
		for _, link := range links {
			linkID := link.ID
			params = append(params, store.CreateCrowdTaskParams{
				RunID:       run.ID,
				NodeID:      &nodeID,
				CrowdLinkID: &linkID,
				TargetURL:   targetURL,
				Status:      store.CrowdTaskStatusPlanned,
				Payload:     store.CrowdTaskPayload{Message: message},
			})
			result.Created++
		}

		if short := n.need - len(links); short > 0 {
			result.Shortage += short
			for i := 0; i < short; i++ {
				params = append(params, store.CreateCrowdTaskParams{
					RunID:     run.ID,
					NodeID:    &nodeID,
					TargetURL: targetURL,
					Status:    store.CrowdTaskStatusManual,
					Payload: store.CrowdTaskPayload{
						Message:        message,
						ManualFallback: true,
						FallbackReason: "no unused crowd sources available",
					},
				})
				result.Fallback++
			}
		}
	}

	if len(params) == 0 {
		return result, nil
	}
	if _, err := p.store.CreateCrowdTasks(ctx, params); err != nil {
		return queueResult{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "crowd_created", Value: result.Created},
		observability.Field{Key: "crowd_fallback", Value: result.Fallback},
	), "crowd tasks created")
	return result, nil
}

func (p *Processor) wakeCrowdWorker(ctx context.Context, runID uuid.UUID) {
	if err := p.jobs.EnqueueCrowdExecute(ctx, jobs.CrowdExecutePayload{RunID: runID}); err != nil {
		p.logger.Error(ctx, "failed to enqueue crowd execute task", err)
	}
}
