package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"promopilot/internal/observability"
	"promopilot/internal/store"
)

// recoverStuckNodes settles open nodes that have sat without movement past
// the configured age by consulting their publication row. A node whose
// publication finished gets the result applied; a node whose publication is
// missing or itself overdue is failed so the stage can settle.
func (p *Processor) recoverStuckNodes(ctx context.Context, run store.PromotionRun) error {
	cutoff := p.now().Add(-p.config.StuckNodeMaxAge)
	nodes, err := p.store.GetOpenNodesOlderThan(ctx, run.ID, cutoff)
	if err != nil {
		return err
	}

	for _, node := range nodes {
		nctx := observability.WithFields(ctx,
			observability.Field{Key: "node_id", Value: node.ID.String()},
			observability.Field{Key: "network_slug", Value: node.NetworkSlug},
		)
		if err := p.recoverNode(nctx, node, cutoff); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) recoverNode(ctx context.Context, node store.PromotionNode, cutoff time.Time) error {
	if node.PublicationID == nil {
		return p.failStuckNode(ctx, node, store.FailCodePublicationMissing)
	}

	pub, err := p.store.GetPublicationByID(ctx, *node.PublicationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return p.failStuckNode(ctx, node, store.FailCodePublicationMissing)
		}
		return err
	}

	switch pub.Status {
	case store.PublicationStatusSuccess, store.PublicationStatusPartial:
		// Callback never landed; adopt the publication's outcome.
		if _, err := p.store.FinishNode(ctx, node.ID, store.NodeStatusSuccess, pub.ResultURL, nil); err != nil {
			return err
		}
		p.logger.Info(ctx, "stuck node recovered from finished publication")
		return nil
	case store.PublicationStatusFailed, store.PublicationStatusCancelled:
		if _, err := p.store.FinishNode(ctx, node.ID, store.NodeStatusFailed, nil, pub.Error); err != nil {
			return err
		}
		p.logger.Info(ctx, fmt.Sprintf("stuck node settled as failed from %s publication", pub.Status))
		return nil
	}

	// Publication claims to be in flight. Trust its own clock: a publication
	// started (or created) before the cutoff is considered lost.
	startedAt := pub.CreatedAt
	if pub.StartedAt != nil {
		startedAt = *pub.StartedAt
	}
	if startedAt.Before(cutoff) {
		return p.failStuckNode(ctx, node, store.FailCodePublicationTimeout)
	}

	p.logger.Debug(ctx, "node stale but publication still fresh, leaving it")
	return nil
}

func (p *Processor) failStuckNode(ctx context.Context, node store.PromotionNode, code string) error {
	msg := code
	if _, err := p.store.FinishNode(ctx, node.ID, store.NodeStatusFailed, nil, &msg); err != nil {
		return err
	}
	p.logger.Warn(ctx, fmt.Sprintf("stuck node failed with %s", code))
	return nil
}
