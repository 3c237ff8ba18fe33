package processor

import (
	"context"
	"fmt"
	"sort"

	"promopilot/internal/observability"
	"promopilot/internal/store"
)

// UsageMap tracks how often each network slug has been used, both across the
// whole project and per target url. The selector never reuses a slug for the
// same target and spreads load across the least-used slugs otherwise.
type UsageMap struct {
	global  map[string]int
	targets map[string]map[string]int
}

// NewUsageMap builds a usage map from project-wide history plus the run's own
// nodes. Project history already includes this run's nodes, so only the
// per-target sub-map is filled from them.
func NewUsageMap(projectUsage []store.NetworkUsage, runNodes []store.PromotionNode) *UsageMap {
	m := &UsageMap{
		global:  make(map[string]int, len(projectUsage)),
		targets: make(map[string]map[string]int),
	}
	for _, u := range projectUsage {
		m.global[u.NetworkSlug] = u.Uses
	}
	for _, node := range runNodes {
		if node.Status == store.NodeStatusCancelled {
			continue
		}
		m.recordTarget(node.NetworkSlug, node.TargetURL)
	}
	return m
}

// Record notes a fresh assignment so later picks in the same pass see it.
func (m *UsageMap) Record(slug, targetURL string) {
	m.global[slug]++
	m.recordTarget(slug, targetURL)
}

func (m *UsageMap) recordTarget(slug, targetURL string) {
	byTarget, ok := m.targets[targetURL]
	if !ok {
		byTarget = make(map[string]int)
		m.targets[targetURL] = byTarget
	}
	byTarget[slug]++
}

// GlobalUses returns how often the slug has been used across the project.
func (m *UsageMap) GlobalUses(slug string) int {
	return m.global[slug]
}

// UsedForTarget reports whether the slug already served this target url.
func (m *UsageMap) UsedForTarget(slug, targetURL string) bool {
	return m.targets[targetURL][slug] > 0
}

func (p *Processor) buildUsageMap(ctx context.Context, run store.PromotionRun) (*UsageMap, error) {
	projectUsage, err := p.store.CountNetworkUsageByProject(ctx, run.ProjectID)
	if err != nil {
		return nil, err
	}
	nodes, err := p.store.GetNodesByRun(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return NewUsageMap(projectUsage, nodes), nil
}

type selectRequest struct {
	Level     int
	Count     int
	Project   store.Project
	Usage     *UsageMap
	TargetURL string
}

// selectNetworks picks up to Count distinct networks for one target. Networks
// matching the project's region and topic rank first, then the least-used
// slug wins; slugs that already served this target are excluded outright.
// Returns a shorter (possibly empty) slice when the pool runs dry.
func (p *Processor) selectNetworks(ctx context.Context, req selectRequest) ([]store.Network, error) {
	if req.Count < 1 {
		return nil, nil
	}

	pool, err := p.store.GetNetworksForLevel(ctx, req.Level, req.Project.Region, req.Project.Topic)
	if err != nil {
		return nil, err
	}

	eligible := make([]store.Network, 0, len(pool))
	for _, network := range pool {
		if req.Usage.UsedForTarget(network.Slug, req.TargetURL) {
			continue
		}
		eligible = append(eligible, network)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.MatchRank != b.MatchRank {
			return a.MatchRank > b.MatchRank
		}
		au, bu := req.Usage.GlobalUses(a.Slug), req.Usage.GlobalUses(b.Slug)
		if au != bu {
			return au < bu
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Slug < b.Slug
	})

	if len(eligible) > req.Count {
		eligible = eligible[:req.Count]
	}

	p.logger.Debug(ctx, fmt.Sprintf("selected %d of %d requested networks for level %d (pool %d)",
		len(eligible), req.Count, req.Level, len(pool)))
	if len(eligible) < req.Count {
		p.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "level", Value: req.Level},
		), fmt.Sprintf("network pool short: wanted %d, got %d", req.Count, len(eligible)))
	}
	return eligible, nil
}
