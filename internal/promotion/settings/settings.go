package settings

import (
	"context"

	"promopilot/internal/observability"
	"promopilot/internal/store"
)

// Defaults applied when a project carries no override for a given knob.
var defaults = store.PromotionSettings{
	Level1Count:     5,
	Level2PerLevel1: 2,
	Level3PerLevel2: 1,
	Level1Enabled:   true,
	Level2Enabled:   true,
	Level3Enabled:   false,
	Level1MinLen:    2000,
	Level1MaxLen:    4000,
	Level2MinLen:    1500,
	Level2MaxLen:    3000,
	Level3MinLen:    1000,
	Level3MaxLen:    2500,
	CrowdEnabled:    true,
	CrowdPerArticle: 3,
	PricePerLink:    50,
	DiscountPercent: 0,
}

// Provider materializes the promotion settings for a project by layering its
// stored overrides on top of the defaults. The result is frozen onto the run
// row at start time; nothing downstream re-reads live settings.
type Provider struct {
	logger *observability.Logger
}

// New creates a settings provider
func New(logger *observability.Logger) *Provider {
	return &Provider{logger: logger}
}

// ForProject resolves the effective settings for a project.
func (p *Provider) ForProject(ctx context.Context, project store.Project) store.PromotionSettings {
	s := defaults
	if project.Settings == nil {
		return s
	}

	applyInt(project.Settings, "level1_count", &s.Level1Count)
	applyInt(project.Settings, "level2_per_level1", &s.Level2PerLevel1)
	applyInt(project.Settings, "level3_per_level2", &s.Level3PerLevel2)
	applyBool(project.Settings, "level1_enabled", &s.Level1Enabled)
	applyBool(project.Settings, "level2_enabled", &s.Level2Enabled)
	applyBool(project.Settings, "level3_enabled", &s.Level3Enabled)
	applyInt(project.Settings, "level1_min_len", &s.Level1MinLen)
	applyInt(project.Settings, "level1_max_len", &s.Level1MaxLen)
	applyInt(project.Settings, "level2_min_len", &s.Level2MinLen)
	applyInt(project.Settings, "level2_max_len", &s.Level2MaxLen)
	applyInt(project.Settings, "level3_min_len", &s.Level3MinLen)
	applyInt(project.Settings, "level3_max_len", &s.Level3MaxLen)
	applyBool(project.Settings, "crowd_enabled", &s.CrowdEnabled)
	applyInt(project.Settings, "crowd_per_article", &s.CrowdPerArticle)
	applyFloat(project.Settings, "price_per_link", &s.PricePerLink)
	applyFloat(project.Settings, "discount_percent", &s.DiscountPercent)

	if s.Level1Count < 1 {
		p.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "project_id", Value: project.ID.String()}),
			"project overrides produced a non-positive level1_count, restoring default")
		s.Level1Count = defaults.Level1Count
	}

	return s
}

// JSONB numbers decode as float64; overrides written by other tools may also
// carry real ints, so accept both.
func applyInt(m store.JSONB, key string, dst *int) {
	v, ok := m[key]
	if !ok {
		return
	}
	switch n := v.(type) {
	case float64:
		*dst = int(n)
	case int:
		*dst = n
	}
}

func applyBool(m store.JSONB, key string, dst *bool) {
	if v, ok := m[key].(bool); ok {
		*dst = v
	}
}

func applyFloat(m store.JSONB, key string, dst *float64) {
	if v, ok := m[key].(float64); ok {
		*dst = v
	}
}
