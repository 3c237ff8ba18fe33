package processor

import (
	"context"
	"time"

	"promopilot/internal/store"

	"github.com/google/uuid"
)

// ReportEntry is one published article in the final report
type ReportEntry struct {
	NodeID      uuid.UUID `json:"node_id"`
	NetworkSlug string    `json:"network_slug"`
	TargetURL   string    `json:"target_url"`
	ResultURL   string    `json:"result_url"`
	AnchorText  string    `json:"anchor_text"`
}

// LevelReport groups published articles per cascade level
type LevelReport struct {
	Level   int           `json:"level"`
	Success int           `json:"success"`
	Failed  int           `json:"failed"`
	Entries []ReportEntry `json:"entries"`
}

// CrowdReportEntry is one completed crowd placement
type CrowdReportEntry struct {
	TaskID    uuid.UUID `json:"task_id"`
	TargetURL string    `json:"target_url"`
	ResultURL string    `json:"result_url,omitempty"`
}

// CrowdReport summarizes the crowd sub-pipeline. Manual-fallback tasks are
// accounted separately and never counted as completed placements.
type CrowdReport struct {
	Required  int                `json:"required"`
	Completed int                `json:"completed"`
	Manual    int                `json:"manual"`
	Entries   []CrowdReportEntry `json:"entries"`
}

// Report is the durable outcome document of a run
type Report struct {
	RunID          uuid.UUID     `json:"run_id"`
	TargetURL      string        `json:"target_url"`
	Status         string        `json:"status"`
	ChargedAmount  float64       `json:"charged_amount"`
	TotalPublished int           `json:"total_published"`
	Levels         []LevelReport `json:"levels"`
	Crowd          CrowdReport   `json:"crowd"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

// buildReport assembles the report from node and crowd task rows.
func (p *Processor) buildReport(ctx context.Context, run store.PromotionRun) (Report, error) {
	nodes, err := p.store.GetNodesByRun(ctx, run.ID)
	if err != nil {
		return Report{}, err
	}
	tasks, err := p.store.GetCrowdTasksByRun(ctx, run.ID)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		RunID:         run.ID,
		TargetURL:     run.TargetURL,
		Status:        run.Status,
		ChargedAmount: run.ChargedAmount,
		GeneratedAt:   p.now().UTC(),
	}

	byLevel := make(map[int]*LevelReport)
	for level := 1; level <= 3; level++ {
		if level == 3 && !run.Settings.Level2Enabled {
			// Level 3 never plans without level 2 parents.
			continue
		}
		if run.Settings.LevelEnabled(level) {
			byLevel[level] = &LevelReport{Level: level}
		}
	}
	for _, node := range nodes {
		lr, ok := byLevel[node.Level]
		if !ok {
			lr = &LevelReport{Level: node.Level}
			byLevel[node.Level] = lr
		}
		switch {
		case store.IsNodeSuccess(node.Status):
			lr.Success++
			report.TotalPublished++
			resultURL := ""
			if node.ResultURL != nil {
				resultURL = *node.ResultURL
			}
			lr.Entries = append(lr.Entries, ReportEntry{
				NodeID:      node.ID,
				NetworkSlug: node.NetworkSlug,
				TargetURL:   node.TargetURL,
				ResultURL:   resultURL,
				AnchorText:  node.AnchorText,
			})
		case node.Status == store.NodeStatusFailed:
			lr.Failed++
		}
	}
	for level := 1; level <= 3; level++ {
		if lr, ok := byLevel[level]; ok {
			report.Levels = append(report.Levels, *lr)
		}
	}

	if run.Settings.CrowdEnabled && run.Settings.CrowdPerArticle > 0 {
		perArticle := run.Settings.CrowdPerArticle
		finals, err := p.collectFinalNodes(ctx, run)
		if err != nil {
			return Report{}, err
		}
		report.Crowd.Required = perArticle * len(finals)
	}
	for _, task := range tasks {
		switch task.Status {
		case store.CrowdTaskStatusCompleted:
			report.Crowd.Completed++
			entry := CrowdReportEntry{TaskID: task.ID, TargetURL: task.TargetURL}
			if task.ResultURL != nil {
				entry.ResultURL = *task.ResultURL
			}
			report.Crowd.Entries = append(report.Crowd.Entries, entry)
		case store.CrowdTaskStatusManual:
			report.Crowd.Manual++
		}
	}

	return report, nil
}
