package store

// Promotion run statuses
const (
	RunStatusQueued    = "queued"
	RunStatusActive    = "active"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
	RunStatusCancelled = "cancelled"
)

// RunActiveStatuses is the open-stage set: a (project, link) pair may hold at
// most one run in these statuses at a time.
var RunActiveStatuses = []string{RunStatusQueued, RunStatusActive}

// Promotion run stages, in pipeline order
const (
	StagePendingLevel1 = "pending_level1"
	StageLevel1Active  = "level1_active"
	StagePendingLevel2 = "pending_level2"
	StageLevel2Active  = "level2_active"
	StagePendingLevel3 = "pending_level3"
	StageLevel3Active  = "level3_active"
	StagePendingCrowd  = "pending_crowd"
	StageCrowdReady    = "crowd_ready"
	StageCrowdWaiting  = "crowd_waiting"
	StageReportReady   = "report_ready"
	StageCompleted     = "completed"
	StageFailed        = "failed"
	StageCancelled     = "cancelled"
)

// StageOrder maps stages to their position in the linear pipeline. Used to
// assert monotonic progress and to prioritize in-flight runs over fresh ones.
// crowd_ready and crowd_waiting share a rank: they legitimately oscillate.
var StageOrder = map[string]int{
	StagePendingLevel1: 0,
	StageLevel1Active:  1,
	StagePendingLevel2: 2,
	StageLevel2Active:  3,
	StagePendingLevel3: 4,
	StageLevel3Active:  5,
	StagePendingCrowd:  6,
	StageCrowdReady:    7,
	StageCrowdWaiting:  7,
	StageReportReady:   8,
	StageCompleted:     9,
	StageFailed:        9,
	StageCancelled:     9,
}

// Promotion node statuses
const (
	NodeStatusPending   = "pending"
	NodeStatusQueued    = "queued"
	NodeStatusRunning   = "running"
	NodeStatusSuccess   = "success"
	NodeStatusCompleted = "completed"
	NodeStatusFailed    = "failed"
	NodeStatusCancelled = "cancelled"
)

// NodeOpenStatuses are node states that still await a publication result.
var NodeOpenStatuses = []string{NodeStatusPending, NodeStatusQueued, NodeStatusRunning}

// NodeSuccessStatuses are treated as equivalent terminal-success.
var NodeSuccessStatuses = []string{NodeStatusSuccess, NodeStatusCompleted}

// IsNodeSuccess reports whether a node status is terminal-success.
func IsNodeSuccess(status string) bool {
	return status == NodeStatusSuccess || status == NodeStatusCompleted
}

// Crowd task statuses
const (
	CrowdTaskStatusPlanned   = "planned"
	CrowdTaskStatusQueued    = "queued"
	CrowdTaskStatusRunning   = "running"
	CrowdTaskStatusCompleted = "completed"
	CrowdTaskStatusFailed    = "failed"
	CrowdTaskStatusManual    = "manual"
	CrowdTaskStatusCancelled = "cancelled"
)

// CrowdTaskOpenStatuses are crowd tasks an external worker may still pick up.
var CrowdTaskOpenStatuses = []string{CrowdTaskStatusPlanned, CrowdTaskStatusQueued, CrowdTaskStatusRunning}

// Publication statuses
const (
	PublicationStatusQueued    = "queued"
	PublicationStatusRunning   = "running"
	PublicationStatusSuccess   = "success"
	PublicationStatusPartial   = "partial"
	PublicationStatusFailed    = "failed"
	PublicationStatusCancelled = "cancelled"
)

// PublicationOpenStatuses are publications the external publisher still owns.
var PublicationOpenStatuses = []string{PublicationStatusQueued, PublicationStatusRunning}

// Balance event sources
const (
	BalanceSourcePromotionCharge    = "promotion_charge"
	BalanceSourcePromotionRefund    = "promotion_refund"
	BalanceSourceReferralCommission = "referral_commission"
)

// Crowd link statuses
const (
	CrowdLinkStatusActive   = "active"
	CrowdLinkStatusDisabled = "disabled"
)

// Run failure codes surfaced in promotion_runs.error
const (
	FailCodeNoNetworksL1        = "NO_NETWORKS_L1"
	FailCodeLevel1Failed        = "LEVEL1_FAILED"
	FailCodeLevel1Insufficient  = "LEVEL1_INSUFFICIENT_SUCCESS"
	FailCodeLevel1NoURL         = "LEVEL1_NO_URL"
	FailCodeLevel2Failed        = "LEVEL2_FAILED"
	FailCodeLevel2Insufficient  = "LEVEL2_INSUFFICIENT_SUCCESS"
	FailCodeLevel3Failed        = "LEVEL3_FAILED"
	FailCodeLevel3Insufficient  = "LEVEL3_INSUFFICIENT_SUCCESS"
	FailCodeCrowdNoSources      = "CROWD_SOURCES_UNAVAILABLE"
	FailCodeCrowdNoTasks        = "CROWD_TASKS_NOT_CREATED"
	FailCodeCrowdInsufficient   = "CROWD_FAILED_INSUFFICIENT"
	FailCodePublicationMissing  = "PUBLICATION_MISSING"
	FailCodePublicationTimeout  = "PUBLICATION_TIMEOUT"
	FailCodeCancelledByUser     = "CANCELLED_BY_USER"
	FailCodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	FailCodeDB                  = "DB"
)
