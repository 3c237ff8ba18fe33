package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JSONB is a custom type for JSONB fields
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for JSONB
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for JSONB")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*j = make(JSONB)
		return nil
	}

	result := make(JSONB)
	err := json.Unmarshal(bytes, &result)
	if err != nil {
		return err
	}
	*j = result
	return nil
}

// StringArray is a custom type for PostgreSQL text[] arrays
type StringArray []string

// Value implements the driver.Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	if len(a) == 0 {
		return "{}", nil
	}
	return "{" + strings.Join(a, ",") + "}", nil
}

// Scan implements the sql.Scanner interface for StringArray
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var str string
	switch v := value.(type) {
	case []byte:
		str = string(v)
	case string:
		str = v
	default:
		return errors.New("incompatible type for StringArray")
	}

	str = strings.Trim(str, "{}")
	if str == "" {
		*a = StringArray{}
		return nil
	}
	parts := strings.Split(str, ",")
	result := make(StringArray, 0, len(parts))
	for _, p := range parts {
		result = append(result, strings.Trim(p, `"`))
	}
	*a = result
	return nil
}

// IntArray is a custom type for PostgreSQL int[] arrays
type IntArray []int

// Value implements the driver.Valuer interface for IntArray
func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	if len(a) == 0 {
		return "{}", nil
	}
	parts := make([]string, len(a))
	for i, n := range a {
		parts[i] = strconv.Itoa(n)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Scan implements the sql.Scanner interface for IntArray
func (a *IntArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var str string
	switch v := value.(type) {
	case []byte:
		str = string(v)
	case string:
		str = v
	default:
		return errors.New("incompatible type for IntArray")
	}

	str = strings.Trim(str, "{}")
	if str == "" {
		*a = IntArray{}
		return nil
	}
	parts := strings.Split(str, ",")
	result := make(IntArray, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return err
		}
		result = append(result, n)
	}
	*a = result
	return nil
}

// Contains reports whether the array holds n.
func (a IntArray) Contains(n int) bool {
	for _, v := range a {
		if v == n {
			return true
		}
	}
	return false
}

// PromotionSettings is the configuration snapshot frozen onto a run at start
// time. All stage math is computed against this value, never live settings,
// so a mid-run settings change cannot corrupt an in-flight run.
type PromotionSettings struct {
	Level1Count     int  `json:"level1_count"`
	Level2PerLevel1 int  `json:"level2_per_level1"`
	Level3PerLevel2 int  `json:"level3_per_level2"`
	Level1Enabled   bool `json:"level1_enabled"`
	Level2Enabled   bool `json:"level2_enabled"`
	Level3Enabled   bool `json:"level3_enabled"`

	Level1MinLen int `json:"level1_min_len"`
	Level1MaxLen int `json:"level1_max_len"`
	Level2MinLen int `json:"level2_min_len"`
	Level2MaxLen int `json:"level2_max_len"`
	Level3MinLen int `json:"level3_min_len"`
	Level3MaxLen int `json:"level3_max_len"`

	CrowdEnabled    bool `json:"crowd_enabled"`
	CrowdPerArticle int  `json:"crowd_per_article"`

	PricePerLink    float64 `json:"price_per_link"`
	DiscountPercent float64 `json:"discount_percent"`
	ChargedAmount   float64 `json:"charged_amount"`
}

// Value implements the driver.Valuer interface for PromotionSettings
func (s PromotionSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for PromotionSettings
func (s *PromotionSettings) Scan(value interface{}) error {
	if value == nil {
		*s = PromotionSettings{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for PromotionSettings")
	}
	return json.Unmarshal(bytes, s)
}

// LevelEnabled reports whether publishing at the given cascade level is on.
func (s *PromotionSettings) LevelEnabled(level int) bool {
	switch level {
	case 1:
		return s.Level1Enabled
	case 2:
		return s.Level2Enabled
	case 3:
		return s.Level3Enabled
	}
	return false
}

// PerParent returns how many children each parent node needs at the given level.
// Level 1 has no parent; its count is Level1Count.
func (s *PromotionSettings) PerParent(level int) int {
	switch level {
	case 1:
		return s.Level1Count
	case 2:
		return s.Level2PerLevel1
	case 3:
		return s.Level3PerLevel2
	}
	return 0
}

// LengthBounds returns the content length bounds for the given level.
func (s *PromotionSettings) LengthBounds(level int) (int, int) {
	switch level {
	case 1:
		return s.Level1MinLen, s.Level1MaxLen
	case 2:
		return s.Level2MinLen, s.Level2MaxLen
	case 3:
		return s.Level3MinLen, s.Level3MaxLen
	}
	return 0, 0
}

// CrowdTaskPayload is the structured payload of a crowd-posting task: the
// message to place and where it came from, plus manual-fallback accounting.
type CrowdTaskPayload struct {
	Message        string `json:"message,omitempty"`
	AuthorName     string `json:"author_name,omitempty"`
	AuthorEmail    string `json:"author_email,omitempty"`
	ManualFallback bool   `json:"manual_fallback,omitempty"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// Value implements the driver.Valuer interface for CrowdTaskPayload
func (p CrowdTaskPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface for CrowdTaskPayload
func (p *CrowdTaskPayload) Scan(value interface{}) error {
	if value == nil {
		*p = CrowdTaskPayload{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for CrowdTaskPayload")
	}
	return json.Unmarshal(bytes, p)
}

// User holds the account balance debited by promotion runs
type User struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Email      string     `db:"email" json:"email"`
	Balance    float64    `db:"balance" json:"balance"`
	ReferrerID *uuid.UUID `db:"referrer_id" json:"referrer_id,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// Project represents a promoted web property
type Project struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerUserID uuid.UUID `db:"owner_user_id" json:"owner_user_id"`
	Name        string    `db:"name" json:"name"`
	Region      string    `db:"region" json:"region"`
	Topic       string    `db:"topic" json:"topic"`
	Settings    JSONB     `db:"settings" json:"settings"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProjectLink is one promotable URL of a project
type ProjectLink struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ProjectID  uuid.UUID `db:"project_id" json:"project_id"`
	URL        string    `db:"url" json:"url"`
	AnchorText string    `db:"anchor_text" json:"anchor_text"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Network is a publication venue the cascade can place articles on
type Network struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	Slug      string      `db:"slug" json:"slug"`
	Title     string      `db:"title" json:"title"`
	Levels    IntArray    `db:"levels" json:"levels"`
	Regions   StringArray `db:"regions" json:"regions"`
	Topics    StringArray `db:"topics" json:"topics"`
	Priority  int         `db:"priority" json:"priority"`
	Enabled   bool        `db:"enabled" json:"enabled"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`

	// MatchRank is computed by the eligibility query: 2 region+topic match,
	// 1 partial, 0 generic fallback. Not a column.
	MatchRank int `db:"match_rank" json:"-"`
}

// CrowdLink is a crowd-posting venue from the shared inventory
type CrowdLink struct {
	ID        uuid.UUID `db:"id" json:"id"`
	URL       string    `db:"url" json:"url"`
	Language  string    `db:"language" json:"language"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Publication is one content-publication job handed to an external publisher
type Publication struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	RunID           uuid.UUID  `db:"run_id" json:"run_id"`
	NodeID          uuid.UUID  `db:"node_id" json:"node_id"`
	NetworkSlug     string     `db:"network_slug" json:"network_slug"`
	TargetURL       string     `db:"target_url" json:"target_url"`
	AnchorText      string     `db:"anchor_text" json:"anchor_text"`
	MinLen          int        `db:"min_len" json:"min_len"`
	MaxLen          int        `db:"max_len" json:"max_len"`
	Status          string     `db:"status" json:"status"`
	ResultURL       *string    `db:"result_url" json:"result_url,omitempty"`
	Error           *string    `db:"error" json:"error,omitempty"`
	CancelRequested bool       `db:"cancel_requested" json:"cancel_requested"`
	StartedAt       *time.Time `db:"started_at" json:"started_at,omitempty"`
	FinishedAt      *time.Time `db:"finished_at" json:"finished_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// PromotionRun is one campaign execution for a (project, link) pair
type PromotionRun struct {
	ID              uuid.UUID         `db:"id" json:"id"`
	ProjectID       uuid.UUID         `db:"project_id" json:"project_id"`
	LinkID          uuid.UUID         `db:"link_id" json:"link_id"`
	OwnerUserID     uuid.UUID         `db:"owner_user_id" json:"owner_user_id"`
	TargetURL       string            `db:"target_url" json:"target_url"`
	Status          string            `db:"status" json:"status"`
	Stage           string            `db:"stage" json:"stage"`
	InitiatedBy     string            `db:"initiated_by" json:"initiated_by"`
	Settings        PromotionSettings `db:"settings" json:"settings"`
	ChargedAmount   float64           `db:"charged_amount" json:"charged_amount"`
	DiscountPercent float64           `db:"discount_percent" json:"discount_percent"`
	ProgressTotal   int               `db:"progress_total" json:"progress_total"`
	ProgressDone    int               `db:"progress_done" json:"progress_done"`
	Error           *string           `db:"error" json:"error,omitempty"`
	ReportJSON      []byte            `db:"report_json" json:"report_json,omitempty"`
	NextRetryAt     *time.Time        `db:"next_retry_at" json:"next_retry_at,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	StartedAt       *time.Time        `db:"started_at" json:"started_at,omitempty"`
	FinishedAt      *time.Time        `db:"finished_at" json:"finished_at,omitempty"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// PromotionNode is one publication attempt at one cascade level. Nodes form a
// tree rooted at level-1 nodes, depth capped at 3; ParentID is a back-reference.
type PromotionNode struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	RunID         uuid.UUID  `db:"run_id" json:"run_id"`
	Level         int        `db:"level" json:"level"`
	ParentID      *uuid.UUID `db:"parent_id" json:"parent_id,omitempty"`
	TargetURL     string     `db:"target_url" json:"target_url"`
	ResultURL     *string    `db:"result_url" json:"result_url,omitempty"`
	NetworkSlug   string     `db:"network_slug" json:"network_slug"`
	PublicationID *uuid.UUID `db:"publication_id" json:"publication_id,omitempty"`
	Status        string     `db:"status" json:"status"`
	AnchorText    string     `db:"anchor_text" json:"anchor_text"`
	InitiatedBy   string     `db:"initiated_by" json:"initiated_by"`
	Error         *string    `db:"error" json:"error,omitempty"`
	QueuedAt      *time.Time `db:"queued_at" json:"queued_at,omitempty"`
	StartedAt     *time.Time `db:"started_at" json:"started_at,omitempty"`
	FinishedAt    *time.Time `db:"finished_at" json:"finished_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// PromotionCrowdTask is one crowd-posting attempt against a finished article
type PromotionCrowdTask struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	RunID       uuid.UUID        `db:"run_id" json:"run_id"`
	NodeID      *uuid.UUID       `db:"node_id" json:"node_id,omitempty"`
	CrowdLinkID *uuid.UUID       `db:"crowd_link_id" json:"crowd_link_id,omitempty"`
	TargetURL   string           `db:"target_url" json:"target_url"`
	Status      string           `db:"status" json:"status"`
	ResultURL   *string          `db:"result_url" json:"result_url,omitempty"`
	Payload     CrowdTaskPayload `db:"payload" json:"payload"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// NodeStatusCounts aggregates node states for one level of a run
type NodeStatusCounts struct {
	Pending   int `db:"pending"`
	Queued    int `db:"queued"`
	Running   int `db:"running"`
	Success   int `db:"success"`
	Failed    int `db:"failed"`
	Cancelled int `db:"cancelled"`
}

// Open returns how many nodes still await a publication result.
func (c NodeStatusCounts) Open() int {
	return c.Pending + c.Queued + c.Running
}

// CrowdNodeStats aggregates crowd task states for one node of a run
type CrowdNodeStats struct {
	NodeID    uuid.UUID `db:"node_id"`
	Success   int       `db:"success"`
	Active    int       `db:"active"`
	Failed    int       `db:"failed"`
	Manual    int       `db:"manual"`
	Attempts  int       `db:"attempts"`
	Cancelled int       `db:"cancelled"`
}

// QueuePosition locates a run in the global and per-user processing queues
type QueuePosition struct {
	Global int `db:"global_position"`
	ByUser int `db:"user_position"`
}
