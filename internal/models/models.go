package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Platform identifies one of the supported data sources.
type Platform string

const (
	PlatformReddit   Platform = "reddit"
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
)

// AnalysisStatus tracks a project's validation lifecycle.
type AnalysisStatus string

const (
	StatusPending    AnalysisStatus = "pending"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// Record is a single fetched item (post, tweet or profile) from one platform.
// Records are immutable once fetched.
type Record struct {
	ID         string    `json:"id"`
	Platform   Platform  `json:"platform"`
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body,omitempty"`
	Author     string    `json:"author"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	Score      int       `json:"score"`    // upvotes or likes
	Comments   int       `json:"comments"` // comments or replies
	Shares     int       `json:"shares"`   // retweets, zero elsewhere
	Engagement int       `json:"engagement"`
}

// PainPointMatch is a record flagged as expressing user frustration or need.
type PainPointMatch struct {
	RecordID   string   `json:"record_id"`
	Title      string   `json:"title,omitempty"`
	Excerpt    string   `json:"excerpt,omitempty"`
	Keywords   []string `json:"keywords"`
	Engagement int      `json:"engagement"`
	URL        string   `json:"url"`
}

// FiredRule records one scoring rule that contributed points.
type FiredRule struct {
	ID     string `json:"id"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// PlatformSummary is the scored aggregate produced from one platform's records.
type PlatformSummary struct {
	Platform        Platform    `json:"platform"`
	RecordsFound    int         `json:"records_found"`
	PainPoints      int         `json:"pain_points"`
	AudienceSize    int         `json:"audience_size"`
	AvgEngagement   float64     `json:"avg_engagement"`
	TotalEngagement int         `json:"total_engagement"`
	Competitors     int         `json:"competitors,omitempty"`
	Industries      int         `json:"industries,omitempty"`
	TopHashtags     []string    `json:"top_hashtags,omitempty"`
	Score           int         `json:"score"`
	Verdict         string      `json:"verdict"`
	Rules           []FiredRule `json:"rules"`
}

// ValidationResult is the final cross-platform artifact of one validation run.
// It is written once and never mutated.
type ValidationResult struct {
	RunID             string           `json:"run_id"`
	IdeaName          string           `json:"idea_name"`
	PlatformsAnalyzed []Platform       `json:"platforms_analyzed"`
	Reddit            *PlatformSummary `json:"reddit_data,omitempty"`
	Twitter           *PlatformSummary `json:"twitter_data,omitempty"`
	LinkedIn          *PlatformSummary `json:"linkedin_data,omitempty"`
	OverallScore      int              `json:"overall_score"`
	Verdict           string           `json:"verdict"`
	KeyInsights       []string         `json:"key_insights"`
	Recommendations   []string         `json:"recommendations"`
	CreatedAt         time.Time        `json:"created_at"`
}

// Summary returns the stored summary for a platform, or nil.
func (r *ValidationResult) Summary(p Platform) *PlatformSummary {
	switch p {
	case PlatformReddit:
		return r.Reddit
	case PlatformTwitter:
		return r.Twitter
	case PlatformLinkedIn:
		return r.LinkedIn
	}
	return nil
}

// Project is a persisted SaaS idea submitted for validation.
type Project struct {
	gorm.Model
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Email       string         `json:"email"` // completion notification recipient
	Keywords    datatypes.JSON `json:"keywords"`
	Status      AnalysisStatus `json:"status" gorm:"default:pending;index"`

	Analysis *Analysis `json:"analysis,omitempty"`
}

// Analysis is the persisted outcome of the latest validation run for a
// project. A new run overwrites these fields, it is not versioned.
type Analysis struct {
	gorm.Model
	ProjectID uint `json:"project_id" gorm:"uniqueIndex"`

	RedditData   datatypes.JSON `json:"reddit_data,omitempty"`
	TwitterData  datatypes.JSON `json:"twitter_data,omitempty"`
	LinkedInData datatypes.JSON `json:"linkedin_data,omitempty"`

	OverallScore    int            `json:"overall_score"`
	Verdict         string         `json:"verdict"`
	KeyInsights     datatypes.JSON `json:"key_insights,omitempty"`
	Recommendations datatypes.JSON `json:"recommendations,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
