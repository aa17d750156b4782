package sources

import (
	"context"
	"time"

	"github.com/validly/saas-validator/internal/models"
)

// FetchRequest carries the search inputs for one validation run.
type FetchRequest struct {
	Keywords    []string
	Subreddits  []string // Reddit only
	JobTitles   []string // LinkedIn only
	Competitors []string // LinkedIn only
	Window      time.Duration
}

// PlatformData is what a source hands the scoring pipeline: the fetched
// records plus the aggregates the platform's API can answer directly.
type PlatformData struct {
	Records              []models.Record
	AudienceSize         int      // subreddit subscribers or matching profiles
	Competitors          int      // LinkedIn only
	CompetitorEngagement float64  // LinkedIn only
	Industries           int      // LinkedIn only
	Hashtags             []string // Twitter only, ordered by frequency
}

// Source is the contract for all platform data sources.
type Source interface {
	Name() models.Platform
	Fetch(ctx context.Context, req FetchRequest) (*PlatformData, error)
	IsEnabled() bool
}
