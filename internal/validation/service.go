package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/validly/saas-validator/internal/config"
	"github.com/validly/saas-validator/internal/models"
	"github.com/validly/saas-validator/internal/notifications"
	"github.com/validly/saas-validator/internal/sources"
	"github.com/validly/saas-validator/internal/storage"
)

// Service orchestrates validation runs: it fans out to the platform
// pipelines, aggregates whatever they produced, persists the result and
// fires the completion notification.
type Service struct {
	config   *config.Config
	store    storage.Store
	notifier notifications.Notifier
	sources  map[models.Platform]sources.Source
	scorers  map[models.Platform]PlatformScorer
	vocab    map[models.Platform][]string
	metrics  *Metrics
	mu       sync.RWMutex
}

// Metrics holds validation run metrics
type Metrics struct {
	TotalRuns       int            `json:"total_runs"`
	LastRun         time.Time      `json:"last_run"`
	LastRunDuration string         `json:"last_run_duration"`
	LastScore       int            `json:"last_score"`
	PlatformScores  map[string]int `json:"platform_scores"`
	ErrorCount      int            `json:"error_count"`
}

// Request describes one validation run. Keywords, subreddits and job titles
// are derived from the idea when left empty.
type Request struct {
	ProjectID   uint // zero for ad hoc runs
	Idea        string
	Keywords    []string
	Subreddits  []string
	JobTitles   []string
	Competitors []string
	NotifyEmail string
}

// NewService creates a validation service with the stock sources, scorers
// and vocabularies.
func NewService(cfg *config.Config, store storage.Store, notifier notifications.Notifier) *Service {
	service := &Service{
		config:   cfg,
		store:    store,
		notifier: notifier,
		metrics: &Metrics{
			PlatformScores: make(map[string]int),
		},
	}

	service.sources = map[models.Platform]sources.Source{
		models.PlatformReddit:   sources.NewRedditSource(cfg.RedditClientID, cfg.RedditClientSecret, cfg.RedditUserAgent),
		models.PlatformTwitter:  sources.NewTwitterSource(cfg.TwitterBearerToken),
		models.PlatformLinkedIn: sources.NewLinkedInSource(cfg.LinkedInEmail, cfg.LinkedInPassword),
	}
	service.scorers = map[models.Platform]PlatformScorer{
		models.PlatformReddit:   NewRedditScorer(DefaultRedditScoringConfig()),
		models.PlatformTwitter:  NewTwitterScorer(DefaultTwitterScoringConfig()),
		models.PlatformLinkedIn: NewLinkedInScorer(DefaultLinkedInScoringConfig()),
	}
	service.vocab = map[models.Platform][]string{
		models.PlatformReddit:  DefaultRedditVocabulary(),
		models.PlatformTwitter: DefaultTwitterVocabulary(),
	}

	return service
}

type platformOutcome struct {
	platform models.Platform
	summary  *models.PlatformSummary
	err      error
}

// Validate runs the full pipeline for one idea. A missing idea is the only
// fatal input; platform failures are logged and excluded from aggregation,
// and the caller always gets a ValidationResult - possibly the no-data
// sentinel - for any well-formed request.
func (s *Service) Validate(ctx context.Context, req Request) (*models.ValidationResult, error) {
	start := time.Now()

	if strings.TrimSpace(req.Idea) == "" {
		s.markFailed(req.ProjectID)
		return nil, fmt.Errorf("idea is required")
	}

	s.fillDefaults(&req)
	s.markProcessing(req.ProjectID)

	available := s.availablePlatforms(req)
	logrus.Infof("Validating '%s' across %d platforms", req.Idea, len(available))

	window := 30 * 24 * time.Hour
	if s.config != nil && s.config.SearchWindowDays > 0 {
		window = time.Duration(s.config.SearchWindowDays) * 24 * time.Hour
	}

	summaries := make(map[models.Platform]*models.PlatformSummary)
	errorCount := 0

	if len(available) > 0 {
		outcomes := make(chan platformOutcome, len(available))
		var wg sync.WaitGroup

		// Platform pipelines are independent; run them concurrently and
		// collect whatever succeeds.
		for _, platform := range available {
			wg.Add(1)
			go func(p models.Platform) {
				defer wg.Done()
				summary, err := s.runPlatform(ctx, p, req, window)
				outcomes <- platformOutcome{platform: p, summary: summary, err: err}
			}(platform)
		}

		wg.Wait()
		close(outcomes)

		for outcome := range outcomes {
			if outcome.err != nil {
				logrus.Errorf("Platform %s failed: %v", outcome.platform, outcome.err)
				errorCount++
				continue
			}
			if outcome.summary == nil {
				logrus.Infof("Platform %s returned no data", outcome.platform)
				continue
			}
			summaries[outcome.platform] = outcome.summary
		}
	}

	result := Aggregate(req.Idea, summaries)
	result.RunID = uuid.NewString()
	result.CreatedAt = time.Now()

	logrus.Infof("Validation of '%s' complete: score %d/100 (%s)",
		req.Idea, result.OverallScore, result.Verdict)

	s.persistResult(req.ProjectID, result)
	s.notify(req.NotifyEmail, result)
	s.updateMetrics(result, time.Since(start), errorCount)

	return result, nil
}

func (s *Service) fillDefaults(req *Request) {
	if len(req.Keywords) == 0 {
		req.Keywords = IdeaKeywords(req.Idea)
	}
	if len(req.Subreddits) == 0 {
		req.Subreddits = RelevantSubreddits(req.Idea)
	}
	if len(req.JobTitles) == 0 && s.config != nil {
		req.JobTitles = s.config.TargetJobTitles
	}
}

// availablePlatforms returns the platforms whose credentials and
// platform-specific inputs are both present, in aggregation order.
func (s *Service) availablePlatforms(req Request) []models.Platform {
	var available []models.Platform
	for _, platform := range platformOrder {
		source, ok := s.sources[platform]
		if !ok || !source.IsEnabled() {
			continue
		}
		switch platform {
		case models.PlatformReddit:
			if len(req.Subreddits) == 0 {
				continue
			}
		case models.PlatformLinkedIn:
			if len(req.JobTitles) == 0 {
				continue
			}
		}
		available = append(available, platform)
	}
	return available
}

// runPlatform executes one platform's fetch-extract-score pipeline. A nil
// summary with nil error means the platform produced no usable data.
func (s *Service) runPlatform(ctx context.Context, platform models.Platform, req Request, window time.Duration) (*models.PlatformSummary, error) {
	source := s.sources[platform]

	data, err := source.Fetch(ctx, sources.FetchRequest{
		Keywords:    req.Keywords,
		Subreddits:  req.Subreddits,
		JobTitles:   req.JobTitles,
		Competitors: req.Competitors,
		Window:      window,
	})
	if err != nil {
		return nil, err
	}
	if data == nil || (len(data.Records) == 0 && data.AudienceSize == 0) {
		return nil, nil
	}

	switch platform {
	case models.PlatformReddit:
		return s.redditSummary(data)
	case models.PlatformTwitter:
		return s.twitterSummary(data)
	case models.PlatformLinkedIn:
		return s.linkedinSummary(data)
	}
	return nil, fmt.Errorf("unknown platform %s", platform)
}

func (s *Service) redditSummary(data *sources.PlatformData) (*models.PlatformSummary, error) {
	matches := ExtractPainPoints(data.Records, s.vocab[models.PlatformReddit])

	signals := RedditSignals{
		PostsFound:    len(data.Records),
		PainPoints:    len(matches),
		AudienceSize:  data.AudienceSize,
		AvgEngagement: meanEngagement(data.Records),
		RecentPosts:   countRecent(data.Records, 30*24*time.Hour),
	}

	scored, err := s.scorers[models.PlatformReddit].Score(signals)
	if err != nil {
		return nil, err
	}

	return &models.PlatformSummary{
		Platform:        models.PlatformReddit,
		RecordsFound:    signals.PostsFound,
		PainPoints:      signals.PainPoints,
		AudienceSize:    signals.AudienceSize,
		AvgEngagement:   signals.AvgEngagement,
		TotalEngagement: totalEngagement(data.Records),
		Score:           scored.Score,
		Verdict:         scored.Verdict,
		Rules:           scored.Rules,
	}, nil
}

func (s *Service) twitterSummary(data *sources.PlatformData) (*models.PlatformSummary, error) {
	matches := ExtractPainPoints(data.Records, s.vocab[models.PlatformTwitter])

	signals := TwitterSignals{
		TweetsFound:     len(data.Records),
		PainPoints:      len(matches),
		AvgEngagement:   meanLikes(data.Records),
		TotalEngagement: totalEngagement(data.Records),
	}

	scored, err := s.scorers[models.PlatformTwitter].Score(signals)
	if err != nil {
		return nil, err
	}

	return &models.PlatformSummary{
		Platform:        models.PlatformTwitter,
		RecordsFound:    signals.TweetsFound,
		PainPoints:      signals.PainPoints,
		AvgEngagement:   signals.AvgEngagement,
		TotalEngagement: signals.TotalEngagement,
		TopHashtags:     data.Hashtags,
		Score:           scored.Score,
		Verdict:         scored.Verdict,
		Rules:           scored.Rules,
	}, nil
}

func (s *Service) linkedinSummary(data *sources.PlatformData) (*models.PlatformSummary, error) {
	signals := LinkedInSignals{
		MarketSize:           data.AudienceSize,
		Competitors:          data.Competitors,
		CompetitorEngagement: data.CompetitorEngagement,
		Industries:           data.Industries,
	}

	scored, err := s.scorers[models.PlatformLinkedIn].Score(signals)
	if err != nil {
		return nil, err
	}

	return &models.PlatformSummary{
		Platform:     models.PlatformLinkedIn,
		RecordsFound: len(data.Records),
		AudienceSize: signals.MarketSize,
		Competitors:  signals.Competitors,
		Industries:   signals.Industries,
		Score:        scored.Score,
		Verdict:      scored.Verdict,
		Rules:        scored.Rules,
	}, nil
}

func (s *Service) markProcessing(projectID uint) {
	if projectID == 0 || s.store == nil {
		return
	}
	if err := s.store.UpdateProjectStatus(projectID, models.StatusProcessing); err != nil {
		logrus.Errorf("Failed to mark project %d processing: %v", projectID, err)
	}
}

func (s *Service) markFailed(projectID uint) {
	if projectID == 0 || s.store == nil {
		return
	}
	if err := s.store.UpdateProjectStatus(projectID, models.StatusFailed); err != nil {
		logrus.Errorf("Failed to mark project %d failed: %v", projectID, err)
	}
}

// persistResult writes the analysis row and flips the project to completed.
// Persistence failures are logged; the caller still gets the result.
func (s *Service) persistResult(projectID uint, result *models.ValidationResult) {
	if projectID == 0 || s.store == nil {
		return
	}

	analysis, err := analysisFromResult(projectID, result)
	if err != nil {
		logrus.Errorf("Failed to serialize analysis for project %d: %v", projectID, err)
		return
	}

	if err := s.store.SaveAnalysis(analysis); err != nil {
		logrus.Errorf("Failed to save analysis for project %d: %v", projectID, err)
		return
	}
	if err := s.store.UpdateProjectStatus(projectID, models.StatusCompleted); err != nil {
		logrus.Errorf("Failed to mark project %d completed: %v", projectID, err)
	}
}

// notify fires the completion email after the result exists. Best effort:
// a notification failure never affects the run outcome.
func (s *Service) notify(email string, result *models.ValidationResult) {
	if s.notifier == nil || email == "" {
		return
	}
	if err := s.notifier.SendValidationComplete(email, result); err != nil {
		logrus.Errorf("Failed to send completion notification: %v", err)
	}
}

func analysisFromResult(projectID uint, result *models.ValidationResult) (*models.Analysis, error) {
	now := time.Now()
	analysis := &models.Analysis{
		ProjectID:    projectID,
		OverallScore: result.OverallScore,
		Verdict:      result.Verdict,
		CompletedAt:  &now,
	}

	var err error
	if analysis.KeyInsights, err = json.Marshal(result.KeyInsights); err != nil {
		return nil, err
	}
	if analysis.Recommendations, err = json.Marshal(result.Recommendations); err != nil {
		return nil, err
	}
	if result.Reddit != nil {
		if analysis.RedditData, err = json.Marshal(result.Reddit); err != nil {
			return nil, err
		}
	}
	if result.Twitter != nil {
		if analysis.TwitterData, err = json.Marshal(result.Twitter); err != nil {
			return nil, err
		}
	}
	if result.LinkedIn != nil {
		if analysis.LinkedInData, err = json.Marshal(result.LinkedIn); err != nil {
			return nil, err
		}
	}

	return analysis, nil
}

func (s *Service) updateMetrics(result *models.ValidationResult, duration time.Duration, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalRuns++
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.LastScore = result.OverallScore
	s.metrics.ErrorCount += errorCount

	s.metrics.PlatformScores = make(map[string]int)
	for _, platform := range result.PlatformsAnalyzed {
		if summary := result.Summary(platform); summary != nil {
			s.metrics.PlatformScores[string(platform)] = summary.Score
		}
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}

func meanEngagement(records []models.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, record := range records {
		total += record.Engagement
	}
	return float64(total) / float64(len(records))
}

func meanLikes(records []models.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, record := range records {
		total += record.Score
	}
	return float64(total) / float64(len(records))
}

func totalEngagement(records []models.Record) int {
	total := 0
	for _, record := range records {
		total += record.Engagement
	}
	return total
}

func countRecent(records []models.Record, window time.Duration) int {
	cutoff := time.Now().Add(-window)
	count := 0
	for _, record := range records {
		if record.CreatedAt.After(cutoff) {
			count++
		}
	}
	return count
}
