package validation

import (
	"fmt"

	"github.com/validly/saas-validator/internal/models"
)

// RedditSignals are the aggregated inputs for the Reddit scorer.
type RedditSignals struct {
	PostsFound    int
	PainPoints    int
	AudienceSize  int     // summed subscriber counts of the searched subreddits
	AvgEngagement float64 // mean of score+comments per post
	RecentPosts   int     // posts created inside the last 30 days
}

func (RedditSignals) Platform() models.Platform { return models.PlatformReddit }

// RedditScoringConfig holds the tier tables for the Reddit scorer. Tiers per
// metric are ordered highest threshold first.
type RedditScoringConfig struct {
	Audience    []Tier
	Posts       []Tier
	PainPoints  []Tier
	Engagement  []Tier
	RecentPosts []Tier
}

// DefaultRedditScoringConfig returns the stock rule table. Weights total 100.
func DefaultRedditScoringConfig() RedditScoringConfig {
	return RedditScoringConfig{
		Audience: []Tier{
			{ID: "reddit_audience_large", Threshold: 100000, Points: 25, Reason: "Large audience (%.0f subscribers)"},
			{ID: "reddit_audience_medium", Threshold: 50000, Points: 15, Reason: "Moderate audience (%.0f subscribers)"},
		},
		Posts: []Tier{
			{ID: "reddit_posts_many", Threshold: 50, Points: 20, Reason: "Strong post volume (%.0f relevant posts)"},
			{ID: "reddit_posts_some", Threshold: 20, Points: 10, Reason: "Some relevant posts (%.0f)"},
		},
		PainPoints: []Tier{
			{ID: "reddit_pain_many", Threshold: 20, Points: 30, Reason: "Many pain points (%.0f posts)"},
			{ID: "reddit_pain_some", Threshold: 10, Points: 20, Reason: "Pain points present (%.0f posts)"},
			{ID: "reddit_pain_few", Threshold: 5, Points: 10, Reason: "A few pain points (%.0f posts)"},
		},
		Engagement: []Tier{
			{ID: "reddit_engagement_high", Threshold: 100, Points: 15, Reason: "High engagement (avg %.0f)"},
			{ID: "reddit_engagement_medium", Threshold: 50, Points: 10, Reason: "Moderate engagement (avg %.0f)"},
		},
		RecentPosts: []Tier{
			{ID: "reddit_posts_recent", Threshold: 20, Points: 10, Reason: "Problem is current (%.0f recent posts)"},
		},
	}
}

// RedditScorer scores Reddit signals with additive threshold rules.
type RedditScorer struct {
	config RedditScoringConfig
}

func NewRedditScorer(cfg RedditScoringConfig) *RedditScorer {
	return &RedditScorer{config: cfg}
}

func (s *RedditScorer) Platform() models.Platform { return models.PlatformReddit }

func (s *RedditScorer) Score(sig Signals) (ScoreResult, error) {
	signals, ok := sig.(RedditSignals)
	if !ok {
		return ScoreResult{}, fmt.Errorf("reddit scorer requires RedditSignals, got %T", sig)
	}

	score := 0
	var rules []models.FiredRule

	metrics := []struct {
		value float64
		tiers []Tier
	}{
		{float64(signals.AudienceSize), s.config.Audience},
		{float64(signals.PostsFound), s.config.Posts},
		{float64(signals.PainPoints), s.config.PainPoints},
		{signals.AvgEngagement, s.config.Engagement},
		{float64(signals.RecentPosts), s.config.RecentPosts},
	}

	for _, m := range metrics {
		if rule, ok := evalTiers(m.value, m.tiers); ok {
			score += rule.Points
			rules = append(rules, rule)
		}
	}

	return finishScore(score, rules), nil
}
