package validation

import (
	"fmt"

	"github.com/validly/saas-validator/internal/models"
)

// TwitterSignals are the aggregated inputs for the Twitter scorer.
type TwitterSignals struct {
	TweetsFound     int
	PainPoints      int
	AvgEngagement   float64 // mean likes per tweet
	TotalEngagement int     // summed likes+retweets+replies
}

func (TwitterSignals) Platform() models.Platform { return models.PlatformTwitter }

// TwitterScoringConfig holds the tier tables for the Twitter scorer.
type TwitterScoringConfig struct {
	Tweets          []Tier
	PainPoints      []Tier
	AvgEngagement   []Tier
	TotalEngagement []Tier
}

// DefaultTwitterScoringConfig returns the stock rule table. Weights total 100.
func DefaultTwitterScoringConfig() TwitterScoringConfig {
	return TwitterScoringConfig{
		Tweets: []Tier{
			{ID: "twitter_tweets_many", Threshold: 50, Points: 30, Reason: "Strong tweet volume (%.0f tweets)"},
			{ID: "twitter_tweets_some", Threshold: 20, Points: 20, Reason: "Some relevant tweets (%.0f)"},
		},
		PainPoints: []Tier{
			{ID: "twitter_pain_many", Threshold: 10, Points: 30, Reason: "Many pain points (%.0f tweets)"},
			{ID: "twitter_pain_some", Threshold: 5, Points: 20, Reason: "Pain points present (%.0f tweets)"},
		},
		AvgEngagement: []Tier{
			{ID: "twitter_engagement_high", Threshold: 50, Points: 20, Reason: "High engagement (avg %.0f likes)"},
			{ID: "twitter_engagement_medium", Threshold: 20, Points: 10, Reason: "Moderate engagement (avg %.0f likes)"},
		},
		TotalEngagement: []Tier{
			{ID: "twitter_total_engagement_high", Threshold: 1000, Points: 20, Reason: "High total engagement (%.0f)"},
			{ID: "twitter_total_engagement_medium", Threshold: 500, Points: 10, Reason: "Moderate total engagement (%.0f)"},
		},
	}
}

// TwitterScorer scores Twitter signals with additive threshold rules.
type TwitterScorer struct {
	config TwitterScoringConfig
}

func NewTwitterScorer(cfg TwitterScoringConfig) *TwitterScorer {
	return &TwitterScorer{config: cfg}
}

func (s *TwitterScorer) Platform() models.Platform { return models.PlatformTwitter }

func (s *TwitterScorer) Score(sig Signals) (ScoreResult, error) {
	signals, ok := sig.(TwitterSignals)
	if !ok {
		return ScoreResult{}, fmt.Errorf("twitter scorer requires TwitterSignals, got %T", sig)
	}

	score := 0
	var rules []models.FiredRule

	metrics := []struct {
		value float64
		tiers []Tier
	}{
		{float64(signals.TweetsFound), s.config.Tweets},
		{float64(signals.PainPoints), s.config.PainPoints},
		{signals.AvgEngagement, s.config.AvgEngagement},
		{float64(signals.TotalEngagement), s.config.TotalEngagement},
	}

	for _, m := range metrics {
		if rule, ok := evalTiers(m.value, m.tiers); ok {
			score += rule.Points
			rules = append(rules, rule)
		}
	}

	return finishScore(score, rules), nil
}
