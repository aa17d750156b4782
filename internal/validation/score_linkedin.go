package validation

import (
	"fmt"

	"github.com/validly/saas-validator/internal/models"
)

// LinkedInSignals are the aggregated inputs for the LinkedIn scorer.
type LinkedInSignals struct {
	MarketSize           int     // matching profiles for the target job titles
	Competitors          int     // competitor companies found
	CompetitorEngagement float64 // summed average likes on competitor posts
	Industries           int     // distinct industries across matched profiles
}

func (LinkedInSignals) Platform() models.Platform { return models.PlatformLinkedIn }

// LinkedInScoringConfig holds the tier tables for the LinkedIn scorer.
// PresenceBonus is awarded whenever the platform produced data at all; the
// B2B audience being reachable on LinkedIn is a signal on its own.
type LinkedInScoringConfig struct {
	MarketSize           []Tier
	Competitors          []Tier
	CompetitorEngagement []Tier
	Industries           []Tier
	PresenceBonus        int
}

// DefaultLinkedInScoringConfig returns the stock rule table. Weights total 100.
func DefaultLinkedInScoringConfig() LinkedInScoringConfig {
	return LinkedInScoringConfig{
		MarketSize: []Tier{
			{ID: "linkedin_market_large", Threshold: 500, Points: 30, Reason: "Large target audience (%.0f+ profiles)"},
			{ID: "linkedin_market_medium", Threshold: 200, Points: 20, Reason: "Moderate target audience (%.0f+ profiles)"},
			{ID: "linkedin_market_small", Threshold: 50, Points: 10, Reason: "Small target audience (%.0f+ profiles)"},
		},
		Competitors: []Tier{
			{ID: "linkedin_competitors_found", Threshold: 0, Points: 20, Reason: "Found %.0f competitors - the market exists"},
		},
		CompetitorEngagement: []Tier{
			{ID: "linkedin_competitor_engagement", Threshold: 100, Points: 15, Reason: "High competitor engagement (%.0f) - active market"},
		},
		Industries: []Tier{
			{ID: "linkedin_industries_broad", Threshold: 5, Points: 15, Reason: "Broad industry coverage (%.0f industries)"},
			{ID: "linkedin_industries_moderate", Threshold: 3, Points: 10, Reason: "Moderate industry coverage (%.0f industries)"},
		},
		PresenceBonus: 20,
	}
}

// LinkedInScorer scores LinkedIn B2B signals with additive threshold rules.
type LinkedInScorer struct {
	config LinkedInScoringConfig
}

func NewLinkedInScorer(cfg LinkedInScoringConfig) *LinkedInScorer {
	return &LinkedInScorer{config: cfg}
}

func (s *LinkedInScorer) Platform() models.Platform { return models.PlatformLinkedIn }

func (s *LinkedInScorer) Score(sig Signals) (ScoreResult, error) {
	signals, ok := sig.(LinkedInSignals)
	if !ok {
		return ScoreResult{}, fmt.Errorf("linkedin scorer requires LinkedInSignals, got %T", sig)
	}

	score := 0
	var rules []models.FiredRule

	metrics := []struct {
		value float64
		tiers []Tier
	}{
		{float64(signals.MarketSize), s.config.MarketSize},
		{float64(signals.Competitors), s.config.Competitors},
		{signals.CompetitorEngagement, s.config.CompetitorEngagement},
		{float64(signals.Industries), s.config.Industries},
	}

	for _, m := range metrics {
		if rule, ok := evalTiers(m.value, m.tiers); ok {
			score += rule.Points
			rules = append(rules, rule)
		}
	}

	if s.config.PresenceBonus > 0 {
		rule := models.FiredRule{
			ID:     "linkedin_presence",
			Points: s.config.PresenceBonus,
			Reason: "Target audience is active on LinkedIn",
		}
		score += rule.Points
		rules = append(rules, rule)
	}

	return finishScore(score, rules), nil
}
