package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/validly/saas-validator/internal/models"
)

func TestEvalTiers(t *testing.T) {
	tiers := []Tier{
		{ID: "high", Threshold: 100, Points: 25, Reason: "high (%.0f)"},
		{ID: "medium", Threshold: 50, Points: 15, Reason: "medium (%.0f)"},
	}

	tests := []struct {
		name       string
		value      float64
		expectFire bool
		expectedID string
	}{
		{name: "Below all thresholds", value: 50, expectFire: false},
		{name: "Just above lower tier", value: 51, expectFire: true, expectedID: "medium"},
		{name: "Exactly at upper threshold stays in lower tier", value: 100, expectFire: true, expectedID: "medium"},
		{name: "Above upper threshold", value: 101, expectFire: true, expectedID: "high"},
		{name: "Zero", value: 0, expectFire: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, fired := evalTiers(tt.value, tiers)
			assert.Equal(t, tt.expectFire, fired)
			if tt.expectFire {
				assert.Equal(t, tt.expectedID, rule.ID)
			}
		})
	}
}

func TestEvalTiers_OnlyHighestTierFires(t *testing.T) {
	tiers := DefaultRedditScoringConfig().PainPoints

	rule, fired := evalTiers(25, tiers)
	assert.True(t, fired)
	assert.Equal(t, "reddit_pain_many", rule.ID)
	assert.Equal(t, 30, rule.Points)
	assert.Equal(t, "Many pain points (25 posts)", rule.Reason)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 100, clampScore(140))
	assert.Equal(t, 0, clampScore(-10))
	assert.Equal(t, 55, clampScore(55))
}

func TestVerdictForScore(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, VerdictExcellent},
		{80, VerdictExcellent},
		{79, VerdictGood},
		{60, VerdictGood},
		{59, VerdictMedium},
		{40, VerdictMedium},
		{39, VerdictWeak},
		{0, VerdictWeak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, VerdictForScore(tt.score), "score %d", tt.score)
	}
}

func TestRedditScorer(t *testing.T) {
	scorer := NewRedditScorer(DefaultRedditScoringConfig())

	tests := []struct {
		name          string
		signals       RedditSignals
		expectedScore int
	}{
		{
			name:          "No signal at all",
			signals:       RedditSignals{},
			expectedScore: 0,
		},
		{
			name: "All top tiers total 100",
			signals: RedditSignals{
				PostsFound:    80,
				PainPoints:    25,
				AudienceSize:  150000,
				AvgEngagement: 120,
				RecentPosts:   30,
			},
			expectedScore: 100,
		},
		{
			name: "Mid tiers",
			signals: RedditSignals{
				PostsFound:    30,
				PainPoints:    12,
				AudienceSize:  60000,
				AvgEngagement: 60,
				RecentPosts:   10,
			},
			expectedScore: 55, // 15+10+20+10
		},
		{
			name: "Thresholds are exclusive",
			signals: RedditSignals{
				PostsFound:    20,
				PainPoints:    5,
				AudienceSize:  50000,
				AvgEngagement: 50,
				RecentPosts:   20,
			},
			expectedScore: 0,
		},
		{
			name: "One past each boundary",
			signals: RedditSignals{
				PostsFound:    21,
				PainPoints:    6,
				AudienceSize:  50001,
				AvgEngagement: 51,
				RecentPosts:   21,
			},
			expectedScore: 55, // 10+10+15+10+10
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.signals)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedScore, result.Score)
			assert.Equal(t, VerdictForScore(tt.expectedScore), result.Verdict)

			total := 0
			for _, rule := range result.Rules {
				total += rule.Points
			}
			assert.Equal(t, tt.expectedScore, total, "score must equal the sum of fired rules")
		})
	}
}

func TestRedditScorer_RejectsForeignSignals(t *testing.T) {
	scorer := NewRedditScorer(DefaultRedditScoringConfig())

	_, err := scorer.Score(TwitterSignals{TweetsFound: 10})
	assert.Error(t, err)
}

func TestTwitterScorer(t *testing.T) {
	scorer := NewTwitterScorer(DefaultTwitterScoringConfig())

	tests := []struct {
		name          string
		signals       TwitterSignals
		expectedScore int
	}{
		{
			name:          "No signal at all",
			signals:       TwitterSignals{},
			expectedScore: 0,
		},
		{
			name: "All top tiers total 100",
			signals: TwitterSignals{
				TweetsFound:     60,
				PainPoints:      15,
				AvgEngagement:   80,
				TotalEngagement: 1500,
			},
			expectedScore: 100,
		},
		{
			name: "Mid tiers",
			signals: TwitterSignals{
				TweetsFound:     25,
				PainPoints:      7,
				AvgEngagement:   30,
				TotalEngagement: 600,
			},
			expectedScore: 60, // 20+20+10+10
		},
		{
			name: "Exactly at thresholds scores nothing",
			signals: TwitterSignals{
				TweetsFound:     20,
				PainPoints:      5,
				AvgEngagement:   20,
				TotalEngagement: 500,
			},
			expectedScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.signals)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedScore, result.Score)
		})
	}
}

func TestLinkedInScorer(t *testing.T) {
	scorer := NewLinkedInScorer(DefaultLinkedInScoringConfig())

	tests := []struct {
		name          string
		signals       LinkedInSignals
		expectedScore int
	}{
		{
			name:          "Presence bonus alone",
			signals:       LinkedInSignals{},
			expectedScore: 20,
		},
		{
			name: "All top tiers total 100",
			signals: LinkedInSignals{
				MarketSize:           800,
				Competitors:          3,
				CompetitorEngagement: 150,
				Industries:           7,
			},
			expectedScore: 100,
		},
		{
			name: "Single competitor fires the market-exists rule",
			signals: LinkedInSignals{
				Competitors: 1,
			},
			expectedScore: 40, // 20 competitors + 20 presence
		},
		{
			name: "Small market with moderate industries",
			signals: LinkedInSignals{
				MarketSize: 60,
				Industries: 4,
			},
			expectedScore: 40, // 10+10+20 presence
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.signals)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedScore, result.Score)
		})
	}
}

func TestLinkedInScorer_PresenceBonusAlwaysFires(t *testing.T) {
	scorer := NewLinkedInScorer(DefaultLinkedInScoringConfig())

	result, err := scorer.Score(LinkedInSignals{})
	assert.NoError(t, err)
	assert.Len(t, result.Rules, 1)
	assert.Equal(t, "linkedin_presence", result.Rules[0].ID)
}

func TestScorer_ClampsInjectedTables(t *testing.T) {
	cfg := RedditScoringConfig{
		Posts: []Tier{
			{ID: "huge", Threshold: 0, Points: 150, Reason: "way too many points (%.0f)"},
		},
	}
	scorer := NewRedditScorer(cfg)

	result, err := scorer.Score(RedditSignals{PostsFound: 1})
	assert.NoError(t, err)
	assert.Equal(t, 100, result.Score)
}

func TestScorer_RulesCarryRenderedReasons(t *testing.T) {
	scorer := NewTwitterScorer(DefaultTwitterScoringConfig())

	result, err := scorer.Score(TwitterSignals{TweetsFound: 55})
	assert.NoError(t, err)
	assert.Len(t, result.Rules, 1)
	assert.Equal(t, models.FiredRule{
		ID:     "twitter_tweets_many",
		Points: 30,
		Reason: "Strong tweet volume (55 tweets)",
	}, result.Rules[0])
}
