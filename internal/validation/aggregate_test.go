package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/validly/saas-validator/internal/models"
)

func summaryWithScore(platform models.Platform, score int) *models.PlatformSummary {
	return &models.PlatformSummary{
		Platform: platform,
		Score:    score,
		Verdict:  VerdictForScore(score),
	}
}

func TestAggregate_TwoPlatformMean(t *testing.T) {
	result := Aggregate("ai invoicing", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit:  summaryWithScore(models.PlatformReddit, 85),
		models.PlatformTwitter: summaryWithScore(models.PlatformTwitter, 65),
	})

	assert.Equal(t, 75, result.OverallScore)
	assert.Equal(t, VerdictGood, result.Verdict)
	assert.Equal(t, []models.Platform{models.PlatformReddit, models.PlatformTwitter}, result.PlatformsAnalyzed)
}

func TestAggregate_MeanIsFloored(t *testing.T) {
	result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit:   summaryWithScore(models.PlatformReddit, 50),
		models.PlatformTwitter:  summaryWithScore(models.PlatformTwitter, 50),
		models.PlatformLinkedIn: summaryWithScore(models.PlatformLinkedIn, 51),
	})

	// 151/3 floors to 50
	assert.Equal(t, 50, result.OverallScore)
}

func TestAggregate_AbsentPlatformIsNotZero(t *testing.T) {
	result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformLinkedIn: summaryWithScore(models.PlatformLinkedIn, 92),
	})

	assert.Equal(t, 92, result.OverallScore)
	assert.Equal(t, VerdictExcellent, result.Verdict)
	assert.Len(t, result.PlatformsAnalyzed, 1)
	assert.Nil(t, result.Reddit)
	assert.Nil(t, result.Twitter)

	// one platform is never cross-platform evidence, however high the score
	assert.NotContains(t, result.KeyInsights,
		"Idea shows strong validation signals across multiple platforms")
}

func TestAggregate_NoDataSentinel(t *testing.T) {
	result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{})

	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, VerdictNoData, result.Verdict)
	assert.Empty(t, result.PlatformsAnalyzed)
	assert.Equal(t, []string{}, result.KeyInsights)
	assert.Equal(t, []string{}, result.Recommendations)
}

func TestAggregate_ZeroScoresAreNotNoData(t *testing.T) {
	result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit:  summaryWithScore(models.PlatformReddit, 0),
		models.PlatformTwitter: summaryWithScore(models.PlatformTwitter, 0),
	})

	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, VerdictWeak, result.Verdict)
	assert.Len(t, result.PlatformsAnalyzed, 2)
	assert.NotEmpty(t, result.Recommendations)
}

func TestAggregate_PlatformOrderIsStable(t *testing.T) {
	summaries := map[models.Platform]*models.PlatformSummary{
		models.PlatformLinkedIn: summaryWithScore(models.PlatformLinkedIn, 40),
		models.PlatformReddit:   summaryWithScore(models.PlatformReddit, 40),
		models.PlatformTwitter:  summaryWithScore(models.PlatformTwitter, 40),
	}

	for i := 0; i < 20; i++ {
		result := Aggregate("idea", summaries)
		assert.Equal(t, []models.Platform{
			models.PlatformReddit,
			models.PlatformTwitter,
			models.PlatformLinkedIn,
		}, result.PlatformsAnalyzed)
	}
}

func TestAggregate_Insights(t *testing.T) {
	reddit := summaryWithScore(models.PlatformReddit, 85)
	reddit.PainPoints = 25
	reddit.AudienceSize = 250000

	twitter := summaryWithScore(models.PlatformTwitter, 75)
	twitter.TotalEngagement = 1500
	twitter.TopHashtags = []string{"saas", "startup"}

	linkedin := summaryWithScore(models.PlatformLinkedIn, 80)
	linkedin.AudienceSize = 900
	linkedin.Competitors = 4

	result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit:   reddit,
		models.PlatformTwitter:  twitter,
		models.PlatformLinkedIn: linkedin,
	})

	assert.Equal(t, 80, result.OverallScore)
	assert.Equal(t, []string{
		"Found 25 pain points on Reddit - the problem is real",
		"Large audience on Reddit (250000 subscribers)",
		"High engagement on Twitter (1500) - the topic is popular",
		"Popular hashtag: #saas",
		"Large B2B audience on LinkedIn (900+ profiles)",
		"Found 4 competitors - the market exists",
		"Idea shows strong validation signals across multiple platforms",
	}, result.KeyInsights)
}

func TestAggregate_InsightThresholdsAreExclusive(t *testing.T) {
	reddit := summaryWithScore(models.PlatformReddit, 30)
	reddit.PainPoints = 20
	reddit.AudienceSize = 100000

	result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit: reddit,
	})

	assert.Empty(t, result.KeyInsights)
}

func TestAggregate_CrossPlatformInsightNeedsBothConditions(t *testing.T) {
	// high score, one platform: no cross-platform insight
	result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit: summaryWithScore(models.PlatformReddit, 90),
	})
	assert.Empty(t, result.KeyInsights)

	// two platforms, score below 70: still no insight
	result = Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit:  summaryWithScore(models.PlatformReddit, 69),
		models.PlatformTwitter: summaryWithScore(models.PlatformTwitter, 69),
	})
	assert.Empty(t, result.KeyInsights)

	// both conditions met
	result = Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit:  summaryWithScore(models.PlatformReddit, 70),
		models.PlatformTwitter: summaryWithScore(models.PlatformTwitter, 70),
	})
	assert.Equal(t, []string{
		"Idea shows strong validation signals across multiple platforms",
	}, result.KeyInsights)
}

func TestAggregate_RecommendationBands(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected string
	}{
		{name: "Excellent band", score: 85, expected: "Start building an MVP as soon as possible"},
		{name: "Good band", score: 65, expected: "Dig deeper into the specific pain points"},
		{name: "Medium band", score: 45, expected: "Run additional customer interviews"},
		{name: "Weak band", score: 10, expected: "Consider a pivot - validation is weak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{
				models.PlatformReddit: summaryWithScore(models.PlatformReddit, tt.score),
			})

			assert.Len(t, result.Recommendations, 3)
			assert.Equal(t, tt.expected, result.Recommendations[0])
		})
	}
}

func TestAggregate_PlatformRecommendations(t *testing.T) {
	reddit := summaryWithScore(models.PlatformReddit, 50)
	reddit.PainPoints = 15

	twitter := summaryWithScore(models.PlatformTwitter, 50)
	twitter.TopHashtags = []string{"nocode", "automation", "saas", "indiehackers"}

	linkedin := summaryWithScore(models.PlatformLinkedIn, 50)
	linkedin.AudienceSize = 300

	result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit:   reddit,
		models.PlatformTwitter:  twitter,
		models.PlatformLinkedIn: linkedin,
	})

	assert.Contains(t, result.Recommendations,
		"Reach out to the authors of pain-point posts on Reddit")
	// only the top three hashtags are suggested
	assert.Contains(t, result.Recommendations,
		"Use these hashtags for promotion: #nocode, #automation, #saas")
	assert.Contains(t, result.Recommendations,
		"Start LinkedIn outreach to the target audience")
	assert.Len(t, result.Recommendations, 6)
}

func TestAggregate_ListsAreCapped(t *testing.T) {
	reddit := summaryWithScore(models.PlatformReddit, 90)
	reddit.PainPoints = 100
	reddit.AudienceSize = 2000000

	twitter := summaryWithScore(models.PlatformTwitter, 90)
	twitter.TotalEngagement = 50000
	twitter.TopHashtags = []string{"a", "b", "c", "d", "e"}

	linkedin := summaryWithScore(models.PlatformLinkedIn, 90)
	linkedin.AudienceSize = 10000
	linkedin.Competitors = 30

	result := Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit:   reddit,
		models.PlatformTwitter:  twitter,
		models.PlatformLinkedIn: linkedin,
	})

	assert.LessOrEqual(t, len(result.KeyInsights), maxInsights)
	assert.LessOrEqual(t, len(result.Recommendations), maxRecommendations)
}

func TestAggregate_DoesNotMutateSummaries(t *testing.T) {
	reddit := summaryWithScore(models.PlatformReddit, 42)
	reddit.PainPoints = 7
	before := *reddit

	Aggregate("idea", map[models.Platform]*models.PlatformSummary{
		models.PlatformReddit: reddit,
	})

	assert.Equal(t, before, *reddit)
}
