package validation

import (
	"fmt"
	"strings"

	"github.com/validly/saas-validator/internal/models"
)

const maxInsights = 10
const maxRecommendations = 10

// Thresholds for the insight and recommendation rules below.
const (
	insightRedditPainPoints      = 20
	insightRedditAudience        = 100000
	insightTwitterEngagement     = 1000
	insightLinkedInMarket        = 500
	insightCrossPlatformScore    = 70
	insightCrossPlatformMinCount = 2

	recommendRedditPainPoints = 10
	recommendLinkedInMarket   = 100
)

// platformOrder fixes the platform iteration order for aggregation output.
var platformOrder = []models.Platform{
	models.PlatformReddit,
	models.PlatformTwitter,
	models.PlatformLinkedIn,
}

// Aggregate merges per-platform summaries into a ValidationResult. The
// overall score is the floor of the mean over platforms that produced a
// summary; an absent platform does not count as zero. An empty map yields
// the no-data sentinel without running the insight or recommendation rules.
// Pure function of its inputs: it reads summary fields only and never
// re-derives pain points or re-scores.
func Aggregate(idea string, summaries map[models.Platform]*models.PlatformSummary) *models.ValidationResult {
	result := &models.ValidationResult{
		IdeaName:        idea,
		KeyInsights:     []string{},
		Recommendations: []string{},
	}

	total := 0
	count := 0
	for _, platform := range platformOrder {
		summary := summaries[platform]
		if summary == nil {
			continue
		}
		result.PlatformsAnalyzed = append(result.PlatformsAnalyzed, platform)
		total += summary.Score
		count++

		switch platform {
		case models.PlatformReddit:
			result.Reddit = summary
		case models.PlatformTwitter:
			result.Twitter = summary
		case models.PlatformLinkedIn:
			result.LinkedIn = summary
		}
	}

	if count == 0 {
		result.OverallScore = 0
		result.Verdict = VerdictNoData
		return result
	}

	result.OverallScore = total / count
	result.Verdict = VerdictForScore(result.OverallScore)
	result.KeyInsights = generateInsights(result)
	result.Recommendations = generateRecommendations(result)

	return result
}

// generateInsights walks a fixed, ordered rule list and appends one templated
// string per satisfied condition, truncated to the first ten.
func generateInsights(result *models.ValidationResult) []string {
	insights := []string{}

	if reddit := result.Reddit; reddit != nil {
		if reddit.PainPoints > insightRedditPainPoints {
			insights = append(insights, fmt.Sprintf(
				"Found %d pain points on Reddit - the problem is real", reddit.PainPoints))
		}
		if reddit.AudienceSize > insightRedditAudience {
			insights = append(insights, fmt.Sprintf(
				"Large audience on Reddit (%d subscribers)", reddit.AudienceSize))
		}
	}

	if twitter := result.Twitter; twitter != nil {
		if twitter.TotalEngagement > insightTwitterEngagement {
			insights = append(insights, fmt.Sprintf(
				"High engagement on Twitter (%d) - the topic is popular", twitter.TotalEngagement))
		}
		if len(twitter.TopHashtags) > 0 {
			insights = append(insights, fmt.Sprintf(
				"Popular hashtag: #%s", twitter.TopHashtags[0]))
		}
	}

	if linkedin := result.LinkedIn; linkedin != nil {
		if linkedin.AudienceSize > insightLinkedInMarket {
			insights = append(insights, fmt.Sprintf(
				"Large B2B audience on LinkedIn (%d+ profiles)", linkedin.AudienceSize))
		}
		if linkedin.Competitors > 0 {
			insights = append(insights, fmt.Sprintf(
				"Found %d competitors - the market exists", linkedin.Competitors))
		}
	}

	// Cross-platform validation needs at least two contributing platforms;
	// a single high-scoring platform is not cross-platform evidence.
	if result.OverallScore >= insightCrossPlatformScore &&
		len(result.PlatformsAnalyzed) >= insightCrossPlatformMinCount {
		insights = append(insights,
			"Idea shows strong validation signals across multiple platforms")
	}

	return capList(insights, maxInsights)
}

// generateRecommendations fires exactly one score band (three templates) and
// then the per-platform conditional rules, truncated to ten total.
func generateRecommendations(result *models.ValidationResult) []string {
	recommendations := []string{}

	switch {
	case result.OverallScore >= 80:
		recommendations = append(recommendations,
			"Start building an MVP as soon as possible",
			"Create a landing page and collect email signups",
			"Interview 10-20 potential customers")
	case result.OverallScore >= 60:
		recommendations = append(recommendations,
			"Dig deeper into the specific pain points",
			"Analyze competitors in detail",
			"Put up a simple landing page to gauge interest")
	case result.OverallScore >= 40:
		recommendations = append(recommendations,
			"Run additional customer interviews",
			"Narrow down the target audience",
			"Consider narrowing or widening the scope")
	default:
		recommendations = append(recommendations,
			"Consider a pivot - validation is weak",
			"Look into other problems in this space",
			"Do deeper customer research")
	}

	if reddit := result.Reddit; reddit != nil && reddit.PainPoints > recommendRedditPainPoints {
		recommendations = append(recommendations,
			"Reach out to the authors of pain-point posts on Reddit")
	}

	if twitter := result.Twitter; twitter != nil && len(twitter.TopHashtags) > 0 {
		tags := twitter.TopHashtags
		if len(tags) > 3 {
			tags = tags[:3]
		}
		recommendations = append(recommendations, fmt.Sprintf(
			"Use these hashtags for promotion: #%s", strings.Join(tags, ", #")))
	}

	if linkedin := result.LinkedIn; linkedin != nil && linkedin.AudienceSize > recommendLinkedInMarket {
		recommendations = append(recommendations,
			"Start LinkedIn outreach to the target audience")
	}

	return capList(recommendations, maxRecommendations)
}

func capList(list []string, limit int) []string {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
