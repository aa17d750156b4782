package validation

import (
	"fmt"

	"github.com/validly/saas-validator/internal/models"
)

// ScoreResult is the outcome of scoring one platform's signals.
type ScoreResult struct {
	Score   int
	Verdict string
	Rules   []models.FiredRule
}

// Signals is implemented by the per-platform input structs.
type Signals interface {
	Platform() models.Platform
}

// PlatformScorer scores one platform's extracted signals. Each implementation
// accepts only its own Signals shape and returns an error for any other.
type PlatformScorer interface {
	Platform() models.Platform
	Score(sig Signals) (ScoreResult, error)
}

// Tier is one threshold rule: it awards Points when the metric value is
// strictly greater than Threshold. Tiers for a metric are declared highest
// first and only the first satisfied tier fires.
type Tier struct {
	ID        string
	Threshold float64
	Points    int
	Reason    string // rendered with the metric value
}

// evalTiers returns the fired rule for the highest satisfied tier, if any.
func evalTiers(value float64, tiers []Tier) (models.FiredRule, bool) {
	for _, t := range tiers {
		if value > t.Threshold {
			return models.FiredRule{
				ID:     t.ID,
				Points: t.Points,
				Reason: fmt.Sprintf(t.Reason, value),
			}, true
		}
	}
	return models.FiredRule{}, false
}

// clampScore keeps a score inside [0,100]. Default rule tables are designed
// to total at most 100, but injected tables carry no such guarantee.
func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func finishScore(score int, rules []models.FiredRule) ScoreResult {
	score = clampScore(score)
	return ScoreResult{
		Score:   score,
		Verdict: VerdictForScore(score),
		Rules:   rules,
	}
}
