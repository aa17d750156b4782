package validation

import (
	"strings"

	"github.com/validly/saas-validator/internal/models"
)

const excerptLength = 200

// ExtractPainPoints scans records for vocabulary terms and returns one match
// per record that contains at least one term. The match carries every term
// that hit, in vocabulary order. Pure function: no side effects, output order
// follows input order.
func ExtractPainPoints(records []models.Record, vocabulary []string) []models.PainPointMatch {
	var matches []models.PainPointMatch

	for _, record := range records {
		content := strings.ToLower(record.Title + " " + record.Body)

		var matched []string
		for _, term := range vocabulary {
			if strings.Contains(content, strings.ToLower(term)) {
				matched = append(matched, term)
			}
		}

		if len(matched) == 0 {
			continue
		}

		matches = append(matches, models.PainPointMatch{
			RecordID:   record.ID,
			Title:      record.Title,
			Excerpt:    truncate(record.Body, excerptLength),
			Keywords:   matched,
			Engagement: record.Engagement,
			URL:        record.URL,
		})
	}

	return matches
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length] + "..."
}
