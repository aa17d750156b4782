package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/validly/saas-validator/internal/config"
	"github.com/validly/saas-validator/internal/models"
)

func sampleResult() *models.ValidationResult {
	return &models.ValidationResult{
		IdeaName:          "AI invoicing",
		OverallScore:      75,
		Verdict:           "Good idea - has potential",
		PlatformsAnalyzed: []models.Platform{models.PlatformReddit, models.PlatformTwitter},
		Reddit: &models.PlatformSummary{
			Platform:     models.PlatformReddit,
			RecordsFound: 42,
			PainPoints:   18,
			AudienceSize: 120000,
			Score:        85,
		},
		Twitter: &models.PlatformSummary{
			Platform:     models.PlatformTwitter,
			RecordsFound: 30,
			PainPoints:   8,
			Score:        65,
		},
		KeyInsights:     []string{"Found 18 pain points on Reddit - the problem is real"},
		Recommendations: []string{"Dig deeper into the specific pain points"},
	}
}

func TestSendValidationComplete_DisabledConfig(t *testing.T) {
	service := NewService(&config.Config{})

	// no SMTP host configured; must be a silent no-op
	err := service.SendValidationComplete("founder@example.com", sampleResult())
	assert.NoError(t, err)
}

func TestSendValidationComplete_NoRecipient(t *testing.T) {
	service := NewService(&config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPUsername: "user",
		SMTPPassword: "pass",
	})

	err := service.SendValidationComplete("", sampleResult())
	assert.NoError(t, err)
}

func TestBuildEmailHTML(t *testing.T) {
	service := NewService(&config.Config{})
	result := sampleResult()

	html, err := service.buildEmailHTML(result)
	assert.NoError(t, err)

	assert.Contains(t, html, "AI invoicing")
	assert.Contains(t, html, "75/100")
	assert.Contains(t, html, "Good idea - has potential")
	assert.Contains(t, html, "Found 18 pain points on Reddit")
	assert.Contains(t, html, "Dig deeper into the specific pain points")
	assert.Contains(t, html, "42 posts")
	assert.NotContains(t, html, "LinkedIn:")
}

func TestBuildEmailHTML_EscapesContent(t *testing.T) {
	service := NewService(&config.Config{})
	result := sampleResult()
	result.IdeaName = `<script>alert("x")</script>`

	html, err := service.buildEmailHTML(result)
	assert.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestBuildEmailText(t *testing.T) {
	service := NewService(&config.Config{})

	text := service.buildEmailText(sampleResult())

	assert.Contains(t, text, "Validation results for: AI invoicing")
	assert.Contains(t, text, "Overall score: 75/100")
	assert.Contains(t, text, "KEY INSIGHTS")
	assert.Contains(t, text, "RECOMMENDATIONS")
	assert.Contains(t, text, "reddit: 42 records, 18 pain points, score 85/100")
	assert.Contains(t, text, "twitter: 30 records, 8 pain points, score 65/100")
}

func TestBuildEmailText_MinimalResult(t *testing.T) {
	service := NewService(&config.Config{})

	text := service.buildEmailText(&models.ValidationResult{
		IdeaName:     "obscure idea",
		OverallScore: 0,
		Verdict:      "No data - no platforms returned results",
	})

	assert.Contains(t, text, "obscure idea")
	assert.NotContains(t, text, "KEY INSIGHTS")
	assert.NotContains(t, text, "RECOMMENDATIONS")
}
