package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/validly/saas-validator/internal/config"
	"github.com/validly/saas-validator/internal/models"
	"gopkg.in/gomail.v2"
)

// Service sends validation-complete emails over SMTP.
type Service struct {
	config *config.Config
}

// Ensure Service implements Notifier
var _ Notifier = (*Service)(nil)

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// SendValidationComplete emails the final verdict for a run. A disabled SMTP
// configuration is not an error; the result is already persisted.
func (s *Service) SendValidationComplete(email string, result *models.ValidationResult) error {
	if !s.config.EmailEnabled() {
		logrus.Debug("Email notifications disabled - no SMTP host configured")
		return nil
	}
	if email == "" {
		return nil
	}

	subject := fmt.Sprintf("Validation complete: %s (%d/100)", result.IdeaName, result.OverallScore)

	htmlBody, err := s.buildEmailHTML(result)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	from := s.config.EmailFrom
	if from == "" {
		from = s.config.SMTPUsername
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.buildEmailText(result))
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logrus.Infof("Sent validation-complete email to %s", email)
	return nil
}

func (s *Service) buildEmailHTML(result *models.ValidationResult) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Validation Results</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #4f46e5; color: white; padding: 20px; border-radius: 5px; }
        .score { font-size: 2em; font-weight: bold; }
        .section { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .platform { border-left: 4px solid #4f46e5; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        li { margin: 5px 0; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.IdeaName}}</h1>
        <p class="score">{{.OverallScore}}/100</p>
        <p>{{.Verdict}}</p>
    </div>

    {{if .KeyInsights}}
    <div class="section">
        <h2>Key Insights</h2>
        <ul>
        {{range .KeyInsights}}<li>{{.}}</li>{{end}}
        </ul>
    </div>
    {{end}}

    {{if .Recommendations}}
    <div class="section">
        <h2>Recommendations</h2>
        <ul>
        {{range .Recommendations}}<li>{{.}}</li>{{end}}
        </ul>
    </div>
    {{end}}

    {{if .Reddit}}
    <div class="platform">
        <strong>Reddit:</strong> {{.Reddit.RecordsFound}} posts, {{.Reddit.PainPoints}} pain points,
        audience {{.Reddit.AudienceSize}} &mdash; score {{.Reddit.Score}}/100
    </div>
    {{end}}
    {{if .Twitter}}
    <div class="platform">
        <strong>Twitter/X:</strong> {{.Twitter.RecordsFound}} tweets, {{.Twitter.PainPoints}} pain points
        &mdash; score {{.Twitter.Score}}/100
    </div>
    {{end}}
    {{if .LinkedIn}}
    <div class="platform">
        <strong>LinkedIn:</strong> {{.LinkedIn.AudienceSize}} profiles, {{.LinkedIn.Competitors}} competitors
        &mdash; score {{.LinkedIn.Score}}/100
    </div>
    {{end}}

    <hr>
    <p><small>This report was generated automatically by the SaaS Validator.</small></p>
</body>
</html>
`

	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, result); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(result *models.ValidationResult) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Validation results for: %s\n", result.IdeaName))
	text.WriteString(fmt.Sprintf("Overall score: %d/100\n", result.OverallScore))
	text.WriteString(fmt.Sprintf("Verdict: %s\n", result.Verdict))

	if len(result.KeyInsights) > 0 {
		text.WriteString("\nKEY INSIGHTS\n")
		text.WriteString("============\n")
		for _, insight := range result.KeyInsights {
			text.WriteString(fmt.Sprintf("- %s\n", insight))
		}
	}

	if len(result.Recommendations) > 0 {
		text.WriteString("\nRECOMMENDATIONS\n")
		text.WriteString("===============\n")
		for _, rec := range result.Recommendations {
			text.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	for _, platform := range result.PlatformsAnalyzed {
		if summary := result.Summary(platform); summary != nil {
			text.WriteString(fmt.Sprintf("\n%s: %d records, %d pain points, score %d/100\n",
				platform, summary.RecordsFound, summary.PainPoints, summary.Score))
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by the SaaS Validator.\n")

	return text.String()
}
