package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/validly/saas-validator/internal/models"
)

// LinkedInSource estimates B2B market size and competitor presence through
// LinkedIn's internal Voyager API, authenticated with a member session.
// Direct partner APIs only expose owned content, so member-session search is
// the only way to count profiles for arbitrary job titles.
type LinkedInSource struct {
	email    string
	password string
	client   *resty.Client
	loggedIn bool
}

type voyagerSearchResponse struct {
	Elements []struct {
		Title struct {
			Text string `json:"text"`
		} `json:"title"`
		Headline struct {
			Text string `json:"text"`
		} `json:"headline"`
		Industry string `json:"industry"`
		PublicID string `json:"publicIdentifier"`
	} `json:"elements"`
	Paging struct {
		Total int `json:"total"`
	} `json:"paging"`
}

type voyagerCompanyResponse struct {
	Elements []struct {
		Name          string `json:"name"`
		UniversalName string `json:"universalName"`
	} `json:"elements"`
}

type voyagerUpdatesResponse struct {
	Elements []struct {
		SocialDetail struct {
			TotalSocialActivityCounts struct {
				NumLikes    int `json:"numLikes"`
				NumComments int `json:"numComments"`
			} `json:"totalSocialActivityCounts"`
		} `json:"socialDetail"`
	} `json:"elements"`
}

// NewLinkedInSource creates a new LinkedIn source
func NewLinkedInSource(email, password string) *LinkedInSource {
	return &LinkedInSource{
		email:    email,
		password: password,
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36").
			SetHeader("X-Restli-Protocol-Version", "2.0.0"),
	}
}

func (l *LinkedInSource) Name() models.Platform {
	return models.PlatformLinkedIn
}

func (l *LinkedInSource) IsEnabled() bool {
	return l.email != "" && l.password != ""
}

// Fetch counts matching profiles for the target job titles, collects their
// industries, and sizes up competitor company engagement.
func (l *LinkedInSource) Fetch(ctx context.Context, req FetchRequest) (*PlatformData, error) {
	if !l.IsEnabled() {
		logrus.Debug("LinkedIn source disabled - missing credentials")
		return nil, nil
	}

	if err := l.authenticate(ctx); err != nil {
		return nil, fmt.Errorf("linkedin authentication failed: %w", err)
	}

	data := &PlatformData{}
	industries := make(map[string]bool)

	for _, title := range req.JobTitles {
		records, total, err := l.searchPeople(ctx, title, req.Keywords)
		if err != nil {
			logrus.Errorf("Failed to search LinkedIn profiles for '%s': %v", title, err)
			continue
		}

		data.AudienceSize += total
		data.Records = append(data.Records, records...)
		for _, record := range records {
			if record.Title != "" {
				industries[record.Title] = true
			}
		}
	}

	for _, competitor := range req.Competitors {
		engagement, found, err := l.companyEngagement(ctx, competitor)
		if err != nil {
			logrus.Errorf("Failed to analyze competitor '%s': %v", competitor, err)
			continue
		}
		if found {
			data.Competitors++
			data.CompetitorEngagement += engagement
		}
	}

	data.Records = deduplicateRecords(data.Records)
	data.Industries = len(industries)

	logrus.Infof("LinkedIn: %d profiles, %d competitors, %d industries",
		data.AudienceSize, data.Competitors, data.Industries)

	return data, nil
}

func (l *LinkedInSource) authenticate(ctx context.Context) error {
	if l.loggedIn {
		return nil
	}

	resp, err := l.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"session_key":      l.email,
			"session_password": l.password,
		}).
		Post("https://www.linkedin.com/uas/authenticate")

	if err != nil {
		return err
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("linkedin authentication returned status %d", resp.StatusCode())
	}

	// Session cookies (li_at, JSESSIONID) are kept in the resty cookie jar;
	// the CSRF token mirrors JSESSIONID on every Voyager call.
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "JSESSIONID" {
			l.client.SetHeader("Csrf-Token", cookie.Value)
		}
	}

	l.loggedIn = true
	return nil
}

func (l *LinkedInSource) searchPeople(ctx context.Context, jobTitle string, keywords []string) ([]models.Record, int, error) {
	query := jobTitle
	if len(keywords) > 0 {
		query = fmt.Sprintf("%s %s", jobTitle, keywords[0])
	}

	searchURL := fmt.Sprintf(
		"https://www.linkedin.com/voyager/api/search/blended?keywords=%s&origin=GLOBAL_SEARCH_HEADER&count=49&filters=List(resultType-%%3EPEOPLE)",
		url.QueryEscape(query))

	resp, err := l.client.R().
		SetContext(ctx).
		Get(searchURL)

	if err != nil {
		return nil, 0, err
	}

	if resp.StatusCode() != 200 {
		return nil, 0, fmt.Errorf("linkedin API returned status %d", resp.StatusCode())
	}

	var searchResp voyagerSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, 0, err
	}

	var records []models.Record
	for _, element := range searchResp.Elements {
		if element.PublicID == "" {
			continue
		}
		records = append(records, models.Record{
			ID:        fmt.Sprintf("linkedin_%s", element.PublicID),
			Platform:  models.PlatformLinkedIn,
			Title:     element.Industry,
			Body:      element.Headline.Text,
			Author:    element.Title.Text,
			URL:       fmt.Sprintf("https://www.linkedin.com/in/%s", element.PublicID),
			CreatedAt: time.Now(),
		})
	}

	total := searchResp.Paging.Total
	if total == 0 {
		total = len(records)
	}

	return records, total, nil
}

// companyEngagement finds a competitor company and averages likes over its
// recent posts. Returns found=false when no company matches the name.
func (l *LinkedInSource) companyEngagement(ctx context.Context, name string) (float64, bool, error) {
	searchURL := fmt.Sprintf(
		"https://www.linkedin.com/voyager/api/organization/companies?q=universalName&universalName=%s",
		url.QueryEscape(name))

	resp, err := l.client.R().
		SetContext(ctx).
		Get(searchURL)

	if err != nil {
		return 0, false, err
	}

	if resp.StatusCode() == 404 {
		return 0, false, nil
	}

	if resp.StatusCode() != 200 {
		return 0, false, fmt.Errorf("linkedin API returned status %d", resp.StatusCode())
	}

	var companyResp voyagerCompanyResponse
	if err := json.Unmarshal(resp.Body(), &companyResp); err != nil {
		return 0, false, err
	}

	if len(companyResp.Elements) == 0 {
		return 0, false, nil
	}

	company := companyResp.Elements[0]

	updatesURL := fmt.Sprintf(
		"https://www.linkedin.com/voyager/api/feed/updates?q=companyFeedByUniversalName&universalName=%s&count=10",
		url.QueryEscape(company.UniversalName))

	resp, err = l.client.R().
		SetContext(ctx).
		Get(updatesURL)

	if err != nil || resp.StatusCode() != 200 {
		// Company exists even if its feed is unreadable.
		return 0, true, nil
	}

	var updatesResp voyagerUpdatesResponse
	if err := json.Unmarshal(resp.Body(), &updatesResp); err != nil {
		return 0, true, nil
	}

	if len(updatesResp.Elements) == 0 {
		return 0, true, nil
	}

	totalLikes := 0
	for _, element := range updatesResp.Elements {
		totalLikes += element.SocialDetail.TotalSocialActivityCounts.NumLikes
	}

	return float64(totalLikes) / float64(len(updatesResp.Elements)), true, nil
}
