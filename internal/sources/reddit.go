package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/validly/saas-validator/internal/models"
)

// RedditSource fetches posts and subreddit stats through the Reddit API.
type RedditSource struct {
	clientID     string
	clientSecret string
	userAgent    string
	client       *resty.Client
	accessToken  string
}

type redditAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	Created     float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

type redditAboutResponse struct {
	Data struct {
		DisplayName string `json:"display_name"`
		Subscribers int    `json:"subscribers"`
	} `json:"data"`
}

// NewRedditSource creates a new Reddit source
func NewRedditSource(clientID, clientSecret, userAgent string) *RedditSource {
	return &RedditSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		client:       resty.New().SetTimeout(30 * time.Second),
	}
}

func (r *RedditSource) Name() models.Platform {
	return models.PlatformReddit
}

func (r *RedditSource) IsEnabled() bool {
	return r.clientID != "" && r.clientSecret != ""
}

// Fetch searches the requested subreddits for every keyword and sums the
// subreddit subscriber counts into the audience-size estimate.
func (r *RedditSource) Fetch(ctx context.Context, req FetchRequest) (*PlatformData, error) {
	if !r.IsEnabled() {
		logrus.Debug("Reddit source disabled - missing credentials")
		return nil, nil
	}

	if err := r.authenticate(); err != nil {
		return nil, fmt.Errorf("reddit authentication failed: %w", err)
	}

	data := &PlatformData{}

	for _, subreddit := range req.Subreddits {
		subscribers, err := r.subredditSubscribers(ctx, subreddit)
		if err != nil {
			logrus.Errorf("Failed to get subreddit info for r/%s: %v", subreddit, err)
			continue
		}
		data.AudienceSize += subscribers
	}

	var allRecords []models.Record
	for _, keyword := range req.Keywords {
		for _, subreddit := range req.Subreddits {
			records, err := r.searchSubreddit(ctx, subreddit, keyword, req.Window)
			if err != nil {
				logrus.Errorf("Failed to search r/%s for '%s': %v", subreddit, keyword, err)
				continue
			}
			allRecords = append(allRecords, records...)
		}
	}

	data.Records = deduplicateRecords(allRecords)
	logrus.Infof("Reddit: %d posts after deduplication, audience %d", len(data.Records), data.AudienceSize)

	return data, nil
}

func (r *RedditSource) authenticate() error {
	resp, err := r.client.R().
		SetHeader("User-Agent", r.userAgent).
		SetBasicAuth(r.clientID, r.clientSecret).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
		}).
		Post("https://www.reddit.com/api/v1/access_token")

	if err != nil {
		return err
	}

	var authResp redditAuthResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return err
	}

	r.accessToken = authResp.AccessToken
	return nil
}

func (r *RedditSource) subredditSubscribers(ctx context.Context, subreddit string) (int, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+r.accessToken).
		SetHeader("User-Agent", r.userAgent).
		Get(fmt.Sprintf("https://oauth.reddit.com/r/%s/about.json", subreddit))

	if err != nil {
		return 0, err
	}

	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("reddit API returned status %d", resp.StatusCode())
	}

	var aboutResp redditAboutResponse
	if err := json.Unmarshal(resp.Body(), &aboutResp); err != nil {
		return 0, err
	}

	return aboutResp.Data.Subscribers, nil
}

func (r *RedditSource) searchSubreddit(ctx context.Context, subreddit, keyword string, window time.Duration) ([]models.Record, error) {
	query := url.QueryEscape(keyword)
	searchURL := fmt.Sprintf("https://oauth.reddit.com/r/%s/search.json?q=%s&restrict_sr=1&sort=new&limit=100", subreddit, query)

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+r.accessToken).
		SetHeader("User-Agent", r.userAgent).
		Get(searchURL)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("reddit API returned status %d", resp.StatusCode())
	}

	var searchResp redditSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, err
	}

	var records []models.Record
	cutoff := time.Now().Add(-window)

	for _, child := range searchResp.Data.Children {
		post := child.Data
		createdAt := time.Unix(int64(post.Created), 0)

		if createdAt.Before(cutoff) {
			continue
		}

		// Reddit search can match on flair or links; keep only posts whose
		// text actually contains the keyword.
		content := strings.ToLower(post.Title + " " + post.Selftext)
		if !strings.Contains(content, strings.ToLower(keyword)) {
			continue
		}

		records = append(records, models.Record{
			ID:         fmt.Sprintf("reddit_%s", post.ID),
			Platform:   models.PlatformReddit,
			Title:      post.Title,
			Body:       post.Selftext,
			Author:     post.Author,
			URL:        fmt.Sprintf("https://reddit.com%s", post.Permalink),
			CreatedAt:  createdAt,
			Score:      post.Score,
			Comments:   post.NumComments,
			Engagement: post.Score + post.NumComments,
		})
	}

	return records, nil
}

func deduplicateRecords(records []models.Record) []models.Record {
	seen := make(map[string]bool)
	var unique []models.Record

	for _, record := range records {
		if !seen[record.ID] {
			seen[record.ID] = true
			unique = append(unique, record)
		}
	}

	return unique
}
