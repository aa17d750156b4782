package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/validly/saas-validator/internal/models"
)

// TwitterSource fetches recent tweets through the Twitter/X v2 API.
type TwitterSource struct {
	bearerToken string
	client      *resty.Client
}

type twitterSearchResponse struct {
	Data []twitterTweet `json:"data"`
	Meta struct {
		ResultCount int    `json:"result_count"`
		NextToken   string `json:"next_token"`
	} `json:"meta"`
}

type twitterTweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics struct {
		RetweetCount int `json:"retweet_count"`
		LikeCount    int `json:"like_count"`
		ReplyCount   int `json:"reply_count"`
	} `json:"public_metrics"`
	ReferencedTweets []twitterReference `json:"referenced_tweets"`
}

type twitterReference struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// NewTwitterSource creates a new Twitter source
func NewTwitterSource(bearerToken string) *TwitterSource {
	return &TwitterSource{
		bearerToken: bearerToken,
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "SaaS-Validator/1.0"),
	}
}

func (t *TwitterSource) Name() models.Platform {
	return models.PlatformTwitter
}

func (t *TwitterSource) IsEnabled() bool {
	return t.bearerToken != ""
}

// Fetch searches the recent-tweets endpoint for every keyword, skips
// retweets, and extracts the hashtag frequency table.
func (t *TwitterSource) Fetch(ctx context.Context, req FetchRequest) (*PlatformData, error) {
	if !t.IsEnabled() {
		logrus.Debug("Twitter source disabled - missing bearer token")
		return nil, nil
	}

	var allRecords []models.Record

	for i, keyword := range req.Keywords {
		// Spacing out keyword searches keeps us under the recent-search
		// rate limit on the basic tier.
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(3 * time.Second):
			}
		}

		records, err := t.searchKeyword(ctx, keyword, req.Window)
		if err != nil {
			logrus.Errorf("Failed to search Twitter for keyword '%s': %v", keyword, err)
			continue
		}

		logrus.Debugf("Found %d tweets for keyword '%s'", len(records), keyword)
		allRecords = append(allRecords, records...)
	}

	data := &PlatformData{
		Records:  deduplicateRecords(allRecords),
		Hashtags: topHashtags(allRecords, 20),
	}

	logrus.Infof("Twitter: %d tweets after deduplication", len(data.Records))
	return data, nil
}

func (t *TwitterSource) searchKeyword(ctx context.Context, keyword string, window time.Duration) ([]models.Record, error) {
	// The recent-search endpoint only reaches back 7 days regardless of the
	// requested window.
	if window > 7*24*time.Hour {
		window = 7 * 24 * time.Hour
	}
	startTime := time.Now().Add(-window).Format(time.RFC3339)

	query := url.QueryEscape(fmt.Sprintf(`"%s" -is:retweet lang:en`, keyword))
	searchURL := fmt.Sprintf("https://api.twitter.com/2/tweets/search/recent?query=%s&start_time=%s&max_results=100&tweet.fields=created_at,author_id,public_metrics,referenced_tweets",
		query, startTime)

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+t.bearerToken).
		Get(searchURL)

	if err != nil {
		return nil, err
	}

	// Rate limited: skip this keyword rather than blocking the other
	// platforms behind a retry loop.
	if resp.StatusCode() == 429 {
		logrus.Warnf("Twitter API rate limit hit for keyword '%s' - skipping", keyword)
		return []models.Record{}, nil
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("twitter API returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var searchResp twitterSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse Twitter response: %w", err)
	}

	var records []models.Record

	for _, tweet := range searchResp.Data {
		if isRetweet(tweet) {
			continue
		}

		createdAt, err := time.Parse(time.RFC3339, tweet.CreatedAt)
		if err != nil {
			logrus.Errorf("Failed to parse Twitter timestamp: %v", err)
			continue
		}

		metrics := tweet.PublicMetrics
		records = append(records, models.Record{
			ID:         fmt.Sprintf("twitter_%s", tweet.ID),
			Platform:   models.PlatformTwitter,
			Body:       tweet.Text,
			Author:     tweet.AuthorID,
			URL:        fmt.Sprintf("https://twitter.com/i/status/%s", tweet.ID),
			CreatedAt:  createdAt,
			Score:      metrics.LikeCount,
			Comments:   metrics.ReplyCount,
			Shares:     metrics.RetweetCount,
			Engagement: metrics.LikeCount + metrics.RetweetCount + metrics.ReplyCount,
		})
	}

	return records, nil
}

func isRetweet(tweet twitterTweet) bool {
	for _, ref := range tweet.ReferencedTweets {
		if ref.Type == "retweeted" {
			return true
		}
	}
	return false
}

// topHashtags counts hashtag occurrences across tweets and returns the most
// frequent ones, lowercased, most frequent first.
func topHashtags(records []models.Record, limit int) []string {
	counts := make(map[string]int)
	var order []string

	for _, record := range records {
		for _, match := range hashtagPattern.FindAllStringSubmatch(record.Body, -1) {
			tag := strings.ToLower(match[1])
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	// Stable sort keeps first-seen order between equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
