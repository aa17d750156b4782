package validation

import "strings"

const maxKeywords = 10
const maxSubreddits = 10

// IdeaKeywords expands an idea name into search keywords: the idea itself,
// its individual words, and common SaaS qualifiers. Capped at ten.
func IdeaKeywords(idea string) []string {
	keywords := []string{idea}

	if strings.Contains(idea, " ") {
		keywords = append(keywords, strings.Fields(idea)...)
	}

	keywords = append(keywords,
		idea+" tool",
		idea+" software",
		idea+" platform",
		idea+" alternative",
	)

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// topicSubreddits maps idea topics to communities worth searching beyond the
// general SaaS ones.
var topicSubreddits = []struct {
	topic      string
	subreddits []string
}{
	{"marketing", []string{"marketing", "digitalmarketing", "growthmarketing"}},
	{"email", []string{"marketing", "sales", "EmailMarketing"}},
	{"crm", []string{"sales", "CustomerSuccess"}},
	{"project", []string{"projectmanagement", "productivity"}},
	{"design", []string{"web_design", "UI_Design", "UXDesign"}},
	{"dev", []string{"webdev", "programming", "coding"}},
	{"analytics", []string{"analytics", "datascience", "dataengineering"}},
	{"hr", []string{"humanresources", "recruiting"}},
	{"finance", []string{"accounting", "financialplanning"}},
}

// RelevantSubreddits picks subreddits to search for an idea: the general SaaS
// communities plus topic-specific ones keyed off words in the idea.
// Deduplicated, capped at ten.
func RelevantSubreddits(idea string) []string {
	subreddits := []string{"SaaS", "Entrepreneur", "startups", "smallbusiness"}

	ideaLower := strings.ToLower(idea)
	for _, entry := range topicSubreddits {
		if strings.Contains(ideaLower, entry.topic) {
			subreddits = append(subreddits, entry.subreddits...)
		}
	}

	seen := make(map[string]bool)
	var unique []string
	for _, sub := range subreddits {
		if !seen[sub] {
			seen[sub] = true
			unique = append(unique, sub)
		}
	}

	if len(unique) > maxSubreddits {
		unique = unique[:maxSubreddits]
	}
	return unique
}
