package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Database configuration
	DatabaseURL string

	// Schedule configuration
	SweepSchedule string // cron spec for the pending-project sweep
	TimeZone      string

	// Notification configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// Reddit credentials
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string

	// Twitter credentials
	TwitterBearerToken string

	// LinkedIn credentials
	LinkedInEmail    string
	LinkedInPassword string

	// Default LinkedIn targeting when a project doesn't specify its own
	TargetJobTitles []string

	// Search window for platform fetches, in days
	SearchWindowDays int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SweepSchedule: getEnv("SWEEP_SCHEDULE", "0 */10 * * * *"),
		TimeZone:      getEnv("TIMEZONE", "UTC"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getIntEnv("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", ""),

		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "SaaS-Validator/1.0"),

		TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),

		LinkedInEmail:    getEnv("LINKEDIN_EMAIL", ""),
		LinkedInPassword: getEnv("LINKEDIN_PASSWORD", ""),

		TargetJobTitles: getSliceEnv("TARGET_JOB_TITLES", []string{
			"CEO",
			"CTO",
			"Product Manager",
			"Marketing Manager",
		}),

		SearchWindowDays: getIntEnv("SEARCH_WINDOW_DAYS", 30),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks settings every binary needs. DATABASE_URL is checked by
// the server only, so the one-shot CLI can run without a database.
func (c *Config) validate() error {
	if c.SearchWindowDays <= 0 {
		return fmt.Errorf("SEARCH_WINDOW_DAYS must be positive")
	}

	if c.SMTPHost != "" {
		if c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD are required when SMTP_HOST is set")
		}
	}

	return nil
}

// EmailEnabled reports whether completion emails can be sent.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
