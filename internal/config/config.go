// Package config handles configuration loading and management
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	GitHubOwner    string
	GitHubRepo     string
	GitHubToken    string
	DefaultBranch  string
	CMSContentURL  string
	CMSQueryURL    string
	RunMode        string
	RequestTimeout time.Duration
	ReportDir      string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		GitHubOwner:   getEnv("GITHUB_OWNER", ""),
		GitHubRepo:    getEnv("GITHUB_REPO", ""),
		GitHubToken:   getEnv("GITHUB_TOKEN", ""),
		DefaultBranch: getEnv("GITHUB_DEFAULT_BRANCH", "main"),
		CMSContentURL: getEnv("CMS_CONTENT_URL", ""),
		CMSQueryURL:   getEnv("CMS_QUERY_URL", ""),
		RunMode:       getEnv("RUN_MODE", "live"),
		ReportDir:     getEnv("REPORT_DIR", DefaultReportDir),
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = timeout

	return cfg, nil
}

// MissingFields returns the environment variable names of required fields
// that are not set. Missing fields are reported, never fatal at load time:
// the scenarios that need them record failures instead.
func (c *Config) MissingFields() []string {
	missing := []string{}

	if c.GitHubOwner == "" {
		missing = append(missing, "GITHUB_OWNER")
	}
	if c.GitHubRepo == "" {
		missing = append(missing, "GITHUB_REPO")
	}
	if c.GitHubToken == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.CMSContentURL == "" {
		missing = append(missing, "CMS_CONTENT_URL")
	}
	if c.CMSQueryURL == "" {
		missing = append(missing, "CMS_QUERY_URL")
	}

	return missing
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) String() string {
	tokenDisplay := "(not set)"
	if c.GitHubToken != "" {
		tokenDisplay = "********"
	}

	contentURLDisplay := c.CMSContentURL
	if contentURLDisplay == "" {
		contentURLDisplay = "(not set)"
	}

	queryURLDisplay := c.CMSQueryURL
	if queryURLDisplay == "" {
		queryURLDisplay = "(not set)"
	}

	return fmt.Sprintf(`Current Configuration:
======================
GitHub Owner:     %s
GitHub Repo:      %s
GitHub Token:     %s
Default Branch:   %s
CMS Content URL:  %s
CMS Query URL:    %s
Run Mode:         %s
Request Timeout:  %s
Report Dir:       %s`,
		c.GitHubOwner,
		c.GitHubRepo,
		tokenDisplay,
		c.DefaultBranch,
		contentURLDisplay,
		queryURLDisplay,
		c.RunMode,
		c.RequestTimeout,
		c.ReportDir,
	)
}
