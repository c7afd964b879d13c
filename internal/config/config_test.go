package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"GITHUB_OWNER", "GITHUB_REPO", "GITHUB_TOKEN", "GITHUB_DEFAULT_BRANCH",
		"CMS_CONTENT_URL", "CMS_QUERY_URL", "RUN_MODE", "REQUEST_TIMEOUT", "REPORT_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.DefaultBranch)
	assert.Equal(t, "live", cfg.RunMode)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DefaultReportDir, cfg.ReportDir)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_OWNER", "probelabs")
	t.Setenv("GITHUB_REPO", "content")
	t.Setenv("GITHUB_TOKEN", "ghp_secret")
	t.Setenv("GITHUB_DEFAULT_BRANCH", "trunk")
	t.Setenv("CMS_CONTENT_URL", "https://cms.example.com/content")
	t.Setenv("CMS_QUERY_URL", "https://cms.example.com/graphql")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "probelabs", cfg.GitHubOwner)
	assert.Equal(t, "content", cfg.GitHubRepo)
	assert.Equal(t, "trunk", cfg.DefaultBranch)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.MissingFields())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
}

func TestMissingFields(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_OWNER", "probelabs")

	cfg, err := Load()
	require.NoError(t, err)

	missing := cfg.MissingFields()
	assert.NotContains(t, missing, "GITHUB_OWNER")
	assert.Contains(t, missing, "GITHUB_REPO")
	assert.Contains(t, missing, "GITHUB_TOKEN")
	assert.Contains(t, missing, "CMS_CONTENT_URL")
	assert.Contains(t, missing, "CMS_QUERY_URL")
}

func TestString_MasksToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_secret")

	cfg, err := Load()
	require.NoError(t, err)

	out := cfg.String()
	assert.NotContains(t, out, "ghp_secret")
	assert.True(t, strings.Contains(out, "********"))
}
