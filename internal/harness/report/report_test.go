package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelabs/propbench/internal/harness"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return log
}

func TestBuild(t *testing.T) {
	t.Parallel()

	passed := harness.ScenarioResult{
		Name:       "content_comparison",
		State:      harness.StateCompleted,
		Consistent: true,
		Passed:     true,
	}
	failed := harness.ScenarioResult{
		Name:  "commit_tracking",
		State: harness.StateCompleted,
	}

	doc := Build(DescribeEnvironment("live"), harness.Summary{TotalSteps: 8}, passed, failed)

	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.RunID)
	assert.False(t, doc.Timestamp.IsZero())
	assert.Equal(t, "live", doc.Environment.RunMode)
	assert.Equal(t, 1, doc.Summary.ScenariosPassed)
	assert.Equal(t, 1, doc.Summary.ScenariosFailed)
	assert.False(t, doc.Summary.AllPassed)
	assert.Equal(t, 8, doc.Summary.TotalSteps)
	assert.NotEmpty(t, doc.Summary.Recommendation)
}

func TestBuild_AllPassed(t *testing.T) {
	t.Parallel()

	doc := Build(Environment{}, harness.Summary{}, harness.ScenarioResult{
		Name:   "content_comparison",
		State:  harness.StateCompleted,
		Passed: true,
	})

	assert.True(t, doc.Summary.AllPassed)
	assert.Contains(t, doc.Summary.Recommendation, "eliminates")
}

func TestBuild_NoScenarios(t *testing.T) {
	t.Parallel()

	doc := Build(Environment{}, harness.Summary{})

	assert.False(t, doc.Summary.AllPassed)
	assert.NotEmpty(t, doc.Summary.Recommendation)
}

func TestBuild_AbortedScenarioNamedInRecommendation(t *testing.T) {
	t.Parallel()

	doc := Build(Environment{}, harness.Summary{}, harness.ScenarioResult{
		Name:  "branch_lifecycle",
		State: harness.StateFailed,
		Error: "GITHUB_TOKEN is required",
	})

	assert.Contains(t, doc.Summary.Recommendation, "branch_lifecycle")
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(quietLogger(), dir)

	doc := Build(DescribeEnvironment("simulated"), harness.Summary{TotalSteps: 3})

	path := w.Write(doc, "content_comparison.json")
	require.Equal(t, filepath.Join(dir, "content_comparison.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.RunID, decoded.RunID)
	assert.Equal(t, 3, decoded.Summary.TotalSteps)
}

func TestWriter_CreatesMissingDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "reports")
	w := NewWriter(quietLogger(), dir)

	path := w.Write(Build(Environment{}, harness.Summary{}), "out.json")
	assert.NotEmpty(t, path)
	assert.FileExists(t, path)
}

func TestWriter_FailureReturnsEmptyPath(t *testing.T) {
	t.Parallel()

	// A file in place of the report directory makes MkdirAll fail.
	blocked := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	w := NewWriter(quietLogger(), blocked)

	assert.Empty(t, w.Write(Build(Environment{}, harness.Summary{}), "out.json"))
}
