package plan

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelabs/propbench/internal/harness"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func writePlan(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	p := Default()

	assert.Equal(t, harness.PassPercentImprovement, p.PassPercentImprovement)
	assert.Equal(t, 5, p.Iterations)
	assert.Equal(t, harness.DefaultPollDelays, p.DelaysFor("content"))
}

func TestLoad(t *testing.T) {
	path := writePlan(t, `
pass_percent_improvement: 80
iterations: 3
delays_ms: [25, 75]
scenarios:
  branches:
    delays_ms: [10]
  content:
    iterations: 10
`)

	p, err := Load(quietLogger(), path)
	require.NoError(t, err)

	assert.Equal(t, 80, p.PassPercentImprovement)
	assert.Equal(t, 3, p.Iterations)

	assert.Equal(t, []time.Duration{25 * time.Millisecond, 75 * time.Millisecond}, p.DelaysFor("commits"))
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, p.DelaysFor("branches"))

	assert.Equal(t, 10, p.IterationsFor("content"))
	assert.Equal(t, 3, p.IterationsFor("commits"))
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writePlan(t, "iterations: 7\n")

	p, err := Load(quietLogger(), path)
	require.NoError(t, err)

	assert.Equal(t, 7, p.Iterations)
	assert.Equal(t, harness.PassPercentImprovement, p.PassPercentImprovement)
	assert.Equal(t, harness.DefaultPollDelays, p.DelaysFor("workflow"))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "threshold out of range",
			content: "pass_percent_improvement: 250\n",
		},
		{
			name:    "zero iterations",
			content: "iterations: 0\n",
		},
		{
			name:    "negative delay",
			content: "delays_ms: [-5]\n",
		},
		{
			name: "negative scenario delay",
			content: `
scenarios:
  commits:
    delays_ms: [0]
`,
		},
		{
			name:    "not yaml",
			content: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlan(t, tt.content)

			_, err := Load(quietLogger(), path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(quietLogger(), "/nonexistent/plan.yaml")
	assert.Error(t, err)
}
