// Package report assembles scenario results into persisted report documents.
package report

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/probelabs/propbench/internal/harness"
)

// Environment describes the process and platform a run executed on.
type Environment struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	GoVersion string `json:"go_version"`
	Hostname  string `json:"hostname,omitempty"`
	RunMode   string `json:"run_mode"`
}

// DescribeEnvironment captures the current process environment.
func DescribeEnvironment(runMode string) Environment {
	hostname, _ := os.Hostname()

	return Environment{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		Hostname:  hostname,
		RunMode:   runMode,
	}
}

// Summary is the aggregate computed across all scenarios in a document.
type Summary struct {
	harness.Summary

	ScenariosPassed int    `json:"scenarios_passed"`
	ScenariosFailed int    `json:"scenarios_failed"`
	AllPassed       bool   `json:"all_passed"`
	Recommendation  string `json:"recommendation"`
}

// Document is the single report artifact for a run. It is assembled once at
// the end of a run and read-only afterwards.
type Document struct {
	RunID       string                   `json:"run_id"`
	Timestamp   time.Time                `json:"timestamp"`
	Environment Environment              `json:"environment"`
	Scenarios   []harness.ScenarioResult `json:"scenarios"`
	Summary     Summary                  `json:"summary"`
}

// Build assembles a Document from scenario results and the step summary
// accumulated during the run.
func Build(env Environment, steps harness.Summary, scenarios ...harness.ScenarioResult) *Document {
	summary := Summary{Summary: steps}

	for i := range scenarios {
		if scenarios[i].Passed {
			summary.ScenariosPassed++
		} else {
			summary.ScenariosFailed++
		}
	}

	summary.AllPassed = summary.ScenariosFailed == 0 && len(scenarios) > 0
	summary.Recommendation = recommend(summary, scenarios)

	return &Document{
		RunID:       uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Environment: env,
		Scenarios:   scenarios,
		Summary:     summary,
	}
}

func recommend(summary Summary, scenarios []harness.ScenarioResult) string {
	if len(scenarios) == 0 {
		return "no scenarios were executed; nothing to recommend"
	}

	if summary.AllPassed {
		return "the content layer eliminates the propagation delay within the tested windows; reads can be served from it directly"
	}

	for i := range scenarios {
		if scenarios[i].State == harness.StateFailed {
			return fmt.Sprintf("scenario %q aborted before completing; fix the reported configuration problem and re-run", scenarios[i].Name)
		}
	}

	return "one or more consistency or latency thresholds were missed; keep the delay workaround in place and investigate the failing steps"
}
