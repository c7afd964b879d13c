package harness

import "time"

// State tracks a scenario run through its lifecycle. A scenario only reaches
// StateFailed when a fatal error escapes a step; individual step failures
// still produce StateCompleted with a mixed-success summary.
type State string

const (
	// StateNotStarted is the initial state before any step has run.
	StateNotStarted State = "not_started"
	// StateRunning means steps are executing.
	StateRunning State = "running"
	// StateCompleted means all declared steps were attempted.
	StateCompleted State = "completed"
	// StateFailed means a fatal error aborted the remaining steps.
	StateFailed State = "failed"
)

// ResourceKind identifies the type of a transient git resource.
type ResourceKind string

const (
	// ResourceBranch is a branch created solely to be polled and deleted.
	ResourceBranch ResourceKind = "branch"
	// ResourceFile is a file committed to a branch solely for a test.
	ResourceFile ResourceKind = "file"
)

// Resource is a transient git resource owned by the scenario that created
// it. Every tracked resource gets exactly one cleanup attempt, regardless of
// whether earlier steps in the same run failed.
type Resource struct {
	Kind       ResourceKind `json:"kind"`
	Identifier string       `json:"identifier"`
	Branch     string       `json:"branch,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// CleanupAttempt records the best-effort deletion of one tracked resource.
type CleanupAttempt struct {
	Resource    Resource    `json:"resource"`
	Measurement Measurement `json:"measurement"`
}

// StepResult is the outcome of one numbered scenario step. Steps communicate
// only through their return values; the carried outputs of step N are the
// explicit input of step N+1.
type StepResult struct {
	Number       int           `json:"number"`
	Name         string        `json:"name"`
	Measurements []Measurement `json:"measurements,omitempty"`
	PollAttempts []PollAttempt `json:"poll_attempts,omitempty"`
	Polled       bool          `json:"polled"`
	Consistent   bool          `json:"consistent"`
	Success      bool          `json:"success"`
	Reason       string        `json:"reason,omitempty"`
}

// AllMeasurements returns the step's direct measurements followed by the
// measurements of its poll attempts.
func (s *StepResult) AllMeasurements() []Measurement {
	out := make([]Measurement, 0, len(s.Measurements)+len(s.PollAttempts))
	out = append(out, s.Measurements...)

	for _, attempt := range s.PollAttempts {
		out = append(out, attempt.Measurement)
	}

	return out
}

// ScenarioResult aggregates all step outcomes of a single scenario run.
// It is computed once all steps complete and is immutable thereafter.
type ScenarioResult struct {
	Name       string           `json:"name"`
	State      State            `json:"state"`
	Steps      []StepResult     `json:"steps"`
	Cleanup    []CleanupAttempt `json:"cleanup,omitempty"`
	Metrics    DerivedMetrics   `json:"metrics"`
	Consistent bool             `json:"consistent"`
	Passed     bool             `json:"passed"`
	Error      string           `json:"error,omitempty"`
}

// NewScenarioResult returns a result in the initial lifecycle state. The
// runner advances it to StateRunning when the first step begins.
func NewScenarioResult(name string) *ScenarioResult {
	return &ScenarioResult{
		Name:  name,
		State: StateNotStarted,
	}
}

// Measurements returns every measurement across all steps of the scenario.
func (r *ScenarioResult) Measurements() []Measurement {
	out := make([]Measurement, 0, len(r.Steps))
	for i := range r.Steps {
		out = append(out, r.Steps[i].AllMeasurements()...)
	}

	return out
}
