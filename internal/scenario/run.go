package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/probelabs/propbench/internal/config"
	"github.com/probelabs/propbench/internal/harness"
	"github.com/sirupsen/logrus"
)

var errCredentialsRequired = errors.New("GITHUB_TOKEN is required for scenarios that create resources")

// Run is the explicit context object passed into each step. Steps read their
// inputs from it and publish their outputs back onto it; there is no other
// shared state between steps.
type Run struct {
	Config  *config.Config
	Git     GitBackend
	Content ContentBackend
	Poller  *harness.Poller
	Tracker *ResourceTracker
	Log     logrus.FieldLogger

	// Carried outputs: the successfully-created resources of step N are the
	// explicit input of step N+1.
	BaseSHA       string
	Branches      []string
	BatchBranches []string
	Commits       []string
	Files         []string
}

// NewRun assembles the run context for one scenario execution.
func NewRun(cfg *config.Config, git GitBackend, content ContentBackend, poller *harness.Poller, log logrus.FieldLogger) *Run {
	return &Run{
		Config:  cfg,
		Git:     git,
		Content: content,
		Poller:  poller,
		Tracker: NewResourceTracker(log, git),
		Log:     log,
	}
}

// RequireCredentials returns a fatal error when the access credential needed
// for resource creation is absent. Fatal errors are the only class that
// aborts a scenario's remaining steps.
func (r *Run) RequireCredentials() error {
	if r.Config.GitHubToken == "" {
		return harness.Fatal(errCredentialsRequired)
	}

	return nil
}

// UniqueName suffixes prefix with the current nanosecond timestamp so that
// concurrent runs against the same repository cannot collide.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
