package scenario

import (
	"context"
	"sync"
	"time"

	"github.com/probelabs/propbench/internal/harness"
	"github.com/sirupsen/logrus"
)

// ResourceTracker records every transient git resource a scenario creates so
// that each one receives exactly one cleanup attempt, even when earlier
// steps in the same run fail.
type ResourceTracker struct {
	git GitBackend
	log logrus.FieldLogger

	mu        sync.Mutex
	resources []harness.Resource
}

// NewResourceTracker creates a tracker deleting through the given backend.
func NewResourceTracker(log logrus.FieldLogger, git GitBackend) *ResourceTracker {
	return &ResourceTracker{
		git: git,
		log: log.WithField("component", "resource_tracker"),
	}
}

// TrackBranch records a branch created by a scenario step.
func (t *ResourceTracker) TrackBranch(name string) {
	t.track(harness.Resource{
		Kind:       harness.ResourceBranch,
		Identifier: name,
		CreatedAt:  time.Now(),
	})
}

// TrackFile records a file committed to a branch by a scenario step.
func (t *ResourceTracker) TrackFile(branch, path string) {
	t.track(harness.Resource{
		Kind:       harness.ResourceFile,
		Identifier: path,
		Branch:     branch,
		CreatedAt:  time.Now(),
	})
}

func (t *ResourceTracker) track(res harness.Resource) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resources = append(t.resources, res)
}

// Resources returns the tracked resources in creation order.
func (t *ResourceTracker) Resources() []harness.Resource {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]harness.Resource, len(t.resources))
	copy(out, t.resources)

	return out
}

// CleanupAll deletes every tracked resource best-effort and returns one
// cleanup attempt per resource. Deletions are idempotent-intent: a failure
// is logged as a warning and never escalated, since the resource may
// already be gone. Files are deleted before branches so file deletions
// still have a branch to land on.
func (t *ResourceTracker) CleanupAll(ctx context.Context) []harness.CleanupAttempt {
	resources := t.Resources()
	attempts := make([]harness.CleanupAttempt, 0, len(resources))

	for _, res := range resources {
		if res.Kind == harness.ResourceFile {
			attempts = append(attempts, t.cleanupOne(ctx, res))
		}
	}

	for _, res := range resources {
		if res.Kind == harness.ResourceBranch {
			attempts = append(attempts, t.cleanupOne(ctx, res))
		}
	}

	return attempts
}

func (t *ResourceTracker) cleanupOne(ctx context.Context, res harness.Resource) harness.CleanupAttempt {
	var m harness.Measurement

	switch res.Kind {
	case harness.ResourceBranch:
		m = harness.Measure(ctx, "delete branch "+res.Identifier, func(ctx context.Context) error {
			return t.git.DeleteBranch(ctx, res.Identifier)
		})
	case harness.ResourceFile:
		m = harness.Measure(ctx, "delete file "+res.Identifier, func(ctx context.Context) error {
			return t.git.DeleteFile(ctx, res.Branch, res.Identifier, "propbench: remove transient file")
		})
	}

	if !m.Succeeded {
		t.log.WithFields(logrus.Fields{
			"kind":       res.Kind,
			"identifier": res.Identifier,
		}).WithField("error", m.Error).Warn("cleanup failed, resource may already be gone")
	}

	return harness.CleanupAttempt{Resource: res, Measurement: m}
}
