package harness

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Summary provides aggregate statistics across all recorded steps.
type Summary struct {
	TotalSteps                int     `json:"total_steps"`
	SuccessfulSteps           int     `json:"successful_steps"`
	FailedSteps               int     `json:"failed_steps"`
	TotalDurationMillis       int64   `json:"total_duration_ms"`
	AverageStepDurationMillis float64 `json:"average_step_duration_ms"`
}

// Collector accumulates step results and cleanup attempts for the duration
// of one process execution.
type Collector interface {
	RecordStep(result StepResult)
	RecordCleanup(attempt CleanupAttempt)
	Steps() []StepResult
	CleanupAttempts() []CleanupAttempt
	Summary() Summary
}

type collector struct {
	log      logrus.FieldLogger
	mu       sync.RWMutex
	steps    []StepResult
	cleanups []CleanupAttempt
}

// NewCollector creates a new step result collector.
func NewCollector(log logrus.FieldLogger) Collector {
	return &collector{
		log:      log.WithField("component", "collector"),
		steps:    make([]StepResult, 0, 16),
		cleanups: make([]CleanupAttempt, 0, 8),
	}
}

func (c *collector) RecordStep(result StepResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append(c.steps, result)
}

func (c *collector) RecordCleanup(attempt CleanupAttempt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanups = append(c.cleanups, attempt)
}

func (c *collector) Steps() []StepResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Return copy to avoid race conditions
	result := make([]StepResult, len(c.steps))
	copy(result, c.steps)

	return result
}

func (c *collector) CleanupAttempts() []CleanupAttempt {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]CleanupAttempt, len(c.cleanups))
	copy(result, c.cleanups)

	return result
}

func (c *collector) Summary() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		successful int
		failed     int
		totalMs    int64
	)

	for i := range c.steps {
		if c.steps[i].Success {
			successful++
		} else {
			failed++
		}

		for _, m := range c.steps[i].AllMeasurements() {
			totalMs += m.DurationMillis
		}
	}

	summary := Summary{
		TotalSteps:          len(c.steps),
		SuccessfulSteps:     successful,
		FailedSteps:         failed,
		TotalDurationMillis: totalMs,
	}

	if summary.TotalSteps > 0 {
		summary.AverageStepDurationMillis = float64(totalMs) / float64(summary.TotalSteps)
	}

	return summary
}

// Compile-time interface compliance check
var _ Collector = (*collector)(nil)
