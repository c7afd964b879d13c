// Package harness provides the timing, polling and result primitives shared
// by all evaluation scenarios.
package harness

import (
	"context"
	"time"
)

// Measurement records the outcome and wall-clock duration of a single timed
// operation. A measurement is finalized when the operation settles and is
// immutable afterwards.
type Measurement struct {
	Operation      string    `json:"operation"`
	StartedAt      time.Time `json:"started_at"`
	DurationMillis int64     `json:"duration_ms"`
	Succeeded      bool      `json:"succeeded"`
	Error          string    `json:"error,omitempty"`
}

// Measure executes fn exactly once and returns a finalized Measurement.
// Duration is taken from a monotonic clock reading immediately before
// invocation to immediately after settlement. A failing fn is captured into
// the measurement rather than propagated; callers decide whether a failed
// measurement aborts their scenario.
func Measure(ctx context.Context, operation string, fn func(context.Context) error) Measurement {
	m := Measurement{
		Operation: operation,
		StartedAt: time.Now(),
	}

	start := time.Now()
	err := fn(ctx)
	m.DurationMillis = time.Since(start).Milliseconds()

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "operation failed"
		}
		m.Error = msg

		return m
	}

	m.Succeeded = true

	return m
}
