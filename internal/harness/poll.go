package harness

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPollDelays is the delay schedule shared by all scenarios unless a
// plan file overrides it.
var DefaultPollDelays = []time.Duration{
	50 * time.Millisecond,
	100 * time.Millisecond,
	500 * time.Millisecond,
	1 * time.Second,
	2 * time.Second,
}

// QueryFunc asks a backend whether the expected state for identifier is
// observable, returning the finalized measurement of the query itself.
type QueryFunc func(ctx context.Context, identifier string) (found bool, m Measurement)

// PollAttempt is one delayed query against a backend for a just-created (or
// just-deleted) resource.
type PollAttempt struct {
	DelayMillis int64       `json:"delay_ms"`
	Found       bool        `json:"found"`
	Measurement Measurement `json:"measurement"`
}

// Poller issues one query per configured delay, strictly in ascending delay
// order. Polling is sequential, never parallel: the delays model time since
// creation, and overlapping queries would invalidate that.
type Poller struct {
	delays []time.Duration
	log    logrus.FieldLogger
}

// NewPoller creates a poller for the given delay schedule. A nil or empty
// schedule falls back to DefaultPollDelays.
func NewPoller(log logrus.FieldLogger, delays []time.Duration) *Poller {
	if len(delays) == 0 {
		delays = DefaultPollDelays
	}

	sorted := make([]time.Duration, len(delays))
	copy(sorted, delays)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return &Poller{
		delays: sorted,
		log:    log.WithField("component", "poller"),
	}
}

// Delays returns the poller's schedule in ascending order.
func (p *Poller) Delays() []time.Duration {
	out := make([]time.Duration, len(p.delays))
	copy(out, p.delays)

	return out
}

// Check suspends for each delay in turn, then issues exactly one query,
// producing one PollAttempt per delay. On context cancellation the attempts
// gathered so far are returned along with the context error.
func (p *Poller) Check(ctx context.Context, identifier string, query QueryFunc) ([]PollAttempt, error) {
	attempts := make([]PollAttempt, 0, len(p.delays))

	for _, delay := range p.delays {
		timer := time.NewTimer(delay)

		select {
		case <-ctx.Done():
			timer.Stop()
			return attempts, ctx.Err()
		case <-timer.C:
		}

		found, m := query(ctx, identifier)
		attempts = append(attempts, PollAttempt{
			DelayMillis: delay.Milliseconds(),
			Found:       found,
			Measurement: m,
		})

		p.log.WithFields(logrus.Fields{
			"identifier": identifier,
			"delay_ms":   delay.Milliseconds(),
			"found":      found,
		}).Debug("poll attempt")
	}

	return attempts, nil
}

// ImmediatelyConsistent reports whether every attempt after the first found
// the resource. The very first (shortest) delay is allowed to miss, since
// near-zero-delay visibility is not the property under test.
func ImmediatelyConsistent(attempts []PollAttempt) bool {
	if len(attempts) == 0 {
		return false
	}

	for _, attempt := range attempts[1:] {
		if !attempt.Found {
			return false
		}
	}

	return true
}
