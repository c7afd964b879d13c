package harness

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastDelays() []time.Duration {
	return []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond}
}

func instantQuery(found func(call int) bool) QueryFunc {
	call := 0
	return func(ctx context.Context, id string) (bool, Measurement) {
		call++
		m := Measure(ctx, "query "+id, func(_ context.Context) error { return nil })
		return found(call), m
	}
}

func TestPoller_OneAttemptPerDelayInAscendingOrder(t *testing.T) {
	t.Parallel()

	// Delays deliberately out of order; the poller must sort them.
	poller := NewPoller(logrus.New(), []time.Duration{
		5 * time.Millisecond, time.Millisecond, 3 * time.Millisecond,
	})

	attempts, err := poller.Check(context.Background(), "res", instantQuery(func(int) bool { return true }))
	require.NoError(t, err)
	require.Len(t, attempts, 3)

	var prev int64
	for _, attempt := range attempts {
		assert.GreaterOrEqual(t, attempt.DelayMillis, prev, "attempts must be in non-decreasing delay order")
		prev = attempt.DelayMillis
	}
}

func TestPoller_DefaultsWhenNoDelaysGiven(t *testing.T) {
	t.Parallel()

	poller := NewPoller(logrus.New(), nil)
	require.Equal(t, DefaultPollDelays, poller.Delays())
}

func TestPoller_CancellationReturnsPartialAttempts(t *testing.T) {
	t.Parallel()

	poller := NewPoller(logrus.New(), []time.Duration{
		time.Millisecond, 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	attempts, err := poller.Check(ctx, "res", instantQuery(func(int) bool { return true }))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, attempts, 1, "only the attempts completed before cancellation are returned")
}

func TestImmediatelyConsistent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		found    []bool
		expected bool
	}{
		{
			name:     "all found",
			found:    []bool{true, true, true},
			expected: true,
		},
		{
			name:     "first delay allowed to miss",
			found:    []bool{false, true, true},
			expected: true,
		},
		{
			name:     "later miss fails",
			found:    []bool{true, true, false},
			expected: false,
		},
		{
			name:     "no attempts",
			found:    nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := make([]PollAttempt, 0, len(tt.found))
			for i, f := range tt.found {
				attempts = append(attempts, PollAttempt{DelayMillis: int64(i + 1), Found: f})
			}

			assert.Equal(t, tt.expected, ImmediatelyConsistent(attempts))
		})
	}
}

func TestPoller_FirstDelayMissStillConsistent(t *testing.T) {
	t.Parallel()

	// Backend where the resource only becomes visible from the second
	// attempt onward, mirroring a 50ms miss with a 100ms hit.
	poller := NewPoller(logrus.New(), fastDelays())

	attempts, err := poller.Check(context.Background(), "res", instantQuery(func(call int) bool {
		return call > 1
	}))
	require.NoError(t, err)
	require.Len(t, attempts, 3)

	assert.False(t, attempts[0].Found)
	assert.True(t, ImmediatelyConsistent(attempts))
}
