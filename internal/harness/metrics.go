package harness

import "math"

const (
	// BaselineDelayMillis is the five-minute propagation delay under test.
	// It is a configuration constant used as a comparison denominator,
	// never a measured value.
	BaselineDelayMillis = 300000

	// PassPercentImprovement is the threshold a scenario's improvement must
	// exceed for the scenario to pass.
	PassPercentImprovement = 90
)

// DerivedMetrics are the aggregate statistics computed for a scenario once
// all of its steps complete.
type DerivedMetrics struct {
	AverageDurationMillis float64 `json:"average_duration_ms"`
	SuccessRate           float64 `json:"success_rate"`
	PercentImprovement    int     `json:"percent_improvement"`
}

// PercentImprovement computes the rounded percentage improvement of the
// measured average over the fixed baseline delay.
func PercentImprovement(averageDurationMillis float64) int {
	improvement := (BaselineDelayMillis - averageDurationMillis) / BaselineDelayMillis * 100

	return int(math.Round(improvement))
}

// ComputeMetrics derives aggregate statistics from all measurements taken
// during a scenario. With no measurements the zero value is returned.
func ComputeMetrics(measurements []Measurement) DerivedMetrics {
	if len(measurements) == 0 {
		return DerivedMetrics{}
	}

	var (
		totalMillis int64
		succeeded   int
	)

	for _, m := range measurements {
		totalMillis += m.DurationMillis
		if m.Succeeded {
			succeeded++
		}
	}

	average := float64(totalMillis) / float64(len(measurements))

	return DerivedMetrics{
		AverageDurationMillis: average,
		SuccessRate:           float64(succeeded) / float64(len(measurements)) * 100,
		PercentImprovement:    PercentImprovement(average),
	}
}

// Evaluate decides the scenario pass verdict: the improvement over the
// baseline must exceed threshold and every consistency check across all
// steps must have held.
func Evaluate(metrics DerivedMetrics, consistent bool, threshold int) bool {
	return metrics.PercentImprovement > threshold && consistent
}
