package scenario

import (
	"context"
	"time"

	"github.com/probelabs/propbench/internal/harness"
	"github.com/probelabs/propbench/internal/output"
	"github.com/sirupsen/logrus"
)

// cleanupTimeout bounds the teardown phase so a stuck backend cannot hold
// the process open after a run.
const cleanupTimeout = 2 * time.Minute

// Step is one numbered phase of a scenario. Numbers are assigned from the
// declared order.
type Step struct {
	Name string
	Run  StepFunc
}

// StepFunc executes one step against the run context. A returned error is
// folded into the result unless it is fatal, in which case the remaining
// steps are skipped.
type StepFunc func(ctx context.Context, run *Run) (harness.StepResult, error)

// Scenario is an ordered pipeline of steps plus its fixed report location.
type Scenario struct {
	Name       string
	ReportFile string
	Steps      []Step
}

// Runner executes scenarios, records step results into the shared collector
// and guarantees resource cleanup on both completed and failed paths.
type Runner struct {
	log       logrus.FieldLogger
	collector harness.Collector
	formatter *output.Formatter
	threshold int
}

// NewRunner creates a scenario runner. threshold is the percent-improvement
// bar a scenario must clear to pass.
func NewRunner(log logrus.FieldLogger, collector harness.Collector, formatter *output.Formatter, threshold int) *Runner {
	if threshold <= 0 {
		threshold = harness.PassPercentImprovement
	}

	return &Runner{
		log:       log.WithField("component", "scenario_runner"),
		collector: collector,
		formatter: formatter,
		threshold: threshold,
	}
}

// RunScenario executes all steps in strict declared order. Step failures are
// recorded, not fatal; only a fatal error (absent credentials, malformed
// configuration) aborts the remaining steps. Cleanup of tracked resources
// runs on every path.
func (r *Runner) RunScenario(ctx context.Context, scn Scenario, run *Run) *harness.ScenarioResult {
	log := r.log.WithField("scenario", scn.Name)
	log.WithField("steps", len(scn.Steps)).Info("running scenario")

	r.formatter.PrintPhase(scn.Name)

	result := harness.NewScenarioResult(scn.Name)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		result.Cleanup = run.Tracker.CleanupAll(cleanupCtx)
		for _, attempt := range result.Cleanup {
			r.collector.RecordCleanup(attempt)
		}

		r.finalize(result)
		r.formatter.PrintScenarioVerdict(*result)
	}()

	result.State = harness.StateRunning

	for i, step := range scn.Steps {
		stepResult, err := step.Run(ctx, run)
		stepResult.Number = i + 1
		if stepResult.Name == "" {
			stepResult.Name = step.Name
		}

		result.Steps = append(result.Steps, stepResult)
		r.collector.RecordStep(stepResult)
		r.formatter.PrintStep(stepResult)

		if err != nil && harness.IsFatal(err) {
			log.WithError(err).Error("fatal error, aborting remaining steps")
			result.State = harness.StateFailed
			result.Error = err.Error()

			return result
		}
	}

	result.State = harness.StateCompleted

	return result
}

// finalize computes derived metrics and the pass verdict once all attempts
// for the scenario are complete. Cleanup measurements are excluded: a
// cleanup failure never affects the scenario outcome.
func (r *Runner) finalize(result *harness.ScenarioResult) {
	result.Metrics = harness.ComputeMetrics(result.Measurements())

	result.Consistent = true
	stepsOK := true

	for i := range result.Steps {
		if result.Steps[i].Polled && !result.Steps[i].Consistent {
			result.Consistent = false
		}

		if !result.Steps[i].Success {
			stepsOK = false
		}
	}

	result.Passed = result.State == harness.StateCompleted && stepsOK &&
		harness.Evaluate(result.Metrics, result.Consistent, r.threshold)
}
