package scenario

import (
	"context"

	"github.com/probelabs/propbench/internal/config"
	"github.com/probelabs/propbench/internal/harness"
)

// stepFromMeasurements builds a step result that succeeds only when every
// measurement succeeded. The first failure becomes the reason.
func stepFromMeasurements(measurements []harness.Measurement) harness.StepResult {
	result := harness.StepResult{
		Measurements: measurements,
		Success:      len(measurements) > 0,
	}

	for _, m := range measurements {
		if !m.Succeeded {
			result.Success = false
			if result.Reason == "" {
				result.Reason = m.Error
			}
		}
	}

	if len(measurements) == 0 {
		result.Reason = "no operations attempted"
	}

	return result
}

// skippedStep records a step that had no valid input: zero attempted
// operations, success=false with a reason. The scenario continues.
func skippedStep(reason string) harness.StepResult {
	return harness.StepResult{
		Success: false,
		Reason:  reason,
	}
}

// pollAll runs the delayed consistency check for each identifier in order.
// Polling across identifiers stays sequential for the same reason polling
// within one identifier does.
func pollAll(ctx context.Context, run *Run, identifiers []string, query harness.QueryFunc) harness.StepResult {
	result := harness.StepResult{
		Polled:     true,
		Consistent: true,
	}

	for _, id := range identifiers {
		attempts, err := run.Poller.Check(ctx, id, query)
		result.PollAttempts = append(result.PollAttempts, attempts...)

		if !harness.ImmediatelyConsistent(attempts) {
			result.Consistent = false
		}

		if err != nil {
			result.Consistent = false
			if result.Reason == "" {
				result.Reason = err.Error()
			}

			break
		}
	}

	result.Success = result.Consistent

	return result
}

// resolveHeadStep resolves the default branch head and carries the SHA
// forward as the base for branch creation.
func resolveHeadStep() Step {
	return Step{
		Name: "resolve default branch head",
		Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
			var sha string

			m := harness.Measure(ctx, "get default branch ref", func(ctx context.Context) error {
				var err error
				sha, err = run.Git.BranchHead(ctx, run.Config.DefaultBranch)

				return err
			})

			if m.Succeeded {
				run.BaseSHA = sha
			}

			return stepFromMeasurements([]harness.Measurement{m}), nil
		},
	}
}

// createBranchStep creates one uniquely named transient branch from the
// carried base SHA and tracks it for cleanup.
func createBranchStep(stepName, prefix string) Step {
	return Step{
		Name: stepName,
		Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
			if err := run.RequireCredentials(); err != nil {
				return skippedStep(err.Error()), err
			}

			if run.BaseSHA == "" {
				return skippedStep("no base commit resolved by earlier steps"), nil
			}

			name := UniqueName(prefix)
			m := harness.Measure(ctx, "create branch "+name, func(ctx context.Context) error {
				return run.Git.CreateBranch(ctx, name, run.BaseSHA)
			})

			if m.Succeeded {
				run.Tracker.TrackBranch(name)
				run.Branches = append(run.Branches, name)
			}

			return stepFromMeasurements([]harness.Measurement{m}), nil
		},
	}
}

// commitFileStep commits a uniquely named file with content to the first
// carried branch and tracks both the file and the resulting commit SHA.
func commitFileStep(stepName, content string) Step {
	return Step{
		Name: stepName,
		Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
			if len(run.Branches) == 0 {
				return skippedStep("no branches created by earlier steps"), nil
			}

			var (
				branch = run.Branches[0]
				path   = config.FileDir + "/" + UniqueName("note") + ".md"
				sha    string
			)

			m := harness.Measure(ctx, "commit file "+path, func(ctx context.Context) error {
				var err error
				sha, err = run.Git.CommitFile(ctx, branch, path, content, "propbench: add transient file")

				return err
			})

			if m.Succeeded {
				run.Tracker.TrackFile(branch, path)
				run.Files = append(run.Files, path)
				run.Commits = append(run.Commits, sha)
			}

			return stepFromMeasurements([]harness.Measurement{m}), nil
		},
	}
}
