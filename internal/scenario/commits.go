package scenario

import (
	"context"
	"fmt"

	"github.com/probelabs/propbench/internal/config"
	"github.com/probelabs/propbench/internal/harness"
)

// Commits creates commits on a transient branch through the REST API and
// polls for their visibility at the configured delays.
func Commits() Scenario {
	return Scenario{
		Name:       "commit creation and polling",
		ReportFile: config.CommitsReportFile,
		Steps: []Step{
			resolveHeadStep(),
			createBranchStep("create work branch", config.BranchPrefix+"-commit"),
			commitFileStep("commit file to work branch", "transient content for commit visibility polling\n"),
			{
				Name: "poll commit visibility",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					if len(run.Commits) == 0 {
						return skippedStep("no commits created by earlier steps"), nil
					}

					return pollAll(ctx, run, run.Commits, commitVisibleQuery(run)), nil
				},
			},
			{
				Name: "list commits on work branch",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					if len(run.Branches) == 0 {
						return skippedStep("no branches created by earlier steps"), nil
					}

					var shas []string

					m := harness.Measure(ctx, "list commits", func(ctx context.Context) error {
						var err error
						shas, err = run.Git.ListCommits(ctx, run.Branches[0])

						return err
					})

					result := stepFromMeasurements([]harness.Measurement{m})
					if result.Success && !containsAll(shas, run.Commits) {
						result.Success = false
						result.Reason = fmt.Sprintf("created commits missing from listing of %s", run.Branches[0])
					}

					return result, nil
				},
			},
		},
	}
}

func commitVisibleQuery(run *Run) harness.QueryFunc {
	return func(ctx context.Context, sha string) (bool, harness.Measurement) {
		var visible bool

		m := harness.Measure(ctx, "check commit "+sha, func(ctx context.Context) error {
			var err error
			visible, err = run.Git.CommitVisible(ctx, sha)

			return err
		})

		return m.Succeeded && visible, m
	}
}

func containsAll(haystack, needles []string) bool {
	set := make(map[string]bool, len(haystack))
	for _, s := range haystack {
		set[s] = true
	}

	for _, n := range needles {
		if !set[n] {
			return false
		}
	}

	return true
}
