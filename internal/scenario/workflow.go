package scenario

import (
	"context"

	"github.com/probelabs/propbench/internal/config"
	"github.com/probelabs/propbench/internal/harness"
)

// Workflow chains the full editing sequence end to end: branch, commit,
// visibility polling, then reads through both backends.
func Workflow(filePath string) Scenario {
	return Scenario{
		Name:       "end-to-end workflow",
		ReportFile: config.WorkflowReportFile,
		Steps: []Step{
			resolveHeadStep(),
			createBranchStep("create workflow branch", config.BranchPrefix+"-flow"),
			commitFileStep("commit file to workflow branch", "transient content for the end-to-end workflow\n"),
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
				Name: "read committed file through the rest api",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					if len(run.Files) == 0 {
						return skippedStep("no files committed by earlier steps"), nil
					}

					m := harness.Measure(ctx, "rest content read", func(ctx context.Context) error {
						_, err := run.Git.FileContent(ctx, run.Files[0], run.Branches[0])

						return err
					})

					return stepFromMeasurements([]harness.Measurement{m}), nil
				},
			},
			{
				Name: "read published content through the cms layer",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					m := harness.Measure(ctx, "cms content read", func(ctx context.Context) error {
						_, err := run.Content.FetchContent(ctx, filePath)

						return err
					})

					return stepFromMeasurements([]harness.Measurement{m}), nil
				},
			},
		},
	}
}
