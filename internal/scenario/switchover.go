package scenario

import (
	"context"
	"strings"

	"github.com/probelabs/propbench/internal/config"
	"github.com/probelabs/propbench/internal/harness"
)

// Switchover exercises the branch-switch workaround: changed content is
// committed to a transient branch, read back through the REST API at each
// delay, and the branch is then deleted and its absence verified.
func Switchover() Scenario {
	marker := UniqueName("switchover-marker")

	return Scenario{
		Name:       "branch switch workaround",
		ReportFile: config.SwitchoverReportFile,
		Steps: []Step{
			resolveHeadStep(),
			createBranchStep("create switch branch", config.BranchPrefix+"-switch"),
			commitFileStep("commit changed content to switch branch", marker+"\n"),
			{
				Name: "read changed content at each delay",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					if len(run.Files) == 0 {
						return skippedStep("no files committed by earlier steps"), nil
					}

					branch := run.Branches[0]
					query := func(ctx context.Context, path string) (bool, harness.Measurement) {
						var content string

						m := harness.Measure(ctx, "read "+path+" on "+branch, func(ctx context.Context) error {
							var err error
							content, err = run.Git.FileContent(ctx, path, branch)

							return err
						})

						return m.Succeeded && strings.Contains(content, marker), m
					}

					return pollAll(ctx, run, run.Files, query), nil
				},
			},
			{
				Name: "delete switch branch",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					if len(run.Branches) == 0 {
						return skippedStep("no branches created by earlier steps"), nil
					}

					m := harness.Measure(ctx, "delete branch "+run.Branches[0], func(ctx context.Context) error {
						return run.Git.DeleteBranch(ctx, run.Branches[0])
					})

					return stepFromMeasurements([]harness.Measurement{m}), nil
				},
			},
			{
				Name: "poll branch absence",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					if len(run.Branches) == 0 {
						return skippedStep("no branches created by earlier steps"), nil
					}

					query := func(ctx context.Context, name string) (bool, harness.Measurement) {
						var exists bool

						m := harness.Measure(ctx, "check branch "+name, func(ctx context.Context) error {
							var err error
							exists, err = run.Git.BranchExists(ctx, name)

							return err
						})

						return m.Succeeded && !exists, m
					}

					return pollAll(ctx, run, run.Branches[:1], query), nil
				},
			},
		},
	}
}
