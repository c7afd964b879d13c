package scenario

import (
	"context"

	"github.com/probelabs/propbench/internal/config"
	"github.com/probelabs/propbench/internal/harness"
	"golang.org/x/sync/errgroup"
)

// Branches creates transient branches through the REST API and polls for
// their visibility at the configured delays. The batch step is the one
// place parallelism is intentional: both creations are issued concurrently
// and joined before polling, which stays strictly sequential.
func Branches() Scenario {
	return Scenario{
		Name:       "branch creation and polling",
		ReportFile: config.BranchesReportFile,
		Steps: []Step{
			resolveHeadStep(),
			createBranchStep("create transient branch", config.BranchPrefix+"-branch"),
			{
				Name: "poll branch visibility",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					if len(run.Branches) == 0 {
						return skippedStep("no branches created by earlier steps"), nil
					}

					return pollAll(ctx, run, run.Branches, branchVisibleQuery(run)), nil
				},
			},
			{
				Name: "create two branches concurrently",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					if err := run.RequireCredentials(); err != nil {
						return skippedStep(err.Error()), err
					}

					if run.BaseSHA == "" {
						return skippedStep("no base commit resolved by earlier steps"), nil
					}

					names := []string{
						UniqueName(config.BranchPrefix + "-batch-a"),
						UniqueName(config.BranchPrefix + "-batch-b"),
					}
					measurements := make([]harness.Measurement, len(names))

					g, gctx := errgroup.WithContext(ctx)
					for i, name := range names {
						g.Go(func() error {
							measurements[i] = harness.Measure(gctx, "create branch "+name, func(ctx context.Context) error {
								return run.Git.CreateBranch(ctx, name, run.BaseSHA)
							})

							return nil
						})
					}

					// Creation failures are captured in the measurements, so
					// the only join error would be a canceled context.
					_ = g.Wait()

					for i, name := range names {
						if measurements[i].Succeeded {
							run.Tracker.TrackBranch(name)
							run.BatchBranches = append(run.BatchBranches, name)
						}
					}

					return stepFromMeasurements(measurements), nil
				},
			},
			{
				Name: "poll batch branches sequentially",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					if len(run.BatchBranches) == 0 {
						return skippedStep("no batch branches created by earlier steps"), nil
					}

					return pollAll(ctx, run, run.BatchBranches, branchVisibleQuery(run)), nil
				},
			},
			{
				Name: "list branches",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					m := harness.Measure(ctx, "list branches", func(ctx context.Context) error {
						_, err := run.Git.ListBranches(ctx)

						return err
					})

					return stepFromMeasurements([]harness.Measurement{m}), nil
				},
			},
		},
	}
}

func branchVisibleQuery(run *Run) harness.QueryFunc {
	return func(ctx context.Context, name string) (bool, harness.Measurement) {
		var exists bool

		m := harness.Measure(ctx, "check branch "+name, func(ctx context.Context) error {
			var err error
			exists, err = run.Git.BranchExists(ctx, name)

			return err
		})

		return m.Succeeded && exists, m
	}
}
