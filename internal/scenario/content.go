package scenario

import (
	"context"

	"github.com/probelabs/propbench/internal/config"
	"github.com/probelabs/propbench/internal/harness"
)

// documentQuery is the structured query issued against the CMS query
// endpoint to exercise it alongside the plain content fetch.
const documentQuery = `query Document($relativePath: String!) {
  document(relativePath: $relativePath) {
    id
  }
}`

// Content compares timed reads of the same file through the caching content
// layer and through the REST API.
func Content(filePath string, iterations int) Scenario {
	if iterations <= 0 {
		iterations = 5
	}

	return Scenario{
		Name:       "content read comparison",
		ReportFile: config.ContentReportFile,
		Steps: []Step{
			{
				Name: "read content through the cms layer",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					measurements := make([]harness.Measurement, 0, iterations)
					for i := 0; i < iterations; i++ {
						measurements = append(measurements, harness.Measure(ctx, "cms content read", func(ctx context.Context) error {
							_, err := run.Content.FetchContent(ctx, filePath)

							return err
						}))
					}

					return stepFromMeasurements(measurements), nil
				},
			},
			{
				Name: "read content through the rest api",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					measurements := make([]harness.Measurement, 0, iterations)
					for i := 0; i < iterations; i++ {
						measurements = append(measurements, harness.Measure(ctx, "rest content read", func(ctx context.Context) error {
							_, err := run.Git.FileContent(ctx, filePath, run.Config.DefaultBranch)

							return err
						}))
					}

					return stepFromMeasurements(measurements), nil
				},
			},
			{
				Name: "query document metadata through the cms api",
				Run: func(ctx context.Context, run *Run) (harness.StepResult, error) {
					var out struct {
						Document struct {
							ID string `json:"id"`
						} `json:"document"`
					}

					m := harness.Measure(ctx, "cms document query", func(ctx context.Context) error {
						return run.Content.Query(ctx, documentQuery,
							map[string]interface{}{"relativePath": filePath}, &out)
					})

					return stepFromMeasurements([]harness.Measurement{m}), nil
				},
			},
		},
	}
}
