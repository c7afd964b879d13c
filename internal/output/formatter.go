// Package output provides clean, human-friendly console output for runs.
package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/probelabs/propbench/internal/harness"
	"github.com/probelabs/propbench/internal/harness/report"
)

// Formatter writes colored progress and summary output for scenario runs.
type Formatter struct {
	writer  io.Writer
	verbose bool

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	blue   *color.Color
	gray   *color.Color
}

// NewFormatter creates a new output formatter.
func NewFormatter(writer io.Writer, verbose bool) *Formatter {
	return &Formatter{
		writer:  writer,
		verbose: verbose,
		green:   color.New(color.FgGreen),
		red:     color.New(color.FgRed),
		yellow:  color.New(color.FgYellow),
		blue:    color.New(color.FgBlue),
		gray:    color.New(color.FgHiBlack),
	}
}

// PrintPhase prints a phase separator.
func (f *Formatter) PrintPhase(phase string) {
	f.blue.Fprintf(f.writer, "\n▸ %s\n", phase)
}

// PrintSuccess prints a green message.
func (f *Formatter) PrintSuccess(message string) {
	f.green.Fprintf(f.writer, "%s\n", message)
}

// PrintWarning prints a yellow message.
func (f *Formatter) PrintWarning(message string) {
	f.yellow.Fprintf(f.writer, "%s\n", message)
}

// PrintError prints a red message with optional error details.
func (f *Formatter) PrintError(message string, err error) {
	f.red.Fprintf(f.writer, "%s", message)
	if err != nil {
		f.red.Fprintf(f.writer, ": %v", err)
	}
	fmt.Fprintf(f.writer, "\n")
}

// PrintStep prints the inline outcome marker for one step.
func (f *Formatter) PrintStep(step harness.StepResult) {
	label := fmt.Sprintf("%d. %s", step.Number, step.Name)

	if step.Success {
		f.green.Fprintf(f.writer, "  ✓ %s\n", label)
	} else {
		f.red.Fprintf(f.writer, "  ✗ %s", label)
		if step.Reason != "" {
			f.red.Fprintf(f.writer, " (%s)", step.Reason)
		}
		fmt.Fprintf(f.writer, "\n")
	}

	if !f.verbose {
		return
	}

	for _, m := range step.Measurements {
		f.printMeasurement(m)
	}

	for _, attempt := range step.PollAttempts {
		marker := "miss"
		if attempt.Found {
			marker = "found"
		}
		f.gray.Fprintf(f.writer, "      poll +%dms: %s (%s)\n",
			attempt.DelayMillis, marker, formatDuration(time.Duration(attempt.Measurement.DurationMillis)*time.Millisecond))
	}
}

func (f *Formatter) printMeasurement(m harness.Measurement) {
	d := formatDuration(time.Duration(m.DurationMillis) * time.Millisecond)
	if m.Succeeded {
		f.gray.Fprintf(f.writer, "      %s (%s)\n", m.Operation, d)
	} else {
		f.gray.Fprintf(f.writer, "      %s (%s): %s\n", m.Operation, d, m.Error)
	}
}

// PrintScenarioVerdict prints the one-line verdict for a finished scenario.
func (f *Formatter) PrintScenarioVerdict(result harness.ScenarioResult) {
	if result.Passed {
		f.green.Fprintf(f.writer, "✓ %s passed (%d%% improvement)\n",
			result.Name, result.Metrics.PercentImprovement)
		return
	}

	if result.State == harness.StateFailed {
		f.red.Fprintf(f.writer, "✗ %s aborted: %s\n", result.Name, result.Error)
		return
	}

	f.red.Fprintf(f.writer, "✗ %s failed (%d%% improvement, consistent=%t)\n",
		result.Name, result.Metrics.PercentImprovement, result.Consistent)
}

// PrintSummary renders the report summary table and recommendation.
func (f *Formatter) PrintSummary(doc *report.Document) {
	f.PrintPhase("Summary")

	rows := make([][]string, 0, len(doc.Scenarios))
	for i := range doc.Scenarios {
		s := &doc.Scenarios[i]

		verdict := "✗ FAIL"
		if s.Passed {
			verdict = "✓ PASS"
		}

		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(len(s.Steps)),
			fmt.Sprintf("%.1fms", s.Metrics.AverageDurationMillis),
			fmt.Sprintf("%d%%", s.Metrics.PercentImprovement),
			strconv.FormatBool(s.Consistent),
			verdict,
		})
	}

	RenderTable(f.writer, []string{"Scenario", "Steps", "Avg Duration", "Improvement", "Consistent", "Result"}, rows)

	summary := doc.Summary
	fmt.Fprintf(f.writer, "\nSteps: %d total, %d passed, %d failed\n",
		summary.TotalSteps, summary.SuccessfulSteps, summary.FailedSteps)
	fmt.Fprintf(f.writer, "Total measured time: %s (avg %.1fms per step)\n",
		formatDuration(time.Duration(summary.TotalDurationMillis)*time.Millisecond),
		summary.AverageStepDurationMillis)

	if summary.AllPassed {
		f.green.Fprintf(f.writer, "\n%s\n", summary.Recommendation)
	} else {
		f.yellow.Fprintf(f.writer, "\n%s\n", summary.Recommendation)
	}
}

// formatDuration formats duration in human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}
