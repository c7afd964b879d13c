package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/probelabs/propbench/internal/backend/cms"
	"github.com/probelabs/propbench/internal/backend/githubapi"
	"github.com/probelabs/propbench/internal/config"
	"github.com/probelabs/propbench/internal/harness"
	"github.com/probelabs/propbench/internal/harness/report"
	"github.com/probelabs/propbench/internal/output"
	"github.com/probelabs/propbench/internal/plan"
	"github.com/probelabs/propbench/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	runVerbose    bool
	runStrict     bool
	runTimeout    time.Duration
	runIterations int
	runDelays     []time.Duration
	runReportDir  string
	runPlanFile   string
	runFile       string

	errScenariosFailed = errors.New("one or more scenarios failed")
)

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run an evaluation scenario",
	Long: `Run one evaluation scenario, or all of them.

Scenarios:
  content     timed reads of the same file through both backends
  commits     commit creation and delayed visibility polling
  branches    branch creation (including a concurrent batch) and polling
  switchover  the branch-switch workaround with deletion verification
  workflow    the full branch/commit/read sequence end to end
  all         every scenario in the order above

Each scenario writes a JSON report to a fixed file under the report
directory and prints a summary. The process exits 0 even when scenarios
fail; pass --strict to map failures to a nonzero exit code.

Examples:
  propbench run content
  propbench run branches --delays 50ms,100ms,500ms
  propbench run all --strict`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	RunE:          runScenariosCmd,
}

func init() {
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "Verbose output")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "Exit nonzero when any scenario fails")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "Overall run timeout")
	runCmd.Flags().IntVar(&runIterations, "iterations", 0, "Read iterations per backend (0 = plan default)")
	runCmd.Flags().DurationSliceVar(&runDelays, "delays", nil, "Poll delay schedule (overrides plan)")
	runCmd.Flags().StringVar(&runReportDir, "report-dir", "", "Report directory (default from config)")
	runCmd.Flags().StringVar(&runPlanFile, "plan", "", "Optional YAML plan file")
	runCmd.Flags().StringVar(&runFile, "file", "index.md", "Repository file read by content scenarios")
	rootCmd.AddCommand(runCmd)
}

func runScenariosCmd(_ *cobra.Command, args []string) error {
	names := []string{args[0]}
	if args[0] == "all" {
		names = scenario.Names
	} else if _, err := scenario.ByName(args[0], runFile, 1); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	return executeScenarios(ctx, names)
}

func executeScenarios(ctx context.Context, names []string) error {
	log := newLogger(runVerbose)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	formatter := output.NewFormatter(os.Stdout, runVerbose)

	if missing := cfg.MissingFields(); len(missing) > 0 {
		formatter.PrintWarning(fmt.Sprintf("missing configuration: %s (affected steps will record failures)",
			strings.Join(missing, ", ")))
	}

	p := plan.Default()
	if runPlanFile != "" {
		if p, err = plan.Load(log, runPlanFile); err != nil {
			return err
		}
	}
	if runIterations > 0 {
		p.Iterations = runIterations
	}

	reportDir := cfg.ReportDir
	if runReportDir != "" {
		reportDir = runReportDir
	}

	var (
		git     = githubapi.New(log, cfg)
		content = cms.New(log, cfg.CMSQueryURL, cfg.CMSContentURL, cfg.RequestTimeout)
		writer  = report.NewWriter(log, reportDir)
		env     = report.DescribeEnvironment(cfg.RunMode)
	)

	anyFailed := false

	for _, name := range names {
		scn, err := scenario.ByName(name, runFile, p.IterationsFor(name))
		if err != nil {
			return err
		}

		delays := p.DelaysFor(name)
		if len(runDelays) > 0 {
			delays = runDelays
		}

		var (
			collector = harness.NewCollector(log)
			runner    = scenario.NewRunner(log, collector, formatter, p.PassPercentImprovement)
			poller    = harness.NewPoller(log, delays)
			run       = scenario.NewRun(cfg, git, content, poller, log)
		)

		result := runner.RunScenario(ctx, scn, run)

		doc := report.Build(env, collector.Summary(), *result)
		if path := writer.Write(doc, scn.ReportFile); path != "" {
			log.WithField("path", path).Info("report written")
		}
		formatter.PrintSummary(doc)

		if !result.Passed {
			anyFailed = true
		}
	}

	if runStrict && anyFailed {
		return errScenariosFailed
	}

	return nil
}
