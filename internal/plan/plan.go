// Package plan provides optional per-run overrides for delays, iterations
// and the pass threshold, loaded from a YAML plan file.
package plan

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/probelabs/propbench/internal/harness"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	errNegativeDelay      = errors.New("delays must be positive")
	errNegativeIterations = errors.New("iterations must be positive")
	errThresholdRange     = errors.New("pass_percent_improvement must be between 1 and 100")
)

// ScenarioPlan overrides settings for a single scenario.
type ScenarioPlan struct {
	Iterations   int     `yaml:"iterations,omitempty"`
	DelaysMillis []int64 `yaml:"delays_ms,omitempty"`
}

// Plan holds run-wide defaults plus per-scenario overrides.
type Plan struct {
	PassPercentImprovement int                     `yaml:"pass_percent_improvement,omitempty"`
	Iterations             int                     `yaml:"iterations,omitempty"`
	DelaysMillis           []int64                 `yaml:"delays_ms,omitempty"`
	Scenarios              map[string]ScenarioPlan `yaml:"scenarios,omitempty"`
}

// Default returns the plan used when no file is given.
func Default() *Plan {
	return &Plan{
		PassPercentImprovement: harness.PassPercentImprovement,
		Iterations:             5,
	}
}

// Load reads and validates a plan file. Unset fields keep their defaults.
func Load(log logrus.FieldLogger, path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file %s: %w", path, err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing plan file %s: %w", path, err)
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("validating plan file %s: %w", path, err)
	}

	log.WithFields(logrus.Fields{
		"path":      path,
		"scenarios": len(p.Scenarios),
	}).Debug("loaded plan file")

	return p, nil
}

func (p *Plan) validate() error {
	if p.PassPercentImprovement < 1 || p.PassPercentImprovement > 100 {
		return errThresholdRange
	}

	if p.Iterations <= 0 {
		return errNegativeIterations
	}

	if err := validateDelays(p.DelaysMillis); err != nil {
		return err
	}

	for name, sp := range p.Scenarios {
		if sp.Iterations < 0 {
			return fmt.Errorf("scenario %s: %w", name, errNegativeIterations)
		}

		if err := validateDelays(sp.DelaysMillis); err != nil {
			return fmt.Errorf("scenario %s: %w", name, err)
		}
	}

	return nil
}

func validateDelays(delays []int64) error {
	for _, d := range delays {
		if d <= 0 {
			return errNegativeDelay
		}
	}

	return nil
}

// DelaysFor returns the poll delay schedule for a scenario, falling back to
// the run-wide schedule and then to the harness default.
func (p *Plan) DelaysFor(name string) []time.Duration {
	millis := p.DelaysMillis
	if sp, ok := p.Scenarios[name]; ok && len(sp.DelaysMillis) > 0 {
		millis = sp.DelaysMillis
	}

	if len(millis) == 0 {
		return harness.DefaultPollDelays
	}

	delays := make([]time.Duration, 0, len(millis))
	for _, ms := range millis {
		delays = append(delays, time.Duration(ms)*time.Millisecond)
	}

	return delays
}

// IterationsFor returns the read iteration count for a scenario.
func (p *Plan) IterationsFor(name string) int {
	if sp, ok := p.Scenarios[name]; ok && sp.Iterations > 0 {
		return sp.Iterations
	}

	return p.Iterations
}
