package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/titan-hub/internal/logger"
)

var (
	// ErrUnknownAction is returned for a step whose action is not supported.
	ErrUnknownAction = errors.New("unknown scenario action")
	// errActionMissing is returned for a step without an action key.
	errActionMissing = errors.New("step has no action")
	// errNoSteps is returned for a scenario without steps.
	errNoSteps = errors.New("scenario has no steps")
)

// Scenario is an ordered list of steps.
type Scenario struct {
	// Name labels the scenario in diagnostics.
	Name string
	// Steps run in order.
	Steps []Step
}

// file is the YAML layout of a scenario file.
type file struct {
	// Name labels the scenario.
	Name string `yaml:"name"`
	// Steps holds one loosely typed map per step, keyed by "action".
	Steps []map[string]any `yaml:"steps"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	return Parse(content)
}

// Parse decodes a YAML scenario.
func Parse(content []byte) (*Scenario, error) {
	var raw file
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal scenario: %w", err)
	}

	if len(raw.Steps) == 0 {
		return nil, errNoSteps
	}

	result := &Scenario{
		Name:  raw.Name,
		Steps: make([]Step, 0, len(raw.Steps)),
	}

	for i, fields := range raw.Steps {
		step, err := decodeStep(fields)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		result.Steps = append(result.Steps, step)
	}

	return result, nil
}

// decodeStep builds a typed step from its YAML fields.
func decodeStep(fields map[string]any) (Step, error) {
	action, ok := fields["action"].(string)
	if !ok || action == "" {
		return nil, errActionMissing
	}

	step, err := newStep(Action(action))
	if err != nil {
		return nil, err
	}

	params := make(map[string]any, len(fields)-1)

	for key, value := range fields {
		if key != "action" {
			params[key] = value
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           step,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err = decoder.Decode(params); err != nil {
		return nil, fmt.Errorf("decode %s: %w", action, err)
	}

	return step, nil
}

// Run executes the scenario steps in order and stops at the first step error.
func Run(ctx context.Context, env *Env, s *Scenario) error {
	ctx = logger.WithKV(logger.WithName(ctx, "scenario"), "scenario", s.Name)

	logger.InfoKV(ctx, "Scenario started", "steps", len(s.Steps))

	for i, step := range s.Steps {
		logger.DebugKV(ctx, "Scenario step", "step", i+1, "action", string(step.Action()))

		if err := step.Apply(ctx, env); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Action(), err)
		}
	}

	logger.Info(ctx, "Scenario completed")

	return nil
}

// Demo returns the built-in walkthrough of the system.
func Demo() *Scenario {
	return &Scenario{
		Name: "demo",
		Steps: []Step{
			&Note{Text: "INITIAL STATE"},
			&Report{},
			&Note{Text: "SETTING MODE"},
			&SetMode{Mode: "Away"},
			&Note{Text: "SCENARIO 1: Normal Check"},
			&Poll{},
			&Note{Text: "SCENARIO 2: Intruder breaks open the front door..."},
			&SetReading{Index: 0, Value: 1},
			&Poll{},
			&Note{Text: "SCENARIO 3: Door closed, but motion detected..."},
			&SetReading{Index: 0, Value: 0},
			&SetReading{Index: 1, Value: 1},
			&Poll{},
			&Note{Text: "SCENARIO 4: Kitchen catches fire..."},
			&SetReading{Index: 2, Value: 60},
			&Poll{},
			&Note{Text: "FINAL STATE"},
			&Report{},
			&Note{Text: "SCENARIO 5: Switching to Day mode..."},
			&SetMode{Mode: "Day"},
			&SetReading{Index: 1, Value: 1},
			&Poll{},
		},
	}
}
