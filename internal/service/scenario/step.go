package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/titan-hub/internal/domain/arming"
	"github.com/oshokin/titan-hub/internal/service/hub"
)

// Action names a step kind in scenario files.
type Action string

// Supported actions.
const (
	ActionNote       Action = "note"
	ActionSetMode    Action = "set-mode"
	ActionSetReading Action = "set-reading"
	ActionPoll       Action = "poll"
	ActionReport     Action = "report"
)

// Target is the hub surface a scenario drives.
type Target interface {
	SetMode(ctx context.Context, requested string, actor *arming.Actor) error
	SimulateInput(ctx context.Context, index, value int) error
	PollAll(ctx context.Context) *hub.PollResult
	Report(ctx context.Context) hub.Summary
}

// Printer shows step notes.
type Printer interface {
	Heading(text string)
}

// Env is what a step runs against.
type Env struct {
	// Target receives mode changes, readings and polls.
	Target Target
	// Printer prints notes.
	Printer Printer
	// Actor is recorded with mode changes.
	Actor *arming.Actor
}

// Step is one scripted action.
type Step interface {
	// Action returns the step kind.
	Action() Action
	// Apply runs the step.
	Apply(ctx context.Context, env *Env) error
}

// Note prints a bracketed heading.
type Note struct {
	// Text is printed between brackets.
	Text string `mapstructure:"text"`
}

// Action implements Step.
func (Note) Action() Action { return ActionNote }

// Apply implements Step.
func (n Note) Apply(_ context.Context, env *Env) error {
	env.Printer.Heading("[" + n.Text + "]")

	return nil
}

// SetMode requests a mode change. An invalid mode is reported by the hub and does not stop the scenario.
type SetMode struct {
	// Mode is the requested mode name.
	Mode string `mapstructure:"mode"`
}

// Action implements Step.
func (SetMode) Action() Action { return ActionSetMode }

// Apply implements Step.
func (s SetMode) Apply(ctx context.Context, env *Env) error {
	err := env.Target.SetMode(ctx, s.Mode, env.Actor)
	if err != nil && !errors.Is(err, arming.ErrInvalidMode) {
		return err
	}

	return nil
}

// SetReading simulates sensor input.
type SetReading struct {
	// Index is the registry index of the sensor.
	Index int `mapstructure:"index"`
	// Value is the new reading.
	Value int `mapstructure:"value"`
}

// Action implements Step.
func (SetReading) Action() Action { return ActionSetReading }

// Apply implements Step.
func (s SetReading) Apply(ctx context.Context, env *Env) error {
	return env.Target.SimulateInput(ctx, s.Index, s.Value)
}

// Poll runs one poll cycle.
type Poll struct{}

// Action implements Step.
func (Poll) Action() Action { return ActionPoll }

// Apply implements Step.
func (Poll) Apply(ctx context.Context, env *Env) error {
	env.Target.PollAll(ctx)

	return nil
}

// Report prints the system report.
type Report struct{}

// Action implements Step.
func (Report) Action() Action { return ActionReport }

// Apply implements Step.
func (Report) Apply(ctx context.Context, env *Env) error {
	env.Target.Report(ctx)

	return nil
}

// newStep returns an empty step for the action.
func newStep(action Action) (Step, error) {
	switch action {
	case ActionNote:
		return &Note{}, nil
	case ActionSetMode:
		return &SetMode{}, nil
	case ActionSetReading:
		return &SetReading{}, nil
	case ActionPoll:
		return &Poll{}, nil
	case ActionReport:
		return &Report{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}
