package hub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/titan-hub/internal/domain/alarm"
	"github.com/oshokin/titan-hub/internal/domain/arming"
	"github.com/oshokin/titan-hub/internal/domain/sensor"
	"github.com/oshokin/titan-hub/internal/logger"
	"github.com/oshokin/titan-hub/internal/repository/registry"
	"github.com/oshokin/titan-hub/internal/service/rules"
)

// Dispatcher raises an alarm through the sinks.
type Dispatcher interface {
	Dispatch(ctx context.Context, req alarm.Request) bool
}

// Console is the operator output used by the hub.
type Console interface {
	Heading(text string)
	Line(text string)
	Info(text string)
	Warning(text string)
	Error(text string)
	Alert(text string)
	Report(sensorsOnline int, armed bool)
}

var (
	// errDependencyRequired is returned when the hub is built without a collaborator.
	errDependencyRequired = errors.New("registry, state, dispatcher and console must be provided")
	// errInvalidInterval is returned by Watch for a non-positive interval.
	errInvalidInterval = errors.New("poll interval must be positive")
)

// Hub evaluates sensors and dispatches alarms.
type Hub struct {
	// registry owns the sensors.
	registry *registry.Registry
	// state is the mode context consulted by every evaluation.
	state *arming.State
	// dispatcher raises alarms.
	dispatcher Dispatcher
	// console receives status lines.
	console Console
	// newCycleID labels each poll cycle.
	newCycleID func() string
	// mu serializes cycles, mode changes and simulated input.
	mu sync.Mutex
}

// Outcome is the evaluation of one sensor within a cycle.
type Outcome struct {
	// Index is the registry index of the sensor.
	Index int
	// Sensor is the sensor as read during the cycle.
	Sensor sensor.Sensor
	// Verdict is the rule result. Unknown sensors carry rules.StatusUnknown.
	Verdict rules.Verdict
	// Line is the status line printed for the sensor.
	Line string
}

// PollResult summarizes one poll cycle.
type PollResult struct {
	// CycleID identifies the cycle in diagnostics.
	CycleID string
	// State is the arming snapshot the cycle evaluated against.
	State arming.Snapshot
	// Outcomes holds one entry per sensor in registry order.
	Outcomes []Outcome
	// Alarms lists the requests dispatched during the cycle, in order.
	Alarms []alarm.Request
}

// Summary is the data shown by the system report.
type Summary struct {
	// SensorsOnline is the number of registered sensors.
	SensorsOnline int
	// Armed reports the armed flag.
	Armed bool
	// Mode is the current operating mode.
	Mode arming.Mode
}

// New wires a hub.
func New(reg *registry.Registry, state *arming.State, dispatcher Dispatcher, console Console) (*Hub, error) {
	if reg == nil || state == nil || dispatcher == nil || console == nil {
		return nil, errDependencyRequired
	}

	return &Hub{
		registry:   reg,
		state:      state,
		dispatcher: dispatcher,
		console:    console,
		newCycleID: uuid.NewString,
	}, nil
}

// SetMode switches the operating mode. An invalid mode prints a console error,
// leaves the state unchanged and returns an error wrapping arming.ErrInvalidMode.
func (h *Hub) SetMode(ctx context.Context, requested string, actor *arming.Actor) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	mode, err := h.state.SetMode(requested, actor)
	if err != nil {
		h.console.Error("[Error] Unknown mode.")
		logger.WarnKV(ctx, "Mode change rejected", "requested", requested, "actor", actor.String())

		return fmt.Errorf("set mode: %w", err)
	}

	h.console.Info("[System] Mode set to: " + mode.String())
	logger.InfoKV(ctx, "Mode changed",
		"mode", mode.String(),
		"armed", h.state.IsArmed(),
		"policy", h.state.Policy().String(),
		"actor", actor.String(),
	)

	return nil
}

// SimulateInput sets the reading of the sensor at index.
func (h *Hub) SimulateInput(ctx context.Context, index, value int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.registry.SetReading(index, value); err != nil {
		logger.WarnKV(ctx, "Simulated input rejected", "index", index, "value", value, "error", err)

		return fmt.Errorf("simulate input: %w", err)
	}

	logger.DebugKV(ctx, "Simulated input applied", "index", index, "value", value)

	return nil
}

// PollAll runs one poll cycle over every registered sensor.
func (h *Hub) PollAll(ctx context.Context) *PollResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := &PollResult{
		CycleID:  h.newCycleID(),
		State:    h.state.Snapshot(),
		Outcomes: make([]Outcome, 0, h.registry.Len()),
	}

	ctx = logger.WithKV(ctx, "cycle_id", result.CycleID)

	h.console.Heading(fmt.Sprintf("--- Polling Sensors (%s Mode) ---", result.State.Mode))

	for index, s := range h.registry.All() {
		outcome := h.pollSensor(ctx, index, s, result.State)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Verdict.Fired {
			result.Alarms = append(result.Alarms, outcome.Verdict.Request)
		}
	}

	logger.InfoKV(ctx, "Poll cycle completed",
		"mode", result.State.Mode.String(),
		"armed", result.State.Armed,
		"sensors", len(result.Outcomes),
		"alarms", len(result.Alarms),
	)

	return result
}

// pollSensor evaluates a single sensor, prints its line and dispatches its alarm.
func (h *Hub) pollSensor(ctx context.Context, index int, s sensor.Sensor, state arming.Snapshot) Outcome {
	if s.Category == sensor.CategoryUnknown {
		line := fmt.Sprintf("[Warning] Unknown sensor type found in index %d", index)

		h.console.Warning(line)
		logger.WarnKV(ctx, "Unknown sensor category", "index", index, "name", s.Name)

		return Outcome{
			Index:   index,
			Sensor:  s,
			Verdict: rules.Verdict{Status: rules.StatusUnknown},
			Line:    line,
		}
	}

	verdict := rules.Evaluate(s, state)
	line := StatusLine(s, verdict)

	if !verdict.Fired {
		h.console.Line(line)

		return Outcome{Index: index, Sensor: s, Verdict: verdict, Line: line}
	}

	h.console.Alert(line)
	h.console.Alert(fmt.Sprintf("!!! ALARM TRIGGERED [%s] !!!", verdict.Request.Severity))

	logger.InfoKV(ctx, "Alarm triggered",
		"index", index,
		"name", s.Name,
		"reading", s.Reading,
		"severity", verdict.Request.Severity.String(),
		"recipient", verdict.Request.Recipient.String(),
	)

	h.dispatcher.Dispatch(ctx, verdict.Request)

	return Outcome{Index: index, Sensor: s, Verdict: verdict, Line: line}
}

// Report prints and returns the system summary.
func (h *Hub) Report(_ context.Context) Summary {
	h.mu.Lock()
	defer h.mu.Unlock()

	summary := Summary{
		SensorsOnline: h.registry.Len(),
		Armed:         h.state.IsArmed(),
		Mode:          h.state.Mode(),
	}

	h.console.Report(summary.SensorsOnline, summary.Armed)

	return summary
}

// WatchReportEvery is how many watch cycles pass between system reports.
const WatchReportEvery = 12

// Watch polls immediately and then once per interval until ctx is canceled.
// The system report is printed every WatchReportEvery cycles and once more on exit.
func (h *Hub) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errInvalidInterval
	}

	ctx = logger.WithName(ctx, "watch")

	logger.InfoKV(ctx, "Watching sensors", "interval", interval.String(), "sensors", h.registry.Len())

	h.PollAll(ctx)

	cycles := 1

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Report(ctx)

			logger.InfoKV(ctx, "Context canceled, exiting", "cycles", cycles)

			return nil
		case <-ticker.C:
			h.PollAll(ctx)

			cycles++
			if cycles%WatchReportEvery == 0 {
				h.Report(ctx)
			}
		}
	}
}

// StatusLine renders the console line for an evaluated sensor.
func StatusLine(s sensor.Sensor, verdict rules.Verdict) string {
	prefix := "Reading " + s.Name + "... "

	switch s.Category {
	case sensor.CategoryDoor:
		if verdict.Fired {
			return prefix + "! Triggering Alarm!"
		}

		return prefix + "Secure."
	case sensor.CategoryMotion:
		if verdict.Fired {
			return prefix + "MOTION DETECTED!"
		}

		return prefix + "No Motion."
	case sensor.CategoryHeat:
		prefix += fmt.Sprintf("Temp: %dC. ", s.Reading)

		if verdict.Fired {
			return prefix + "DANGER! FIRE!"
		}

		return prefix + "Normal."
	default:
		return prefix + "Unknown."
	}
}
