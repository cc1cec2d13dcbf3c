package hub

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/titan-hub/internal/console"
	"github.com/oshokin/titan-hub/internal/domain/alarm"
	"github.com/oshokin/titan-hub/internal/domain/arming"
	"github.com/oshokin/titan-hub/internal/domain/sensor"
	"github.com/oshokin/titan-hub/internal/repository/registry"
	"github.com/oshokin/titan-hub/internal/service/rules"
)

// recordingDispatcher stores every dispatched request.
type recordingDispatcher struct {
	// requests holds dispatched requests in call order.
	requests []alarm.Request
}

// Dispatch records the request and reports success.
func (r *recordingDispatcher) Dispatch(_ context.Context, req alarm.Request) bool {
	r.requests = append(r.requests, req)

	return true
}

// fixture bundles a hub with its observable collaborators.
type fixture struct {
	// hub is the hub under test.
	hub *Hub
	// dispatcher records alarms raised by the hub.
	dispatcher *recordingDispatcher
	// out captures the console.
	out *bytes.Buffer
}

// newFixture builds a hub over the default sensors.
func newFixture(t *testing.T, policy arming.Policy, opts ...registry.Option) *fixture {
	t.Helper()

	return newFixtureWith(t, registry.NewDefault(opts...), policy)
}

// newFixtureWith builds a hub over the provided registry.
func newFixtureWith(t *testing.T, reg *registry.Registry, policy arming.Policy) *fixture {
	t.Helper()

	var (
		out        = new(bytes.Buffer)
		dispatcher = new(recordingDispatcher)
	)

	h, err := New(reg, arming.NewState(policy), dispatcher, console.New(out))
	require.NoError(t, err)

	h.newCycleID = func() string { return "cycle" }

	return &fixture{hub: h, dispatcher: dispatcher, out: out}
}

// lines returns the status lines of a poll result.
func lines(result *PollResult) []string {
	out := make([]string, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		out = append(out, o.Line)
	}

	return out
}

// TestNew_RequiresDependencies verifies nil collaborators are rejected.
func TestNew_RequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := New(nil, arming.NewState(arming.PolicyClearing), new(recordingDispatcher), console.New(new(bytes.Buffer)))
	require.ErrorIs(t, err, errDependencyRequired)

	_, err = New(registry.NewDefault(), arming.NewState(arming.PolicyClearing), nil, console.New(new(bytes.Buffer)))
	require.ErrorIs(t, err, errDependencyRequired)
}

// TestPollAll_EveningSequence walks intrusion, motion, fire and a return to Day mode.
func TestPollAll_EveningSequence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, arming.PolicyClearing)

	// Away with default readings fires nothing.
	require.NoError(t, f.hub.SetMode(ctx, "Away", nil))

	result := f.hub.PollAll(ctx)
	require.Empty(t, result.Alarms)
	require.Equal(t, arming.ModeAway, result.State.Mode)
	require.True(t, result.State.Armed)
	require.Equal(t, []string{
		"Reading Front Door... Secure.",
		"Reading Living Room Motion... No Motion.",
		"Reading Kitchen Heat... Temp: 25C. Normal.",
	}, lines(result))

	// Door opened while away.
	require.NoError(t, f.hub.SimulateInput(ctx, 0, 1))

	result = f.hub.PollAll(ctx)
	require.Equal(t, []alarm.Request{{Severity: alarm.SeverityHigh, Recipient: alarm.RecipientPolice}}, result.Alarms)
	require.Equal(t, []string{
		"Reading Front Door... ! Triggering Alarm!",
		"Reading Living Room Motion... No Motion.",
		"Reading Kitchen Heat... Temp: 25C. Normal.",
	}, lines(result))

	// Door closed, motion seen.
	require.NoError(t, f.hub.SimulateInput(ctx, 0, 0))
	require.NoError(t, f.hub.SimulateInput(ctx, 1, 1))

	result = f.hub.PollAll(ctx)
	require.Equal(t, []alarm.Request{{Severity: alarm.SeverityMedium, Recipient: alarm.RecipientUserPhone}}, result.Alarms)

	// Motion cleared, fire in the kitchen.
	require.NoError(t, f.hub.SimulateInput(ctx, 1, 0))
	require.NoError(t, f.hub.SimulateInput(ctx, 2, 60))

	result = f.hub.PollAll(ctx)
	require.Equal(t, []alarm.Request{{Severity: alarm.SeverityCritical, Recipient: alarm.RecipientFireDept}}, result.Alarms)
	require.Equal(t, "Reading Kitchen Heat... Temp: 60C. DANGER! FIRE!", result.Outcomes[2].Line)

	// Day mode suppresses motion.
	require.NoError(t, f.hub.SimulateInput(ctx, 2, 25))
	require.NoError(t, f.hub.SetMode(ctx, "Day", nil))
	require.NoError(t, f.hub.SimulateInput(ctx, 1, 1))

	result = f.hub.PollAll(ctx)
	require.Empty(t, result.Alarms)
	require.False(t, result.State.Armed)

	// Every dispatched request went to the dispatcher, in cycle order.
	require.Equal(t, []alarm.Request{
		{Severity: alarm.SeverityHigh, Recipient: alarm.RecipientPolice},
		{Severity: alarm.SeverityMedium, Recipient: alarm.RecipientUserPhone},
		{Severity: alarm.SeverityCritical, Recipient: alarm.RecipientFireDept},
	}, f.dispatcher.requests)
}

// TestPollAll_HeatFiresInAnyMode checks fire detection without arming.
func TestPollAll_HeatFiresInAnyMode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, arming.PolicyClearing)

	require.NoError(t, f.hub.SimulateInput(ctx, 2, 60))

	result := f.hub.PollAll(ctx)
	require.Equal(t, arming.ModeDay, result.State.Mode)
	require.Equal(t, []alarm.Request{{Severity: alarm.SeverityCritical, Recipient: alarm.RecipientFireDept}}, result.Alarms)
}

// TestPollAll_RefiresEveryCycle ensures alarms are not deduplicated across cycles.
func TestPollAll_RefiresEveryCycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, arming.PolicyClearing)

	require.NoError(t, f.hub.SetMode(ctx, "Away", nil))
	require.NoError(t, f.hub.SimulateInput(ctx, 0, 1))

	f.hub.PollAll(ctx)
	f.hub.PollAll(ctx)

	require.Len(t, f.dispatcher.requests, 2)
}

// TestPollAll_ConsoleOutput verifies the heading and the alarm announcement order.
func TestPollAll_ConsoleOutput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, arming.PolicyClearing)

	require.NoError(t, f.hub.SetMode(ctx, "Away", nil))
	require.NoError(t, f.hub.SimulateInput(ctx, 0, 1))

	f.out.Reset()
	f.hub.PollAll(ctx)

	require.Equal(t, "\n"+
		"--- Polling Sensors (Away Mode) ---\n"+
		"Reading Front Door... ! Triggering Alarm!\n"+
		"!!! ALARM TRIGGERED [High] !!!\n"+
		"Reading Living Room Motion... No Motion.\n"+
		"Reading Kitchen Heat... Temp: 25C. Normal.\n", f.out.String())
}

// TestPollAll_UnknownSensorWarns checks unknown categories are reported with their index and skipped.
func TestPollAll_UnknownSensorWarns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := registry.New(append(sensor.Defaults(), sensor.Sensor{
		Name:     "Cellar Water",
		Category: sensor.ParseCategory("WaterSensor"),
		Location: "Cellar",
		Reading:  1,
	}))
	f := newFixtureWith(t, reg, arming.PolicyClearing)

	require.NoError(t, f.hub.SetMode(ctx, "Away", nil))

	result := f.hub.PollAll(ctx)
	require.Len(t, result.Outcomes, 4)
	require.Equal(t, rules.StatusUnknown, result.Outcomes[3].Verdict.Status)
	require.Equal(t, "[Warning] Unknown sensor type found in index 3", result.Outcomes[3].Line)
	require.Empty(t, result.Alarms)
	require.Contains(t, f.out.String(), "[Warning] Unknown sensor type found in index 3\n")
}

// TestSetMode_Invalid leaves state untouched and surfaces a validation error.
func TestSetMode_Invalid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, arming.PolicyClearing)

	require.NoError(t, f.hub.SetMode(ctx, "Away", nil))

	err := f.hub.SetMode(ctx, "Invalid", nil)
	require.ErrorIs(t, err, arming.ErrInvalidMode)
	require.Contains(t, f.out.String(), "[Error] Unknown mode.\n")

	summary := f.hub.Report(ctx)
	require.Equal(t, arming.ModeAway, summary.Mode)
	require.True(t, summary.Armed)
}

// TestSetMode_StickyPolicyKeepsDoorArmed shows the legacy policy still fires on the door after leaving Away.
func TestSetMode_StickyPolicyKeepsDoorArmed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, arming.PolicySticky)

	require.NoError(t, f.hub.SetMode(ctx, "Away", nil))
	require.NoError(t, f.hub.SetMode(ctx, "Night", nil))
	require.NoError(t, f.hub.SimulateInput(ctx, 0, 1))
	require.NoError(t, f.hub.SimulateInput(ctx, 1, 1))

	result := f.hub.PollAll(ctx)
	require.True(t, result.State.Armed)
	require.Equal(t, []alarm.Request{{Severity: alarm.SeverityHigh, Recipient: alarm.RecipientPolice}}, result.Alarms)
}

// TestSimulateInput_OutOfRange covers the lenient and strict registries.
func TestSimulateInput_OutOfRange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	lenient := newFixture(t, arming.PolicyClearing)
	require.NoError(t, lenient.hub.SimulateInput(ctx, 7, 1))

	strict := newFixture(t, arming.PolicyClearing, registry.WithStrictIndex(true))
	require.ErrorIs(t, strict.hub.SimulateInput(ctx, 7, 1), registry.ErrIndexOutOfRange)
}

// TestReport prints the summary.
func TestReport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, arming.PolicyClearing)

	summary := f.hub.Report(ctx)
	require.Equal(t, Summary{SensorsOnline: 3, Armed: false, Mode: arming.ModeDay}, summary)
	require.Contains(t, f.out.String(), "Sensors Online: 3\n")
	require.Contains(t, f.out.String(), "System Armed: NO\n")
}

// TestWatch_PollsUntilCanceled runs the watch loop briefly and cancels it.
func TestWatch_PollsUntilCanceled(t *testing.T) {
	t.Parallel()

	f := newFixture(t, arming.PolicyClearing)

	require.Error(t, f.hub.Watch(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- f.hub.Watch(ctx, 20*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		f.hub.mu.Lock()
		defer f.hub.mu.Unlock()

		return strings.Count(f.out.String(), "--- Polling Sensors") >= 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	// The final summary follows the last poll.
	text := f.out.String()
	require.True(t, strings.HasSuffix(text, "Sensors Online: 3\nSystem Armed: NO\n"), text)
}

// TestWatch_PeriodicReport prints the summary every WatchReportEvery cycles.
func TestWatch_PeriodicReport(t *testing.T) {
	t.Parallel()

	f := newFixture(t, arming.PolicyClearing)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- f.hub.Watch(ctx, time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		f.hub.mu.Lock()
		defer f.hub.mu.Unlock()

		return strings.Count(f.out.String(), "--- Polling Sensors") >= WatchReportEvery+1
	}, 5*time.Second, 5*time.Millisecond)

	f.hub.mu.Lock()
	text := f.out.String()
	f.hub.mu.Unlock()

	require.Contains(t, text, "Generating System Report...\n")

	cancel()
	require.NoError(t, <-done)
}

// TestStatusLine covers every category and outcome.
func TestStatusLine(t *testing.T) {
	t.Parallel()

	heat := sensor.Sensor{Name: "Kitchen Heat", Category: sensor.CategoryHeat, Reading: 51}
	require.Equal(t, "Reading Kitchen Heat... Temp: 51C. DANGER! FIRE!", StatusLine(heat, rules.Verdict{Fired: true}))

	motion := sensor.Sensor{Name: "Hall Motion", Category: sensor.CategoryMotion}
	require.Equal(t, "Reading Hall Motion... MOTION DETECTED!", StatusLine(motion, rules.Verdict{Fired: true}))

	other := sensor.Sensor{Name: "Cellar Water"}
	require.Equal(t, "Reading Cellar Water... Unknown.", StatusLine(other, rules.Verdict{}))
}
