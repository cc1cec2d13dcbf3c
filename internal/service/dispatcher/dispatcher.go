package dispatcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/titan-hub/internal/domain/alarm"
	"github.com/oshokin/titan-hub/internal/logger"
)

// Sink names used in diagnostics.
const (
	sinkSound   = "sound"
	sinkNotify  = "notify"
	sinkJournal = "journal"
)

// errSinkRequired is returned when a dispatcher is built without one of its sinks.
var errSinkRequired = errors.New("sound, notify and journal sinks must be provided")

// Dispatcher fans an alarm request out to the three sinks. It keeps no state
// between calls.
type Dispatcher struct {
	// sound plays the siren or keypad beep.
	sound SoundPlayer
	// notifier contacts the recipient.
	notifier Notifier
	// journal records the alarm.
	journal Journal
}

// New wires the sinks into a dispatcher.
func New(sound SoundPlayer, notifier Notifier, journal Journal) (*Dispatcher, error) {
	if sound == nil || notifier == nil || journal == nil {
		return nil, errSinkRequired
	}

	return &Dispatcher{
		sound:    sound,
		notifier: notifier,
		journal:  journal,
	}, nil
}

// Dispatch raises the alarm: sound, then notification, then the journal record.
// It reports whether every sink completed.
func (d *Dispatcher) Dispatch(ctx context.Context, req alarm.Request) bool {
	ctx = logger.WithKV(ctx, "severity", req.Severity.String(), "recipient", req.Recipient.String())

	ok := isolate(ctx, sinkSound, func() error {
		d.sound.Play(ctx, req.Severity)

		return nil
	})

	ok = isolate(ctx, sinkNotify, func() error {
		d.notifier.Send(ctx, req.Recipient)

		return nil
	}) && ok

	ok = isolate(ctx, sinkJournal, func() error {
		return d.journal.Append(ctx, req.Message())
	}) && ok

	if ok {
		logger.DebugKV(ctx, "Alarm dispatched")
	}

	return ok
}

// isolate runs one sink call, turning errors and panics into error log entries.
func isolate(ctx context.Context, sink string, call func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV(ctx, "Alarm sink panicked", "sink", sink, "panic", fmt.Sprint(r))

			ok = false
		}
	}()

	if err := call(); err != nil {
		logger.ErrorKV(ctx, "Alarm sink failed", "sink", sink, "error", err)

		return false
	}

	return true
}
