package dispatcher

//go:generate mockgen -destination=mock_sinks.go -package=dispatcher github.com/oshokin/titan-hub/internal/service/dispatcher SoundPlayer,Notifier,Journal

import (
	"context"

	"github.com/oshokin/titan-hub/internal/domain/alarm"
)

// SoundPlayer plays the audible signal for an alarm.
type SoundPlayer interface {
	Play(ctx context.Context, severity alarm.Severity)
}

// Notifier contacts the recipient of an alarm. Unreachable recipients produce
// a diagnostic, not a failure.
type Notifier interface {
	Send(ctx context.Context, recipient alarm.Recipient)
}

// Journal appends one timestamped record per call.
type Journal interface {
	Append(ctx context.Context, message string) error
}
