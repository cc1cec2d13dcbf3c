package sinks

import (
	"context"

	"github.com/oshokin/titan-hub/internal/domain/alarm"
	"github.com/oshokin/titan-hub/internal/logger"
)

// Output is the part of the operator console the sinks print to.
type Output interface {
	Line(text string)
	Alert(text string)
	Warning(text string)
}

// Console messages, kept identical to what installers expect to see.
const (
	sirenMessage       = ">>> PLAYING LOUD SIREN SOUND <<<"
	beepMessage        = ">>> Beeping Keypad <<<"
	policeMessage      = "Dialing 911..."
	fireDeptMessage    = "Dialing Fire Department..."
	userPhoneMessage   = "Sending Push Notification to User..."
	badRecipientNotice = "Invalid recipient"
)

// Siren simulates the sounder: loud siren for High and Critical, keypad beep otherwise.
type Siren struct {
	// out receives the simulated sound.
	out Output
}

// NewSiren creates a siren printing to out.
func NewSiren(out Output) *Siren {
	return &Siren{out: out}
}

// Play emits the sound for the severity.
func (s *Siren) Play(_ context.Context, severity alarm.Severity) {
	if severity.IsLoud() {
		s.out.Alert(sirenMessage)

		return
	}

	s.out.Line(beepMessage)
}

// Notifier simulates dialing out and push notifications.
type Notifier struct {
	// out receives the simulated notification.
	out Output
}

// NewNotifier creates a notifier printing to out.
func NewNotifier(out Output) *Notifier {
	return &Notifier{out: out}
}

// Send contacts the recipient. Unknown recipients print a diagnostic and return normally.
func (n *Notifier) Send(ctx context.Context, recipient alarm.Recipient) {
	switch recipient {
	case alarm.RecipientPolice:
		n.out.Line(policeMessage)
	case alarm.RecipientFireDept:
		n.out.Line(fireDeptMessage)
	case alarm.RecipientUserPhone:
		n.out.Line(userPhoneMessage)
	default:
		n.out.Warning(badRecipientNotice)
		logger.WarnKV(ctx, "Notification skipped", "recipient", recipient.String())
	}
}
