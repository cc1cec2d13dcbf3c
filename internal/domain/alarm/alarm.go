package alarm

import "fmt"

// Severity grades an alarm and selects the sound played for it.
type Severity uint8

const (
	// SeverityLow is the default grade. No rule produces it today.
	SeverityLow Severity = iota
	// SeverityMedium is raised for motion while the house is empty.
	SeverityMedium
	// SeverityHigh is raised for a door opened while armed.
	SeverityHigh
	// SeverityCritical is raised for fire.
	SeverityCritical
)

// String returns the severity name used in console and journal output.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// IsLoud reports whether the severity warrants the siren rather than a keypad beep.
func (s Severity) IsLoud() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// Recipient is the party notified about an alarm.
type Recipient uint8

const (
	// RecipientUnrecognized is any recipient the notifier cannot reach.
	RecipientUnrecognized Recipient = iota
	// RecipientPolice dials the emergency number.
	RecipientPolice
	// RecipientFireDept dials the fire department.
	RecipientFireDept
	// RecipientUserPhone pushes a notification to the owner's phone.
	RecipientUserPhone
)

// String returns the recipient name used in console and journal output.
func (r Recipient) String() string {
	switch r {
	case RecipientPolice:
		return "Police"
	case RecipientFireDept:
		return "FireDept"
	case RecipientUserPhone:
		return "UserPhone"
	default:
		return "Unrecognized"
	}
}

// Request asks the dispatcher to raise one alarm.
// It is built per triggering evaluation and never stored.
type Request struct {
	// Severity grades the alarm.
	Severity Severity
	// Recipient is who gets notified.
	Recipient Recipient
}

// Message renders the journal record body for the request.
func (r Request) Message() string {
	return fmt.Sprintf("ALARM: %s sent to %s", r.Severity, r.Recipient)
}
