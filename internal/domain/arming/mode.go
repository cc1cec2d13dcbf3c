package arming

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the operating mode of the hub.
type Mode uint8

const (
	// ModeDay is the initial mode: occupants awake, system disarmed.
	ModeDay Mode = iota
	// ModeNight is occupants asleep. Motion rules stay inactive.
	ModeNight
	// ModeAway is the house empty. Arms the system.
	ModeAway
)

var (
	// ErrInvalidMode is returned for a mode outside Day, Night and Away.
	ErrInvalidMode = errors.New("unknown mode")
	// ErrInvalidPolicy is returned for an unsupported arming policy name.
	ErrInvalidPolicy = errors.New("unknown arming policy")
)

// ParseMode resolves a mode name. Only the exact names Day, Night and Away are accepted.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "Day":
		return ModeDay, nil
	case "Night":
		return ModeNight, nil
	case "Away":
		return ModeAway, nil
	default:
		return ModeDay, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// String returns the mode name printed on the console.
func (m Mode) String() string {
	switch m {
	case ModeDay:
		return "Day"
	case ModeNight:
		return "Night"
	case ModeAway:
		return "Away"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Policy decides how mode changes affect the armed flag.
type Policy uint8

const (
	// PolicyClearing arms on Away and disarms on Day or Night.
	PolicyClearing Policy = iota
	// PolicySticky arms on Away and never disarms.
	PolicySticky
)

// ParsePolicy resolves a policy name. An empty name selects PolicyClearing.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clearing":
		return PolicyClearing, nil
	case "sticky", "legacy":
		return PolicySticky, nil
	default:
		return PolicyClearing, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// String returns the policy name used in configuration.
func (p Policy) String() string {
	if p == PolicySticky {
		return "sticky"
	}

	return "clearing"
}

// armedAfter returns the armed flag that results from entering mode.
func (p Policy) armedAfter(mode Mode, armed bool) bool {
	if mode == ModeAway {
		return true
	}

	if p == PolicySticky {
		return armed
	}

	return false
}
