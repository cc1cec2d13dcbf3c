package arming

import (
	"fmt"
	"time"
)

// Actor identifies who changed the mode.
type Actor struct {
	// Hostname is the machine name where the change was requested.
	Hostname string
	// Username is the system user who requested the change.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as username@hostname.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return fmt.Sprintf("%s@%s", a.Username, a.Hostname)
}

// Snapshot is a read-only view of the state handed to the evaluation rules.
type Snapshot struct {
	// Mode is the current operating mode.
	Mode Mode
	// Armed reports whether intrusions are treated as alarms.
	Armed bool
	// ChangedAt is when the mode was last set. Zero until the first change.
	ChangedAt time.Time
	// ChangedBy is who last set the mode, if known.
	ChangedBy *Actor
}

// Clone returns a copy of the snapshot to avoid leaking internal references.
func (s *Snapshot) Clone() *Snapshot {
	return &Snapshot{
		Mode:      s.Mode,
		Armed:     s.Armed,
		ChangedAt: s.ChangedAt,
		ChangedBy: s.ChangedBy.Clone(),
	}
}

// State is the process-wide mode context. It is owned by the hub and passed
// explicitly to whoever needs it.
type State struct {
	// policy decides how leaving Away affects the armed flag.
	policy Policy
	// current holds mode, armed flag and audit fields.
	current Snapshot
	// now is the clock used for ChangedAt.
	now func() time.Time
}

// NewState returns a disarmed state in Day mode.
func NewState(policy Policy) *State {
	return &State{
		policy: policy,
		current: Snapshot{
			Mode:  ModeDay,
			Armed: false,
		},
		now: time.Now,
	}
}

// SetMode switches to the requested mode and recomputes the armed flag.
// An invalid request leaves the state untouched and returns ErrInvalidMode.
func (s *State) SetMode(requested string, actor *Actor) (Mode, error) {
	mode, err := ParseMode(requested)
	if err != nil {
		return s.current.Mode, err
	}

	s.current = Snapshot{
		Mode:      mode,
		Armed:     s.policy.armedAfter(mode, s.current.Armed),
		ChangedAt: s.now(),
		ChangedBy: actor.Clone(),
	}

	return mode, nil
}

// Mode returns the current operating mode.
func (s *State) Mode() Mode {
	return s.current.Mode
}

// IsArmed reports whether the system is armed.
func (s *State) IsArmed() bool {
	return s.current.Armed
}

// Policy returns the arming policy in effect.
func (s *State) Policy() Policy {
	return s.policy
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	return *s.current.Clone()
}
