package rules

import (
	"github.com/oshokin/titan-hub/internal/domain/alarm"
	"github.com/oshokin/titan-hub/internal/domain/arming"
	"github.com/oshokin/titan-hub/internal/domain/sensor"
)

// Status is the per-sensor outcome of an evaluation.
type Status uint8

const (
	// StatusUnknown means the sensor category has no rule; the caller warns instead.
	StatusUnknown Status = iota
	// StatusSecure is a door that is closed or open while disarmed.
	StatusSecure
	// StatusNoMotion is a motion sensor that does not fire.
	StatusNoMotion
	// StatusNormal is a heat sensor at or below the fire threshold.
	StatusNormal
	// StatusTriggered means the verdict carries an alarm request.
	StatusTriggered
)

// FireThreshold is the highest temperature that is still considered normal.
const FireThreshold = 50

// active is the reading of an open door or detected motion.
const active = 1

// Verdict is the result of evaluating one sensor.
type Verdict struct {
	// Status is the outcome shown on the console.
	Status Status
	// Request is the alarm to raise. Valid only when Fired is true.
	Request alarm.Request
	// Fired reports whether an alarm must be dispatched.
	Fired bool
}

// Evaluate applies the rule for the sensor category.
//
// Motion depends on the mode being Away rather than on the armed flag, so
// Night mode never raises a motion alarm even under the sticky policy.
func Evaluate(s sensor.Sensor, state arming.Snapshot) Verdict {
	switch s.Category {
	case sensor.CategoryDoor:
		if s.Reading == active && state.Armed {
			return fire(alarm.SeverityHigh, alarm.RecipientPolice)
		}

		return Verdict{Status: StatusSecure}
	case sensor.CategoryMotion:
		if s.Reading == active && state.Mode == arming.ModeAway {
			return fire(alarm.SeverityMedium, alarm.RecipientUserPhone)
		}

		return Verdict{Status: StatusNoMotion}
	case sensor.CategoryHeat:
		if s.Reading > FireThreshold {
			return fire(alarm.SeverityCritical, alarm.RecipientFireDept)
		}

		return Verdict{Status: StatusNormal}
	default:
		return Verdict{Status: StatusUnknown}
	}
}

func fire(severity alarm.Severity, recipient alarm.Recipient) Verdict {
	return Verdict{
		Status: StatusTriggered,
		Request: alarm.Request{
			Severity:  severity,
			Recipient: recipient,
		},
		Fired: true,
	}
}
