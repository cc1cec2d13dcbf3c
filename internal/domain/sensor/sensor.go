package sensor

import "strings"

// Category identifies which evaluation rule applies to a sensor.
type Category uint8

const (
	// CategoryUnknown is any category the hub has no rule for.
	CategoryUnknown Category = iota
	// CategoryDoor reports 1 when the door is open.
	CategoryDoor
	// CategoryMotion reports 1 when motion is detected.
	CategoryMotion
	// CategoryHeat reports a temperature in whole degrees Celsius.
	CategoryHeat
)

// categorySuffix is accepted after a category name, e.g. "DoorSensor".
const categorySuffix = "sensor"

// ParseCategory maps a category name to its variant. Matching ignores case and
// an optional "Sensor" suffix. Anything unrecognized yields CategoryUnknown.
func ParseCategory(s string) Category {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, categorySuffix)

	switch name {
	case "door":
		return CategoryDoor
	case "motion":
		return CategoryMotion
	case "heat":
		return CategoryHeat
	default:
		return CategoryUnknown
	}
}

// String returns the canonical category name.
func (c Category) String() string {
	switch c {
	case CategoryDoor:
		return "Door"
	case CategoryMotion:
		return "Motion"
	case CategoryHeat:
		return "Heat"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))

	return nil
}

// Sensor is a single monitored input.
type Sensor struct {
	// Name is the human-readable sensor name printed in status lines.
	Name string `yaml:"name"`
	// Category selects the evaluation rule and never changes after creation.
	Category Category `yaml:"category"`
	// Location is descriptive only.
	Location string `yaml:"location"`
	// Reading is 0/1 for door and motion sensors, degrees for heat sensors.
	Reading int `yaml:"reading"`
}

// Defaults returns the starter set installed at initialization.
func Defaults() []Sensor {
	return []Sensor{
		{Name: "Front Door", Category: CategoryDoor, Location: "Entry", Reading: 0},
		{Name: "Living Room Motion", Category: CategoryMotion, Location: "Living Room", Reading: 0},
		{Name: "Kitchen Heat", Category: CategoryHeat, Location: "Kitchen", Reading: 25}, //nolint:mnd // Room temperature.
	}
}
