package registry

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/oshokin/titan-hub/internal/domain/sensor"
)

// ErrIndexOutOfRange is returned by SetReading in strict mode for an index
// that does not address a registered sensor.
var ErrIndexOutOfRange = errors.New("sensor index out of range")

// Registry is an ordered, fixed-size collection of sensors.
type Registry struct {
	// sensors holds the records in registration order.
	sensors []sensor.Sensor
	// strict turns out-of-range writes into errors instead of no-ops.
	strict bool
	// mu serializes reading updates against iteration.
	mu sync.RWMutex
}

// Option configures a Registry.
type Option func(*Registry)

// WithStrictIndex makes SetReading reject out-of-range indexes.
func WithStrictIndex(strict bool) Option {
	return func(r *Registry) {
		r.strict = strict
	}
}

// New creates a registry holding copies of the provided sensors.
func New(sensors []sensor.Sensor, opts ...Option) *Registry {
	r := &Registry{
		sensors: append([]sensor.Sensor(nil), sensors...),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// NewDefault creates a registry with the starter set of three sensors.
func NewDefault(opts ...Option) *Registry {
	return New(sensor.Defaults(), opts...)
}

// Len returns the number of registered sensors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sensors)
}

// Get returns a copy of the sensor at index.
func (r *Registry) Get(index int) (sensor.Sensor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.sensors) {
		return sensor.Sensor{}, false
	}

	return r.sensors[index], true
}

// SetReading updates the reading of the sensor at index.
// Out-of-range indexes are ignored unless the registry is strict.
func (r *Registry) SetReading(index, value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.sensors) {
		if r.strict {
			return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(r.sensors))
		}

		return nil
	}

	r.sensors[index].Reading = value

	return nil
}

// All yields (index, sensor) pairs in registration order. Each sensor is a
// copy taken when it is reached, so the body may call SetReading.
func (r *Registry) All() iter.Seq2[int, sensor.Sensor] {
	return func(yield func(int, sensor.Sensor) bool) {
		for i := 0; ; i++ {
			s, ok := r.Get(i)
			if !ok {
				return
			}

			if !yield(i, s) {
				return
			}
		}
	}
}
