// Package sensor defines the sensor record kept by the hub registry.
//
// Category is a closed tagged variant: Door, Motion and Heat drive the
// evaluation rules, and every other category string maps to Unknown so that a
// misconfigured sensor degrades into a warning instead of a failure.
package sensor
