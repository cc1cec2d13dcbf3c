// Package registry owns the hub's sensors.
//
// Sensors are addressed by their registration index. Callers only ever see
// copies; readings change through SetReading, which is how simulated input
// reaches the hub.
package registry
