// Package hub is the poll orchestrator of the security controller.
//
// A Hub owns the sensor registry and the arming state. Each poll cycle walks
// the registry in order, evaluates every sensor against one snapshot of the
// arming state, prints a status line and dispatches any alarm before moving
// on to the next sensor. Mode changes and simulated input go through the hub
// so that they never interleave with a running cycle.
package hub
