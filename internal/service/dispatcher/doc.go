// Package dispatcher raises an alarm by calling the sound, notification and
// journal sinks in that order.
//
// Every sink runs even when an earlier one fails. A failing or panicking
// sink is reported on the operator error channel (the context logger) and
// never reaches the caller, so one broken sink cannot stop a poll cycle.
package dispatcher
