// Package sinks provides the simulated sound and notification sinks used by
// the dispatcher. Both print to the operator console; neither can fail.
package sinks
