// Package rules maps a sensor reading and the arming state to an optional
// alarm request. Evaluation is pure: it never mutates its inputs and has no
// side effects.
package rules
