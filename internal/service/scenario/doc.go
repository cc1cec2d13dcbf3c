// Package scenario drives the hub through scripted steps.
//
// Scenarios come either from the built-in Demo or from YAML files where every
// step is a map keyed by its action:
//
//	name: intruder
//	steps:
//	  - action: set-mode
//	    mode: Away
//	  - action: set-reading
//	    index: 0
//	    value: 1
//	  - action: poll
package scenario
