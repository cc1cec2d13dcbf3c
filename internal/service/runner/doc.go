// Package runner wires the titan-hub components for the CLI commands.
//
// Run plays a scenario (the built-in demo unless a file is given) and Watch
// polls the sensors on a fixed interval until the context is canceled.
package runner
