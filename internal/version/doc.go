// Package version exposes build metadata for titan-hub.
//
// Version, Commit and BuildTime are injected through ldflags and fall back to
// local-build defaults. Banner renders the title line shown at startup.
package version
