package version

import "fmt"

// ProductName is the name shown in the banner and version output.
const ProductName = "Titan Security System"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "2.0.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("%s version: %s, commit: %s, built at: %s", ProductName, Version, Commit, BuildTime)
}

// Banner returns the startup title line printed by the hub.
func Banner() string {
	return fmt.Sprintf("--- %s v%s ---", ProductName, Version)
}
