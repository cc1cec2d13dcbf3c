// Package guard keeps a single titan-hub process attached to a log destination.
//
// A marker file next to the journal records the owner PID. A marker left by a
// process that is no longer alive, or that belongs to another executable, is
// treated as stale and taken over.
package guard
