// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger writing to stderr, which doubles as the
//     operator error channel of the hub,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Services accept a context and extract the logger from it, so a poll cycle
// can carry its own fields (cycle_id, sensor index) down to the sinks.
package logger
