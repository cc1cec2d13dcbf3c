// Package journal implements the append-only alarm log.
//
// Every Append writes exactly one line, "<timestamp> - <message>", where the
// timestamp uses the local ctime layout. The file is opened per record and
// closed right after, so the log survives the process dying mid-cycle.
package journal
