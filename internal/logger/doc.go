// Package logger provides structured logging using zap.
//
// Console output goes to stderr so stdout stays reserved for command
// output; an optional rotating log file can be configured for long
// parameter sweeps. The package-level logger starts as a no-op, so code
// paths that run before Init (or in tests that never call it) log
// nothing instead of panicking.
package logger
