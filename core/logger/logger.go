package logger

// Logger exposes the logging methods used across the schedule engine's
// infrastructure. Core packages stay pure; a Logger is only handed to the
// components that touch I/O.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
