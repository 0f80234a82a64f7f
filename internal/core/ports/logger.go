package ports

import "io"

// Logger defines the logging interface used across the application.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error, rendering wrapped causes hierarchically.
	Error(err error)
	// SetOutput redirects log output. Used for testing.
	SetOutput(w io.Writer)
	// SetJSON switches between JSON and pretty output.
	SetJSON(enable bool)
}
