package dnp3

import (
	"avaneesh/dnp3-sim/pkg/internal/logger"
)

// LogLevel represents logging level
type LogLevel int

const (
	// LevelDebug shows all log messages, including every rejected field
	LevelDebug LogLevel = iota
	// LevelInfo shows info, warn, and error messages (default)
	LevelInfo
	// LevelWarn shows warn and error messages
	LevelWarn
	// LevelError shows only error messages
	LevelError
)

// SetLogLevel sets the global logging level
func SetLogLevel(level LogLevel) {
	logger.SetDefault(logger.NewDefaultLogger(logger.Level(level)))
}

// ParseLogLevel converts a level name such as "debug" or "warn" to a LogLevel
func ParseLogLevel(name string) (LogLevel, error) {
	l, err := logger.ParseLevel(name)
	return LogLevel(l), err
}
