package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns string representation of Level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (case-insensitive) to a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Logger is the interface for logging
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level Level)
}

// DefaultLogger writes leveled lines through a stdlib log.Logger
type DefaultLogger struct {
	mu     sync.RWMutex
	level  Level
	logger *log.Logger
}

// NewDefaultLogger creates a logger writing to stdout
func NewDefaultLogger(level Level) *DefaultLogger {
	return NewLogger(os.Stdout, level)
}

// NewLogger creates a logger writing to w
func NewLogger(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		logger: log.New(w, "", log.LstdFlags),
	}
}

func (l *DefaultLogger) logf(level Level, format string, args ...interface{}) {
	l.mu.RLock()
	enabled := l.level <= level
	l.mu.RUnlock()
	if enabled {
		l.logger.Printf("["+level.String()+"] "+format, args...)
	}
}

// Debug logs debug message
func (l *DefaultLogger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Info logs info message
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warn logs warning message
func (l *DefaultLogger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// Error logs error message
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// SetLevel sets the logging level
func (l *DefaultLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// NoOpLogger is a logger that doesn't log anything
type NoOpLogger struct{}

// NewNoOpLogger creates a logger that doesn't log
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing
func (l *NoOpLogger) Debug(format string, args ...interface{}) {}

// Info does nothing
func (l *NoOpLogger) Info(format string, args ...interface{}) {}

// Warn does nothing
func (l *NoOpLogger) Warn(format string, args ...interface{}) {}

// Error does nothing
func (l *NoOpLogger) Error(format string, args ...interface{}) {}

// SetLevel does nothing
func (l *NoOpLogger) SetLevel(level Level) {}

// componentLogger prefixes every message with a component name
type componentLogger struct {
	name string
	next Logger
}

// WithComponent returns a logger that tags messages with "name: ".
// A nil parent yields a NoOpLogger.
func WithComponent(parent Logger, name string) Logger {
	if parent == nil {
		return NewNoOpLogger()
	}
	return &componentLogger{name: name, next: parent}
}

func (c *componentLogger) Debug(format string, args ...interface{}) {
	c.next.Debug(c.name+": "+format, args...)
}

func (c *componentLogger) Info(format string, args ...interface{}) {
	c.next.Info(c.name+": "+format, args...)
}

func (c *componentLogger) Warn(format string, args ...interface{}) {
	c.next.Warn(c.name+": "+format, args...)
}

func (c *componentLogger) Error(format string, args ...interface{}) {
	c.next.Error(c.name+": "+format, args...)
}

func (c *componentLogger) SetLevel(level Level) {
	c.next.SetLevel(level)
}

// Global default logger
var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewDefaultLogger(LevelInfo)
)

// SetDefault sets the default logger
func SetDefault(l Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// GetDefault returns the default logger
func GetDefault() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}
