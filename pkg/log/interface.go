// Package log is the structured logging layer of scoreprep.
//
// Callers log through Logger with alternating key/value fields, using the keys declared in
// attributes.go. ZerologProvider writes JSON to stderr and optionally to a rotating file;
// TestLogger keeps records in memory for assertions.
//
//	logger := log.GetLoggerWithName("DataTransformation")
//	logger.Info("Read train and test data completed", log.SamplesKey, 1000)
package log

import "context"

// Logger is a leveled structured logger. An error field value is written as its message,
// plus a stacktrace field when it carries a cockroachdb/errors stack.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	// With returns a logger that adds fields to every record.
	With(fields ...any) Logger
	Enabled(ctx context.Context, level Level) bool
}

// Level orders records by severity. The values match log/slog.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the name accepted by ParseLevel.
func (l Level) String() string {
	switch {
	case l <= LevelDebug:
		return "debug"
	case l <= LevelInfo:
		return "info"
	case l <= LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// LoggerProvider hands out loggers sharing one sink and level.
type LoggerProvider interface {
	GetLogger() Logger
	// GetLoggerWithName tags records with ComponentKey.
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}
