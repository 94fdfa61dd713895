package log

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Record is one captured log record.
type Record struct {
	Level   Level
	Message string
	Fields  map[string]any
}

type recordSink struct {
	mu      sync.Mutex
	level   Level
	records []Record
}

// TestLogger keeps records in memory. Loggers derived with With share the records.
type TestLogger struct {
	sink   *recordSink
	fields map[string]any
}

// NewTestLogger returns a TestLogger that drops records below level.
func NewTestLogger(level Level) *TestLogger {
	return &TestLogger{sink: &recordSink{level: level}, fields: map[string]any{}}
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.record(LevelDebug, msg, fields) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.record(LevelInfo, msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.record(LevelWarn, msg, fields) }
func (t *TestLogger) Error(msg string, fields ...any) { t.record(LevelError, msg, fields) }

func (t *TestLogger) With(fields ...any) Logger {
	return &TestLogger{sink: t.sink, fields: mergeFields(t.fields, fields)}
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()
	return level >= t.sink.level
}

func (t *TestLogger) record(level Level, msg string, fields []any) {
	if !t.Enabled(context.Background(), level) {
		return
	}
	r := Record{Level: level, Message: msg, Fields: mergeFields(t.fields, fields)}
	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()
	t.sink.records = append(t.sink.records, r)
}

// mergeFields copies base and adds the key/value pairs. Errors are stored as their message.
func mergeFields(base map[string]any, fields []any) map[string]any {
	out := lo.Assign(base)
	for i := 0; i+1 < len(fields); i += 2 {
		value := fields[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		out[fmt.Sprint(fields[i])] = value
	}
	return out
}

// Records returns a copy of the captured records in order.
func (t *TestLogger) Records() []Record {
	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()
	return append([]Record(nil), t.sink.records...)
}

// ContainsMessage reports whether a record message contains message.
func (t *TestLogger) ContainsMessage(message string) bool {
	return lo.ContainsBy(t.Records(), func(r Record) bool {
		return strings.Contains(r.Message, message)
	})
}

// ContainsField reports whether a record has key set to value, compared by their %v form.
func (t *TestLogger) ContainsField(key string, value any) bool {
	return lo.ContainsBy(t.Records(), func(r Record) bool {
		v, ok := r.Fields[key]
		return ok && fmt.Sprint(v) == fmt.Sprint(value)
	})
}

// Reset drops the captured records.
func (t *TestLogger) Reset() {
	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()
	t.sink.records = nil
}

// TestLoggerProvider is a LoggerProvider whose loggers all record into one TestLogger.
type TestLoggerProvider struct {
	logger *TestLogger
}

func NewTestLoggerProvider(level Level) (*TestLoggerProvider, *TestLogger) {
	logger := NewTestLogger(level)
	return &TestLoggerProvider{logger: logger}, logger
}

func (p *TestLoggerProvider) GetLogger() Logger { return p.logger }

func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.logger.With(ComponentKey, name)
}

func (p *TestLoggerProvider) SetLevel(level Level) {
	p.logger.sink.mu.Lock()
	defer p.logger.sink.mu.Unlock()
	p.logger.sink.level = level
}
