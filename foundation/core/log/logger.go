// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type used by every ghll component. The
//              public API keeps the field-map style while the records are
//              written through log/slog handlers, fanned out with slog-multi
//              when more than one output is configured.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2025-03-02 v0.2.0: slog backend, multi-output, async mode removed

package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level        Level
	format       Format
	outputs      []io.Writer
	jsonOutputs  []io.Writer
	name         string
	enableCaller bool
	handler      slog.Handler

	contextFields Fields

	mutex sync.RWMutex
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format

	// Output is the primary destination. Outputs are written in addition.
	Output  io.Writer
	Outputs []io.Writer

	// JSONOutputs always receive JSON, e.g. a log file next to a text console
	JSONOutputs []io.Writer

	Name         string
	EnableCaller bool
}

// New creates a new logger writing text to stderr at the default level
func New() *Logger {
	return NewWithConfig(Config{
		Level:  DefaultLevel(),
		Format: FormatText,
	})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	var outputs []io.Writer
	if config.Output != nil {
		outputs = append(outputs, config.Output)
	}
	outputs = append(outputs, config.Outputs...)
	if len(outputs) == 0 && len(config.JSONOutputs) == 0 {
		outputs = []io.Writer{os.Stderr}
	}

	return &Logger{
		level:         config.Level,
		format:        config.Format,
		outputs:       outputs,
		jsonOutputs:   config.JSONOutputs,
		name:          config.Name,
		enableCaller:  config.EnableCaller,
		handler:       newHandler(config.Format, outputs, config.JSONOutputs, config.EnableCaller),
		contextFields: make(Fields),
	}
}

// WithLevel returns a copy of the logger with a different minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithOutput returns a copy of the logger writing only to w
func (l *Logger) WithOutput(w io.Writer) *Logger {
	clone := l.clone()
	clone.outputs = []io.Writer{w}
	clone.jsonOutputs = nil
	clone.handler = newHandler(clone.format, clone.outputs, nil, clone.enableCaller)
	return clone
}

// WithName returns a copy of the logger with a different name
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField returns a copy of the logger with an additional context field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy of the logger with additional context fields
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// Fatal logs a fatal level message and exits the program
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, nil, fields...)
	os.Exit(1)
}

// Audit logs an audit level message (always logged regardless of level)
func (l *Logger) Audit(message string, fields ...Fields) {
	l.log(LevelAudit, message, nil, fields...)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs an error, choosing the level from the severity of a
// structured error. Plain errors are logged at error level.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	mdwErr, ok := err.(*mdwerror.Error)
	if !ok {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     mdwErr.Code().String(),
		"error_severity": mdwErr.Severity().String(),
	}
	if op := mdwErr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range mdwErr.Details() {
		fields["error_"+k] = v
	}

	switch mdwErr.Severity() {
	case mdwerror.SeverityLow:
		l.log(LevelInfo, err.Error(), nil, fields)
	case mdwerror.SeverityMedium:
		l.log(LevelWarn, err.Error(), nil, fields)
	default:
		l.log(LevelError, err.Error(), nil, fields)
	}
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return level.ShouldLog(l.level)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.level
}

// SetLevel changes the level of this logger in place
func (l *Logger) SetLevel(level Level) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.level = level
}

// Slog returns a *slog.Logger sharing this logger's handlers and context
// fields, for libraries that expect the standard interface.
func (l *Logger) Slog() *slog.Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	h := l.handler.WithAttrs(l.contextFields.attrs())
	if l.name != "" {
		h = h.WithAttrs([]slog.Attr{slog.String("logger", l.name)})
	}
	return slog.New(h)
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	l.mutex.RLock()
	if !level.ShouldLog(l.level) {
		l.mutex.RUnlock()
		return
	}
	handler := l.handler
	name := l.name
	enableCaller := l.enableCaller
	contextAttrs := l.contextFields.attrs()
	l.mutex.RUnlock()

	var pc uintptr
	if enableCaller {
		// skip runtime.Callers, log and the exported level method
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		pc = pcs[0]
	}

	record := slog.NewRecord(time.Now(), level.slogLevel(), message, pc)
	if name != "" {
		record.AddAttrs(slog.String("logger", name))
	}
	record.AddAttrs(contextAttrs...)

	var merged Fields
	for _, fieldSet := range fields {
		merged = merged.Merge(fieldSet)
	}
	record.AddAttrs(merged.attrs()...)

	if err != nil {
		record.AddAttrs(slog.String("error", err.Error()))
	}

	_ = handler.Handle(context.Background(), record)
}

func (l *Logger) clone() *Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return &Logger{
		level:         l.level,
		format:        l.format,
		outputs:       l.outputs,
		jsonOutputs:   l.jsonOutputs,
		name:          l.name,
		enableCaller:  l.enableCaller,
		handler:       l.handler,
		contextFields: l.contextFields.Clone(),
	}
}

var (
	defaultLogger = New()
	defaultMutex  sync.RWMutex
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMutex.RLock()
	defer defaultMutex.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	if logger == nil {
		return
	}
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	defaultLogger = logger
}

// Debug logs a debug message using the default logger
func Debug(message string, fields ...Fields) {
	GetDefault().Debug(message, fields...)
}

// Info logs an info message using the default logger
func Info(message string, fields ...Fields) {
	GetDefault().Info(message, fields...)
}

// Warn logs a warning message using the default logger
func Warn(message string, fields ...Fields) {
	GetDefault().Warn(message, fields...)
}

// Error logs an error message using the default logger
func Error(message string, fields ...Fields) {
	GetDefault().Error(message, fields...)
}
