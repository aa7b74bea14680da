// File: format.go
// Title: Log Output Formats
// Description: Selects the slog handler used for each output writer. JSON
//              is meant for files and log shippers, text for terminals.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with JSON, text, console and logfmt formatters
// - 2025-03-02 v0.2.0: Formatters replaced by slog handlers

package log

import (
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Format represents the output format for log entries
type Format int

const (
	// FormatJSON writes one JSON object per line
	FormatJSON Format = iota

	// FormatText writes key=value pairs per line
	FormatText
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a log format
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return FormatJSON, nil
	case "text", "txt", "console", "logfmt":
		return FormatText, nil
	default:
		return FormatJSON, &ParseError{
			Input: format,
			Type:  "format",
		}
	}
}

// newHandler builds one handler per output and fans them out when there is
// more than one. jsonOutputs always get JSON regardless of format. Level
// filtering happens in the Logger, so the handlers accept everything down
// to trace.
func newHandler(format Format, outputs, jsonOutputs []io.Writer, addSource bool) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   addSource,
		Level:       LevelTrace.slogLevel(),
		ReplaceAttr: replaceLevelName,
	}

	handlers := make([]slog.Handler, 0, len(outputs)+len(jsonOutputs))
	for _, w := range outputs {
		if format == FormatText {
			handlers = append(handlers, slog.NewTextHandler(w, opts))
		} else {
			handlers = append(handlers, slog.NewJSONHandler(w, opts))
		}
	}
	for _, w := range jsonOutputs {
		handlers = append(handlers, slog.NewJSONHandler(w, opts))
	}

	if len(handlers) == 1 {
		return handlers[0]
	}
	return slogmulti.Fanout(handlers...)
}

func replaceLevelName(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelFromSlog(lvl).String())
		}
	}
	return a
}
