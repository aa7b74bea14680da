// ============================================================================
// ghll - Arithmetic Line Parser
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	mdwlog "github.com/msto63/ghll/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format
	Format string // "json" or "text" (default: text)

	// File additionally receives every record in JSON when set
	File string

	// Console is the terminal destination (default: stderr)
	Console io.Writer

	// Additional outputs
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
	}
}

// NewLogger creates a logger from cfg. The returned closer releases the
// log file and must be called on shutdown; it is a no-op without a file.
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, io.Closer, error) {
	level := parseLevel(cfg.Level)

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil && cfg.Format != "" {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}
	if cfg.Format == "" {
		format = mdwlog.FormatText
	}

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	config := mdwlog.Config{
		Level:   level,
		Format:  format,
		Output:  console,
		Outputs: cfg.AdditionalOutputs,
		Name:    cfg.ServiceName,
	}

	if cfg.File == "" {
		return mdwlog.NewWithConfig(config), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("logging: failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: failed to open log file: %w", err)
	}

	// The file always gets JSON so it stays machine readable.
	config.JSONOutputs = []io.Writer{file}
	return mdwlog.NewWithConfig(config), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// parseLevel converts a string level to mdwlog.Level, defaulting to info
func parseLevel(level string) mdwlog.Level {
	parsed, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelInfo
	}
	return parsed
}
