// Package log provides structured logging for ghll.
//
// Package: log
// Title: ghll Structured Logging
// Description: Field-map logging API on top of log/slog. Each logger carries
//              a name, a minimum level and context fields. Records go to one
//              or more writers; several writers are combined with slog-multi.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-03-02 v0.2.0: slog backend
//
// Usage:
//
//	import mdwlog "github.com/msto63/ghll/foundation/core/log"
//
//	logger := mdwlog.NewWithConfig(mdwlog.Config{
//		Level:  mdwlog.LevelDebug,
//		Format: mdwlog.FormatJSON,
//		Output: os.Stderr,
//	}).WithField("component", "parser")
//
//	logger.Debug("token consumed", mdwlog.Fields{"kind": "NumberToken", "position": 4})
//
//	timer := logger.StartTimer("parse")
//	// ... parse a line
//	timer.Stop()
package log
