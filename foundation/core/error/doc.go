// Package error provides structured error handling for ghll.
//
// Package: error
// Title: Error Handling Framework
// Description: Structured errors with codes, severities, operations and
//              details. The parsing core never returns errors; everything
//              around it (configuration, history journal, servers, CLI)
//              reports failures through this package.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-03-02 v0.2.0: Trimmed for ghll
//
// Usage:
//
//	import mdwerror "github.com/msto63/ghll/foundation/core/error"
//
//	err := mdwerror.New("history database unavailable").
//		WithCode(mdwerror.CodeDatabaseError).
//		WithOperation("history.Open").
//		WithDetail("path", path)
//
//	if mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
//		// fall back to an in-memory session
//	}
package error
