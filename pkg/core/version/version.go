// ============================================================================
// ghll - Arithmetic Line Parser
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and the servers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the ghll components
const (
	// Platform version
	Platform = "0.1.0"

	// Component versions
	Core   = "0.1.0"
	Server = "0.1.0"
	REPL   = "0.1.0"
)

// Set at build time with -ldflags "-X github.com/msto63/ghll/pkg/core/version.GitCommit=..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "core":
		return Core
	case "server":
		return Server
	case "repl":
		return REPL
	default:
		return Platform
	}
}

// Info returns the single-line version string reported by servers
func Info() string {
	return fmt.Sprintf("ghll v%s (%s, built %s, %s)", Platform, GitCommit, BuildDate, runtime.Version())
}

// Details returns the multi-line version block printed by the CLI
func Details() string {
	return fmt.Sprintf("ghll v%s\n  Git Commit: %s\n  Build Date: %s\n  Go Version: %s\n  OS/Arch:    %s/%s\n",
		Platform, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
