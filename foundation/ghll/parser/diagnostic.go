// File: diagnostic.go
// Title: Parser Diagnostics
// Description: Side channel describing input the lexer and parser absorbed
//              instead of failing on it.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial diagnostics

package parser

import (
	"fmt"
)

// DiagnosticKind classifies a diagnostic
type DiagnosticKind int

const (
	// DiagnosticBadCharacter: an unrecognized character was dropped
	DiagnosticBadCharacter DiagnosticKind = iota

	// DiagnosticInvalidNumber: a digit run did not decode and became 0
	DiagnosticInvalidNumber

	// DiagnosticMissingToken: an expected token was fabricated
	DiagnosticMissingToken

	// DiagnosticUnconsumedToken: a token was left over after parsing
	DiagnosticUnconsumedToken
)

// String returns the string representation of the diagnostic kind
func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticBadCharacter:
		return "bad-character"
	case DiagnosticInvalidNumber:
		return "invalid-number"
	case DiagnosticMissingToken:
		return "missing-token"
	case DiagnosticUnconsumedToken:
		return "unconsumed-token"
	default:
		return "unknown"
	}
}

// Diagnostic describes one absorbed anomaly at a byte offset of the input
type Diagnostic struct {
	Kind     DiagnosticKind
	Position int
	Message  string
}

// String returns e.g. "3: bad-character: unexpected character '#'"
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s: %s", d.Position, d.Kind, d.Message)
}
