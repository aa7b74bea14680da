// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels used to pick log levels for errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-03-02 v0.2.0: Severity mapping for the ghll code set

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates invalid user input or a missing record
	SeverityLow Severity = iota

	// SeverityMedium indicates a failure with an obvious workaround
	SeverityMedium

	// SeverityHigh indicates a failing dependency such as the history database
	SeverityHigh

	// SeverityCritical indicates the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeServiceInitialization:
		return SeverityCritical
	case CodeDatabaseError, CodeServiceUnavailable, CodeInvalidConfig:
		return SeverityHigh
	case CodeInvalidInput, CodeNotFound, CodeValidationFailed, CodeInvalidLength:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
