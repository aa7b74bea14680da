package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Platform", Platform},
		{"Core", Core},
		{"Server", Server},
		{"REPL", REPL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s = %q, want semantic version", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"core", Core},
		{"server", Server},
		{"repl", REPL},
		{"unknown", Platform},
		{"", Platform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComponentVersion(tt.name); got != tt.expected {
				t.Errorf("ComponentVersion(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, "ghll v"+Platform) {
		t.Errorf("Info() = %q", info)
	}
	if !strings.Contains(info, runtime.Version()) {
		t.Errorf("Info() = %q, want Go version", info)
	}
}

func TestDetails(t *testing.T) {
	details := Details()
	for _, want := range []string{"Git Commit: " + GitCommit, "Build Date: " + BuildDate, runtime.GOOS} {
		if !strings.Contains(details, want) {
			t.Errorf("Details() missing %q:\n%s", want, details)
		}
	}
}
