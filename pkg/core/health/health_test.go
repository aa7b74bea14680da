package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func statusCheck(s Status) CheckFunc {
	return func(ctx context.Context) CheckResult {
		return CheckResult{Status: s}
	}
}

func TestRegistry_Check(t *testing.T) {
	registry := NewRegistry("ghll", "0.1.0")
	registry.Register("history", statusCheck(StatusHealthy))
	registry.Register("engine", func(ctx context.Context) CheckResult {
		return CheckResult{Name: "ignored", Status: StatusHealthy, Message: "probe parsed"}
	})

	report := registry.Check(context.Background())

	if report.Service != "ghll" || report.Version != "0.1.0" {
		t.Errorf("Service, Version = %v, %v; want ghll, 0.1.0", report.Service, report.Version)
	}
	if report.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Fatalf("Checks count = %v, want 2", len(report.Checks))
	}
	// sorted by name, names taken from the registration
	if report.Checks[0].Name != "engine" || report.Checks[1].Name != "history" {
		t.Errorf("Checks = %v, %v; want engine, history", report.Checks[0].Name, report.Checks[1].Name)
	}
	if report.Checks[0].Message != "probe parsed" {
		t.Errorf("Message = %q, want 'probe parsed'", report.Checks[0].Message)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	registry := NewRegistry("ghll", "0.1.0")
	registry.Register("cache", statusCheck(StatusUnhealthy))
	registry.Register("cache", statusCheck(StatusHealthy))

	report := registry.Check(context.Background())
	if len(report.Checks) != 1 || report.Status != StatusHealthy {
		t.Errorf("report = %d checks, %v; want 1 check, healthy", len(report.Checks), report.Status)
	}
}

func TestRegistry_Names(t *testing.T) {
	registry := NewRegistry("ghll", "0.1.0")
	for _, name := range []string{"history", "cache", "engine"} {
		registry.Register(name, statusCheck(StatusHealthy))
	}

	got := registry.Names()
	want := []string{"cache", "engine", "history"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRegistry_OverallStatus(t *testing.T) {
	tests := []struct {
		name   string
		checks []Status
		want   Status
	}{
		{"none", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("ghll", "0.1.0")
			for i, s := range tt.checks {
				registry.Register(string(rune('a'+i)), statusCheck(s))
			}
			if got := registry.Check(context.Background()).Status; got != tt.want {
				t.Errorf("Status = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_ConcurrentChecks(t *testing.T) {
	registry := NewRegistry("ghll", "0.1.0")

	var counter int32
	for i := 0; i < 5; i++ {
		registry.Register("check"+string(rune('A'+i)), func(ctx context.Context) CheckResult {
			atomic.AddInt32(&counter, 1)
			time.Sleep(10 * time.Millisecond)
			return CheckResult{Status: StatusHealthy}
		})
	}

	start := time.Now()
	report := registry.Check(context.Background())
	duration := time.Since(start)

	if atomic.LoadInt32(&counter) != 5 {
		t.Errorf("Counter = %v, want 5", counter)
	}
	if duration > 100*time.Millisecond {
		t.Errorf("Duration = %v, expected concurrent execution", duration)
	}
	for _, c := range report.Checks {
		if c.DurationMs <= 0 {
			t.Errorf("%s DurationMs = %v, want > 0", c.Name, c.DurationMs)
		}
	}
}

func TestRegistry_Handler(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		wantCode int
	}{
		{"healthy", StatusHealthy, http.StatusOK},
		{"degraded", StatusDegraded, http.StatusOK},
		{"unhealthy", StatusUnhealthy, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("ghll", "0.1.0")
			registry.Register("engine", statusCheck(tt.status))

			rec := httptest.NewRecorder()
			registry.Handler(time.Second).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tt.wantCode)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			var report Report
			if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if report.Status != tt.status {
				t.Errorf("report status = %v, want %v", report.Status, tt.status)
			}
			if len(report.Checks) != 1 || report.Checks[0].Name != "engine" {
				t.Errorf("report checks = %+v, want one engine check", report.Checks)
			}
		})
	}
}

func TestRegistry_HandlerTimeout(t *testing.T) {
	registry := NewRegistry("ghll", "0.1.0")
	registry.Register("history", func(ctx context.Context) CheckResult {
		select {
		case <-ctx.Done():
			return CheckResult{Status: StatusDegraded, Message: ctx.Err().Error()}
		case <-time.After(time.Second):
			return CheckResult{Status: StatusHealthy}
		}
	})

	rec := httptest.NewRecorder()
	start := time.Now()
	registry.Handler(20*time.Millisecond).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Handler took %v, want the 20ms timeout applied", elapsed)
	}
	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if report.Status != StatusDegraded {
		t.Errorf("report status = %v, want degraded", report.Status)
	}
}

func TestReport_String(t *testing.T) {
	report := &Report{
		Service: "ghll",
		Version: "0.1.0",
		Status:  StatusHealthy,
		Checks:  []CheckResult{{}, {}},
	}

	want := "ghll 0.1.0: healthy (2 checks)"
	if got := report.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
