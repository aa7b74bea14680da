// Package health aggregates the named checks a ghll server runs against its
// engine, result cache and history journal, and serves the report as JSON.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/msto63/ghll/pkg/core/logging"
)

// Status represents the health status of one check or the whole server
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// rank orders statuses so the worst check decides the overall status
func (s Status) rank() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// CheckResult is the outcome of one check
type CheckResult struct {
	Name       string                 `json:"name"`
	Status     Status                 `json:"status"`
	Message    string                 `json:"message,omitempty"`
	DurationMs float64                `json:"duration_ms"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// CheckFunc probes one dependency. Checks must honour ctx.
type CheckFunc func(ctx context.Context) CheckResult

// Report is the combined result of all checks, sorted by name
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	UptimeMs  int64         `json:"uptime_ms"`
	CheckedAt time.Time     `json:"checked_at"`
	Checks    []CheckResult `json:"checks"`
}

// String returns a one-line summary for logs
func (r *Report) String() string {
	return fmt.Sprintf("%s %s: %s (%d checks)", r.Service, r.Version, r.Status, len(r.Checks))
}

// Registry holds the named checks of one server
type Registry struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	service string
	version string
	started time.Time
	logger  *logging.Logger
}

// NewRegistry creates an empty registry for service at version
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checks:  make(map[string]CheckFunc),
		service: service,
		version: version,
		started: time.Now(),
		logger:  logging.New("ghll-health"),
	}
}

// Register adds or replaces the check called name
func (r *Registry) Register(name string, fn CheckFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = fn
}

// Names returns the registered check names in order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs all checks concurrently and waits for every one of them
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checks := make(map[string]CheckFunc, len(r.checks))
	for name, fn := range r.checks {
		checks[name] = fn
	}
	r.mu.RUnlock()

	results := make([]CheckResult, 0, len(checks))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, fn := range checks {
		wg.Add(1)
		go func(name string, fn CheckFunc) {
			defer wg.Done()
			start := time.Now()
			result := fn(ctx)
			result.Name = name
			result.DurationMs = float64(time.Since(start).Nanoseconds()) / 1e6

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(name, fn)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	overall := StatusHealthy
	for _, result := range results {
		if result.Status.rank() > overall.rank() {
			overall = result.Status
		}
		if result.Status != StatusHealthy {
			r.logger.Warn("Health check not healthy",
				"check", result.Name,
				"status", string(result.Status),
				"message", result.Message,
			)
		}
	}

	return &Report{
		Service:   r.service,
		Version:   r.version,
		Status:    overall,
		UptimeMs:  time.Since(r.started).Milliseconds(),
		CheckedAt: time.Now(),
		Checks:    results,
	}
}

// Handler serves the report as JSON; 503 when unhealthy. Each request gets
// at most timeout for all checks together.
func (r *Registry) Handler(timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		report := r.Check(ctx)
		r.logger.Debug("Health report served", "summary", report.String())
		code := http.StatusOK
		if report.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			r.logger.Error("Failed to write health report", "error", err)
		}
	})
}
