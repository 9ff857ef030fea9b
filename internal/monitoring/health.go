package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/conneroisu/lectern/internal/logging"
	"github.com/conneroisu/lectern/internal/registry"
	"github.com/conneroisu/lectern/internal/store"
	"github.com/conneroisu/lectern/internal/version"
)

// HealthStatus represents the health status of a component
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusDegraded  HealthStatus = "degraded"
)

// HealthCheck represents a single health check result
type HealthCheck struct {
	Name     string                 `json:"name"`
	Status   HealthStatus           `json:"status"`
	Message  string                 `json:"message,omitempty"`
	Duration time.Duration          `json:"duration"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Critical bool                   `json:"critical"`
}

// HealthChecker defines the interface for health check functions
type HealthChecker interface {
	Check(ctx context.Context) HealthCheck
	Name() string
	IsCritical() bool
}

// HealthCheckFunc is a function that implements HealthChecker
type HealthCheckFunc struct {
	name     string
	checkFn  func(ctx context.Context) HealthCheck
	critical bool
}

// Check executes the health check function
func (h *HealthCheckFunc) Check(ctx context.Context) HealthCheck {
	return h.checkFn(ctx)
}

// Name returns the health check name
func (h *HealthCheckFunc) Name() string {
	return h.name
}

// IsCritical returns whether this check is critical
func (h *HealthCheckFunc) IsCritical() bool {
	return h.critical
}

// NewHealthCheckFunc creates a new health check function
func NewHealthCheckFunc(
	name string,
	critical bool,
	checkFn func(ctx context.Context) HealthCheck,
) *HealthCheckFunc {
	return &HealthCheckFunc{
		name:     name,
		checkFn:  checkFn,
		critical: critical,
	}
}

// HealthMonitor runs the registered checks on demand
type HealthMonitor struct {
	checks    map[string]HealthChecker
	mutex     sync.RWMutex
	logger    logging.Logger
	timeout   time.Duration
	startTime time.Time
}

// HealthResponse represents the overall health response
type HealthResponse struct {
	Status    HealthStatus           `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Build     *version.BuildInfo     `json:"build"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// NewHealthMonitor creates a new health monitor
func NewHealthMonitor(logger logging.Logger) *HealthMonitor {
	return &HealthMonitor{
		checks:    make(map[string]HealthChecker),
		logger:    logger.WithComponent("health"),
		timeout:   5 * time.Second,
		startTime: time.Now(),
	}
}

// RegisterCheck registers a new health check
func (hm *HealthMonitor) RegisterCheck(checker HealthChecker) {
	hm.mutex.Lock()
	defer hm.mutex.Unlock()
	hm.checks[checker.Name()] = checker
}

// Check runs every registered check concurrently and aggregates the
// results.
func (hm *HealthMonitor) Check(ctx context.Context) HealthResponse {
	hm.mutex.RLock()
	checkers := make([]HealthChecker, 0, len(hm.checks))
	for _, checker := range hm.checks {
		checkers = append(checkers, checker)
	}
	hm.mutex.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, hm.timeout)
	defer cancel()

	results := make([]HealthCheck, len(checkers))
	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, checker HealthChecker) {
			defer wg.Done()
			start := time.Now()
			result := checker.Check(ctx)
			result.Name = checker.Name()
			result.Critical = checker.IsCritical()
			result.Duration = time.Since(start)
			results[i] = result
		}(i, checker)
	}
	wg.Wait()

	checks := make(map[string]HealthCheck, len(results))
	for _, result := range results {
		checks[result.Name] = result
		if result.Status != HealthStatusHealthy {
			hm.logger.Warn(ctx, nil, "Health check failed",
				"name", result.Name,
				"status", string(result.Status),
				"message", result.Message,
			)
		}
	}

	return HealthResponse{
		Status:    overallStatus(results),
		Timestamp: time.Now(),
		Uptime:    time.Since(hm.startTime).Round(time.Second).String(),
		Build:     version.GetBuildInfo(),
		Checks:    checks,
	}
}

// overallStatus is unhealthy when a critical check fails, degraded when any
// other check is not healthy.
func overallStatus(results []HealthCheck) HealthStatus {
	status := HealthStatusHealthy
	for _, check := range results {
		switch {
		case check.Critical && check.Status == HealthStatusUnhealthy:
			return HealthStatusUnhealthy
		case check.Status != HealthStatusHealthy:
			status = HealthStatusDegraded
		}
	}
	return status
}

// HTTPHandler returns an HTTP handler for health checks
func (hm *HealthMonitor) HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := hm.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if health.Status == HealthStatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(health); err != nil {
			hm.logger.Error(r.Context(), err, "Failed to encode health response")
		}
	}
}

// Snapshots supplies the snapshot being served
type Snapshots interface {
	Current() *store.Store
	Generation() uint64
}

// SnapshotHealthChecker fails when no content is being served.
func SnapshotHealthChecker(snapshots Snapshots) HealthChecker {
	return NewHealthCheckFunc("catalog", true, func(ctx context.Context) HealthCheck {
		s := snapshots.Current()
		if s == nil {
			return HealthCheck{Status: HealthStatusUnhealthy, Message: "no content snapshot loaded"}
		}

		stats := s.Stats()
		records := stats.Documents + stats.KotlinLessons + stats.WebLessons + stats.BlogPosts
		if records == 0 {
			return HealthCheck{Status: HealthStatusUnhealthy, Message: "content snapshot is empty"}
		}

		return HealthCheck{
			Status: HealthStatusHealthy,
			Metadata: map[string]interface{}{
				"source":     s.Source(),
				"generation": snapshots.Generation(),
				"loaded_at":  s.LoadedAt(),
				"records":    records,
				"overrides":  stats.Overrides,
			},
		}
	})
}

// ReloadTracker remembers the outcome of the latest content reload.
type ReloadTracker struct {
	mutex   sync.RWMutex
	lastErr error
	lastAt  time.Time
}

// Observe records a registry event.
func (t *ReloadTracker) Observe(event registry.SnapshotEvent) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.lastAt = event.Timestamp
	if event.Type == registry.EventTypeReloadFailed {
		t.lastErr = event.Err
	} else {
		t.lastErr = nil
	}
}

// Follow records registry events until ctx is done or the channel closes.
func (t *ReloadTracker) Follow(ctx context.Context, events <-chan registry.SnapshotEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			t.Observe(event)
		}
	}
}

// Checker reports degraded while the latest reload has failed. The
// previous snapshot is still served, so the check is not critical.
func (t *ReloadTracker) Checker() HealthChecker {
	return NewHealthCheckFunc("reload", false, func(ctx context.Context) HealthCheck {
		t.mutex.RLock()
		defer t.mutex.RUnlock()

		if t.lastErr != nil {
			return HealthCheck{
				Status:   HealthStatusDegraded,
				Message:  fmt.Sprintf("last reload failed: %v", t.lastErr),
				Metadata: map[string]interface{}{"at": t.lastAt},
			}
		}
		return HealthCheck{Status: HealthStatusHealthy}
	})
}

// CheckNames returns the registered check names in order.
func (hm *HealthMonitor) CheckNames() []string {
	hm.mutex.RLock()
	defer hm.mutex.RUnlock()

	names := make([]string, 0, len(hm.checks))
	for name := range hm.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
