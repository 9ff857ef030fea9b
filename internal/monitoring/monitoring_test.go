package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/lectern/internal/catalog"
	"github.com/conneroisu/lectern/internal/content"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/logging"
	"github.com/conneroisu/lectern/internal/registry"
	"github.com/conneroisu/lectern/internal/store"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func testLogger() logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{Level: logging.LevelError, Format: logging.FormatJSON, Output: io.Discard})
}

func lessonStore(t *testing.T, lessons int) *store.Store {
	t.Helper()

	b := store.NewBuilder("test")
	for i := 0; i < lessons; i++ {
		require.NoError(t, b.AddKotlinLesson(content.KotlinLesson{ID: fmt.Sprintf("l%d", i), Step: i + 1}))
	}
	return b.Build()
}

func TestMetrics_Lookups(t *testing.T) {
	m := NewMetrics()

	svc := catalog.New(catalog.Fixed(lessonStore(t, 1)), catalog.WithRecorder(m))
	_, err := svc.KotlinLesson(locale.English, "l0")
	require.NoError(t, err)
	_, err = svc.KotlinLesson(locale.Spanish, "l0")
	require.NoError(t, err)
	_, err = svc.KotlinLesson(locale.Spanish, "missing")
	require.Error(t, err)

	out := scrape(t, m)
	assert.Contains(t, out, `lectern_content_lookups_total{domain="kotlin_lesson",locale="en",outcome="canonical"} 1`)
	assert.Contains(t, out, `lectern_content_lookups_total{domain="kotlin_lesson",locale="es",outcome="fallback"} 1`)
	assert.Contains(t, out, `lectern_content_lookups_total{domain="kotlin_lesson",locale="es",outcome="not_found"} 1`)
	assert.Contains(t, out, "go_goroutines")
}

func TestMetrics_Events(t *testing.T) {
	m := NewMetrics()
	reg := registry.New(lessonStore(t, 1))
	events := reg.Watch()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Follow(ctx, events)
		close(done)
	}()

	reg.Replace(lessonStore(t, 3))
	require.Error(t, reg.Reload(func() (*store.Store, error) { return nil, fmt.Errorf("bad yaml") }))

	require.Eventually(t, func() bool {
		return strings.Contains(scrape(t, m), `lectern_content_reloads_total{result="failure"} 1`)
	}, time.Second, 10*time.Millisecond)

	out := scrape(t, m)
	assert.Contains(t, out, `lectern_content_reloads_total{result="success"} 1`)
	assert.Contains(t, out, `lectern_content_generation 2`)
	assert.Contains(t, out, `lectern_catalog_items{kind="kotlin_lessons"} 3`)

	cancel()
	<-done
}

func TestMetrics_Requests(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest(http.MethodGet, "/api/{locale}/docs/{id}", http.StatusNotFound, 15*time.Millisecond)
	m.SetWebsocketClients(2)

	out := scrape(t, m)
	assert.Contains(t, out, `lectern_http_requests_total{method="GET",route="/api/{locale}/docs/{id}",status="404"} 1`)
	assert.Contains(t, out, `lectern_http_request_duration_seconds_count{method="GET",route="/api/{locale}/docs/{id}",status="404"} 1`)
	assert.Contains(t, out, "lectern_websocket_clients 2")
}

func TestHealthMonitor(t *testing.T) {
	reg := registry.New(lessonStore(t, 2))
	tracker := &ReloadTracker{}

	hm := NewHealthMonitor(testLogger())
	hm.RegisterCheck(SnapshotHealthChecker(reg))
	hm.RegisterCheck(tracker.Checker())
	assert.Equal(t, []string{"catalog", "reload"}, hm.CheckNames())

	health := hm.Check(context.Background())
	assert.Equal(t, HealthStatusHealthy, health.Status)
	assert.True(t, health.Checks["catalog"].Critical)
	assert.Equal(t, "test", health.Checks["catalog"].Metadata["source"])
	assert.NotNil(t, health.Build)

	tracker.Observe(registry.SnapshotEvent{Type: registry.EventTypeReloadFailed, Err: fmt.Errorf("bad yaml"), Timestamp: time.Now()})
	health = hm.Check(context.Background())
	assert.Equal(t, HealthStatusDegraded, health.Status)
	assert.Contains(t, health.Checks["reload"].Message, "bad yaml")

	tracker.Observe(registry.SnapshotEvent{Type: registry.EventTypeReplaced, Timestamp: time.Now()})
	assert.Equal(t, HealthStatusHealthy, hm.Check(context.Background()).Status)

	reg.Replace(store.NewBuilder("empty").Build())
	assert.Equal(t, HealthStatusUnhealthy, hm.Check(context.Background()).Status)
}

func TestHealthMonitor_HTTPHandler(t *testing.T) {
	tests := []struct {
		name       string
		snapshot   *store.Store
		wantStatus int
		wantHealth HealthStatus
	}{
		{"healthy", nil, http.StatusOK, HealthStatusHealthy},
		{"empty catalog", store.NewBuilder("empty").Build(), http.StatusServiceUnavailable, HealthStatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := tt.snapshot
			if snapshot == nil {
				snapshot = lessonStore(t, 1)
			}
			hm := NewHealthMonitor(testLogger())
			hm.RegisterCheck(SnapshotHealthChecker(registry.New(snapshot)))

			rec := httptest.NewRecorder()
			hm.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantHealth, body.Status)
		})
	}
}

func TestOverallStatus(t *testing.T) {
	assert.Equal(t, HealthStatusHealthy, overallStatus(nil))
	assert.Equal(t, HealthStatusDegraded, overallStatus([]HealthCheck{
		{Status: HealthStatusHealthy, Critical: true},
		{Status: HealthStatusUnhealthy},
	}))
	assert.Equal(t, HealthStatusUnhealthy, overallStatus([]HealthCheck{
		{Status: HealthStatusDegraded},
		{Status: HealthStatusUnhealthy, Critical: true},
	}))
}
