// Package monitoring exposes Prometheus metrics and health checks for the
// content service.
package monitoring

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/conneroisu/lectern/internal/catalog"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/registry"
	"github.com/conneroisu/lectern/internal/store"
)

// Namespace prefixes every metric name.
const Namespace = "lectern"

// Metrics holds the collectors of one process. Each instance owns its own
// registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	lookups         *prometheus.CounterVec
	reloads         *prometheus.CounterVec
	generation      prometheus.Gauge
	catalogItems    *prometheus.GaugeVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	websocketClient prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "content_lookups_total",
			Help:      "Content lookups by domain, locale and how they were answered",
		}, []string{"domain", "locale", "outcome"}),
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "content_reloads_total",
			Help:      "Content reloads by result",
		}, []string{"result"}),
		generation: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "content_generation",
			Help:      "Generation of the snapshot being served",
		}),
		catalogItems: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "catalog_items",
			Help:      "Records and overrides in the snapshot being served",
		}, []string{"kind"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		websocketClient: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "websocket_clients",
			Help:      "Connected live reload clients",
		}),
	}
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordLookup implements catalog.Recorder.
func (m *Metrics) RecordLookup(domain string, l locale.Locale, outcome catalog.Outcome) {
	m.lookups.WithLabelValues(domain, string(l), string(outcome)).Inc()
}

// ObserveSnapshot records the snapshot now being served.
func (m *Metrics) ObserveSnapshot(generation uint64, stats store.Stats) {
	m.generation.Set(float64(generation))
	m.catalogItems.WithLabelValues("documents").Set(float64(stats.Documents))
	m.catalogItems.WithLabelValues("kotlin_lessons").Set(float64(stats.KotlinLessons))
	m.catalogItems.WithLabelValues("web_lessons").Set(float64(stats.WebLessons))
	m.catalogItems.WithLabelValues("blog_posts").Set(float64(stats.BlogPosts))
	m.catalogItems.WithLabelValues("categories").Set(float64(stats.Categories))
	m.catalogItems.WithLabelValues("overrides").Set(float64(stats.Overrides))
}

// ObserveEvent records a registry event.
func (m *Metrics) ObserveEvent(event registry.SnapshotEvent) {
	switch event.Type {
	case registry.EventTypeReplaced:
		m.reloads.WithLabelValues("success").Inc()
		m.ObserveSnapshot(event.Generation, event.Stats)
	case registry.EventTypeReloadFailed:
		m.reloads.WithLabelValues("failure").Inc()
	}
}

// Follow records registry events until ctx is done or the channel closes.
func (m *Metrics) Follow(ctx context.Context, events <-chan registry.SnapshotEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			m.ObserveEvent(event)
		}
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, code).Inc()
	m.httpDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}

// SetWebsocketClients records the number of live reload clients.
func (m *Metrics) SetWebsocketClients(n int) {
	m.websocketClient.Set(float64(n))
}
