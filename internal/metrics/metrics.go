// Package metrics implements the observability hooks with Prometheus
// collectors.
package metrics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/observability"
)

const namespace = "prospect"

// Metrics holds the collectors. It implements every hook interface of the
// observability package.
type Metrics struct {
	loads        *prometheus.CounterVec
	loadDuration prometheus.Histogram
	stale        prometheus.Counter

	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec

	served        *prometheus.CounterVec
	serveDuration *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "panel_loads_total",
			Help: "Panel loads applied, by result.",
		}, []string{"result"}),
		loadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "panel_load_duration_seconds",
			Help:    "Time from starting a load to its applied completion.",
			Buckets: prometheus.DefBuckets,
		}),
		stale: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "panel_stale_completions_total",
			Help: "Completions dropped because a newer load had started.",
		}),
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "renders_total",
			Help: "Layout engine runs, by format and result.",
		}, []string{"format", "result"}),
		renderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "render_duration_seconds",
			Help:    "Layout engine run time.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"format"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_events_total",
			Help: "Cache hits, misses and writes, by key type.",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_written_bytes_total",
			Help: "Bytes written to the cache.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "fetch_responses_total",
			Help: "Responses to graph description fetches, by host and status code.",
		}, []string{"host", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "fetch_duration_seconds",
			Help:    "Graph description fetch latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"host"}),
		httpErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "fetch_errors_total",
			Help: "Graph description fetches that got no response.",
		}, []string{"host"}),
		served: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "Requests served, by route and status code.",
		}, []string{"route", "code"}),
		serveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "Time spent serving requests, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Install registers m as the process-wide observability hooks.
func (m *Metrics) Install() {
	observability.SetLoadHooks(m)
	observability.SetRenderHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.GetCode(err); code != "" {
		return strings.ToLower(string(code))
	}
	return "error"
}

func (m *Metrics) OnLoadStart(context.Context, string, uint64) {}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, _ uint64, d time.Duration, err error) {
	m.loads.WithLabelValues(result(err)).Inc()
	m.loadDuration.Observe(d.Seconds())
}

func (m *Metrics) OnStale(context.Context, string, uint64, uint64) {
	m.stale.Inc()
}

func (m *Metrics) OnRenderStart(context.Context, string, int) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	m.renders.WithLabelValues(format, result(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.httpErrors.WithLabelValues(host).Inc()
}

// ObserveRequest records a request served by the HTTP server.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	m.served.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.serveDuration.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ observability.LoadHooks   = (*Metrics)(nil)
	_ observability.RenderHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)
