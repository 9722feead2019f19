// Package metrics exposes Prometheus collectors for pipeline stages,
// lineup assembly, external calls and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sensai"

// Recorder owns a private registry. A nil *Recorder is valid and records nothing.
// ⭐ SSOT: Prometheus 메트릭은 여기서만 등록
type Recorder struct {
	registry *prometheus.Registry

	stageDuration  *prometheus.HistogramVec
	stageErrors    *prometheus.CounterVec
	rowsProcessed  *prometheus.CounterVec
	lineupsBuilt   prometheus.Counter
	lineupFillRate prometheus.Histogram
	externalCalls  *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates a Recorder with its own registry plus Go/process collectors
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	auto := promauto.With(reg)

	return &Recorder{
		registry: reg,
		stageDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		stageErrors: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_errors_total",
			Help:      "Pipeline stage failures",
		}, []string{"stage"}),
		rowsProcessed: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "rows_processed_total",
			Help:      "Player rows flowing through each stage",
		}, []string{"stage"}),
		lineupsBuilt: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lineup",
			Name:      "assembled_total",
			Help:      "Lineups assembled",
		}),
		lineupFillRate: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lineup",
			Name:      "fill_ratio",
			Help:      "Filled slots divided by requested slots",
			Buckets:   []float64{0, 0.25, 0.5, 0.75, 0.9, 1},
		}),
		externalCalls: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "external",
			Name:      "calls_total",
			Help:      "Calls to external services by outcome",
		}, []string{"service", "outcome"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "status"}),
		httpDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry returns the underlying registry (tests, custom collectors)
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveStage records a stage duration, its row count, and a failure if err != nil
func (r *Recorder) ObserveStage(stage string, started time.Time, rows int, err error) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
	if err != nil {
		r.stageErrors.WithLabelValues(stage).Inc()
		return
	}
	r.rowsProcessed.WithLabelValues(stage).Add(float64(rows))
}

// ObserveLineup records one assembled lineup
func (r *Recorder) ObserveLineup(filled, requested int) {
	if r == nil {
		return
	}
	r.lineupsBuilt.Inc()
	if requested > 0 {
		r.lineupFillRate.Observe(float64(filled) / float64(requested))
	}
}

// ExternalCall counts a call to service with outcome "ok", "error" or "rejected"
func (r *Recorder) ExternalCall(service, outcome string) {
	if r == nil {
		return
	}
	r.externalCalls.WithLabelValues(service, outcome).Inc()
}

// ObserveHTTP records one served request
func (r *Recorder) ObserveHTTP(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
