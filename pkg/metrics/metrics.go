// Package metrics provides Prometheus instrumentation for automart.
//
// Wire it up once in internal/kernel/http.go:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "automart"

// DefaultRegistry is the Prometheus registry served at /metrics. Every
// collector below registers itself on it through promauto.
var DefaultRegistry = prometheus.NewRegistry()

var factory = promauto.With(DefaultRegistry)

func counter(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func histogram(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

// HTTP and infrastructure. Routes are chi patterns, so /car/1/ and /car/2/
// share a series.
var (
	RequestDuration = histogram("http", "request_duration_seconds", "Duration of HTTP requests in seconds.",
		prometheus.DefBuckets, "method", "route", "status")
	RequestTotal = counter("http", "requests_total", "Total number of HTTP requests.",
		"method", "route", "status")
	RequestInFlight = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "http", Name: "requests_in_flight",
		Help: "Number of HTTP requests currently being served.",
	})
	ResponseSize = histogram("http", "response_size_bytes", "Response body sizes in bytes.",
		prometheus.ExponentialBuckets(128, 4, 7), "method", "route")

	// DBQueryDuration is fed by the gorm callbacks in pkg/database.
	DBQueryDuration = histogram("db", "query_duration_seconds", "Duration of database queries in seconds.",
		[]float64{.001, .005, .01, .025, .05, .1, .5, 1}, "operation")

	CacheHits   = counter("cache", "hits_total", "Total cache hits.", "driver")
	CacheMisses = counter("cache", "misses_total", "Total cache misses.", "driver")

	ScheduledRuns = counter("schedule", "runs_total", "Scheduled task runs, by task and status.", "task", "status")
)

// Marketplace activity.
var (
	Registrations = counter("auth", "registrations_total", "Accounts created, by role.", "role")
	// outcome: success | failure
	Logins        = counter("auth", "logins_total", "Login attempts, by outcome.", "outcome")
	TokensRevoked = counter("auth", "tokens_revoked_total", "Refresh tokens added to the revocation ledger.").WithLabelValues()

	ListingsCreated = counter("catalog", "listings_created_total", "Car listings created.").WithLabelValues()
	ReviewsCreated  = counter("catalog", "reviews_created_total", "Car reviews created.").WithLabelValues()

	// basket: cart | favorite; action: add | remove
	BasketChanges = counter("basket", "changes_total", "Cart and favorite item additions and removals.", "basket", "action")
)

func init() {
	DefaultRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Register lets callers add their own collector to the registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware records duration, count, in-flight and response size for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			route := routePattern(r)
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, route, status).Inc()
			ResponseSize.WithLabelValues(r.Method, route).Observe(float64(rr.size))
		})
	}
}

// routePattern is read after the handler ran, when chi has filled the route context.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Handler exposes the registry in Prometheus text and OpenMetrics formats.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ObserveDBQuery records a DB query duration:
//
//	defer metrics.ObserveDBQuery("query", time.Now())
func ObserveDBQuery(operation string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordScheduledRun counts one run of a scheduled task.
func RecordScheduledRun(task string, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	ScheduledRuns.WithLabelValues(task, status).Inc()
}
