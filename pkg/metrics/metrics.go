// Package metrics provides Prometheus instrumentation for the storefront.
//
// It pre-defines the HTTP metrics every deployment wants plus the domain
// counters the storefront cares about (feed loads, cart mutations, order
// submissions).
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────
// Built-in HTTP metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dukaan",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dukaan",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dukaan",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})
)

// ─────────────────────────────────────────────
// Storefront domain metrics
// ─────────────────────────────────────────────

var (
	// FeedLoads counts catalog feed loads by outcome ("ok" | "error").
	FeedLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dukaan",
			Subsystem: "feed",
			Name:      "loads_total",
			Help:      "Total catalog feed loads.",
		},
		[]string{"status"},
	)

	// FeedLoadDuration tracks fetch+parse latency for feed loads.
	FeedLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dukaan",
		Subsystem: "feed",
		Name:      "load_duration_seconds",
		Help:      "Duration of catalog feed loads in seconds.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	})

	// CatalogSize is the number of products in the current catalog.
	CatalogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dukaan",
		Subsystem: "catalog",
		Name:      "products",
		Help:      "Number of products in the currently loaded catalog.",
	})

	// CartMutations counts cart operations by kind
	// ("add" | "set" | "remove" | "clear").
	CartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dukaan",
			Subsystem: "cart",
			Name:      "mutations_total",
			Help:      "Total cart mutations.",
		},
		[]string{"op"},
	)

	// Orders counts order submissions by outcome
	// ("ok" | "rejected" | "error").
	Orders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dukaan",
			Subsystem: "orders",
			Name:      "submitted_total",
			Help:      "Total order submissions.",
		},
		[]string{"status"},
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry used by the storefront.
// Register your own metrics against it.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		FeedLoads,
		FeedLoadDuration,
		CatalogSize,
		CartMutations,
		Orders,
	)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// HTTP middleware
// ─────────────────────────────────────────────

// responseRecorder wraps http.ResponseWriter to capture the status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request duration, count, and in-flight gauge for every
// request passing through it.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; route params here are low-cardinality

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics
// page. Mount it on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ObserveFeedLoad records one feed load outcome with its duration,
// measured from start.
func ObserveFeedLoad(status string, start time.Time) {
	FeedLoads.WithLabelValues(status).Inc()
	FeedLoadDuration.Observe(time.Since(start).Seconds())
}
