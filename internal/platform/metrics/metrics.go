package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)

	// SolveTotal counts solver runs by outcome (ok, infeasible, invalid_input, ...).
	SolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fleet_solve_total", Help: "Fleet allocation solves by outcome."},
		[]string{"outcome"},
	)
	// SolveDuration is split by mode: sequential or parallel.
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "fleet_solve_duration_seconds", Help: "Fleet allocation solve duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10)},
		[]string{"mode"},
	)
	SolveNodes = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "fleet_solve_nodes_visited", Help: "Search nodes visited per solve.", Buckets: prometheus.ExponentialBuckets(1, 8, 10)},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SolveTotal)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(SolveNodes)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// ObserveSolve records one finished solve.
func ObserveSolve(mode, outcome string, dur time.Duration, nodes int64) {
	SolveTotal.WithLabelValues(outcome).Inc()
	SolveDuration.WithLabelValues(mode).Observe(dur.Seconds())
	if nodes > 0 {
		SolveNodes.Observe(float64(nodes))
	}
}
