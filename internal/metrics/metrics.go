package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"popcorn/internal/logger"
)

var (
	LookupRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popcorn_lookup_requests_total",
			Help: "Count of movie database lookups",
		},
		[]string{"op", "status"},
	)
	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "popcorn_lookup_duration_seconds",
			Help:    "Time taken by movie database lookups",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"op"},
	)
	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popcorn_cache_operations_total",
			Help: "Lookup cache hits and misses",
		},
		[]string{"op", "result"},
	)
)

// Registry holds the collectors above. It is private so tests and the
// program never clash with the default registerer.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		LookupRequests,
		LookupDuration,
		CacheOperations,
	)
}

// ObserveLookup records one finished lookup.
func ObserveLookup(op, status string, started time.Time) {
	LookupRequests.WithLabelValues(op, status).Inc()
	LookupDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// Serve exposes /metrics on addr in the background. An empty addr
// disables the listener.
func Serve(addr string) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error().Err(err).Str("addr", addr).Msg("Metrics listener stopped")
		}
	}()
	logger.Log.Info().Str("addr", addr).Msg("Serving metrics")
	return srv
}
