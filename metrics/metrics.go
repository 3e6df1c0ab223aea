// Package metrics holds the prometheus collectors for the metadata client,
// the trailer resolver, the listing cache and the session registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rohanthewiz/logger"
)

var (
	// MetadataRequests counts outbound metadata reads by result (ok, error).
	MetadataRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goflix_metadata_requests_total",
		Help: "Outbound metadata API requests by result",
	}, []string{"result"})

	// MetadataLatency tracks how long metadata reads take end to end.
	MetadataLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "goflix_metadata_request_duration_seconds",
		Help:    "Duration of outbound metadata API requests",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	// TrailerLookups counts trailer resolutions by result (found, not_found, error).
	TrailerLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goflix_trailer_lookups_total",
		Help: "Trailer lookups by result",
	}, []string{"result"})

	// CacheRequests counts listing cache reads by backend and result (hit, miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goflix_listing_cache_requests_total",
		Help: "Listing cache lookups by backend and result",
	}, []string{"backend", "result"})

	// ActiveSessions is the number of sessions holding live components.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "goflix_active_sessions",
		Help: "Sessions with mounted view components",
	})
)

// ObserveMetadataRequest records one metadata read.
func ObserveMetadataRequest(start time.Time, err error) {
	MetadataLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		MetadataRequests.WithLabelValues("error").Inc()
		return
	}
	MetadataRequests.WithLabelValues("ok").Inc()
}

// ObserveCache records one cache lookup.
func ObserveCache(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequests.WithLabelValues(backend, result).Inc()
}

// Serve exposes /metrics on addr until ctx is done.
// rweb does not speak net/http handlers, so metrics get their own listener.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Metrics listener starting", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
