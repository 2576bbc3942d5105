package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Collector struct {
	reg *prometheus.Registry

	Requests        *prometheus.CounterVec // outcome label: ok|not_found|server_error|transport_error
	RequestDuration prometheus.Histogram

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	Lookups *prometheus.CounterVec // status label: success|error, from the view state
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saarthi_api_requests_total",
			Help: "Train API requests by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "saarthi_api_request_duration_seconds",
			Help:    "Duration of train API requests.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "saarthi_cache_hits_total",
			Help: "Train lookups answered from the response cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "saarthi_cache_misses_total",
			Help: "Train lookups not found in the response cache.",
		}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saarthi_lookups_total",
			Help: "Resolved lookups by final view status.",
		}, []string{"status"}),
	}

	reg.MustRegister(c.Requests, c.RequestDuration, c.CacheHits, c.CacheMisses, c.Lookups)

	return c
}

// ObserveRequest implements api.Recorder
func (c *Collector) ObserveRequest(outcome string, d time.Duration) {
	c.Requests.WithLabelValues(outcome).Inc()
	c.RequestDuration.Observe(d.Seconds())
}

// ObserveCache implements api.Recorder
func (c *Collector) ObserveCache(hit bool) {
	if hit {
		c.CacheHits.Inc()
		return
	}
	c.CacheMisses.Inc()
}

// ObserveLookup counts a lookup that reached a final view status
func (c *Collector) ObserveLookup(status string) {
	c.Lookups.WithLabelValues(status).Inc()
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("Metrics server stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("Metrics listening")
	return srv
}
