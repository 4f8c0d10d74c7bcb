package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	CyclesTotal    *prometheus.CounterVec
	CyclesInFlight prometheus.Gauge

	SearchRequestsTotal   *prometheus.CounterVec
	SearchRequestDuration prometheus.Histogram

	AlertsTotal prometheus.Counter

	RateLimitHitsTotal *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		CyclesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wikiseek_cycles_total",
				Help: "Search cycles processed, labeled by final outcome",
			},
			[]string{"outcome"},
		),
		CyclesInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "wikiseek_cycles_in_flight",
				Help: "Search cycles currently being processed",
			},
		),

		SearchRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wikiseek_search_requests_total",
				Help: "Total number of remote search API requests",
			},
			[]string{"status"},
		),
		SearchRequestDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wikiseek_search_request_duration_seconds",
				Help:    "Remote search request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),

		AlertsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "wikiseek_alerts_total",
				Help: "Total number of user-visible alerts shown",
			},
		),

		RateLimitHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wikiseek_rate_limit_hits_total",
				Help: "Total number of rate limit hits",
			},
			[]string{"chat_id"},
		),
	}

	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordCycle(outcome string) {
	m.CyclesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordSearchRequest(status string, duration time.Duration) {
	m.SearchRequestsTotal.WithLabelValues(status).Inc()
	m.SearchRequestDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordAlert() {
	m.AlertsTotal.Inc()
}

func (m *Metrics) RecordRateLimitHit(chatID string) {
	m.RateLimitHitsTotal.WithLabelValues(chatID).Inc()
}

func (m *Metrics) IncCyclesInFlight() {
	m.CyclesInFlight.Inc()
}

func (m *Metrics) DecCyclesInFlight() {
	m.CyclesInFlight.Dec()
}
