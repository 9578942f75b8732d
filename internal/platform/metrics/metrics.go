package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the playback service.
type Metrics struct {
	registry               *prometheus.Registry
	requestsTotal          prometheus.Counter
	errorsTotal            prometheus.Counter
	sessionsCreatedTotal   prometheus.Counter
	sessionsEndedTotal     prometheus.Counter
	activeSessions         prometheus.Gauge
	playerTicksTotal       prometheus.Counter
	adBreaksStartedTotal   prometheus.Counter
	adBreaksCompletedTotal prometheus.Counter
	correctiveSeeksTotal   prometheus.Counter
	adFreePodsTotal        prometheus.Counter
}

// New creates and registers Prometheus metrics for the playback service.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csai_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csai_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	sessionsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csai_sessions_created_total",
		Help: "Total number of playback sessions created",
	})
	sessionsEndedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csai_sessions_ended_total",
		Help: "Total number of playback sessions ended",
	})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "csai_active_sessions",
		Help: "Number of playback sessions currently live",
	})
	playerTicksTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csai_player_ticks_total",
		Help: "Total number of player time-update ticks processed",
	})
	adBreaksStartedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csai_ad_breaks_started_total",
		Help: "Total number of ad breaks started",
	})
	adBreaksCompletedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csai_ad_breaks_completed_total",
		Help: "Total number of ad breaks completed",
	})
	correctiveSeeksTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csai_corrective_seeks_total",
		Help: "Total number of corrective seeks issued by the timeline controller",
	})
	adFreePodsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csai_ad_free_pods_total",
		Help: "Total number of ad-free-pod credits granted by interactive ads",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		sessionsCreatedTotal,
		sessionsEndedTotal,
		activeSessions,
		playerTicksTotal,
		adBreaksStartedTotal,
		adBreaksCompletedTotal,
		correctiveSeeksTotal,
		adFreePodsTotal,
	)

	return &Metrics{
		registry:               registry,
		requestsTotal:          requestsTotal,
		errorsTotal:            errorsTotal,
		sessionsCreatedTotal:   sessionsCreatedTotal,
		sessionsEndedTotal:     sessionsEndedTotal,
		activeSessions:         activeSessions,
		playerTicksTotal:       playerTicksTotal,
		adBreaksStartedTotal:   adBreaksStartedTotal,
		adBreaksCompletedTotal: adBreaksCompletedTotal,
		correctiveSeeksTotal:   correctiveSeeksTotal,
		adFreePodsTotal:        adFreePodsTotal,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncSessionsCreated increments the sessions created counter.
func (m *Metrics) IncSessionsCreated() {
	m.sessionsCreatedTotal.Inc()
}

// IncSessionsEnded increments the sessions ended counter.
func (m *Metrics) IncSessionsEnded() {
	m.sessionsEndedTotal.Inc()
}

// SetActiveSessions sets the active sessions gauge.
func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// IncPlayerTicks increments the time-update tick counter.
func (m *Metrics) IncPlayerTicks() {
	m.playerTicksTotal.Inc()
}

// IncAdBreaksStarted increments the ad breaks started counter.
func (m *Metrics) IncAdBreaksStarted() {
	m.adBreaksStartedTotal.Inc()
}

// IncAdBreaksCompleted increments the ad breaks completed counter.
func (m *Metrics) IncAdBreaksCompleted() {
	m.adBreaksCompletedTotal.Inc()
}

// IncCorrectiveSeeks increments the corrective seek counter.
func (m *Metrics) IncCorrectiveSeeks() {
	m.correctiveSeeksTotal.Inc()
}

// IncAdFreePods increments the ad-free-pod credit counter.
func (m *Metrics) IncAdFreePods() {
	m.adFreePodsTotal.Inc()
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g.
// active sessions).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
