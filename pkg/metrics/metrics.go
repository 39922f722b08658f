// Package metrics exposes the daemon's Prometheus collectors. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "glin_wallet"

// Metrics holds every collector the daemon reports.
type Metrics struct {
	registry *prometheus.Registry

	messages        *prometheus.CounterVec
	messageDuration *prometheus.HistogramVec
	unlockFailures  prometheus.Counter
	integrityFaults prometheus.Counter
	chainConnected  prometheus.Gauge
	pendingRequests prometheus.Gauge
	rateLimited     prometheus.Counter
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_total",
				Help:      "Messages handled, by type, surface and outcome.",
			},
			[]string{"type", "surface", "outcome"}),
		messageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "message_duration_seconds",
				Help:      "Time to produce a response envelope.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"type"}),
		unlockFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unlock_failures_total",
			Help:      "Unlock and switch attempts rejected for a wrong password.",
		}),
		integrityFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_faults_total",
			Help:      "Re-derived addresses that did not match the stored account.",
		}),
		chainConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chain_connected",
			Help:      "1 while the chain client holds an open connection.",
		}),
		pendingRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_connection_requests",
			Help:      "Dapp connection requests awaiting approval.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dapp_rate_limited_total",
			Help:      "Dapp requests refused by the per-origin rate limit.",
		}),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.messages,
		m.messageDuration,
		m.unlockFailures,
		m.integrityFaults,
		m.chainConnected,
		m.pendingRequests,
		m.rateLimited,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveMessage(messageType, surface, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(messageType, surface, outcome).Inc()
	m.messageDuration.WithLabelValues(messageType).Observe(elapsed.Seconds())
}

func (m *Metrics) UnlockFailed() {
	if m == nil {
		return
	}
	m.unlockFailures.Inc()
}

func (m *Metrics) IntegrityFault() {
	if m == nil {
		return
	}
	m.integrityFaults.Inc()
}

// SetChainConnected records the chain connection state.
func (m *Metrics) SetChainConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.chainConnected.Set(1)
		return
	}
	m.chainConnected.Set(0)
}

func (m *Metrics) SetPendingRequests(n int) {
	if m == nil {
		return
	}
	m.pendingRequests.Set(float64(n))
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
