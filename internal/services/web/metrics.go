package web

import (
	"net/http"

	"github.com/louisbranch/drivelink/internal/services/registration"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// outcomeInvalid labels posts rejected before reaching the backend.
const outcomeInvalid = "invalid"

// Metrics holds the web surface's Prometheus collectors on a private
// registry so several servers can coexist in one process.
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
}

// NewMetrics registers the registration counters and the Go runtime
// collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drivelink",
		Subsystem: "registration",
		Name:      "submissions_total",
		Help:      "Registration form posts by outcome.",
	}, []string{"outcome"})
	registry.MustRegister(
		submissions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, outcome := range []string{
		string(registration.OutcomeRedirect),
		string(registration.OutcomeUnexpected),
		string(registration.OutcomeFailed),
		outcomeInvalid,
	} {
		submissions.WithLabelValues(outcome)
	}
	return &Metrics{registry: registry, submissions: submissions}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
